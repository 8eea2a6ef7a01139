// Package session binds transport connections to (room, player) pairs and
// dispatches inbound messages to the matching room.Controller, converting
// the room's []room.Outbound results back into transport sends.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
)

// Envelope is the tagged-union wire shape every message, inbound or
// outbound, is encoded as: a type discriminant plus a millisecond
// timestamp, with the rest of the fields type-specific.
type Envelope struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Inbound message types, per spec.md §6.
const (
	InCreateRoom   = "CREATE_ROOM"
	InJoinRoom     = "JOIN_ROOM"
	InLeaveRoom    = "LEAVE_ROOM"
	InDraftSubmit  = "DRAFT_SUBMIT"
	InPlacePiece   = "PLACE_PIECE"
	InMakeMove     = "MAKE_MOVE"
	InOfferDraw    = "OFFER_DRAW"
	InRespondDraw  = "RESPOND_DRAW"
	InResign       = "RESIGN"
	InReconnect    = "RECONNECT"
	InPing         = "PING"
)

// CreateRoomData is CREATE_ROOM's payload.
type CreateRoomData struct {
	PlayerName string         `json:"playerName"`
	Settings   SettingsWire   `json:"settings"`
}

// SettingsWire is the wire representation of room.Settings: durations as
// whole seconds rather than time.Duration's nanosecond-integer encoding.
type SettingsWire struct {
	Budget             int    `json:"budget"`
	BoardSize          string `json:"boardSize"`
	DraftTimeLimitSecs int    `json:"draftTimeLimitSeconds"`
}

// JoinRoomData is JOIN_ROOM's payload.
type JoinRoomData struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// DraftSelectionWire mirrors draft.Selection over the wire.
type DraftSelectionWire struct {
	PieceTypeID string `json:"pieceTypeId"`
	Count       int    `json:"count"`
}

// DraftSubmitData is DRAFT_SUBMIT's payload.
type DraftSubmitData struct {
	Draft []DraftSelectionWire `json:"draft"`
}

// PlacePieceData is PLACE_PIECE's payload.
type PlacePieceData struct {
	PieceID  string         `json:"pieceId"`
	Position board.Position `json:"position"`
}

// MakeMoveData is MAKE_MOVE's payload. PromotionPieceType is optional; an
// empty string means no promotion choice was offered or needed.
type MakeMoveData struct {
	From               board.Position `json:"from"`
	To                 board.Position `json:"to"`
	PromotionPieceType string         `json:"promotionPieceType,omitempty"`
}

// RespondDrawData is RESPOND_DRAW's payload.
type RespondDrawData struct {
	Accept bool `json:"accept"`
}

// ReconnectData is RECONNECT's payload.
type ReconnectData struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

func decode[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("session: malformed %s payload: %w", env.Type, err)
	}
	return out, nil
}
