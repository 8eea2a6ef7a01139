package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
	"github.com/liamiak1/hyper-fairy-chess/pkg/room"
	"github.com/seekerror/logw"
)

// Transport is the two primitives the dispatcher needs from whatever moves
// bytes over the wire (see pkg/transport/ws); the dispatcher never
// introspects a message's payload, only its type.
type Transport interface {
	SendToConnection(connID string, env Envelope)
	BroadcastToRoom(roomCode string, env Envelope)
}

// RoomBinder is an optional Transport capability (analogous to
// http.Flusher) for transports that track room membership themselves in
// order to implement BroadcastToRoom, e.g. pkg/transport/ws's Hub.
type RoomBinder interface {
	BindRoom(connID, roomCode string)
}

type binding struct {
	roomCode string
	playerID string
}

// Dispatcher binds each transport connection to at most one (room, player)
// pair and routes inbound envelopes to the bound room's Controller. All
// room mutation happens on the Controller's own goroutine (via Enqueue);
// the dispatcher itself holds no room state beyond the connection↔player
// binding table.
type Dispatcher struct {
	directory *room.Directory
	transport Transport
	clk       clock.Clock

	mu     sync.RWMutex
	conns  map[string]binding            // connID -> binding
	byRoom map[string]map[string]string  // roomCode -> playerID -> connID
}

// NewDispatcher wires a Dispatcher against a Room Directory and a
// Transport. clk is passed through to every room the dispatcher creates.
func NewDispatcher(directory *room.Directory, transport Transport, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		transport: transport,
		clk:       clk,
		conns:     map[string]binding{},
		byRoom:    map[string]map[string]string{},
	}
}

// Handle decodes one inbound message from connID and routes it. Malformed
// envelopes are dropped with an INVALID_CODE ROOM_ERROR rather than
// propagated, per spec.md §7's transport error kind.
func (d *Dispatcher) Handle(ctx context.Context, connID string, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", "malformed message"))
		return
	}

	switch env.Type {
	case InCreateRoom:
		d.handleCreateRoom(ctx, connID, env)
	case InJoinRoom:
		d.handleJoinRoom(ctx, connID, env)
	case InReconnect:
		d.handleReconnect(ctx, connID, env)
	case InLeaveRoom:
		d.withController(connID, func(c *room.Controller, p binding) {
			c.Enqueue(func(c *room.Controller) []room.Outbound { return c.Leave(p.playerID) })
		})
	case InDraftSubmit:
		d.handleDraftSubmit(connID, env)
	case InPlacePiece:
		d.handlePlacePiece(connID, env)
	case InMakeMove:
		d.handleMakeMove(ctx, connID, env)
	case InOfferDraw:
		d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
			return c.OfferDraw(p.playerID)
		})
	case InRespondDraw:
		d.handleRespondDraw(connID, env)
	case InResign:
		d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
			return c.Resign(p.playerID)
		})
	case InPing:
		d.withController(connID, func(c *room.Controller, _ binding) {
			c.Enqueue(func(c *room.Controller) []room.Outbound { return c.Ping() })
		})
	default:
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", fmt.Sprintf("unknown message type %q", env.Type)))
	}
}

func (d *Dispatcher) handleCreateRoom(ctx context.Context, connID string, env Envelope) {
	data, err := decode[CreateRoomData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	settings := room.Settings{
		Budget:         data.Settings.Budget,
		BoardSize:      data.Settings.BoardSize,
		DraftTimeLimit: time.Duration(data.Settings.DraftTimeLimitSecs) * time.Second,
	}
	c, err := d.directory.Create(settings)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}

	playerID := uuid.NewString()
	d.bind(connID, c.Room.Code, playerID)
	go c.Run(ctx, d.emitFor(c.Room.Code))
	c.Enqueue(func(c *room.Controller) []room.Outbound { return c.CreateAndSeat(playerID, data.PlayerName) })
}

func (d *Dispatcher) handleJoinRoom(ctx context.Context, connID string, env Envelope) {
	data, err := decode[JoinRoomData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	c, ok := d.directory.Get(data.RoomCode)
	if !ok {
		d.transport.SendToConnection(connID, d.errEnvelope("NOT_FOUND", "no such room"))
		return
	}

	playerID := uuid.NewString()
	d.bind(connID, c.Room.Code, playerID)
	c.Enqueue(func(c *room.Controller) []room.Outbound {
		out, err := c.Join(playerID, data.PlayerName)
		if err != nil {
			return []room.Outbound{{PlayerID: playerID, Type: "ROOM_ERROR", Payload: map[string]any{"error": "FULL", "message": err.Error()}}}
		}
		return out
	})
}

func (d *Dispatcher) handleReconnect(ctx context.Context, connID string, env Envelope) {
	data, err := decode[ReconnectData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	c, ok := d.directory.Get(data.RoomCode)
	if !ok {
		d.transport.SendToConnection(connID, d.errEnvelope("NOT_FOUND", "no such room"))
		return
	}

	d.bind(connID, c.Room.Code, data.PlayerID)
	c.Enqueue(func(c *room.Controller) []room.Outbound {
		out, err := c.Reconnect(data.PlayerID)
		if err != nil {
			return []room.Outbound{{PlayerID: data.PlayerID, Type: "ROOM_ERROR", Payload: map[string]any{"error": "NOT_FOUND", "message": err.Error()}}}
		}
		return out
	})
}

func (d *Dispatcher) handleDraftSubmit(connID string, env Envelope) {
	data, err := decode[DraftSubmitData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
		selections := make([]draft.Selection, len(data.Draft))
		for i, s := range data.Draft {
			selections[i] = draft.Selection{PieceTypeID: s.PieceTypeID, Count: s.Count}
		}
		return c.SubmitDraft(p.playerID, selections)
	})
}

func (d *Dispatcher) handlePlacePiece(connID string, env Envelope) {
	data, err := decode[PlacePieceData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
		return c.PlacePiece(p.playerID, data.PieceID, data.Position)
	})
}

func (d *Dispatcher) handleMakeMove(ctx context.Context, connID string, env Envelope) {
	data, err := decode[MakeMoveData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
		if c.Room.Board == nil {
			return nil, fmt.Errorf("session: no game in progress")
		}
		occ, ok := c.Room.Board.At(data.From)
		if !ok {
			return nil, fmt.Errorf("session: no piece at %v", data.From)
		}
		m := board.Move{PieceID: occ.ID, From: data.From, To: data.To, Promotion: data.PromotionPieceType}
		return c.MakeMove(ctx, p.playerID, m)
	})
}

func (d *Dispatcher) handleRespondDraw(connID string, env Envelope) {
	data, err := decode[RespondDrawData](env)
	if err != nil {
		d.transport.SendToConnection(connID, d.errEnvelope("INVALID_CODE", err.Error()))
		return
	}
	d.withFallible(connID, func(c *room.Controller, p binding) ([]room.Outbound, error) {
		return c.RespondDraw(p.playerID, data.Accept)
	})
}

// withController resolves connID's binding and calls fn with its
// Controller on the caller's goroutine; unbound connections are silently ignored.
func (d *Dispatcher) withController(connID string, fn func(*room.Controller, binding)) {
	d.mu.RLock()
	b, ok := d.conns[connID]
	d.mu.RUnlock()
	if !ok {
		return
	}
	c, ok := d.directory.Get(b.roomCode)
	if !ok {
		return
	}
	fn(c, b)
}

// withFallible enqueues fn and converts any returned error into a
// ROOM_ERROR sent only to the offending player.
func (d *Dispatcher) withFallible(connID string, fn func(*room.Controller, binding) ([]room.Outbound, error)) {
	d.withController(connID, func(c *room.Controller, b binding) {
		c.Enqueue(func(c *room.Controller) []room.Outbound {
			out, err := fn(c, b)
			if err != nil {
				return []room.Outbound{{PlayerID: b.playerID, Type: "ROOM_ERROR", Payload: map[string]any{"error": "ALREADY_STARTED", "message": err.Error()}}}
			}
			return out
		})
	})
}

func (d *Dispatcher) bind(connID, roomCode, playerID string) {
	d.mu.Lock()
	d.conns[connID] = binding{roomCode: roomCode, playerID: playerID}
	if d.byRoom[roomCode] == nil {
		d.byRoom[roomCode] = map[string]string{}
	}
	d.byRoom[roomCode][playerID] = connID
	d.mu.Unlock()

	if rb, ok := d.transport.(RoomBinder); ok {
		rb.BindRoom(connID, roomCode)
	}
}

// Unbind releases connID's binding, e.g. once its socket closes. It does
// not notify the room; callers that want a LEAVE/disconnect side effect
// should route that inbound message (or call Handle with LEAVE_ROOM) first.
func (d *Dispatcher) Unbind(connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.conns[connID]
	if !ok {
		return
	}
	delete(d.conns, connID)
	if players, ok := d.byRoom[b.roomCode]; ok {
		delete(players, b.playerID)
	}
}

// emitFor returns the callback passed to Controller.Run for roomCode: it
// turns each batch of room.Outbound records into wire Envelopes and routes
// them through the Transport.
func (d *Dispatcher) emitFor(roomCode string) func([]room.Outbound) {
	return func(outs []room.Outbound) {
		for _, o := range outs {
			env := Envelope{Type: o.Type, Timestamp: d.clk.Now().UnixMilli()}
			payload, err := json.Marshal(o.Payload)
			if err != nil {
				logw.Errorf(context.Background(), "session: failed to marshal %s payload for room %s: %v", o.Type, roomCode, err)
				continue
			}
			env.Data = payload

			if o.Broadcast {
				d.transport.BroadcastToRoom(roomCode, env)
				continue
			}
			d.mu.RLock()
			connID, ok := d.byRoom[roomCode][o.PlayerID]
			d.mu.RUnlock()
			if ok {
				d.transport.SendToConnection(connID, env)
			}
		}
	}
}

func (d *Dispatcher) errEnvelope(kind, message string) Envelope {
	payload, _ := json.Marshal(map[string]any{"error": kind, "message": message})
	return Envelope{Type: "ROOM_ERROR", Timestamp: d.clk.Now().UnixMilli(), Data: payload}
}

