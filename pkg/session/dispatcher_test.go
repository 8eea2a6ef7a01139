package session_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/room"
	"github.com/liamiak1/hyper-fairy-chess/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sent records one envelope a fakeTransport delivered, either to a single
// connection or broadcast to a room.
type sent struct {
	broadcast bool
	connID    string
	roomCode  string
	env       session.Envelope
}

// fakeTransport is a Transport double that records every send on a buffered
// channel, letting a test synchronously await the envelope a dispatched
// message produces without sleeping on wall-clock time.
type fakeTransport struct {
	mu    sync.Mutex
	binds []boundCall
	ch    chan sent
}

type boundCall struct {
	connID   string
	roomCode string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{ch: make(chan sent, 64)}
}

func (f *fakeTransport) SendToConnection(connID string, env session.Envelope) {
	f.ch <- sent{connID: connID, env: env}
}

func (f *fakeTransport) BroadcastToRoom(roomCode string, env session.Envelope) {
	f.ch <- sent{broadcast: true, roomCode: roomCode, env: env}
}

func (f *fakeTransport) BindRoom(connID, roomCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.binds = append(f.binds, boundCall{connID: connID, roomCode: roomCode})
}

func (f *fakeTransport) boundRooms() []boundCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]boundCall, len(f.binds))
	copy(out, f.binds)
	return out
}

func (f *fakeTransport) recv(t *testing.T) sent {
	t.Helper()
	select {
	case s := <-f.ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a transport send")
		return sent{}
	}
}

// recvType drains sends until it finds one of the wanted type, failing the
// test if none arrives in time. Dispatching through a live Controller
// produces whatever else the room phase happens to emit alongside it (e.g. a
// countdown tick), so tests that care about one specific message look past
// the rest rather than asserting on exact batch shape.
func (f *fakeTransport) recvType(t *testing.T, envType string) sent {
	t.Helper()
	for i := 0; i < 16; i++ {
		s := f.recv(t)
		if s.env.Type == envType {
			return s
		}
	}
	t.Fatalf("never saw a %s envelope", envType)
	return sent{}
}

func newTestDispatcher() (*session.Dispatcher, *fakeTransport, *clock.Mock, *room.Directory) {
	clk := clock.NewMock()
	dir := room.NewDirectory(clk, 1)
	tr := newFakeTransport()
	d := session.NewDispatcher(dir, tr, clk)
	return d, tr, clk, dir
}

func marshalEnvelope(t *testing.T, msgType string, data any) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	env := session.Envelope{Type: msgType, Data: raw}
	out, err := json.Marshal(env)
	require.NoError(t, err)
	return out
}

func TestHandleMalformedJSONSendsInvalidCode(t *testing.T) {
	d, tr, _, _ := newTestDispatcher()

	d.Handle(context.Background(), "conn-1", []byte("not json"))

	s := tr.recv(t)
	assert.Equal(t, "ROOM_ERROR", s.env.Type)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(s.env.Data, &payload))
	assert.Equal(t, "INVALID_CODE", payload["error"])
}

func TestHandleUnknownMessageTypeSendsInvalidCode(t *testing.T) {
	d, tr, _, _ := newTestDispatcher()

	raw, err := json.Marshal(session.Envelope{Type: "NOT_A_REAL_TYPE"})
	require.NoError(t, err)
	d.Handle(context.Background(), "conn-1", raw)

	s := tr.recv(t)
	assert.Equal(t, "ROOM_ERROR", s.env.Type)
}

func TestHandleCreateRoomBindsConnectionAndSeatsPlayer(t *testing.T) {
	d, tr, _, dir := newTestDispatcher()

	raw := marshalEnvelope(t, session.InCreateRoom, session.CreateRoomData{
		PlayerName: "Alice",
		Settings: session.SettingsWire{
			Budget:             500,
			BoardSize:          "8x8",
			DraftTimeLimitSecs: 30,
		},
	})
	d.Handle(context.Background(), "conn-1", raw)

	s := tr.recvType(t, "ROOM_CREATED")
	assert.False(t, s.broadcast, "ROOM_CREATED is addressed to the creating player only")

	require.Equal(t, 1, dir.Count())

	binds := tr.boundRooms()
	require.Len(t, binds, 1)
	assert.Equal(t, "conn-1", binds[0].connID)
}

func TestHandleJoinRoomFlowsThroughToPlayerJoined(t *testing.T) {
	d, tr, _, _ := newTestDispatcher()

	createRaw := marshalEnvelope(t, session.InCreateRoom, session.CreateRoomData{
		PlayerName: "Alice",
		Settings:   session.SettingsWire{Budget: 500, BoardSize: "8x8", DraftTimeLimitSecs: 30},
	})
	d.Handle(context.Background(), "conn-1", createRaw)
	created := tr.recvType(t, "ROOM_CREATED")

	var createdPayload map[string]any
	require.NoError(t, json.Unmarshal(created.env.Data, &createdPayload))
	roomCode, ok := createdPayload["roomCode"].(string)
	require.True(t, ok, "ROOM_CREATED payload carries the new room's code")

	joinRaw := marshalEnvelope(t, session.InJoinRoom, session.JoinRoomData{
		RoomCode:   roomCode,
		PlayerName: "Bob",
	})
	d.Handle(context.Background(), "conn-2", joinRaw)

	s := tr.recvType(t, "PLAYER_JOINED")
	assert.True(t, s.broadcast, "PLAYER_JOINED is broadcast to the whole room")

	binds := tr.boundRooms()
	require.Len(t, binds, 2)
	assert.Equal(t, "conn-2", binds[1].connID)
	assert.Equal(t, roomCode, binds[1].roomCode)
}

func TestHandleJoinRoomUnknownCodeSendsNotFound(t *testing.T) {
	d, tr, _, _ := newTestDispatcher()

	raw := marshalEnvelope(t, session.InJoinRoom, session.JoinRoomData{RoomCode: "ZZZZZZ", PlayerName: "Bob"})
	d.Handle(context.Background(), "conn-1", raw)

	s := tr.recv(t)
	assert.Equal(t, "ROOM_ERROR", s.env.Type)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(s.env.Data, &payload))
	assert.Equal(t, "NOT_FOUND", payload["error"])
}

func TestHandleMakeMoveOnNilBoardSendsError(t *testing.T) {
	d, tr, _, _ := newTestDispatcher()

	createRaw := marshalEnvelope(t, session.InCreateRoom, session.CreateRoomData{
		PlayerName: "Alice",
		Settings:   session.SettingsWire{Budget: 500, BoardSize: "8x8", DraftTimeLimitSecs: 30},
	})
	d.Handle(context.Background(), "conn-1", createRaw)
	tr.recvType(t, "ROOM_CREATED")

	// No game has started yet (the room is still waiting for a second
	// player), so MAKE_MOVE must be rejected cleanly rather than panic on a
	// nil board.
	moveRaw := marshalEnvelope(t, session.InMakeMove, session.MakeMoveData{
		From: board.Position{File: 0, Rank: 0},
		To:   board.Position{File: 0, Rank: 1},
	})
	d.Handle(context.Background(), "conn-1", moveRaw)

	s := tr.recv(t)
	assert.Equal(t, "ROOM_ERROR", s.env.Type)
}
