package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/liamiak1/hyper-fairy-chess/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConn builds a conn with no backing websocket, exercising only the
// enqueue/send-buffer half of the type; writePump/readPump need a real
// *websocket.Conn and are left to manual/integration testing.
func newTestConn() *conn {
	return &conn{send: make(chan []byte, sendBufferSize)}
}

func TestSendToConnectionEnqueuesMarshaledEnvelope(t *testing.T) {
	h := NewHub(nil, nil)
	c := newTestConn()
	h.register("conn-1", c)

	h.SendToConnection("conn-1", session.Envelope{Type: "PING", Timestamp: 42})

	raw := <-c.send
	var env session.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "PING", env.Type)
	assert.Equal(t, int64(42), env.Timestamp)
}

func TestSendToConnectionUnknownConnIDIsNoop(t *testing.T) {
	h := NewHub(nil, nil)
	assert.NotPanics(t, func() {
		h.SendToConnection("nonexistent", session.Envelope{Type: "PING"})
	})
}

func TestBroadcastToRoomSendsOnlyToBoundMembers(t *testing.T) {
	h := NewHub(nil, nil)
	member := newTestConn()
	other := newTestConn()
	outsider := newTestConn()
	h.register("member-1", member)
	h.register("member-2", other)
	h.register("outsider-1", outsider)

	h.BindRoom("member-1", "ROOMCODE")
	h.BindRoom("member-2", "ROOMCODE")
	h.BindRoom("outsider-1", "OTHERROOM")

	h.BroadcastToRoom("ROOMCODE", session.Envelope{Type: "GAME_OVER"})

	for _, c := range []*conn{member, other} {
		select {
		case raw := <-c.send:
			var env session.Envelope
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, "GAME_OVER", env.Type)
		default:
			t.Fatal("expected a bound member to receive the broadcast")
		}
	}

	select {
	case <-outsider.send:
		t.Fatal("a connection bound to a different room must not receive the broadcast")
	default:
	}
}

func TestBindRoomOnUnknownConnIDIsNoop(t *testing.T) {
	h := NewHub(nil, nil)
	assert.NotPanics(t, func() {
		h.BindRoom("nonexistent", "ROOMCODE")
	})
}

func TestUnregisterClosesSendChannelAndFiresOnClose(t *testing.T) {
	var closedID string
	h := NewHub(nil, func(connID string) { closedID = connID })
	c := newTestConn()
	h.register("conn-1", c)

	h.unregister("conn-1")

	assert.Equal(t, "conn-1", closedID)
	_, open := <-c.send
	assert.False(t, open, "unregister closes the connection's send channel")
}

func TestUnregisterUnknownConnIDStillFiresOnClose(t *testing.T) {
	var calls int
	h := NewHub(nil, func(connID string) { calls++ })
	h.unregister("never-registered")
	assert.Equal(t, 1, calls)
}

func TestEnqueueDropsWhenSendBufferFull(t *testing.T) {
	c := &conn{send: make(chan []byte, 1)}
	c.enqueue(session.Envelope{Type: "A"})

	// The buffer now holds one message; a second enqueue must drop rather
	// than block since nothing is draining the channel.
	done := make(chan struct{})
	go func() {
		c.enqueue(session.Envelope{Type: "B"})
		close(done)
	}()
	<-done

	raw := <-c.send
	var env session.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "A", env.Type, "the dropped send leaves the original message queued")

	select {
	case <-c.send:
		t.Fatal("only one message should have made it into the buffer")
	default:
	}
}

func TestNewHubStoresCallbacks(t *testing.T) {
	var gotCtx context.Context
	var gotConnID string
	var gotRaw []byte
	h := NewHub(func(ctx context.Context, connID string, raw []byte) {
		gotCtx, gotConnID, gotRaw = ctx, connID, raw
	}, nil)

	ctx := context.Background()
	h.onMessage(ctx, "conn-1", []byte("hello"))

	assert.Equal(t, ctx, gotCtx)
	assert.Equal(t, "conn-1", gotConnID)
	assert.Equal(t, []byte("hello"), gotRaw)
}
