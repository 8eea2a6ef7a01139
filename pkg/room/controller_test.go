package room_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
	"github.com/liamiak1/hyper-fairy-chess/pkg/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() room.Settings {
	return room.Settings{Budget: 500, BoardSize: "8x8", DraftTimeLimit: 30 * time.Second}
}

// harness wires a Controller's Run loop to a buffered event channel so a
// test can Enqueue a job and deterministically await the batch it produces.
type harness struct {
	t      *testing.T
	ctrl   *room.Controller
	clk    *clock.Mock
	events chan []room.Outbound
	cancel context.CancelFunc
}

func newHarness(t *testing.T, settings room.Settings) *harness {
	clk := clock.NewMock()
	ctrl := room.NewController("ABCDEF", settings, clk)
	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{t: t, ctrl: ctrl, clk: clk, events: make(chan []room.Outbound, 64), cancel: cancel}
	go ctrl.Run(ctx, func(out []room.Outbound) { h.events <- out })
	t.Cleanup(cancel)
	return h
}

func (h *harness) recv() []room.Outbound {
	h.t.Helper()
	select {
	case out := <-h.events:
		return out
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for controller event")
		return nil
	}
}

func (h *harness) run(fn func(c *room.Controller) []room.Outbound) []room.Outbound {
	h.ctrl.Enqueue(fn)
	return h.recv()
}

func typesOf(out []room.Outbound) []string {
	var types []string
	for _, o := range out {
		types = append(types, o.Type)
	}
	return types
}

// driveToPlaying runs a fresh room through create, join, the pre-draft
// countdown, both sides' drafts, the reveal delay and every placement, until
// the room reaches PhasePlaying. Shared by every test that needs a live
// game without re-deriving the choreography that gets it there.
func driveToPlaying(t *testing.T, h *harness) {
	t.Helper()

	created := h.run(func(c *room.Controller) []room.Outbound { return c.CreateAndSeat("white-1", "Alice") })
	assert.Equal(t, []string{"ROOM_CREATED"}, typesOf(created))

	joined := h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.Join("black-1", "Bob")
		require.NoError(t, err)
		return out
	})
	assert.Equal(t, []string{"ROOM_JOINED", "PLAYER_JOINED", "DRAFT_COUNTDOWN"}, typesOf(joined))

	// Advance through the 3-second pre-draft countdown.
	h.clk.Add(time.Second)
	tick1 := h.recv()
	assert.Equal(t, []string{"DRAFT_COUNTDOWN"}, typesOf(tick1))

	h.clk.Add(time.Second)
	tick2 := h.recv()
	assert.Equal(t, []string{"DRAFT_COUNTDOWN"}, typesOf(tick2))

	h.clk.Add(time.Second)
	draftStart := h.recv()
	assert.Equal(t, []string{"DRAFT_START"}, typesOf(draftStart))
	assert.Equal(t, room.PhaseDrafting, h.ctrl.Room.Phase)

	whiteSelections := []draft.Selection{
		{PieceTypeID: catalog.Queen, Count: 1},
		{PieceTypeID: catalog.Rook, Count: 2},
		{PieceTypeID: catalog.Bishop, Count: 2},
		{PieceTypeID: catalog.Knight, Count: 2},
		{PieceTypeID: catalog.PawnID, Count: 8},
	}
	blackSelections := whiteSelections

	whiteSubmit := h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.SubmitDraft("white-1", whiteSelections)
		require.NoError(t, err)
		return out
	})
	assert.Equal(t, []string{"DRAFT_SUBMITTED"}, typesOf(whiteSubmit))

	blackSubmit := h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.SubmitDraft("black-1", blackSelections)
		require.NoError(t, err)
		return out
	})
	assert.Equal(t, []string{"DRAFT_SUBMITTED", "DRAFT_REVEAL"}, typesOf(blackSubmit))

	// The reveal delay gates the transition into placement.
	assert.Equal(t, room.PhaseDrafting, h.ctrl.Room.Phase)
	h.clk.Add(3 * time.Second)
	placementStart := h.recv()
	assert.Equal(t, []string{"PLACEMENT_START"}, typesOf(placementStart))
	assert.Equal(t, room.PhasePlacement, h.ctrl.Room.Phase)

	// Place every piece for both colors onto distinct, legal squares until
	// the game starts.
	for h.ctrl.Room.Phase == room.PhasePlacement {
		color := h.ctrl.Room.Placement.CurrentPlacer
		piece := h.ctrl.Room.Placement.Pools[color][0]
		pos := nextPlacementSquare(h.ctrl.Room.Board, color, piece.TypeID)
		playerID := "white-1"
		if color == board.Black {
			playerID = "black-1"
		}
		out := h.run(func(c *room.Controller) []room.Outbound {
			out, err := c.PlacePiece(playerID, piece.ID, pos)
			require.NoError(t, err)
			return out
		})
		assert.Contains(t, typesOf(out), "PIECE_PLACED")
	}
	assert.Equal(t, room.PhasePlaying, h.ctrl.Room.Phase)
	require.NotNil(t, h.ctrl.Room.Game)
}

func TestControllerFullLifecycle(t *testing.T) {
	h := newHarness(t, testSettings())
	driveToPlaying(t, h)

	// Resign to reach a deterministic end without driving full movegen.
	toMovePlayer := "white-1"
	if h.ctrl.Room.Game.ToMove == board.Black {
		toMovePlayer = "black-1"
	}
	resign := h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.Resign(toMovePlayer)
		require.NoError(t, err)
		return out
	})
	assert.Equal(t, []string{"GAME_OVER"}, typesOf(resign))
	assert.Equal(t, room.PhaseEnded, h.ctrl.Room.Phase)
}

// nextPlacementSquare finds some unused, rule-legal square for typeID/color
// on b, scanning the back rank's center/outer files or the pawn rank as
// appropriate. Good enough for a test driving placement to completion; not
// a general-purpose placement solver.
func nextPlacementSquare(b *board.Board, color board.Color, typeID string) board.Position {
	dims := b.Dimensions
	home := dims.HomeRank(color)
	pawnRank := dims.PawnRank(color)
	typ := catalog.MustBy(typeID)

	if typ.Tier == catalog.Pawn {
		for f := 0; f < dims.Files; f++ {
			pos := board.Position{File: f, Rank: pawnRank}
			if b.IsEmpty(pos) {
				return pos
			}
		}
	}
	if typ.Tier == catalog.Royalty {
		lo, hi := dims.Files/2-1, dims.Files/2
		for _, f := range []int{lo, hi} {
			pos := board.Position{File: f, Rank: home}
			if b.IsEmpty(pos) {
				return pos
			}
		}
	}
	// Piece tier: any outer back-rank file.
	lo, hi := dims.Files/2-1, dims.Files/2
	for f := 0; f < dims.Files; f++ {
		if f == lo || f == hi {
			continue
		}
		pos := board.Position{File: f, Rank: home}
		if b.IsEmpty(pos) {
			return pos
		}
	}
	panic("nextPlacementSquare: no free square found")
}

func TestControllerDraftTimeoutDefaultsBothSides(t *testing.T) {
	h := newHarness(t, testSettings())
	h.run(func(c *room.Controller) []room.Outbound { return c.CreateAndSeat("white-1", "Alice") })
	h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.Join("black-1", "Bob")
		require.NoError(t, err)
		return out
	})

	h.clk.Add(3 * time.Second) // countdown tick 1
	h.recv()
	h.clk.Add(time.Second) // tick 2
	h.recv()
	h.clk.Add(time.Second) // tick 3 -> DRAFT_START
	draftStart := h.recv()
	assert.Equal(t, []string{"DRAFT_START"}, typesOf(draftStart))

	h.clk.Add(testSettings().DraftTimeLimit)
	timeout := h.recv()
	types := typesOf(timeout)
	assert.Contains(t, types, "DRAFT_TIMEOUT")
	assert.Contains(t, types, "DRAFT_REVEAL")
	assert.Len(t, types, 3, "both sides defaulted plus the reveal")
}

func TestControllerReconnectMidGameCancelsGraceTimerAndSyncsState(t *testing.T) {
	h := newHarness(t, testSettings())
	driveToPlaying(t, h)

	discOut := h.run(func(c *room.Controller) []room.Outbound { return c.Disconnect("white-1") })
	assert.Equal(t, []string{"PLAYER_DISCONNECTED"}, typesOf(discOut))

	// Reconnect partway through the grace period.
	h.clk.Add(30 * time.Second)
	reconnectOut := h.run(func(c *room.Controller) []room.Outbound {
		out, err := c.Reconnect("white-1")
		require.NoError(t, err)
		return out
	})
	types := typesOf(reconnectOut)
	assert.Contains(t, types, "PLAYER_RECONNECTED")
	assert.Contains(t, types, "SYNC_STATE")

	var syncPayload map[string]any
	for _, o := range reconnectOut {
		if o.Type == "SYNC_STATE" {
			syncPayload, _ = o.Payload.(map[string]any)
		}
	}
	require.NotNil(t, syncPayload)
	assert.Equal(t, board.White.String(), syncPayload["myColor"])
	assert.NotNil(t, syncPayload["gameState"], "a reconnecting player mid-game gets the live game state")

	// Advancing past the original grace deadline must NOT end the game: the
	// timer was cancelled on reconnect.
	h.clk.Add(60 * time.Second)
	assert.Equal(t, room.PhasePlaying, h.ctrl.Room.Phase, "reconnect cancels the disconnect grace timer")
}

func TestControllerDisconnectDuringPlayEndsGameAfterGrace(t *testing.T) {
	h := newHarness(t, testSettings())
	driveToPlaying(t, h)

	discOut := h.run(func(c *room.Controller) []room.Outbound { return c.Disconnect("white-1") })
	assert.Equal(t, []string{"PLAYER_DISCONNECTED"}, typesOf(discOut))

	h.clk.Add(60 * time.Second)
	gameOver := h.recv()
	assert.Equal(t, []string{"GAME_OVER"}, typesOf(gameOver))
	assert.Equal(t, room.PhaseEnded, h.ctrl.Room.Phase)
}
