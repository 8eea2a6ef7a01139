// Package game owns the authoritative state of a single match once
// placement has finished: the board, whose turn it is, captured-piece
// victory points, and the move executor and end-detection rules that
// operate on that state. A Room (pkg/room) wraps exactly one GameState for
// its lifetime in the "playing" phase.
package game

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// GameState is the live, mutable state of one match.
type GameState struct {
	Board *board.Board

	ToMove board.Color

	// EPTarget is the square a two-square pawn advance just passed over,
	// valid for the opponent's very next move only.
	EPTarget lang.Optional[board.Position]

	MoveNumber int

	// VictoryPoints accumulates the VictoryPoints of every piece captured
	// from the opposing color, indexed by the capturing color.
	VictoryPoints [2]int

	// PendingDrawOffer, if set, names the color awaiting a response to its
	// draw offer. Ambient addition over spec.md's OFFER_DRAW/RESPOND_DRAW
	// messages: see SPEC_FULL.md §4.10.
	PendingDrawOffer lang.Optional[board.Color]

	Result lang.Optional[Result]
}

// NewGameState builds the starting state for a placed board: White to
// move, move 1, no pending en passant, no victory points yet scored.
func NewGameState(b *board.Board) *GameState {
	return &GameState{
		Board:      b,
		ToMove:     board.White,
		MoveNumber: 1,
	}
}

// IsOver reports whether the game has reached a terminal result.
func (g *GameState) IsOver() bool {
	_, ok := g.Result.V()
	return ok
}
