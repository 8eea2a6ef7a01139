package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// EnPassantTarget returns the square a pawn-forward special's two-square
// advance passed over, or nil if the move was not such an advance. The
// game executor records this as the next move's en-passant target; only
// the standard pawn-forward special participates, not the Peasant's
// diagonal advance.
func EnPassantTarget(typ catalog.PieceType, from, to board.Position) *board.Position {
	if !typ.Movement.Has(catalog.PawnForward) {
		return nil
	}
	if to.File != from.File {
		return nil
	}
	delta := to.Rank - from.Rank
	if delta != 2 && delta != -2 {
		return nil
	}
	mid := board.Position{File: from.File, Rank: (from.Rank + to.Rank) / 2}
	return &mid
}
