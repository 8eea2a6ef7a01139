package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/movegen"
)

// RegentIsUnrestricted reports whether a color's Regent currently moves as
// an unrestricted queen rather than a blockable two-square mover. Exposed
// from the rules package so callers outside movegen (state summaries,
// client-facing piece descriptions) don't need to import movegen directly.
func RegentIsUnrestricted(b *board.Board, regent *board.PieceInstance) bool {
	if regent.TypeID != catalog.Regent {
		return false
	}
	return movegen.IsRegentUnrestricted(b, regent)
}
