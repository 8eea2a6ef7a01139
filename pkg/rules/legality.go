package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/attack"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/movegen"
)

// LegalMoves returns every move p may legally make: its pseudo-legal
// moves plus any castling moves, with promotion variants expanded, minus
// any that would leave the mover's own color in check.
func LegalMoves(b *board.Board, p *board.PieceInstance, epTarget *board.Position) []board.Move {
	if p.Position == nil || p.IsFrozen {
		return nil
	}

	candidates := movegen.PseudoLegal(b, p, epTarget)
	candidates = append(candidates, CastlingMoves(b, p)...)
	candidates = ExpandPromotions(b, p, candidates)

	var legal []board.Move
	for _, m := range candidates {
		clone := b.Clone()
		Apply(clone, m)
		if !attack.InCheck(clone, p.Owner) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasAnyLegalMove reports whether the color has at least one legal move
// across all of its on-board pieces — the distinguishing test between
// checkmate/check-stalemate and an ordinary position.
func HasAnyLegalMove(b *board.Board, c board.Color, epTarget *board.Position) bool {
	for _, p := range b.PiecesOf(c) {
		if len(LegalMoves(b, p, epTarget)) > 0 {
			return true
		}
	}
	return false
}
