// Package attack answers "is this square attacked" and "is this color in
// check" questions over a board, for the legality filter and for castling's
// king-path check. It is deliberately a thin layer over pkg/movegen: every
// pseudo-legal move already carries its full capture set (a displacement
// destination, or the victims of a non-displacement capture method), so a
// square is attacked by a color iff some pseudo-legal move of that color's
// pieces either lands on it or captures whatever occupies it.
package attack

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/movegen"
)

// IsAttacked reports whether any piece owned by by threatens target: either
// by a pseudo-legal move landing on it, or by a non-displacement capture
// (coordinator, withdrawer, boxer, thief, cannon, long-leaper, chameleon)
// whose victim set includes target's current occupant.
func IsAttacked(b *board.Board, target board.Position, by board.Color) bool {
	victim, hasVictim := b.At(target)

	for _, p := range b.PiecesOf(by) {
		for _, m := range movegen.PseudoLegal(b, p, nil) {
			if m.To == target {
				return true
			}
			if hasVictim && containsID(m.Captures, victim.ID) {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether any royal piece of the color is currently
// attacked by the opponent. A color with no royal piece left on the board
// is never "in check" by this definition; end detection handles that case
// as a loss separately.
func InCheck(b *board.Board, c board.Color) bool {
	for _, royal := range b.RoyalPieces(c) {
		if IsAttacked(b, *royal.Position, c.Opponent()) {
			return true
		}
	}
	return false
}

// PathAttacked reports whether any square in squares is attacked by the
// given color — used by castling to forbid moving a royal piece through or
// into check.
func PathAttacked(b *board.Board, squares []board.Position, by board.Color) bool {
	for _, sq := range squares {
		if IsAttacked(b, sq, by) {
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
