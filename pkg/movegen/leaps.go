package movegen

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// leapMoves expands each configured leap offset and includes on-board
// destinations: empty squares always, enemy squares only if displacement-
// capable and the enemy is capturable, friendly squares never.
func leapMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, leap := range typ.Movement.Leaps {
		for _, v := range leap.Expand() {
			to := from.Add(v.DFile, v.DRank)
			if !b.Dimensions.InBounds(to) {
				continue
			}
			occ, ok := b.At(to)
			if !ok {
				out = append(out, simple(p.ID, from, to))
				continue
			}
			if occ.Owner == p.Owner {
				continue
			}
			if typ.IsDisplacementCapable() {
				if _, ok := capturable(b, to, p.Owner); ok {
					out = append(out, capture(p.ID, from, to, occ.ID))
				}
			}
		}
	}
	return out
}
