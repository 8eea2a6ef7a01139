package movegen

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// slideMoves walks each direction vector of typ.Movement.Slides until it
// runs off-board or hits an occupied square: empty squares are included,
// a friendly piece stops the ray before it, and an enemy piece is included
// as a capture iff the piece is displacement-capable and the enemy is
// capturable — otherwise the ray simply stops there too.
func slideMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, v := range typ.Movement.Slides.Vectors() {
		out = append(out, rayMoves(b, p, from, v, typ)...)
	}
	return out
}

// rayMoves walks one direction vector from `from`, stopping at the board
// edge or the first occupied square, per the displacement-capture rule.
func rayMoves(b *board.Board, p *board.PieceInstance, from board.Position, v catalog.Vector, typ catalog.PieceType) []board.Move {
	var out []board.Move
	cur := from
	for {
		cur = cur.Add(v.DFile, v.DRank)
		if !b.Dimensions.InBounds(cur) {
			break
		}
		occ, ok := b.At(cur)
		if !ok {
			out = append(out, simple(p.ID, from, cur))
			continue
		}
		if occ.Owner == p.Owner {
			break
		}
		if typ.IsDisplacementCapable() {
			if _, ok := capturable(b, cur, p.Owner); ok {
				out = append(out, capture(p.ID, from, cur, occ.ID))
			}
		}
		break
	}
	return out
}

// rayDestinations is the non-capturing variant used by the chameleon's
// plain movement and the grasshopper's hurdle search: it returns every empty square reached
// before the ray is blocked, plus the blocking occupant (if any).
func rayDestinations(b *board.Board, from board.Position, v catalog.Vector, dims board.Dimensions) (empties []board.Position, blocker *board.PieceInstance, blockerPos board.Position) {
	cur := from
	for {
		cur = cur.Add(v.DFile, v.DRank)
		if !dims.InBounds(cur) {
			return
		}
		if occ, ok := b.At(cur); ok {
			return empties, occ, cur
		}
		empties = append(empties, cur)
	}
}
