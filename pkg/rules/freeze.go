package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

var adjacency = []board.Position{
	{File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 0}, {File: -1, Rank: 0},
	{File: 1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: 1}, {File: -1, Rank: -1},
}

// RecomputeFreeze resets and reapplies every freeze aura on the board. A
// piece is frozen iff some Chebyshev-adjacent piece is (i) a Herald
// (freezes any color, friend or foe), (ii) any other freezer of the
// opposing color, or (iii) a Chameleon and the subject is itself an
// opposing freezer. Called after every move, since the pieces generating
// and receiving freeze can move, die or be placed between calls.
func RecomputeFreeze(b *board.Board) {
	for _, p := range b.Pieces() {
		p.IsFrozen = false
	}

	for _, subject := range b.Pieces() {
		if !subject.OnBoard() {
			continue
		}
		for _, v := range adjacency {
			sq := subject.Position.Add(v.File, v.Rank)
			if !b.Dimensions.InBounds(sq) {
				continue
			}
			other, ok := b.At(sq)
			if !ok {
				continue
			}
			if freezes(other, subject) {
				subject.IsFrozen = true
				break
			}
		}
	}
}

// freezes reports whether other imposes a freeze on subject, given they are
// adjacent.
func freezes(other, subject *board.PieceInstance) bool {
	otherType := other.Type()
	if otherType.ID == catalog.Herald {
		return true
	}
	if otherType.CanFreeze && other.Owner != subject.Owner {
		return true
	}
	if otherType.ID == catalog.ChameleonID && subject.Type().CanFreeze && subject.Owner != other.Owner {
		return true
	}
	return false
}
