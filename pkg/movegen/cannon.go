package movegen

import "github.com/liamiak1/hyper-fairy-chess/pkg/board"

// cannonMoves generates Xiangqi-cannon movement along the 4 orthogonal
// lines: empty squares up to the first obstruction are plain moves; beyond
// exactly one screening piece (friend or enemy) the first piece encountered
// is captured, landing directly on it, if it is a capturable enemy; either
// way the line ends there. If onlyTypeID is set,
// only a capture of that catalog ID is produced (Chameleon's cannon-style
// mimicry).
func cannonMoves(b *board.Board, p *board.PieceInstance, from board.Position, onlyTypeID string) []board.Move {
	var out []board.Move
	for _, v := range []board.Position{{File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 0}, {File: -1, Rank: 0}} {
		cur := from
		var screen *board.PieceInstance
		for {
			cur = cur.Add(v.File, v.Rank)
			if !b.Dimensions.InBounds(cur) {
				break
			}
			occ, ok := b.At(cur)
			if screen == nil {
				if !ok {
					if onlyTypeID == "" {
						out = append(out, simple(p.ID, from, cur))
					}
					continue
				}
				screen = occ
				continue
			}
			if !ok {
				continue
			}
			if occ.Owner != p.Owner {
				if cap, ok := capturable(b, cur, p.Owner); ok {
					if onlyTypeID == "" || cap.TypeID == onlyTypeID {
						out = append(out, capture(p.ID, from, cur, cap.ID))
					}
				}
			}
			break
		}
	}
	return out
}
