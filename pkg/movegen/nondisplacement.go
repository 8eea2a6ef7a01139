package movegen

import "github.com/liamiak1/hyper-fairy-chess/pkg/board"

// anchorRoyal returns a color's king-slot royal piece if present, else any
// other royal piece of that color; coordinator- and thief-style captures
// anchor on it. Returns false if the color has no royal piece left at all.
func anchorRoyal(b *board.Board, c board.Color) (*board.PieceInstance, bool) {
	var fallback *board.PieceInstance
	for _, p := range b.RoyalPieces(c) {
		if p.Type().IsMandatory || p.Type().ReplacesKing {
			return p, true
		}
		if fallback == nil {
			fallback = p
		}
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}

// coordinatorCaptures returns enemy pieces standing on either of the two
// squares that share a file/rank with dest and with the mover's own royal
// piece. onlyTypeID, when non-empty, restricts victims to that catalog ID
// (used by Chameleon's coordinator-style mimicry).
func coordinatorCaptures(b *board.Board, mover *board.PieceInstance, dest board.Position, onlyTypeID string) []string {
	royal, ok := anchorRoyal(b, mover.Owner)
	if !ok {
		return nil
	}
	royalPos := *royal.Position
	candidates := []board.Position{
		{File: royalPos.File, Rank: dest.Rank},
		{File: dest.File, Rank: royalPos.Rank},
	}
	var out []string
	for _, sq := range candidates {
		if sq == dest {
			continue
		}
		occ, ok := capturable(b, sq, mover.Owner)
		if !ok {
			continue
		}
		if onlyTypeID != "" && occ.TypeID != onlyTypeID {
			continue
		}
		out = append(out, occ.ID)
	}
	return out
}

// boxerCaptures returns enemy pieces orthogonally adjacent to dest that are
// sandwiched against another friendly piece directly opposite.
func boxerCaptures(b *board.Board, mover *board.PieceInstance, dest board.Position, onlyTypeID string) []string {
	var out []string
	for _, v := range []board.Position{{File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 0}, {File: -1, Rank: 0}} {
		neighbor := dest.Add(v.File, v.Rank)
		if !b.Dimensions.InBounds(neighbor) {
			continue
		}
		occ, ok := capturable(b, neighbor, mover.Owner)
		if !ok {
			continue
		}
		if onlyTypeID != "" && occ.TypeID != onlyTypeID {
			continue
		}
		anvil := neighbor.Add(v.File, v.Rank)
		if !b.Dimensions.InBounds(anvil) {
			continue
		}
		friend, ok := b.At(anvil)
		if !ok || friend.Owner != mover.Owner || friend.ID == mover.ID {
			continue
		}
		out = append(out, occ.ID)
	}
	return out
}

// withdrawerCapture returns the single enemy, if any, standing immediately
// behind the mover along the line of travel — the square the withdrawer is
// pulling away from.
func withdrawerCapture(b *board.Board, mover *board.PieceInstance, from, dest board.Position, onlyTypeID string) (string, bool) {
	dx, dy := sign(dest.File-from.File), sign(dest.Rank-from.Rank)
	behind := from.Add(-dx, -dy)
	if !b.Dimensions.InBounds(behind) {
		return "", false
	}
	occ, ok := capturable(b, behind, mover.Owner)
	if !ok {
		return "", false
	}
	if onlyTypeID != "" && occ.TypeID != onlyTypeID {
		return "", false
	}
	return occ.ID, true
}

// thiefCapture returns the enemy one square beyond dest along the line of
// travel, stolen by landing short of it.
func thiefCapture(b *board.Board, mover *board.PieceInstance, from, dest board.Position, onlyTypeID string) (string, bool) {
	dx, dy := sign(dest.File-from.File), sign(dest.Rank-from.Rank)
	beyond := dest.Add(dx, dy)
	if !b.Dimensions.InBounds(beyond) {
		return "", false
	}
	occ, ok := capturable(b, beyond, mover.Owner)
	if !ok {
		return "", false
	}
	if onlyTypeID != "" && occ.TypeID != onlyTypeID {
		return "", false
	}
	return occ.ID, true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
