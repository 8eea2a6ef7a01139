package movegen

import "github.com/liamiak1/hyper-fairy-chess/pkg/board"

// longLeapMoves generates chained jump-captures along each of the 8 lines:
// the mover hops over a run of one or more consecutive jumpable enemies it
// meets to the empty square immediately beyond that run, then may continue
// jumping further enemies along the same line from the new landing square.
// Two or more enemies with no empty square between them are jumped as a
// single run, landing just past the last one and capturing all of them. A
// non-jumpable occupant (Fool, Jester) or a friendly piece blocks the line
// entirely, including any jump already queued past it. If onlyTypeID is
// non-empty, at least one piece in the resulting chain must have that
// catalog ID (Chameleon's long-leaper-style mimicry).
func longLeapMoves(b *board.Board, p *board.PieceInstance, from board.Position, onlyTypeID string) []board.Move {
	var out []board.Move
	dirs := []board.Position{{File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 0}, {File: -1, Rank: 0},
		{File: 1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: 1}, {File: -1, Rank: -1}}
	for _, d := range dirs {
		out = append(out, longLeapChain(b, p, from, d, nil, onlyTypeID)...)
	}
	return out
}

func longLeapChain(b *board.Board, p *board.PieceInstance, landing board.Position, dir board.Position, captured []string, onlyTypeID string) []board.Move {
	var run []*board.PieceInstance
	cur := landing
	for {
		cur = cur.Add(dir.File, dir.Rank)
		if !b.Dimensions.InBounds(cur) {
			return nil
		}
		occ, ok := b.At(cur)
		if !ok {
			if len(run) == 0 {
				continue
			}
			break
		}
		if occ.Owner == p.Owner {
			return nil
		}
		jumped, ok := jumpable(b, cur, p.Owner)
		if !ok {
			return nil
		}
		run = append(run, jumped)
	}
	beyond := cur

	chain := append([]string{}, captured...)
	for _, j := range run {
		chain = append(chain, j.ID)
	}
	move := board.Move{PieceID: p.ID, From: *p.Position, To: beyond, Captures: append([]string{}, chain...)}

	var out []board.Move
	if containsType(b, chain, onlyTypeID) {
		out = append(out, move)
	}
	out = append(out, longLeapChain(b, p, beyond, dir, chain, onlyTypeID)...)
	return out
}

func containsType(b *board.Board, ids []string, onlyTypeID string) bool {
	if onlyTypeID == "" {
		return true
	}
	for _, id := range ids {
		if p, ok := b.Piece(id); ok && p.TypeID == onlyTypeID {
			return true
		}
	}
	return false
}
