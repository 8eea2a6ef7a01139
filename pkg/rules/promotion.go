package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// ExpandPromotions replaces every move that lands a pawn-like piece (or a
// Fool) on the opponent's home rank with one copy per promotion candidate.
// Promotion is mandatory: a reaching move is never left unpromoted. The
// Fool is the sole exception to both the eligible-piece-types rule and the
// pawn-like movement test — it always promotes to a Jester. Every other
// pawn-like piece promotes to whichever on-board piece types are
// promotion-eligible, falling back to {Queen, Rook, Bishop, Knight} when
// none are on the board.
func ExpandPromotions(b *board.Board, p *board.PieceInstance, moves []board.Move) []board.Move {
	isFool := p.TypeID == catalog.Fool
	if !isFool && !p.Type().Movement.IsPawnLike() {
		return moves
	}

	farRank := b.Dimensions.HomeRank(p.Owner.Opponent())

	var candidates []catalog.PieceType
	if isFool {
		candidates = []catalog.PieceType{catalog.MustBy(catalog.Jester)}
	} else {
		candidates = promotionCandidates(b, p.Owner)
		if len(candidates) == 0 {
			candidates = fallbackPromotionCandidates()
		}
	}

	var out []board.Move
	for _, m := range moves {
		if m.To.Rank != farRank {
			out = append(out, m)
			continue
		}
		for _, c := range candidates {
			cp := m
			cp.Promotion = c.ID
			out = append(out, cp)
		}
	}
	return out
}

func promotionCandidates(b *board.Board, c board.Color) []catalog.PieceType {
	var ids []string
	for _, p := range b.PiecesOf(c) {
		ids = append(ids, p.TypeID)
	}
	return catalog.PromotionCandidates(ids)
}

// fallbackPromotionCandidates is the spec-mandated default promotion set
// when no promotion-eligible piece type is present on the board.
func fallbackPromotionCandidates() []catalog.PieceType {
	ids := []string{catalog.Queen, catalog.Rook, catalog.Bishop, catalog.Knight}
	out := make([]catalog.PieceType, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.MustBy(id))
	}
	return out
}
