package rules

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/attack"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
)

// CastlingRoyal returns the color's king-slot royal piece (the mandatory
// King, or a PhantomKing that replaces it) — the only piece that may
// castle, even if the color also fielded a Regent.
func CastlingRoyal(b *board.Board, c board.Color) (*board.PieceInstance, bool) {
	for _, p := range b.RoyalPieces(c) {
		if p.Type().IsMandatory || p.Type().ReplacesKing {
			return p, true
		}
	}
	return nil, false
}

// CastlingMoves returns every castling move available to p, if p is the
// color's castling-eligible royal. It pairs the royal with every
// unmoved, castle-capable friendly piece sharing its home rank, provided
// the squares between them are empty, the royal is not currently in
// check, and neither the squares it passes through nor its destination
// are attacked.
func CastlingMoves(b *board.Board, p *board.PieceInstance) []board.Move {
	typ := p.Type()
	if !typ.CanCastle || p.HasMoved || !p.OnBoard() {
		return nil
	}
	royal, ok := CastlingRoyal(b, p.Owner)
	if !ok || royal.ID != p.ID {
		return nil
	}
	if attack.InCheck(b, p.Owner) {
		return nil
	}

	home := *p.Position
	var out []board.Move
	for _, partner := range b.PiecesOf(p.Owner) {
		if partner.ID == p.ID || partner.HasMoved || !partner.OnBoard() {
			continue
		}
		if !partner.Type().CanCastle || partner.Position.Rank != home.Rank {
			continue
		}
		if m, ok := castlingMoveWith(b, p, partner); ok {
			out = append(out, m)
		}
	}
	return out
}

func castlingMoveWith(b *board.Board, king, partner *board.PieceInstance) (board.Move, bool) {
	from := *king.Position
	partnerFrom := *partner.Position
	dir := sign(partnerFrom.File - from.File)
	if dir == 0 {
		return board.Move{}, false
	}

	for f := from.File + dir; f != partnerFrom.File; f += dir {
		if !b.IsEmpty(board.Position{File: f, Rank: from.Rank}) {
			return board.Move{}, false
		}
	}

	to := from.Add(2*dir, 0)
	partnerTo := to.Add(-dir, 0)
	if !b.Dimensions.InBounds(to) || !b.Dimensions.InBounds(partnerTo) {
		return board.Move{}, false
	}
	if to != partnerFrom && !b.IsEmpty(to) {
		return board.Move{}, false
	}
	if partnerTo != from && partnerTo != partnerFrom && !b.IsEmpty(partnerTo) {
		return board.Move{}, false
	}

	path := []board.Position{from.Add(dir, 0), to}
	if attack.PathAttacked(b, path, king.Owner.Opponent()) {
		return board.Move{}, false
	}

	return board.Move{
		PieceID: king.ID, From: from, To: to,
		IsCastle: true, CastlePartnerID: partner.ID,
		CastlePartnerFrom: partnerFrom, CastlePartnerTo: partnerTo,
	}, true
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
