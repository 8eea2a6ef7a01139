// Package rules filters movegen's pseudo-legal candidates down to moves
// that do not leave the mover's own royal in check, and implements the
// special move kinds that need board-wide context rather than a single
// piece's movement pattern: castling, en passant, promotion and the
// Herald freeze aura.
package rules

import "github.com/liamiak1/hyper-fairy-chess/pkg/board"

// Apply mutates b to reflect m: removing every captured piece, relocating
// the mover (and its castle or swap partner), and applying a promotion.
// Used both by the legality filter (on a throwaway clone) and by the game
// executor (on the live board) — the two share this single code path so a
// move can never be "legal" under one set of capture/relocation semantics
// and "applied" under another.
func Apply(b *board.Board, m board.Move) {
	for _, id := range m.Captures {
		b.RemoveFromBoard(id)
	}

	switch {
	case m.IsSwap:
		b.RemoveFromBoard(m.PieceID)
		b.RemoveFromBoard(m.SwapWithID)
		b.MoveTo(m.SwapWithID, m.From)
		b.MoveTo(m.PieceID, m.To)
	case m.IsCastle:
		b.MoveTo(m.PieceID, m.To)
		b.MoveTo(m.CastlePartnerID, m.CastlePartnerTo)
	default:
		b.MoveTo(m.PieceID, m.To)
	}

	if m.Promotion != "" {
		b.MustPiece(m.PieceID).TypeID = m.Promotion
	}
}
