// Package movegen produces pseudo-legal destinations for a piece on a
// board: the union of its slide, leap and tagged-special channels, ignoring
// whether the resulting position leaves the mover's own royal in check.
package movegen

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// PseudoLegal returns every pseudo-legal move for the piece on the board,
// given the current en-passant target (nil if none). Returns nil if the
// piece is frozen, off-board, or not present on b.
func PseudoLegal(b *board.Board, p *board.PieceInstance, epTarget *board.Position) []board.Move {
	if _, ok := b.Piece(p.ID); !ok || p.Position == nil || p.IsFrozen {
		return nil
	}
	typ := p.Type()
	from := *p.Position

	var moves []board.Move
	moves = append(moves, slideMoves(b, p, from, typ)...)
	moves = append(moves, leapMoves(b, p, from, typ)...)
	for _, s := range typ.Movement.Specials {
		moves = append(moves, specialMoves(b, p, from, typ, s, epTarget, p.Owner)...)
	}
	attachNonDisplacementCaptures(b, p, from, typ, moves)
	return moves
}

// attachNonDisplacementCaptures fills in the Captures field of every move
// that lands on an empty square for a piece whose capture method is not
// plain displacement: the move itself never takes the destination, but may
// take a victim elsewhere on the board as a side effect of making it.
func attachNonDisplacementCaptures(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType, moves []board.Move) {
	for i := range moves {
		if len(moves[i].Captures) > 0 || moves[i].IsSwap || moves[i].IsCastle {
			continue
		}
		switch typ.CaptureType {
		case catalog.Coordinator:
			moves[i].Captures = coordinatorCaptures(b, p, moves[i].To, "")
		case catalog.Boxer:
			moves[i].Captures = boxerCaptures(b, p, moves[i].To, "")
		case catalog.Withdrawal:
			if id, ok := withdrawerCapture(b, p, from, moves[i].To, ""); ok {
				moves[i].Captures = []string{id}
			}
		case catalog.Thief:
			if id, ok := thiefCapture(b, p, from, moves[i].To, ""); ok {
				moves[i].Captures = []string{id}
			}
		}
	}
}

// capturable reports whether the occupant at pos (if any) is a capturable
// enemy of c.
func capturable(b *board.Board, pos board.Position, c board.Color) (*board.PieceInstance, bool) {
	occ, ok := b.At(pos)
	if !ok || occ.Owner == c {
		return nil, false
	}
	if !occ.Type().CanBeCaptured {
		return nil, false
	}
	return occ, true
}

// jumpable reports whether the occupant at pos (if any) may be jumped over
// by a long-leap style move (Fool/Jester block the line instead).
func jumpable(b *board.Board, pos board.Position, c board.Color) (*board.PieceInstance, bool) {
	occ, ok := b.At(pos)
	if !ok || occ.Owner == c {
		return nil, false
	}
	if !occ.Type().CanBeJumpedOver {
		return nil, false
	}
	return occ, true
}

func simple(pieceID string, from, to board.Position) board.Move {
	return board.Move{PieceID: pieceID, From: from, To: to}
}

func capture(pieceID string, from, to board.Position, capturedID string) board.Move {
	return board.Move{PieceID: pieceID, From: from, To: to, Captures: []string{capturedID}}
}
