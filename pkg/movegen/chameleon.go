package movegen

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// chameleonMoves generates the Chameleon's composite pattern: a queen's
// reach for plain (non-capturing) movement, plus a capture of any reachable
// enemy using that enemy's own movement and capture method against it.
func chameleonMoves(b *board.Board, p *board.PieceInstance, from board.Position) []board.Move {
	var out []board.Move
	for _, v := range catalog.AllDirections.Vectors() {
		empties, _, _ := rayDestinations(b, from, v, b.Dimensions)
		for _, sq := range empties {
			out = append(out, simple(p.ID, from, sq))
		}
	}

	for _, enemy := range b.PiecesOf(p.Owner.Opponent()) {
		if !enemy.Type().CanBeCaptured {
			continue
		}
		out = append(out, chameleonCapturesOf(b, p, from, enemy)...)
	}
	return out
}

// chameleonCapturesOf returns the moves by which p could capture enemy by
// mimicking enemy's own movement and capture method.
func chameleonCapturesOf(b *board.Board, p *board.PieceInstance, from board.Position, enemy *board.PieceInstance) []board.Move {
	enemyType := enemy.Type()
	target := *enemy.Position

	switch enemyType.CaptureType {
	case catalog.Standard:
		virtual := catalog.PieceType{Movement: enemyType.Movement, CaptureType: catalog.Standard}
		if reaches(b, p, from, virtual, target, enemy.Owner) {
			return []board.Move{capture(p.ID, from, target, enemy.ID)}
		}
	case catalog.Coordinator:
		for _, v := range catalog.AllDirections.Vectors() {
			for _, sq := range ray(b, from, v) {
				if victims := coordinatorCaptures(b, p, sq, catalog.CoordinatorID); containsID(victims, enemy.ID) {
					return []board.Move{{PieceID: p.ID, From: from, To: sq, Captures: []string{enemy.ID}}}
				}
			}
		}
	case catalog.Withdrawal:
		for _, v := range catalog.AllDirections.Vectors() {
			for _, sq := range ray(b, from, v) {
				if id, ok := withdrawerCapture(b, p, from, sq, catalog.Withdrawer); ok && id == enemy.ID {
					return []board.Move{{PieceID: p.ID, From: from, To: sq, Captures: []string{enemy.ID}}}
				}
			}
		}
	case catalog.Boxer:
		for _, v := range catalog.AllDirections.Vectors() {
			to := from.Add(v.DFile, v.DRank)
			if !b.Dimensions.InBounds(to) || !b.IsEmpty(to) {
				continue
			}
			if victims := boxerCaptures(b, p, to, catalog.BoxerID); containsID(victims, enemy.ID) {
				return []board.Move{{PieceID: p.ID, From: from, To: to, Captures: []string{enemy.ID}}}
			}
		}
	case catalog.Thief:
		for _, v := range catalog.AllDirections.Vectors() {
			for _, sq := range ray(b, from, v) {
				if id, ok := thiefCapture(b, p, from, sq, catalog.ThiefID); ok && id == enemy.ID {
					return []board.Move{{PieceID: p.ID, From: from, To: sq, Captures: []string{enemy.ID}}}
				}
			}
		}
	case catalog.Cannon:
		for _, m := range cannonMoves(b, p, from, enemy.TypeID) {
			if containsID(m.Captures, enemy.ID) {
				return []board.Move{m}
			}
		}
	case catalog.LongLeap:
		for _, m := range longLeapMoves(b, p, from, enemy.TypeID) {
			if containsID(m.Captures, enemy.ID) {
				return []board.Move{m}
			}
		}
	}
	return nil
}

// reaches reports whether a piece with the given virtual movement pattern,
// owned by owner, standing at from, could legally reach target (either by
// landing on an empty square that equals target, or by a displacement
// capture of it). forwardColor supplies the direction for any pawn-shaped
// special in the virtual movement, per the resolved sign convention for
// mimicked pawn captures.
func reaches(b *board.Board, p *board.PieceInstance, from board.Position, virtual catalog.PieceType, target board.Position, forwardColor board.Color) bool {
	mover := &board.PieceInstance{ID: p.ID, TypeID: p.TypeID, Owner: p.Owner}
	pos := from
	mover.Position = &pos

	var moves []board.Move
	moves = append(moves, slideMoves(b, mover, from, virtual)...)
	moves = append(moves, leapMoves(b, mover, from, virtual)...)
	for _, s := range virtual.Movement.Specials {
		moves = append(moves, specialMoves(b, mover, from, virtual, s, nil, forwardColor)...)
	}
	for _, m := range moves {
		if m.To == target {
			return true
		}
	}
	return false
}

func ray(b *board.Board, from board.Position, v catalog.Vector) []board.Position {
	empties, _, _ := rayDestinations(b, from, v, b.Dimensions)
	return empties
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
