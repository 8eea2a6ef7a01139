package movegen

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// specialMoves dispatches a single tagged special behavior to its
// algorithm. forwardColor supplies the "forward" direction for pawn-shaped
// specials; callers pass the piece's own owner, except the Chameleon's
// mimicry path (chameleon.go), which passes the color of the enemy piece
// being imitated per the resolved Open Question on sign convention.
func specialMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType, tag catalog.Special, epTarget *board.Position, forwardColor board.Color) []board.Move {
	switch tag {
	case catalog.PawnForward:
		return pawnForwardMoves(b, p, from, forwardColor)
	case catalog.PawnCaptureDiagonal:
		return pawnCaptureDiagonalMoves(b, p, from, typ, forwardColor, epTarget)
	case catalog.ShogiPawn:
		return shogiPawnMoves(b, p, from, typ, forwardColor)
	case catalog.PeasantDiagonal:
		return peasantDiagonalMoves(b, p, from, forwardColor)
	case catalog.PeasantCaptureForward:
		return peasantCaptureForwardMoves(b, p, from, typ, forwardColor)
	case catalog.KingOneSquare:
		return kingOneSquareMoves(b, p, from, typ)
	case catalog.SwapAdjacent:
		return swapAdjacentMoves(b, p, from)
	case catalog.HeraldOrthogonal:
		return heraldOrthogonalMoves(b, p, from)
	case catalog.RegentConditional:
		return regentMoves(b, p, from, typ)
	case catalog.Bounce:
		return bounceMoves(b, p, from, typ)
	case catalog.LongLeapSpecial:
		return longLeapMoves(b, p, from, "")
	case catalog.ChameleonSpecial:
		return chameleonMoves(b, p, from)
	case catalog.Grasshopper:
		return grasshopperMoves(b, p, from, typ)
	case catalog.CannonMove:
		return cannonMoves(b, p, from, "")
	case catalog.Nightrider:
		return nightriderMoves(b, p, from, typ)
	default:
		return nil
	}
}

func pawnForwardMoves(b *board.Board, p *board.PieceInstance, from board.Position, forwardColor board.Color) []board.Move {
	var out []board.Move
	dir := forwardColor.ForwardRank()
	one := from.Add(0, dir)
	if !b.Dimensions.InBounds(one) || !b.IsEmpty(one) {
		return out
	}
	out = append(out, simple(p.ID, from, one))

	if p.HasMoved {
		return out
	}
	startBand := b.Dimensions.PawnRank(p.Owner)
	if from.Rank != startBand {
		return out
	}
	two := from.Add(0, 2*dir)
	if b.Dimensions.InBounds(two) && b.IsEmpty(two) {
		out = append(out, simple(p.ID, from, two))
	}
	return out
}

func pawnCaptureDiagonalMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType, forwardColor board.Color, epTarget *board.Position) []board.Move {
	var out []board.Move
	dir := forwardColor.ForwardRank()
	for _, df := range []int{-1, 1} {
		to := from.Add(df, dir)
		if !b.Dimensions.InBounds(to) {
			continue
		}
		if occ, ok := capturable(b, to, p.Owner); ok {
			out = append(out, capture(p.ID, from, to, occ.ID))
			continue
		}
		if epTarget != nil && to == *epTarget {
			victimPos := board.Position{File: to.File, Rank: from.Rank}
			if victim, ok := b.At(victimPos); ok && victim.Owner != p.Owner {
				out = append(out, board.Move{
					PieceID: p.ID, From: from, To: to,
					Captures: []string{victim.ID}, IsEnPassant: true, EnPassantCapture: victimPos,
				})
			}
		}
	}
	return out
}

func shogiPawnMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType, forwardColor board.Color) []board.Move {
	to := from.Add(0, forwardColor.ForwardRank())
	if !b.Dimensions.InBounds(to) {
		return nil
	}
	occ, ok := b.At(to)
	if !ok {
		return []board.Move{simple(p.ID, from, to)}
	}
	if occ.Owner == p.Owner {
		return nil
	}
	if cap, ok := capturable(b, to, p.Owner); ok {
		return []board.Move{capture(p.ID, from, to, cap.ID)}
	}
	return nil
}

func peasantDiagonalMoves(b *board.Board, p *board.PieceInstance, from board.Position, forwardColor board.Color) []board.Move {
	var out []board.Move
	dir := forwardColor.ForwardRank()
	for _, df := range []int{-1, 1} {
		one := from.Add(df, dir)
		if !b.Dimensions.InBounds(one) || !b.IsEmpty(one) {
			continue
		}
		out = append(out, simple(p.ID, from, one))

		if p.HasMoved {
			continue
		}
		startBand := b.Dimensions.PawnRank(p.Owner)
		if from.Rank != startBand {
			continue
		}
		two := from.Add(2*df, 2*dir)
		if b.Dimensions.InBounds(two) && b.IsEmpty(two) {
			out = append(out, simple(p.ID, from, two))
		}
	}
	return out
}

func peasantCaptureForwardMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType, forwardColor board.Color) []board.Move {
	to := from.Add(0, forwardColor.ForwardRank())
	if !b.Dimensions.InBounds(to) {
		return nil
	}
	if occ, ok := capturable(b, to, p.Owner); ok {
		return []board.Move{capture(p.ID, from, to, occ.ID)}
	}
	return nil
}

func kingOneSquareMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, v := range catalog.AllDirections.Vectors() {
		to := from.Add(v.DFile, v.DRank)
		if !b.Dimensions.InBounds(to) {
			continue
		}
		occ, ok := b.At(to)
		if !ok {
			out = append(out, simple(p.ID, from, to))
			continue
		}
		if occ.Owner == p.Owner {
			continue
		}
		if typ.IsDisplacementCapable() {
			if _, ok := capturable(b, to, p.Owner); ok {
				out = append(out, capture(p.ID, from, to, occ.ID))
			}
		}
	}
	return out
}

func swapAdjacentMoves(b *board.Board, p *board.PieceInstance, from board.Position) []board.Move {
	var out []board.Move
	for _, v := range catalog.AllDirections.Vectors() {
		to := from.Add(v.DFile, v.DRank)
		if !b.Dimensions.InBounds(to) {
			continue
		}
		occ, ok := b.At(to)
		if !ok || occ.Owner != p.Owner {
			continue
		}
		out = append(out, board.Move{PieceID: p.ID, From: from, To: to, IsSwap: true, SwapWithID: occ.ID})
	}
	return out
}

func heraldOrthogonalMoves(b *board.Board, p *board.PieceInstance, from board.Position) []board.Move {
	var out []board.Move
	for _, v := range catalog.Orthogonal.Vectors() {
		mid := from.Add(v.DFile, v.DRank)
		to := from.Add(2*v.DFile, 2*v.DRank)
		if !b.Dimensions.InBounds(to) || !b.Dimensions.InBounds(mid) {
			continue
		}
		if !b.IsEmpty(mid) {
			continue
		}
		if b.IsEmpty(to) {
			out = append(out, simple(p.ID, from, to))
		}
	}
	return out
}

func grasshopperMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, v := range catalog.AllDirections.Vectors() {
		_, hurdle, hurdlePos := rayDestinations(b, from, v, b.Dimensions)
		if hurdle == nil {
			continue
		}
		landing := hurdlePos.Add(v.DFile, v.DRank)
		if !b.Dimensions.InBounds(landing) {
			continue
		}
		occ, ok := b.At(landing)
		if !ok {
			out = append(out, simple(p.ID, from, landing))
			continue
		}
		if occ.Owner == p.Owner {
			continue
		}
		if typ.IsDisplacementCapable() {
			if _, ok := capturable(b, landing, p.Owner); ok {
				out = append(out, capture(p.ID, from, landing, occ.ID))
			}
		}
	}
	return out
}

func nightriderMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	knight := catalog.LeapOffset{DFile: 2, DRank: 1, Symmetric: true}
	for _, v := range knight.Expand() {
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
			if occ.Owner != p.Owner && typ.IsDisplacementCapable() {
				if _, ok := capturable(b, cur, p.Owner); ok {
					out = append(out, capture(p.ID, from, cur, occ.ID))
				}
			}
			break
		}
	}
	return out
}

func regentMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	if IsRegentUnrestricted(b, p) {
		var out []board.Move
		for _, v := range catalog.AllDirections.Vectors() {
			out = append(out, rayMoves(b, p, from, v, typ)...)
		}
		return out
	}
	return heraldLikeAllDirections(b, p, from, typ)
}

// IsRegentUnrestricted reports whether a Regent behaves as an unrestricted
// queen: the owner drafted multiple royalty-tier pieces and no other
// royalty-tier piece of that color is currently on the board (see
// DESIGN.md Open Question 1).
func IsRegentUnrestricted(b *board.Board, p *board.PieceInstance) bool {
	if !b.HadMultipleRoyals(p.Owner) {
		return false
	}
	for _, other := range b.PiecesOf(p.Owner) {
		if other.ID == p.ID {
			continue
		}
		if other.Type().Tier == catalog.Royalty {
			return false
		}
	}
	return true
}

func heraldLikeAllDirections(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, v := range catalog.AllDirections.Vectors() {
		mid := from.Add(v.DFile, v.DRank)
		to := from.Add(2*v.DFile, 2*v.DRank)
		if !b.Dimensions.InBounds(to) || !b.Dimensions.InBounds(mid) || !b.IsEmpty(mid) {
			continue
		}
		occ, ok := b.At(to)
		if !ok {
			out = append(out, simple(p.ID, from, to))
			continue
		}
		if occ.Owner == p.Owner {
			continue
		}
		if typ.IsDisplacementCapable() {
			if _, ok := capturable(b, to, p.Owner); ok {
				out = append(out, capture(p.ID, from, to, occ.ID))
			}
		}
	}
	return out
}

const bounceStepLimit = 200

func bounceMoves(b *board.Board, p *board.PieceInstance, from board.Position, typ catalog.PieceType) []board.Move {
	var out []board.Move
	for _, start := range catalog.Diagonal.Vectors() {
		out = append(out, bounceTrajectory(b, p, from, start, typ)...)
	}
	return out
}

func bounceTrajectory(b *board.Board, p *board.PieceInstance, from board.Position, dir catalog.Vector, typ catalog.PieceType) []board.Move {
	var out []board.Move
	visited := map[board.Position]bool{from: true}
	cur := from
	dx, dy := dir.DFile, dir.DRank

	for steps := 0; steps < bounceStepLimit; steps++ {
		next := cur.Add(dx, dy)
		if next.File < 0 || next.File >= b.Dimensions.Files {
			dx = -dx
		}
		if next.Rank < 0 || next.Rank >= b.Dimensions.Ranks {
			dy = -dy
		}
		next = cur.Add(dx, dy)
		if !b.Dimensions.InBounds(next) {
			break
		}
		if visited[next] {
			break
		}

		occ, ok := b.At(next)
		if !ok {
			out = append(out, simple(p.ID, from, next))
			visited[next] = true
			cur = next
			continue
		}
		if occ.Owner != p.Owner && typ.IsDisplacementCapable() {
			if _, ok := capturable(b, next, p.Owner); ok {
				out = append(out, capture(p.ID, from, next, occ.ID))
			}
		}
		break
	}
	return out
}
