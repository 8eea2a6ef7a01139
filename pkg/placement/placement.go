// Package placement validates and applies the alternating piece-placement
// phase: each side's drafted pool of off-board pieces is placed, one at a
// time, onto zone-restricted squares, with the Herald's back-rank/pawn-rank
// snap-and-swap exception.
package placement

import (
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
)

// PlacementState tracks the two pools of not-yet-placed pieces and whose
// turn it is to place next.
type PlacementState struct {
	Pools         [2][]*board.PieceInstance
	CurrentPlacer board.Color
}

// NewPlacementState expands both validated drafts into off-board piece
// instances, ready for alternating placement starting with White.
func NewPlacementState(white, black *draft.PlayerDraft) *PlacementState {
	ps := &PlacementState{CurrentPlacer: board.White}
	ps.Pools[board.White] = instantiate(board.White, white)
	ps.Pools[board.Black] = instantiate(board.Black, black)
	return ps
}

func instantiate(c board.Color, d *draft.PlayerDraft) []*board.PieceInstance {
	var out []*board.PieceInstance
	n := 0
	for _, s := range d.Selections {
		for i := 0; i < s.Count; i++ {
			n++
			out = append(out, &board.PieceInstance{
				ID:     fmt.Sprintf("%v-%s-%d", c, s.PieceTypeID, n),
				TypeID: s.PieceTypeID,
				Owner:  c,
			})
		}
	}
	return out
}

// IsComplete reports whether both pools are empty.
func (ps *PlacementState) IsComplete() bool {
	return len(ps.Pools[board.White]) == 0 && len(ps.Pools[board.Black]) == 0
}

// Result is the outcome of one placement: the square actually used (which
// may differ from the requested one for a Herald snap) and, if a Herald
// snap-and-swap was triggered, the displaced pawn's ID.
type Result struct {
	ActualPosition board.Position
	SwappedPawnID  string
	HasSwap        bool
}

// Place validates and applies a placement of pieceID (which must belong to
// color's pool and color must be CurrentPlacer) at pos, returning the
// actual square used (which may differ from pos for a Herald snap) and
// advancing CurrentPlacer per the alternation rule.
func Place(ps *PlacementState, b *board.Board, color board.Color, pieceID string, pos board.Position) (Result, error) {
	if color != ps.CurrentPlacer {
		return Result{}, fmt.Errorf("placement: not %v's turn to place", color)
	}
	pool := ps.Pools[color]
	idx := -1
	for i, p := range pool {
		if p.ID == pieceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}, fmt.Errorf("placement: %q is not in %v's pool", pieceID, color)
	}
	piece := pool[idx]

	if !b.Dimensions.InBounds(pos) {
		return Result{}, fmt.Errorf("placement: %v is out of bounds", pos)
	}

	result, err := resolveZone(b, color, piece.Type(), pos)
	if err != nil {
		return Result{}, err
	}

	piece.Position = nil
	ps.Pools[color] = append(pool[:idx], pool[idx+1:]...)
	b.AddPiece(piece)
	b.MoveTo(piece.ID, result.ActualPosition)

	ps.advance(color)
	return result, nil
}

func (ps *PlacementState) advance(justPlaced board.Color) {
	other := justPlaced.Opponent()
	if len(ps.Pools[other]) > 0 {
		ps.CurrentPlacer = other
		return
	}
	ps.CurrentPlacer = justPlaced
}

func centerFiles(dims board.Dimensions) (lo, hi int) {
	return dims.Files/2 - 1, dims.Files / 2
}

func isHeraldFile(dims board.Dimensions, file int) bool {
	return file == 0 || file == dims.Files-1
}

// resolveZone applies the zone rules (and Herald's snap/swap exception) for
// placing a piece of the given type at pos, returning the square it
// actually ends up on and any pawn it displaced.
func resolveZone(b *board.Board, color board.Color, typ catalog.PieceType, pos board.Position) (Result, error) {
	dims := b.Dimensions
	homeRank := dims.HomeRank(color)
	pawnRank := dims.PawnRank(color)

	if typ.ID == catalog.Herald {
		if !isHeraldFile(dims, pos.File) {
			return Result{}, fmt.Errorf("placement: herald may only use the edge files")
		}
		switch pos.Rank {
		case pawnRank:
			if !b.IsEmpty(pos) {
				return Result{}, fmt.Errorf("placement: %v is occupied", pos)
			}
			return Result{ActualPosition: pos}, nil
		case homeRank:
			snapped := board.Position{File: pos.File, Rank: pawnRank}
			if occ, ok := b.At(snapped); ok {
				if occ.Owner != color || occ.Type().Tier != catalog.Pawn {
					return Result{}, fmt.Errorf("placement: %v is occupied", snapped)
				}
				if !b.IsEmpty(pos) {
					return Result{}, fmt.Errorf("placement: %v is occupied", pos)
				}
				b.MoveTo(occ.ID, pos)
				return Result{ActualPosition: snapped, SwappedPawnID: occ.ID, HasSwap: true}, nil
			}
			return Result{ActualPosition: snapped}, nil
		default:
			return Result{}, fmt.Errorf("placement: herald must target the back rank or pawn rank")
		}
	}

	if typ.Tier == catalog.Pawn && pos.Rank == homeRank {
		pawnRankSq := board.Position{File: pos.File, Rank: pawnRank}
		occ, ok := b.At(pawnRankSq)
		if !ok || occ.Owner != color || occ.TypeID != catalog.Herald {
			return Result{}, fmt.Errorf("placement: pawns may not target the back rank")
		}
		if !b.IsEmpty(pos) {
			return Result{}, fmt.Errorf("placement: %v is occupied", pos)
		}
		return Result{ActualPosition: pos}, nil
	}

	if !b.IsEmpty(pos) {
		return Result{}, fmt.Errorf("placement: %v is occupied", pos)
	}

	switch pos.Rank {
	case pawnRank:
		if typ.Tier != catalog.Pawn {
			return Result{}, fmt.Errorf("placement: only pawns may target the pawn rank")
		}
		return Result{ActualPosition: pos}, nil
	case homeRank:
		lo, hi := centerFiles(dims)
		isCenter := pos.File == lo || pos.File == hi
		if isCenter && typ.Tier != catalog.Royalty {
			return Result{}, fmt.Errorf("placement: only royalty may target the center files")
		}
		if !isCenter && typ.Tier != catalog.Piece {
			return Result{}, fmt.Errorf("placement: only pieces may target the outer back-rank files")
		}
		return Result{ActualPosition: pos}, nil
	default:
		return Result{}, fmt.Errorf("placement: %v is not a valid placement zone", pos)
	}
}

// CompletePlacement freezes hadMultipleRoyals for both colors, set iff the
// color drafted two or more royalty-tier pieces. Called exactly once, at
// the placement-to-play transition.
func CompletePlacement(b *board.Board, whiteRoyaltyDrafted, blackRoyaltyDrafted int) {
	b.SetHadMultipleRoyals(board.White, whiteRoyaltyDrafted >= 2)
	b.SetHadMultipleRoyals(board.Black, blackRoyaltyDrafted >= 2)
}
