package placement_test

import (
	"testing"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
	"github.com/liamiak1/hyper-fairy-chess/pkg/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft(budget int) *draft.PlayerDraft {
	d := draft.NewPlayerDraft(budget)
	d.Add(catalog.Queen, 1)
	d.Add(catalog.Rook, 2)
	d.Add(catalog.Bishop, 2)
	d.Add(catalog.Knight, 2)
	d.Add(catalog.PawnID, 8)
	return d
}

func TestPlacementAlternatesTurns(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	ps := placement.NewPlacementState(validDraft(500), validDraft(500))
	require.Equal(t, board.White, ps.CurrentPlacer)

	whitePiece := ps.Pools[board.White][0]
	_, err := placement.Place(ps, b, board.White, whitePiece.ID, board.Position{File: 3, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, board.Black, ps.CurrentPlacer, "placement alternates to the other color after a successful placement")
}

func TestPlaceRejectsOutOfTurn(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	ps := placement.NewPlacementState(validDraft(500), validDraft(500))

	blackPiece := ps.Pools[board.Black][0]
	_, err := placement.Place(ps, b, board.Black, blackPiece.ID, board.Position{File: 0, Rank: 6})
	assert.Error(t, err)
}

func TestIsCompleteOnceBothPoolsExhausted(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	white := draft.NewPlayerDraft(100)
	white.Add(catalog.PawnID, 1)
	black := draft.NewPlayerDraft(100)
	black.Add(catalog.PawnID, 1)
	ps := placement.NewPlacementState(white, black)

	assert.False(t, ps.IsComplete())

	for !ps.IsComplete() {
		color := ps.CurrentPlacer
		piece := ps.Pools[color][0]
		rank := b.Dimensions.PawnRank(color)
		if piece.TypeID == catalog.King {
			rank = b.Dimensions.HomeRank(color)
		}
		_, err := placement.Place(ps, b, color, piece.ID, board.Position{File: 3, Rank: rank})
		require.NoError(t, err)
	}
	assert.True(t, ps.IsComplete())
}

func TestHeraldSnapFromHomeRankToPawnRankSwapsPawn(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	pawn := &board.PieceInstance{ID: "wp-existing", TypeID: catalog.PawnID, Owner: board.White}
	b.AddPiece(pawn)
	b.MoveTo(pawn.ID, board.Position{File: 0, Rank: 1})

	white := draft.NewPlayerDraft(500)
	white.Add(catalog.Herald, 1)
	black := validDraft(500)
	ps := placement.NewPlacementState(white, black)

	var heraldID string
	for _, p := range ps.Pools[board.White] {
		if p.TypeID == catalog.Herald {
			heraldID = p.ID
		}
	}
	require.NotEmpty(t, heraldID)

	result, err := placement.Place(ps, b, board.White, heraldID, board.Position{File: 0, Rank: 0})
	require.NoError(t, err)
	assert.True(t, result.HasSwap)
	assert.Equal(t, "wp-existing", result.SwappedPawnID)
	assert.Equal(t, board.Position{File: 0, Rank: 1}, result.ActualPosition, "the herald snaps onto the pawn-rank square")

	occ, ok := b.At(board.Position{File: 0, Rank: 0})
	require.True(t, ok)
	assert.Equal(t, "wp-existing", occ.ID, "the displaced pawn moves onto the herald's requested back-rank square")

	heraldOcc, ok := b.At(board.Position{File: 0, Rank: 1})
	require.True(t, ok)
	assert.Equal(t, heraldID, heraldOcc.ID)
}

func TestHeraldDirectPawnRankPlacementNoSwap(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	white := draft.NewPlayerDraft(500)
	white.Add(catalog.Herald, 1)
	black := validDraft(500)
	ps := placement.NewPlacementState(white, black)

	var heraldID string
	for _, p := range ps.Pools[board.White] {
		if p.TypeID == catalog.Herald {
			heraldID = p.ID
		}
	}
	require.NotEmpty(t, heraldID)

	result, err := placement.Place(ps, b, board.White, heraldID, board.Position{File: 7, Rank: 1})
	require.NoError(t, err)
	assert.False(t, result.HasSwap)
	assert.Equal(t, board.Position{File: 7, Rank: 1}, result.ActualPosition)
}

func TestPlaceRejectsZoneViolationForPieceOnCenterFile(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	white := draft.NewPlayerDraft(500)
	white.Add(catalog.Rook, 1)
	black := validDraft(500)
	ps := placement.NewPlacementState(white, black)

	var rookID string
	for _, p := range ps.Pools[board.White] {
		if p.TypeID == catalog.Rook {
			rookID = p.ID
		}
	}
	require.NotEmpty(t, rookID)

	_, err := placement.Place(ps, b, board.White, rookID, board.Position{File: 3, Rank: 0})
	assert.Error(t, err, "only royalty may occupy the center back-rank files")
}

func TestPlaceRejectsPawnOnBackRankWithoutHeraldBelow(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	white := draft.NewPlayerDraft(500)
	white.Add(catalog.PawnID, 1)
	black := validDraft(500)
	ps := placement.NewPlacementState(white, black)

	var pawnID string
	for _, p := range ps.Pools[board.White] {
		if p.TypeID == catalog.PawnID {
			pawnID = p.ID
		}
	}
	require.NotEmpty(t, pawnID)

	_, err := placement.Place(ps, b, board.White, pawnID, board.Position{File: 2, Rank: 0})
	assert.Error(t, err, "a pawn may only reach the back rank behind a herald")
}

func TestCompletePlacementFreezesRoyaltyHistory(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	placement.CompletePlacement(b, 2, 1)
	assert.True(t, b.HadMultipleRoyals(board.White))
	assert.False(t, b.HadMultipleRoyals(board.Black))
}
