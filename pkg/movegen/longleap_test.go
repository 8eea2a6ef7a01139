package movegen_test

import (
	"testing"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLongLeaperChainCapturesAdjacentEnemiesInOneJump covers spec.md §8
// scenario 2 literally: white Long-Leaper a1, black pawn b2, black knight
// c3, landing on d4 and capturing both. The two enemies are diagonally
// adjacent with no empty square between them, so they must be jumped as a
// single run rather than two separately-landable hops.
func TestLongLeaperChainCapturesAdjacentEnemiesInOneJump(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	leaper := place(b, "wl1", catalog.LongLeaper, board.White, board.Position{File: 0, Rank: 0})
	pawn := place(b, "bp1", catalog.PawnID, board.Black, board.Position{File: 1, Rank: 1})
	knight := place(b, "bn1", catalog.Knight, board.Black, board.Position{File: 2, Rank: 2})

	moves := movegen.PseudoLegal(b, leaper, nil)

	var landing *board.Move
	for i := range moves {
		if moves[i].To == (board.Position{File: 3, Rank: 3}) {
			landing = &moves[i]
		}
		// no move may stop between the two adjacent enemies: there is no
		// empty square there to land on.
		assert.NotEqual(t, board.Position{File: 2, Rank: 2}, moves[i].To, "a run of adjacent enemies has no landing square between them")
	}
	if require.NotNil(t, landing, "the leaper must offer landing on d4, past both adjacent enemies") {
		assert.ElementsMatch(t, []string{pawn.ID, knight.ID}, landing.Captures)
	}
}

// TestLongLeaperChainsSeparatedCapturesInDistinctMoves covers a Long-Leaper
// jumping two enemies that are NOT adjacent: it offers both the single-jump
// landing just past the first enemy and the continued double-jump landing
// past the second, each move carrying the full set of pieces captured en
// route.
func TestLongLeaperChainsSeparatedCapturesInDistinctMoves(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	leaper := place(b, "wl1", catalog.LongLeaper, board.White, board.Position{File: 0, Rank: 0})
	first := place(b, "bp1", catalog.PawnID, board.Black, board.Position{File: 2, Rank: 0})
	second := place(b, "bp2", catalog.PawnID, board.Black, board.Position{File: 5, Rank: 0})

	moves := movegen.PseudoLegal(b, leaper, nil)

	var single, double *board.Move
	for i := range moves {
		switch moves[i].To {
		case board.Position{File: 3, Rank: 0}:
			single = &moves[i]
		case board.Position{File: 6, Rank: 0}:
			double = &moves[i]
		}
	}

	if require.NotNil(t, single, "the leaper must offer landing just past the first enemy") {
		assert.ElementsMatch(t, []string{first.ID}, single.Captures)
	}
	if require.NotNil(t, double, "the leaper must also offer continuing the chain past the second enemy") {
		assert.ElementsMatch(t, []string{first.ID, second.ID}, double.Captures)
	}
}

// TestLongLeaperChainStopsAtNonJumpableOccupant ensures a piece that cannot
// be jumped over (e.g. a Fool-style occupant) blocks the chain entirely,
// even before the first capture.
func TestLongLeaperChainStopsAtNonJumpableOccupant(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	leaper := place(b, "wl1", catalog.LongLeaper, board.White, board.Position{File: 0, Rank: 0})
	place(b, "bf1", catalog.Fool, board.Black, board.Position{File: 2, Rank: 0})

	moves := movegen.PseudoLegal(b, leaper, nil)
	for _, m := range moves {
		assert.NotEqual(t, board.Position{File: 3, Rank: 0}, m.To, "a non-jumpable occupant must block the long-leap chain")
	}
}

func TestLongLeaperChainRequiresEmptyLandingSquare(t *testing.T) {
	b := board.NewBoard(board.Dimensions{Files: 8, Ranks: 8})
	leaper := place(b, "wl1", catalog.LongLeaper, board.White, board.Position{File: 0, Rank: 0})
	place(b, "bp1", catalog.PawnID, board.Black, board.Position{File: 2, Rank: 0})
	place(b, "wp1", catalog.PawnID, board.White, board.Position{File: 3, Rank: 0})

	moves := movegen.PseudoLegal(b, leaper, nil)
	for _, m := range moves {
		assert.NotEqual(t, board.Position{File: 3, Rank: 0}, m.To, "a leap may not land on an occupied square")
	}
}
