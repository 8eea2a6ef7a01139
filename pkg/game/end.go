package game

import (
	"github.com/liamiak1/hyper-fairy-chess/pkg/attack"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/rules"
)

// DetectEnd evaluates whether the game is over immediately after a move,
// from the perspective of the color now on move (g.ToMove): no royal
// pieces left loses outright; no legal move is checkmate (if in check) or
// stalemate (if not), both resolved by victory-point tiebreak when the
// rules don't otherwise name a winner.
func DetectEnd(g *GameState) (Result, bool) {
	toMove := g.ToMove
	ep := epPointer(g.EPTarget)

	if len(g.Board.RoyalPieces(toMove)) == 0 {
		return Result{Winner: toMove.Opponent(), Reason: ReasonNoRoyalsLeft}, true
	}

	if rules.HasAnyLegalMove(g.Board, toMove, ep) {
		return Result{}, false
	}

	if attack.InCheck(g.Board, toMove) {
		return Result{Winner: toMove.Opponent(), Reason: ReasonCheckmate}, true
	}
	return resolveByVictoryPoints(g, ReasonStalemate), true
}

// resolveByVictoryPoints breaks a no-legal-move position by comparing each
// color's on-board victory-point sum (not g.VictoryPoints, which tracks
// captured-opposing-piece VP and diverges sharply once negative-VP pieces
// like the Fool or Jester are on the board): the higher total wins, an
// exact tie is a draw.
func resolveByVictoryPoints(g *GameState, reason Reason) Result {
	white := onBoardVictoryPoints(g.Board, board.White)
	black := onBoardVictoryPoints(g.Board, board.Black)
	switch {
	case white > black:
		return Result{Winner: board.White, Reason: ReasonVictoryPoints}
	case black > white:
		return Result{Winner: board.Black, Reason: ReasonVictoryPoints}
	default:
		return Result{Draw: true, Reason: reason}
	}
}

func onBoardVictoryPoints(b *board.Board, c board.Color) int {
	total := 0
	for _, p := range b.PiecesOf(c) {
		total += catalog.MustBy(p.TypeID).VictoryPoints
	}
	return total
}
