package game

import (
	"context"
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/rules"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// MakeMove validates that m is one of ToMove's legal moves, applies it,
// updates victory points, en passant state, freeze auras and the turn,
// then runs end detection. Returns an error and leaves the state
// untouched if m is not legal for the color to move.
func (g *GameState) MakeMove(ctx context.Context, m board.Move) error {
	if g.IsOver() {
		return fmt.Errorf("game: already over (%v)", mustResult(g))
	}

	mover, ok := g.Board.Piece(m.PieceID)
	if !ok || !mover.OnBoard() || mover.Owner != g.ToMove {
		return fmt.Errorf("game: %v is not %v's piece to move", m.PieceID, g.ToMove)
	}

	ep := epPointer(g.EPTarget)
	legal := rules.LegalMoves(g.Board, mover, ep)

	var chosen *board.Move
	for _, cand := range legal {
		if cand.Equals(m) {
			c := cand
			chosen = &c
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("game: %v is not a legal move for %v", m, mover.ID)
	}

	movingTyp := mover.Type()
	for _, id := range chosen.Captures {
		if victim, ok := g.Board.Piece(id); ok {
			g.VictoryPoints[g.ToMove] += victim.Type().VictoryPoints
		}
	}

	rules.Apply(g.Board, *chosen)
	rules.RecomputeFreeze(g.Board)

	if target := rules.EnPassantTarget(movingTyp, chosen.From, chosen.To); target != nil {
		g.EPTarget = lang.Some(*target)
	} else {
		g.EPTarget = lang.Optional[board.Position]{}
	}

	g.PendingDrawOffer = lang.Optional[board.Color]{}
	g.ToMove = g.ToMove.Opponent()
	g.MoveNumber++

	if result, over := DetectEnd(g); over {
		g.Result = lang.Some(result)
		logw.Infof(ctx, "game ended: %v", result)
	}
	return nil
}

// OfferDraw records a pending draw offer from the offering color. Valid
// only while the game is ongoing and it is that color's move (ambient
// addition, SPEC_FULL.md §4.10).
func (g *GameState) OfferDraw(color board.Color) error {
	if g.IsOver() {
		return fmt.Errorf("game: already over")
	}
	if color != g.ToMove {
		return fmt.Errorf("game: only the color to move may offer a draw")
	}
	g.PendingDrawOffer = lang.Some(color)
	return nil
}

// RespondDraw resolves a pending draw offer: accept ends the game as a
// draw by agreement, decline simply clears it.
func (g *GameState) RespondDraw(accept bool) error {
	offeror, ok := g.PendingDrawOffer.V()
	if !ok {
		return fmt.Errorf("game: no pending draw offer")
	}
	g.PendingDrawOffer = lang.Optional[board.Color]{}
	if accept {
		g.Result = lang.Some(Result{Draw: true, Reason: ReasonDrawAgreement})
		_ = offeror
	}
	return nil
}

// Resign ends the game in favor of the other color.
func (g *GameState) Resign(color board.Color) error {
	if g.IsOver() {
		return fmt.Errorf("game: already over")
	}
	g.Result = lang.Some(Result{Winner: color.Opponent(), Reason: ReasonResignation})
	return nil
}

func epPointer(opt lang.Optional[board.Position]) *board.Position {
	if v, ok := opt.V(); ok {
		return &v
	}
	return nil
}

func mustResult(g *GameState) Result {
	r, _ := g.Result.V()
	return r
}
