package game

import "github.com/liamiak1/hyper-fairy-chess/pkg/board"

// Reason names why a game ended.
type Reason string

const (
	ReasonCheckmate      Reason = "checkmate"
	ReasonStalemate      Reason = "stalemate"
	ReasonNoRoyalsLeft   Reason = "no_royals_left"
	ReasonVictoryPoints  Reason = "victory_points"
	ReasonResignation    Reason = "resignation"
	ReasonDrawAgreement  Reason = "agreement"
	ReasonDisconnectLoss Reason = "disconnect_timeout"
)

// Result is the terminal outcome of a finished game. Winner is the zero
// value (board.White) and meaningless when Draw is true — callers must
// check Draw first.
type Result struct {
	Draw   bool
	Winner board.Color
	Reason Reason
}

func (r Result) String() string {
	if r.Draw {
		return "draw:" + string(r.Reason)
	}
	return r.Winner.String() + " wins:" + string(r.Reason)
}
