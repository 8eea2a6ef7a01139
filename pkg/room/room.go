// Package room implements the per-room state machine: waiting → drafting →
// placement → playing → ended. A Controller owns exactly one Room and
// serializes every mutation through its own goroutine; the Room Directory
// (directory.go) tracks rooms by code for concurrent lookup.
package room

import (
	"time"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
	"github.com/liamiak1/hyper-fairy-chess/pkg/game"
	"github.com/liamiak1/hyper-fairy-chess/pkg/placement"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Phase mirrors GameState.phase but adds waiting, the pre-game state.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseDrafting  Phase = "drafting"
	PhasePlacement Phase = "placement"
	PhasePlaying   Phase = "playing"
	PhaseEnded     Phase = "ended"
)

// Settings are a room's fixed configuration, chosen at creation.
type Settings struct {
	Budget         int
	BoardSize      string
	DraftTimeLimit time.Duration
	// MoveTimeLimit is a reserved, currently-unused settings field per
	// spec.md §5; null (zero Optional) means no timer is started.
	MoveTimeLimit lang.Optional[time.Duration]
}

// Player is one connected (or disconnected-but-grace-period) participant.
type Player struct {
	ID          string
	Name        string
	Color       board.Color
	Connected   bool
	LastSeen    time.Time
}

// Room is one match's full authoritative state, from creation through
// game end.
type Room struct {
	Code     string
	Settings Settings
	Phase    Phase

	Players [2]*Player // indexed by board.Color; nil until that seat is taken

	Drafts          [2]*draft.PlayerDraft
	DraftSubmitted  [2]bool
	DraftDeadline   time.Time

	Placement *placement.PlacementState
	Board     *board.Board

	Game *game.GameState

	LastActivity time.Time
}

// PlayerCount reports how many seats are filled.
func (r *Room) PlayerCount() int {
	n := 0
	for _, p := range r.Players {
		if p != nil {
			n++
		}
	}
	return n
}

// PlayerByID finds a seated player by their opaque ID.
func (r *Room) PlayerByID(id string) (*Player, bool) {
	for _, p := range r.Players {
		if p != nil && p.ID == id {
			return p, true
		}
	}
	return nil, false
}
