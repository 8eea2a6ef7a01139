package room

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
	"github.com/liamiak1/hyper-fairy-chess/pkg/draft"
	"github.com/liamiak1/hyper-fairy-chess/pkg/game"
	"github.com/liamiak1/hyper-fairy-chess/pkg/placement"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

const (
	countdownSeconds   = 3
	revealDelay        = 3 * time.Second
	disconnectGrace    = 60 * time.Second
	staleSweepInterval = 5 * time.Minute
	staleRoomMaxAge    = time.Hour
)

// Outbound is one message a Controller wants delivered: either to a single
// player (PlayerID set) or broadcast to every seated player (Broadcast).
// pkg/session maps these onto actual transport connections; Controller
// never touches a connection directly.
type Outbound struct {
	Broadcast bool
	PlayerID  string
	Type      string
	Payload   any
}

func toAll(t string, payload any) Outbound      { return Outbound{Broadcast: true, Type: t, Payload: payload} }
func toPlayer(id, t string, payload any) Outbound { return Outbound{PlayerID: id, Type: t, Payload: payload} }

// job is one unit of serialized work: a closure over the controller that
// produces the outbound events resulting from it. The dispatcher enqueues
// jobs; the controller's own goroutine (Run) is the only thing that ever
// calls one, giving every state mutation FIFO, single-threaded ordering.
type job func(*Controller) []Outbound

// Controller owns one Room and runs it on a single goroutine so that every
// mutation is serialized, per spec.md §5.
type Controller struct {
	Room *Room

	clk  clock.Clock
	jobs chan job

	draftTimer  *clock.Timer
	draftTimerC <-chan time.Time

	countdownTicker  *clock.Ticker
	countdownTickerC <-chan time.Time
	countdownLeft    int

	revealTimer  *clock.Timer
	revealTimerC <-chan time.Time

	disconnectTimers map[string]*clock.Timer
	disconnectFired  chan string

	runCtx context.Context
}

// NewController creates a Controller for a freshly allocated, empty room.
func NewController(code string, settings Settings, clk clock.Clock) *Controller {
	now := clk.Now()
	return &Controller{
		Room: &Room{
			Code:         code,
			Settings:     settings,
			Phase:        PhaseWaiting,
			LastActivity: now,
		},
		clk:              clk,
		jobs:             make(chan job, 32),
		disconnectTimers: map[string]*clock.Timer{},
		disconnectFired:  make(chan string, 8),
	}
}

// Enqueue schedules a job for serialized execution on the controller's own
// goroutine and returns immediately.
func (c *Controller) Enqueue(fn func(*Controller) []Outbound) {
	c.jobs <- fn
}

// Run drains jobs and fired timers until ctx is cancelled, invoking emit
// with every batch of resulting outbound events in arrival order.
func (c *Controller) Run(ctx context.Context, emit func([]Outbound)) {
	c.runCtx = ctx
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-c.jobs:
			emit(fn(c))
		case <-c.draftTimerC:
			emit(c.onDraftTimeout())
		case <-c.countdownTickerC:
			emit(c.onCountdownTick())
		case <-c.revealTimerC:
			c.revealTimerC = nil
			emit(c.enterPlacement())
		case playerID := <-c.disconnectFired:
			emit(c.onDisconnectTimeout(playerID))
		}
	}
}

// CreateAndSeat seats the room's creator as the first (white) player and
// answers with ROOM_CREATED rather than ROOM_JOINED.
func (c *Controller) CreateAndSeat(playerID, name string) []Outbound {
	r := c.Room
	r.Players[board.White] = &Player{ID: playerID, Name: name, Color: board.White, Connected: true, LastSeen: c.clk.Now()}
	r.LastActivity = c.clk.Now()
	return []Outbound{toPlayer(playerID, "ROOM_CREATED", map[string]any{
		"roomCode": r.Code, "playerId": playerID, "role": board.White.String(), "settings": r.Settings,
	})}
}

// Join seats a new player, assigning color by join order (first = white),
// and starts the pre-draft countdown once both seats are filled.
func (c *Controller) Join(playerID, name string) ([]Outbound, error) {
	r := c.Room
	if r.PlayerCount() >= 2 {
		return nil, fmt.Errorf("room: %s is full", r.Code)
	}
	color := board.White
	if r.Players[board.White] != nil {
		color = board.Black
	}
	r.Players[color] = &Player{ID: playerID, Name: name, Color: color, Connected: true, LastSeen: c.clk.Now()}
	r.LastActivity = c.clk.Now()

	out := []Outbound{toPlayer(playerID, "ROOM_JOINED", map[string]any{
		"roomCode": r.Code, "playerId": playerID, "role": color.String(), "phase": r.Phase,
	})}
	if r.PlayerCount() == 2 {
		out = append(out, toAll("PLAYER_JOINED", map[string]any{"playerId": playerID}))
		out = append(out, c.startCountdown()...)
	}
	return out, nil
}

// Leave removes a player that explicitly leaves (as opposed to a dropped
// socket, handled by Disconnect). Before playing starts this frees their
// seat outright; once playing, it behaves like any other disconnect.
func (c *Controller) Leave(playerID string) []Outbound {
	r := c.Room
	if r.Phase == PhasePlaying {
		return c.Disconnect(playerID)
	}
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil
	}
	r.Players[p.Color] = nil
	r.LastActivity = c.clk.Now()
	if c.countdownTicker != nil {
		c.countdownTicker.Stop()
		c.countdownTickerC = nil
	}
	return []Outbound{toAll("PLAYER_LEFT", map[string]any{"playerId": playerID, "reason": "left"})}
}

func (c *Controller) startCountdown() []Outbound {
	c.countdownLeft = countdownSeconds
	c.countdownTicker = c.clk.Ticker(time.Second)
	c.countdownTickerC = c.countdownTicker.C
	return []Outbound{toAll("DRAFT_COUNTDOWN", map[string]any{"timeRemaining": c.countdownLeft})}
}

func (c *Controller) onCountdownTick() []Outbound {
	c.countdownLeft--
	if c.countdownLeft > 0 {
		return []Outbound{toAll("DRAFT_COUNTDOWN", map[string]any{"timeRemaining": c.countdownLeft})}
	}
	c.countdownTicker.Stop()
	c.countdownTickerC = nil
	return c.enterDrafting()
}

func (c *Controller) enterDrafting() []Outbound {
	r := c.Room
	r.Phase = PhaseDrafting
	r.Drafts[board.White] = draft.NewPlayerDraft(r.Settings.Budget)
	r.Drafts[board.Black] = draft.NewPlayerDraft(r.Settings.Budget)
	r.DraftDeadline = c.clk.Now().Add(r.Settings.DraftTimeLimit)
	c.draftTimer = c.clk.Timer(r.Settings.DraftTimeLimit)
	c.draftTimerC = c.draftTimer.C

	return []Outbound{toAll("DRAFT_START", map[string]any{
		"budget": r.Settings.Budget, "boardSize": r.Settings.BoardSize, "timeLimit": r.Settings.DraftTimeLimit,
	})}
}

// SubmitDraft validates and records one color's final draft. Once both
// sides have submitted, the draft timer is cancelled and both armies are
// revealed.
func (c *Controller) SubmitDraft(playerID string, selections []draft.Selection) ([]Outbound, error) {
	r := c.Room
	if r.Phase != PhaseDrafting {
		return nil, fmt.Errorf("room: not in drafting phase")
	}
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("room: unknown player %q", playerID)
	}
	if r.DraftSubmitted[p.Color] {
		return nil, fmt.Errorf("room: draft already submitted")
	}

	d := draft.NewPlayerDraft(r.Settings.Budget)
	for _, s := range selections {
		if s.PieceTypeID == catalog.King {
			continue
		}
		d.Add(s.PieceTypeID, s.Count)
	}
	dims, err := board.ParseDimensions(r.Settings.BoardSize)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(d, dims); err != nil {
		return []Outbound{toPlayer(playerID, "PLACEMENT_ERROR", map[string]any{"message": err.Error()})}, nil
	}

	r.Drafts[p.Color] = d
	r.DraftSubmitted[p.Color] = true
	r.LastActivity = c.clk.Now()

	out := []Outbound{toAll("DRAFT_SUBMITTED", map[string]any{"playerId": playerID})}
	if r.DraftSubmitted[board.White] && r.DraftSubmitted[board.Black] {
		if c.draftTimer != nil {
			c.draftTimer.Stop()
			c.draftTimerC = nil
		}
		out = append(out, c.revealDrafts()...)
	}
	return out, nil
}

func (c *Controller) onDraftTimeout() []Outbound {
	r := c.Room
	c.draftTimerC = nil
	var out []Outbound
	for _, color := range []board.Color{board.White, board.Black} {
		if !r.DraftSubmitted[color] {
			r.Drafts[color] = draft.DefaultFallbackArmy(r.Settings.Budget)
			r.DraftSubmitted[color] = true
			if p := r.Players[color]; p != nil {
				out = append(out, toAll("DRAFT_TIMEOUT", map[string]any{"defaultedPlayer": p.ID}))
			}
		}
	}
	return append(out, c.revealDrafts()...)
}

func (c *Controller) revealDrafts() []Outbound {
	r := c.Room
	c.revealTimer = c.clk.Timer(revealDelay)
	c.revealTimerC = c.revealTimer.C

	return []Outbound{toAll("DRAFT_REVEAL", map[string]any{
		"whiteDraft": r.Drafts[board.White].Selections,
		"blackDraft": r.Drafts[board.Black].Selections,
	})}
}

func (c *Controller) enterPlacement() []Outbound {
	r := c.Room
	dims, _ := board.ParseDimensions(r.Settings.BoardSize)
	r.Board = board.NewBoard(dims)
	r.Placement = placement.NewPlacementState(r.Drafts[board.White], r.Drafts[board.Black])
	r.Phase = PhasePlacement

	return []Outbound{toAll("PLACEMENT_START", map[string]any{"placementState": r.Placement})}
}

// PlacePiece validates and applies one placement by the room's current
// placer, transitioning to playing once both pools are exhausted.
func (c *Controller) PlacePiece(playerID, pieceID string, pos board.Position) ([]Outbound, error) {
	r := c.Room
	if r.Phase != PhasePlacement {
		return nil, fmt.Errorf("room: not in placement phase")
	}
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("room: unknown player %q", playerID)
	}

	result, err := placement.Place(r.Placement, r.Board, p.Color, pieceID, pos)
	if err != nil {
		return []Outbound{toPlayer(playerID, "PLACEMENT_ERROR", map[string]any{"message": err.Error()})}, nil
	}
	r.LastActivity = c.clk.Now()

	payload := map[string]any{
		"pieceId": pieceID, "position": pos, "nextPlacer": r.Placement.CurrentPlacer.String(),
		"placementState": r.Placement,
	}
	if result.ActualPosition != pos {
		payload["actualPosition"] = result.ActualPosition
	}
	if result.HasSwap {
		payload["pawnSwap"] = result.SwappedPawnID
	}
	out := []Outbound{toAll("PIECE_PLACED", payload)}

	if r.Placement.IsComplete() {
		out = append(out, c.startGame()...)
	}
	return out, nil
}

func (c *Controller) startGame() []Outbound {
	r := c.Room
	whiteRoyalty := r.Drafts[board.White].SlotsUsed().Royalty
	blackRoyalty := r.Drafts[board.Black].SlotsUsed().Royalty
	placement.CompletePlacement(r.Board, whiteRoyalty, blackRoyalty)

	r.Game = game.NewGameState(r.Board)
	r.Phase = PhasePlaying
	return []Outbound{toAll("GAME_START", map[string]any{"gameState": r.Game})}
}

// MakeMove validates and applies a move for the player to move, rejecting
// it (to the submitter only) if it is out of turn or illegal.
func (c *Controller) MakeMove(ctx context.Context, playerID string, m board.Move) ([]Outbound, error) {
	r := c.Room
	if r.Phase != PhasePlaying {
		return nil, fmt.Errorf("room: not in playing phase")
	}
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("room: unknown player %q", playerID)
	}
	if p.Color != r.Game.ToMove {
		return []Outbound{toPlayer(playerID, "MOVE_REJECTED", map[string]any{
			"reason": "NOT_YOUR_TURN", "correctState": r.Game,
		})}, nil
	}

	if err := r.Game.MakeMove(ctx, m); err != nil {
		return []Outbound{toPlayer(playerID, "MOVE_REJECTED", map[string]any{
			"reason": "INVALID_MOVE", "correctState": r.Game,
		})}, nil
	}
	r.LastActivity = c.clk.Now()

	out := []Outbound{toAll("MOVE_MADE", map[string]any{"move": m, "gameState": r.Game})}
	if r.Game.IsOver() {
		res, _ := r.Game.Result.V()
		r.Phase = PhaseEnded
		out = append(out, toAll("GAME_OVER", map[string]any{"result": res, "finalState": r.Game}))
	}
	return out, nil
}

// OfferDraw records a pending draw offer from the color to move.
func (c *Controller) OfferDraw(playerID string) ([]Outbound, error) {
	r := c.Room
	p, ok := r.PlayerByID(playerID)
	if !ok || r.Phase != PhasePlaying {
		return nil, fmt.Errorf("room: cannot offer a draw now")
	}
	if err := r.Game.OfferDraw(p.Color); err != nil {
		return []Outbound{toPlayer(playerID, "MOVE_REJECTED", map[string]any{"reason": "INVALID_MOVE", "correctState": r.Game})}, nil
	}
	return []Outbound{toAll("DRAW_OFFERED", map[string]any{"from": playerID})}, nil
}

// RespondDraw accepts or declines the room's pending draw offer.
func (c *Controller) RespondDraw(playerID string, accept bool) ([]Outbound, error) {
	r := c.Room
	if r.Phase != PhasePlaying {
		return nil, fmt.Errorf("room: no game in progress")
	}
	if err := r.Game.RespondDraw(accept); err != nil {
		return []Outbound{toPlayer(playerID, "MOVE_REJECTED", map[string]any{"reason": "INVALID_MOVE", "correctState": r.Game})}, nil
	}
	if r.Game.IsOver() {
		res, _ := r.Game.Result.V()
		r.Phase = PhaseEnded
		return []Outbound{toAll("GAME_OVER", map[string]any{"result": res, "finalState": r.Game})}, nil
	}
	return nil, nil
}

// Resign ends the game in favor of the other color.
func (c *Controller) Resign(playerID string) ([]Outbound, error) {
	r := c.Room
	p, ok := r.PlayerByID(playerID)
	if !ok || r.Phase != PhasePlaying {
		return nil, fmt.Errorf("room: cannot resign now")
	}
	if err := r.Game.Resign(p.Color); err != nil {
		return nil, err
	}
	r.Phase = PhaseEnded
	res, _ := r.Game.Result.V()
	return []Outbound{toAll("GAME_OVER", map[string]any{"result": res, "finalState": r.Game})}, nil
}

// Disconnect marks a player disconnected. During playing it starts their
// grace timer; in other phases it only broadcasts PLAYER_LEFT and keeps the seat.
func (c *Controller) Disconnect(playerID string) []Outbound {
	r := c.Room
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil
	}
	p.Connected = false
	p.LastSeen = c.clk.Now()

	if r.Phase != PhasePlaying {
		return []Outbound{toAll("PLAYER_LEFT", map[string]any{"playerId": playerID, "reason": "left"})}
	}

	timer := c.clk.Timer(disconnectGrace)
	c.disconnectTimers[playerID] = timer
	runCtx := c.runCtx
	go func() {
		select {
		case <-timer.C:
			c.disconnectFired <- playerID
		case <-runCtx.Done():
		}
	}()

	return []Outbound{toAll("PLAYER_DISCONNECTED", map[string]any{
		"playerId": playerID, "timeoutSeconds": int(disconnectGrace.Seconds()),
	})}
}

func (c *Controller) onDisconnectTimeout(playerID string) []Outbound {
	r := c.Room
	delete(c.disconnectTimers, playerID)
	p, ok := r.PlayerByID(playerID)
	if !ok || p.Connected || r.Phase != PhasePlaying {
		return nil
	}

	r.Phase = PhaseEnded
	res := game.Result{Winner: p.Color.Opponent(), Reason: game.ReasonDisconnectLoss}
	if r.Game != nil {
		r.Game.Result = lang.Some(res)
	}
	logw.Infof(context.Background(), "room %s: %s timed out after disconnect", r.Code, playerID)
	return []Outbound{toAll("GAME_OVER", map[string]any{"result": res, "finalState": r.Game})}
}

// Reconnect cancels a player's disconnect grace timer and returns a
// SYNC_STATE payload tailored to them.
func (c *Controller) Reconnect(playerID string) ([]Outbound, error) {
	r := c.Room
	p, ok := r.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("room: unknown player %q", playerID)
	}
	if t, ok := c.disconnectTimers[playerID]; ok {
		t.Stop()
		delete(c.disconnectTimers, playerID)
	}
	p.Connected = true
	p.LastSeen = c.clk.Now()

	return []Outbound{
		toAll("PLAYER_RECONNECTED", map[string]any{"playerId": playerID}),
		toPlayer(playerID, "SYNC_STATE", c.syncStatePayload(p)),
	}, nil
}

func (c *Controller) syncStatePayload(p *Player) map[string]any {
	r := c.Room
	payload := map[string]any{
		"phase": r.Phase, "settings": r.Settings, "players": r.Players, "myColor": p.Color.String(),
	}
	if r.Game != nil {
		payload["gameState"] = r.Game
	}
	if r.Placement != nil {
		payload["placementState"] = r.Placement
	}
	return payload
}

// Ping answers with the server's current clock time.
func (c *Controller) Ping() []Outbound {
	return []Outbound{toAll("PONG", map[string]any{"serverTime": c.clk.Now().UnixMilli()})}
}
