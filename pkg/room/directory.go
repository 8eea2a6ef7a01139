package room

import (
	"math/rand"
	"sync"

	"github.com/benbjohnson/clock"
)

// Directory maps room codes to their Controller and is safe for concurrent
// lookup, insertion, and removal: many HTTP/websocket goroutines may race
// to join or create a room while the sweeper concurrently evicts stale ones.
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*Controller

	clk clock.Clock
	rng *rand.Rand
}

// NewDirectory creates an empty Directory. clk is threaded into every room
// it creates so tests can control time deterministically.
func NewDirectory(clk clock.Clock, seed int64) *Directory {
	return &Directory{
		rooms: map[string]*Controller{},
		clk:   clk,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Create allocates a fresh room with a newly minted, collision-free code.
func (d *Directory) Create(settings Settings) (*Controller, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for attempt := 0; attempt < codeMaxRetries; attempt++ {
		code := generateCode(d.rng)
		if _, exists := d.rooms[code]; exists {
			continue
		}
		c := NewController(code, settings, d.clk)
		d.rooms[code] = c
		return c, nil
	}
	return nil, errCodeSpaceExhausted
}

// Get looks up a room by code, case-insensitively.
func (d *Directory) Get(code string) (*Controller, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.rooms[normalizeCode(code)]
	return c, ok
}

// Delete removes a room unconditionally, e.g. once its last player has left
// a still-waiting lobby.
func (d *Directory) Delete(code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.rooms, normalizeCode(code))
}

// Count reports how many rooms are currently tracked.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

func normalizeCode(code string) string {
	out := make([]byte, len(code))
	for i := 0; i < len(code); i++ {
		b := code[i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		out[i] = b
	}
	return string(out)
}

// SweepStale evicts every room that has been in PhaseEnded with no
// activity for at least staleRoomMaxAge. Intended to run periodically
// (RunSweeper) but exposed standalone for tests.
func (d *Directory) SweepStale() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clk.Now()
	evicted := 0
	for code, c := range d.rooms {
		r := c.Room
		if r.Phase == PhaseEnded && now.Sub(r.LastActivity) >= staleRoomMaxAge {
			delete(d.rooms, code)
			evicted++
		}
	}
	return evicted
}

// RunSweeper blocks, evicting stale rooms every staleSweepInterval, until
// stop is closed.
func (d *Directory) RunSweeper(stop <-chan struct{}) {
	ticker := d.clk.Ticker(staleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.SweepStale()
		}
	}
}

