// Package draft validates a player's point-budgeted army selection before
// placement: total cost against budget, per-tier slot caps, king-replacer
// exclusivity, and per-type hard caps.
package draft

import (
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/pkg/board"
	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// Selection is one drafted type and how many of it.
type Selection struct {
	PieceTypeID string
	Count       int
}

// SlotCaps is the per-tier slot ceiling for a board size: pawn, piece,
// royalty.
type SlotCaps struct {
	Pawn, Piece, Royalty int
}

// SlotCapsFor returns the slot caps for a board's dimensions: 8/6/2 for
// 8×8, 10/8/2 for 10×8 and 10×10.
func SlotCapsFor(dims board.Dimensions) SlotCaps {
	if dims.Files == 8 {
		return SlotCaps{Pawn: 8, Piece: 6, Royalty: 2}
	}
	return SlotCaps{Pawn: 10, Piece: 8, Royalty: 2}
}

// PlayerDraft is one color's running selection during the drafting phase.
type PlayerDraft struct {
	Selections []Selection
	Budget     int
}

// NewPlayerDraft starts an empty draft against the given budget. The
// mandatory King occupies one royalty slot from the outset.
func NewPlayerDraft(budget int) *PlayerDraft {
	return &PlayerDraft{Budget: budget, Selections: []Selection{{PieceTypeID: catalog.King, Count: 1}}}
}

// Add increments the count of typeID by delta (delta may be negative via
// Remove instead). A king-replacer occupies the King's royalty slot rather
// than taking a second one: adding one drops the seeded King selection.
// Mutates the running selection; callers must call Validate before trusting
// the result as final.
func (d *PlayerDraft) Add(typeID string, count int) {
	if typ, ok := catalog.By(typeID); ok && typ.ReplacesKing {
		d.dropSelection(catalog.King)
	}
	for i := range d.Selections {
		if d.Selections[i].PieceTypeID == typeID {
			d.Selections[i].Count += count
			return
		}
	}
	d.Selections = append(d.Selections, Selection{PieceTypeID: typeID, Count: count})
}

// Remove decrements the count of typeID by count, dropping the selection
// entirely if it reaches zero or below. Removing the last copy of a
// king-replacer restores the mandatory King to its vacated slot.
func (d *PlayerDraft) Remove(typeID string, count int) {
	typ, known := catalog.By(typeID)
	for i := range d.Selections {
		if d.Selections[i].PieceTypeID == typeID {
			d.Selections[i].Count -= count
			if d.Selections[i].Count <= 0 {
				d.Selections = append(d.Selections[:i], d.Selections[i+1:]...)
				if known && typ.ReplacesKing {
					d.restoreKing()
				}
			}
			return
		}
	}
}

func (d *PlayerDraft) dropSelection(typeID string) {
	for i := range d.Selections {
		if d.Selections[i].PieceTypeID == typeID {
			d.Selections = append(d.Selections[:i], d.Selections[i+1:]...)
			return
		}
	}
}

func (d *PlayerDraft) restoreKing() {
	for _, s := range d.Selections {
		if s.PieceTypeID == catalog.King {
			return
		}
	}
	d.Selections = append(d.Selections, Selection{PieceTypeID: catalog.King, Count: 1})
}

// BudgetSpent sums Cost*Count across every selection.
func (d *PlayerDraft) BudgetSpent() int {
	total := 0
	for _, s := range d.Selections {
		if typ, ok := catalog.By(s.PieceTypeID); ok {
			total += typ.Cost * s.Count
		}
	}
	return total
}

// SlotsUsed sums Count per tier, with the King's mandatory slot (or its
// replacer's) already included via NewPlayerDraft's initial selection.
func (d *PlayerDraft) SlotsUsed() SlotCaps {
	var used SlotCaps
	for _, s := range d.Selections {
		typ, ok := catalog.By(s.PieceTypeID)
		if !ok {
			continue
		}
		switch typ.Tier {
		case catalog.Pawn:
			used.Pawn += s.Count
		case catalog.Piece:
			used.Piece += s.Count
		case catalog.Royalty:
			used.Royalty += s.Count
		}
	}
	return used
}

// Validate checks every draft rule and returns the first violation found,
// or nil if the draft is valid and ready for the placement transition.
func Validate(d *PlayerDraft, dims board.Dimensions) error {
	replacers := 0
	for _, s := range d.Selections {
		typ, ok := catalog.By(s.PieceTypeID)
		if !ok {
			return fmt.Errorf("draft: unknown piece type %q", s.PieceTypeID)
		}
		if s.Count < 1 {
			return fmt.Errorf("draft: %q has non-positive count %d", s.PieceTypeID, s.Count)
		}
		if typ.MaxCount > 0 && s.Count > typ.MaxCount {
			return fmt.Errorf("draft: %q count %d exceeds per-type cap %d", s.PieceTypeID, s.Count, typ.MaxCount)
		}
		if typ.ReplacesKing {
			replacers += s.Count
		}
	}
	if replacers > 1 {
		return fmt.Errorf("draft: at most one king-replacer allowed, got %d", replacers)
	}

	if spent := d.BudgetSpent(); spent > d.Budget {
		return fmt.Errorf("draft: budget spent %d exceeds %d", spent, d.Budget)
	}

	caps := SlotCapsFor(dims)
	used := d.SlotsUsed()
	if used.Pawn > caps.Pawn {
		return fmt.Errorf("draft: pawn slots %d exceed cap %d", used.Pawn, caps.Pawn)
	}
	if used.Piece > caps.Piece {
		return fmt.Errorf("draft: piece slots %d exceed cap %d", used.Piece, caps.Piece)
	}
	if used.Royalty > caps.Royalty {
		return fmt.Errorf("draft: royalty slots %d exceed cap %d", used.Royalty, caps.Royalty)
	}
	return nil
}

// DefaultFallbackArmy is the fixed army substituted for a side that misses
// the draft deadline: queen×1, rook×2, bishop×2, knight×2, pawn×8.
func DefaultFallbackArmy(budget int) *PlayerDraft {
	d := NewPlayerDraft(budget)
	d.Add(catalog.Queen, 1)
	d.Add(catalog.Rook, 2)
	d.Add(catalog.Bishop, 2)
	d.Add(catalog.Knight, 2)
	d.Add(catalog.PawnID, 8)
	return d
}
