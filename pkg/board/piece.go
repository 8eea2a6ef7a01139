package board

import (
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/pkg/catalog"
)

// PieceInstance is a single piece in a game: mutable over the game's
// lifetime, unlike the immutable catalog.PieceType it references. Created
// with a nil position at the draft-to-placement transition, it gains a
// position at placement, moves via move execution, and transitions back to
// a nil position when captured. It never returns to the board afterward.
type PieceInstance struct {
	ID     string
	TypeID string
	Owner  Color

	// Position is nil iff the piece is off-board (not yet placed, or
	// captured).
	Position *Position

	HasMoved bool
	IsFrozen bool
}

// Type resolves the piece's immutable catalog entry.
func (p *PieceInstance) Type() catalog.PieceType {
	return catalog.MustBy(p.TypeID)
}

// OnBoard reports whether the piece currently occupies a square.
func (p *PieceInstance) OnBoard() bool {
	return p.Position != nil
}

// Clone returns a deep copy of the piece instance.
func (p *PieceInstance) Clone() *PieceInstance {
	cp := *p
	if p.Position != nil {
		pos := *p.Position
		cp.Position = &pos
	}
	return &cp
}

func (p *PieceInstance) String() string {
	pos := "off-board"
	if p.Position != nil {
		pos = p.Position.String()
	}
	return fmt.Sprintf("%v(%v)@%v", p.TypeID, p.Owner, pos)
}
