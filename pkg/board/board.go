// Package board contains the rectangular grid representation shared by every
// fairy-chess variant board size: a piece table keyed by ID, a derived square→piece
// index, and the royalty-history flags Regent movement depends on. Not
// thread-safe; callers needing to try a move without mutating the original
// should Clone first.
package board

import (
	"fmt"
	"sort"
	"strings"
)

// Board is rectangular grid state: dimensions, the pieces on (and off) it,
// a derived square→piece index, and per-color royalty-history flags frozen
// at placement completion.
type Board struct {
	Dimensions Dimensions

	pieces map[string]*PieceInstance
	index  map[Position]string

	hadMultipleRoyals [2]bool
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(dims Dimensions) *Board {
	return &Board{
		Dimensions: dims,
		pieces:     map[string]*PieceInstance{},
		index:      map[Position]string{},
	}
}

// AddPiece registers a piece instance with the board. If it has a non-nil
// position, the index is updated. Panics on a duplicate ID or occupied
// square: both indicate a caller invariant violation, not a rule failure.
func (b *Board) AddPiece(p *PieceInstance) {
	if _, dup := b.pieces[p.ID]; dup {
		panic("board: duplicate piece id " + p.ID)
	}
	if p.Position != nil {
		if _, occupied := b.index[*p.Position]; occupied {
			panic(fmt.Sprintf("board: square %v already occupied", *p.Position))
		}
		b.index[*p.Position] = p.ID
	}
	b.pieces[p.ID] = p
}

// Piece returns the piece instance with the given ID.
func (b *Board) Piece(id string) (*PieceInstance, bool) {
	p, ok := b.pieces[id]
	return p, ok
}

// MustPiece returns the piece instance, panicking if absent (caller
// invariant: the ID came from this board's own index or move record).
func (b *Board) MustPiece(id string) *PieceInstance {
	p, ok := b.pieces[id]
	if !ok {
		panic("board: unknown piece id " + id)
	}
	return p
}

// At returns the piece occupying the given square, if any.
func (b *Board) At(pos Position) (*PieceInstance, bool) {
	id, ok := b.index[pos]
	if !ok {
		return nil, false
	}
	return b.pieces[id], true
}

// IsEmpty reports whether no piece occupies the given square.
func (b *Board) IsEmpty(pos Position) bool {
	_, occupied := b.index[pos]
	return !occupied
}

// Pieces returns every piece instance on the board, in a stable order
// (sorted by ID) so callers that range over it get deterministic output.
func (b *Board) Pieces() []*PieceInstance {
	ids := make([]string, 0, len(b.pieces))
	for id := range b.pieces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*PieceInstance, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.pieces[id])
	}
	return out
}

// PiecesOf returns every on-board piece owned by the given color.
func (b *Board) PiecesOf(c Color) []*PieceInstance {
	var out []*PieceInstance
	for _, p := range b.Pieces() {
		if p.OnBoard() && p.Owner == c {
			out = append(out, p)
		}
	}
	return out
}

// RoyalPieces returns the on-board royal (checkmatable) pieces of the color.
func (b *Board) RoyalPieces(c Color) []*PieceInstance {
	var out []*PieceInstance
	for _, p := range b.PiecesOf(c) {
		if p.Type().IsRoyal {
			out = append(out, p)
		}
	}
	return out
}

// HadMultipleRoyals reports whether the color drafted two or more
// royalty-tier pieces, frozen at placement completion.
func (b *Board) HadMultipleRoyals(c Color) bool {
	return b.hadMultipleRoyals[c]
}

// SetHadMultipleRoyals freezes the royalty-history flag for the color. Only
// called once, by the placement-to-play transition.
func (b *Board) SetHadMultipleRoyals(c Color, v bool) {
	b.hadMultipleRoyals[c] = v
}

// MoveTo relocates a piece to a new square, marking it as moved. It does not
// touch any other piece; callers handle captures, castling partners and
// swap partners separately before calling this for the mover. Panics if the
// destination is occupied: the executor must clear captures first.
func (b *Board) MoveTo(id string, to Position) {
	p := b.MustPiece(id)
	if p.Position != nil {
		delete(b.index, *p.Position)
	}
	if _, occupied := b.index[to]; occupied {
		panic(fmt.Sprintf("board: destination %v occupied", to))
	}
	pos := to
	p.Position = &pos
	p.HasMoved = true
	b.index[to] = id
}

// RemoveFromBoard takes a piece off the board (capture), setting its
// position to nil.
func (b *Board) RemoveFromBoard(id string) {
	p := b.MustPiece(id)
	if p.Position != nil {
		delete(b.index, *p.Position)
		p.Position = nil
	}
}

// Clone deep-copies the board: every piece instance and the index are
// copied, so mutating the clone (as the legality filter does to simulate a
// move) never affects the original.
func (b *Board) Clone() *Board {
	cp := &Board{
		Dimensions:        b.Dimensions,
		pieces:            make(map[string]*PieceInstance, len(b.pieces)),
		index:             make(map[Position]string, len(b.index)),
		hadMultipleRoyals: b.hadMultipleRoyals,
	}
	for id, p := range b.pieces {
		cp.pieces[id] = p.Clone()
	}
	for pos, id := range b.index {
		cp.index[pos] = id
	}
	return cp
}

// CheckIndexInvariant reports whether the square→piece index is exactly the
// map from non-nil-positioned pieces to their square, and no other key maps
// to that piece. Used by tests asserting the universal board invariant.
func (b *Board) CheckIndexInvariant() error {
	expected := map[Position]string{}
	for id, p := range b.pieces {
		if p.Position == nil {
			continue
		}
		if other, dup := expected[*p.Position]; dup {
			return fmt.Errorf("two pieces on %v: %v and %v", *p.Position, other, id)
		}
		expected[*p.Position] = id
	}
	if len(expected) != len(b.index) {
		return fmt.Errorf("index size mismatch: want %d, have %d", len(expected), len(b.index))
	}
	for pos, id := range expected {
		if b.index[pos] != id {
			return fmt.Errorf("index[%v] = %v, want %v", pos, b.index[pos], id)
		}
	}
	return nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := b.Dimensions.Ranks - 1; r >= 0; r-- {
		for f := 0; f < b.Dimensions.Files; f++ {
			if p, ok := b.At(Position{File: f, Rank: r}); ok {
				sb.WriteString(glyph(p))
			} else {
				sb.WriteRune('.')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func glyph(p *PieceInstance) string {
	id := p.TypeID
	r := '?'
	if len(id) > 0 {
		r = rune(id[0])
	}
	if p.Owner == White {
		return strings.ToUpper(string(r))
	}
	return strings.ToLower(string(r))
}
