package board

import "fmt"

// Ref names a piece by side and team slot. The zero Ref is an empty square.
type Ref int16

const NoRef Ref = 0

// MakeRef packs a side and slot.
func MakeRef(c Color, slot int) Ref { return Ref(slot<<1|int(c)) + 1 }

func (r Ref) Empty() bool { return r == NoRef }
func (r Ref) Color() Color { return Color((r - 1) & 1) }
func (r Ref) Slot() int { return int(r-1) >> 1 }

// Board is an N x N grid of optional piece references with a reverse index
// from (side, slot) back to the square, kept in sync by every mutator.
type Board struct {
	size    int
	squares []Ref
	where   [2][]int
}

// NewBoard returns an empty board with the given edge length.
func NewBoard(size int) (*Board, error) {
	if size < 1 || size > MaxBoardSize {
		return nil, fmt.Errorf("board size %d out of range [1,%d]", size, MaxBoardSize)
	}
	return &Board{size: size, squares: make([]Ref, size*size)}, nil
}

// Size is the edge length.
func (b *Board) Size() int { return b.size }

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < b.size && c.Row < b.size
}

func (b *Board) at(c Coord) int { return c.Row*b.size + c.Col }

// At returns the reference on c, NoRef for empty or off-board squares.
func (b *Board) At(c Coord) Ref {
	if !b.InBounds(c) {
		return NoRef
	}
	return b.squares[b.at(c)]
}

// Occupied reports whether c holds a piece.
func (b *Board) Occupied(c Coord) bool { return !b.At(c).Empty() }

// Locate returns the square holding the referenced piece.
func (b *Board) Locate(r Ref) (Coord, bool) {
	if r.Empty() {
		return NoCoord, false
	}
	idx := b.where[r.Color()]
	s := r.Slot()
	if s >= len(idx) || idx[s] < 0 {
		return NoCoord, false
	}
	return Coord{Col: idx[s] % b.size, Row: idx[s] / b.size}, true
}

func (b *Board) index(r Ref, sq int) {
	c, s := r.Color(), r.Slot()
	for len(b.where[c]) <= s {
		b.where[c] = append(b.where[c], -1)
	}
	b.where[c][s] = sq
}

// Set places r on c, returning whatever was there before (detached).
func (b *Board) Set(c Coord, r Ref) (Ref, error) {
	if !b.InBounds(c) {
		return NoRef, fmt.Errorf("square %v off a %dx%d board", c, b.size, b.size)
	}
	prev := b.Remove(c)
	if !r.Empty() {
		if old, ok := b.Locate(r); ok {
			b.squares[b.at(old)] = NoRef
		}
		b.squares[b.at(c)] = r
		b.index(r, b.at(c))
	}
	return prev, nil
}

// Remove empties c and returns the reference that stood there.
func (b *Board) Remove(c Coord) Ref {
	if !b.InBounds(c) {
		return NoRef
	}
	i := b.at(c)
	r := b.squares[i]
	if r.Empty() {
		return NoRef
	}
	b.squares[i] = NoRef
	b.where[r.Color()][r.Slot()] = -1
	return r
}

// Move relocates the piece on from to to. A piece on to is removed and
// returned. Moving from an empty square is an error.
func (b *Board) Move(from, to Coord) (Ref, error) {
	if !b.InBounds(from) || !b.InBounds(to) {
		return NoRef, fmt.Errorf("move %v-%v leaves the board", from, to)
	}
	r := b.Remove(from)
	if r.Empty() {
		return NoRef, fmt.Errorf("no piece on %v", from)
	}
	captured := b.Remove(to)
	b.squares[b.at(to)] = r
	b.index(r, b.at(to))
	return captured, nil
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	c := &Board{size: b.size, squares: append([]Ref(nil), b.squares...)}
	for i := range b.where {
		c.where[i] = append([]int(nil), b.where[i]...)
	}
	return c
}

// Validate cross-checks the grid against the reverse index.
func (b *Board) Validate() error {
	seen := 0
	for i, r := range b.squares {
		if r.Empty() {
			continue
		}
		seen++
		idx := b.where[r.Color()]
		if r.Slot() >= len(idx) || idx[r.Slot()] != i {
			return fmt.Errorf("square %d holds %v/%d but the index disagrees", i, r.Color(), r.Slot())
		}
	}
	indexed := 0
	for _, side := range b.where {
		for _, sq := range side {
			if sq >= 0 {
				indexed++
			}
		}
	}
	if seen != indexed {
		return fmt.Errorf("grid has %d pieces, index has %d", seen, indexed)
	}
	return nil
}
