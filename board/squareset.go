package board

import (
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// SquareSet is a set of coordinates on the 16x16 address grid. It is a value
// type: copies are independent. Coordinates outside the grid are ignored by
// Add and never reported by Has.
type SquareSet [4]uint64

// SetOf builds a SquareSet from the given coordinates.
func SetOf(cs ...Coord) SquareSet {
	var s SquareSet
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

func (s *SquareSet) Add(c Coord) {
	if !c.inGrid() {
		return
	}
	i := c.index()
	s[i>>6] |= 1 << uint(i&63)
}

func (s *SquareSet) Remove(c Coord) {
	if !c.inGrid() {
		return
	}
	i := c.index()
	s[i>>6] &^= 1 << uint(i&63)
}

func (s SquareSet) Has(c Coord) bool {
	if !c.inGrid() {
		return false
	}
	i := c.index()
	return s[i>>6]&(1<<uint(i&63)) != 0
}

func (s SquareSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) + bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

func (s SquareSet) Empty() bool { return s[0]|s[1]|s[2]|s[3] == 0 }

func (s SquareSet) Union(o SquareSet) SquareSet {
	return SquareSet{s[0] | o[0], s[1] | o[1], s[2] | o[2], s[3] | o[3]}
}

func (s SquareSet) Intersect(o SquareSet) SquareSet {
	return SquareSet{s[0] & o[0], s[1] & o[1], s[2] & o[2], s[3] & o[3]}
}

func (s SquareSet) Without(o SquareSet) SquareSet {
	return SquareSet{s[0] &^ o[0], s[1] &^ o[1], s[2] &^ o[2], s[3] &^ o[3]}
}

// Each calls fn for every member in row-major order, stopping early when fn
// returns false.
func (s SquareSet) Each(fn func(Coord) bool) {
	for w := 0; w < len(s); w++ {
		word := s[w]
		for word != 0 {
			i := bits.TrailingZeros64(word)
			word &= word - 1
			if !fn(coordOf(w<<6 | i)) {
				return
			}
		}
	}
}

// Coords lists the members in row-major order.
func (s SquareSet) Coords() []Coord {
	out := make([]Coord, 0, s.Len())
	s.Each(func(c Coord) bool {
		out = append(out, c)
		return true
	})
	return out
}

func (s SquareSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Each(func(c Coord) bool {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(c.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign[T constraints.Signed](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
