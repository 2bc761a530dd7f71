package board

import (
	"fmt"
	"strconv"
)

// MaxBoardSize is the largest supported board edge. SquareSet addresses a
// fixed 16x16 grid.
const MaxBoardSize = 16

// Coord is a column/row pair, 0-indexed from White's lower-left corner.
// Coordinates are unbounded; bounds are a property of the Board.
type Coord struct {
	Col int
	Row int
}

// NoCoord marks an absent location in reverse indexes.
var NoCoord = Coord{Col: -1, Row: -1}

// Direction vectors.
var (
	Up        = Coord{Col: 0, Row: 1}
	Down      = Coord{Col: 0, Row: -1}
	Left      = Coord{Col: -1, Row: 0}
	Right     = Coord{Col: 1, Row: 0}
	UpLeft    = Coord{Col: -1, Row: 1}
	UpRight   = Coord{Col: 1, Row: 1}
	DownLeft  = Coord{Col: -1, Row: -1}
	DownRight = Coord{Col: 1, Row: -1}
)

var (
	Orthogonal    = [4]Coord{Up, Down, Left, Right}
	Diagonal      = [4]Coord{UpLeft, UpRight, DownLeft, DownRight}
	AllDirections = [8]Coord{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}
)

var knightJumps = [8]Coord{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// Sq is shorthand for Coord{Col: col, Row: row}.
func Sq(col, row int) Coord { return Coord{Col: col, Row: row} }

func (c Coord) Add(o Coord) Coord { return Coord{Col: c.Col + o.Col, Row: c.Row + o.Row} }
func (c Coord) Sub(o Coord) Coord { return Coord{Col: c.Col - o.Col, Row: c.Row - o.Row} }
func (c Coord) Scale(k int) Coord { return Coord{Col: c.Col * k, Row: c.Row * k} }
func (c Coord) Neg() Coord { return Coord{Col: -c.Col, Row: -c.Row} }
func (c Coord) SameRow(o Coord) bool { return c.Row == o.Row }
func (c Coord) SameCol(o Coord) bool { return c.Col == o.Col }
func (c Coord) Equal(o Coord) bool { return c == o }
func (c Coord) IsZero() bool { return c.Col == 0 && c.Row == 0 }
func (c Coord) inGrid() bool { return c.Col >= 0 && c.Row >= 0 && c.Col < MaxBoardSize && c.Row < MaxBoardSize }
func (c Coord) index() int { return c.Row*MaxBoardSize + c.Col }
func coordOf(idx int) Coord { return Coord{Col: idx % MaxBoardSize, Row: idx / MaxBoardSize} }
func (c Coord) File() byte { return byte('a' + c.Col) }
func (c Coord) Rank() string { return strconv.Itoa(c.Row + 1) }

// String renders the coordinate algebraically ("e4"). Off-grid coordinates
// fall back to "(col,row)".
func (c Coord) String() string {
	if !c.inGrid() {
		return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
	}
	return string(c.File()) + c.Rank()
}

// Step returns the unit direction from c towards o when both lie on a common
// rank, file or diagonal. ok is false otherwise or when c == o.
func (c Coord) Step(o Coord) (dir Coord, ok bool) {
	d := o.Sub(c)
	if d.IsZero() {
		return Coord{}, false
	}
	if d.Col != 0 && d.Row != 0 && abs(d.Col) != abs(d.Row) {
		return Coord{}, false
	}
	return Coord{Col: sign(d.Col), Row: sign(d.Row)}, true
}

// ParseCoord parses an algebraic square such as "e4" or "p16".
func ParseCoord(s string) (Coord, error) {
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return NoCoord, fmt.Errorf("invalid square %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return NoCoord, fmt.Errorf("invalid square %q", s)
	}
	return Coord{Col: int(s[0] - 'a'), Row: row - 1}, nil
}
