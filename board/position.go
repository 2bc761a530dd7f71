package board

import "fmt"

// Position bundles the grid with both teams and the current ply, which is
// everything the move generators need.
type Position struct {
	Board *Board
	Teams [2]*Team
	Ply   int
}

// NewPosition returns an empty position of the given size.
func NewPosition(size int) (*Position, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &Position{Board: b, Teams: [2]*Team{NewTeam(White), NewTeam(Black)}}, nil
}

// Size is the board edge length.
func (p *Position) Size() int { return p.Board.size }

// Place registers a new piece and puts it on c.
func (p *Position) Place(c Coord, color Color, pt PieceType) (*Piece, error) {
	if !p.Board.InBounds(c) {
		return nil, fmt.Errorf("square %v off the board", c)
	}
	if p.Board.Occupied(c) {
		return nil, fmt.Errorf("square %v already occupied", c)
	}
	slot := p.Teams[color].Register(pt)
	if _, err := p.Board.Set(c, MakeRef(color, slot)); err != nil {
		return nil, err
	}
	return p.Teams[color].Piece(slot), nil
}

// Piece resolves a reference.
func (p *Position) Piece(r Ref) *Piece {
	if r.Empty() {
		return nil
	}
	return p.Teams[r.Color()].Piece(r.Slot())
}

// PieceAt returns the piece on c or nil.
func (p *Position) PieceAt(c Coord) *Piece { return p.Piece(p.Board.At(c)) }

// Locate returns the square of a piece.
func (p *Position) Locate(pc *Piece) (Coord, bool) {
	if pc == nil || !pc.Alive {
		return NoCoord, false
	}
	return p.Board.Locate(MakeRef(pc.Color, pc.Slot))
}

// KingSquare returns the square of the side's king.
func (p *Position) KingSquare(c Color) (Coord, bool) {
	return p.Locate(p.Teams[c].King())
}

// Capture removes the piece on c from the board and marks it dead.
func (p *Position) Capture(c Coord) *Piece {
	pc := p.Piece(p.Board.Remove(c))
	if pc != nil {
		pc.Alive = false
	}
	return pc
}

// Clone deep-copies the position.
func (p *Position) Clone() *Position {
	return &Position{
		Board: p.Board.Clone(),
		Teams: [2]*Team{p.Teams[White].Clone(), p.Teams[Black].Clone()},
		Ply:   p.Ply,
	}
}

// Validate checks board consistency, the one-king-per-team rule and that
// every living piece stands somewhere.
func (p *Position) Validate() error {
	if err := p.Board.Validate(); err != nil {
		return err
	}
	for _, t := range p.Teams {
		if t.Kings() != 1 {
			return fmt.Errorf("%v has %d kings, want 1", t.Color(), t.Kings())
		}
		for _, pc := range t.Alive() {
			if _, ok := p.Locate(pc); !ok {
				return fmt.Errorf("living piece %s is not on the board", pc.ID)
			}
		}
	}
	return nil
}
