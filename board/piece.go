package board

import "fmt"

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

// Letter returns "W" or "B", the prefix used in piece ids.
func (c Color) Letter() string {
	if c == Black {
		return "B"
	}
	return "W"
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Forward is the pawn push direction for the side.
func (c Color) Forward() Coord {
	if c == Black {
		return Down
	}
	return Up
}

// HomeRow is the side's back rank on a board of the given size.
func (c Color) HomeRow(size int) int {
	if c == Black {
		return size - 1
	}
	return 0
}

// ParseColor accepts "white"/"black" and the FEN letters "w"/"b".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "White", "WHITE", "w", "W":
		return White, nil
	case "black", "Black", "BLACK", "b", "B":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"NONE", "PAWN", "KNIGHT", "BISHOP", "ROOK", "QUEEN", "KING"}

func (pt PieceType) String() string {
	if int(pt) < len(pieceTypeNames) {
		return pieceTypeNames[pt]
	}
	return fmt.Sprintf("PieceType(%d)", uint8(pt))
}

// Letter is the uppercase notation letter ('P', 'N', ...).
func (pt PieceType) Letter() byte {
	return " PNBRQK"[pt]
}

// IsSlider reports whether the piece moves along rays.
func (pt PieceType) IsSlider() bool { return pt == Bishop || pt == Rook || pt == Queen }

// PieceTypeFromLetter maps a notation letter of either case to its type.
func PieceTypeFromLetter(ch byte) PieceType {
	switch ch {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPieceType
}

// Piece is one physical piece. Its identity (ID, Slot, Color) is fixed at
// registration; Type changes only on promotion.
type Piece struct {
	ID          string
	Slot        int
	Type        PieceType
	Color       Color
	Alive       bool
	TimesMoved  int
	LastMovedAt int
}

// Moved records that the piece moved at the given ply.
func (p *Piece) Moved(ply int) {
	p.TimesMoved++
	p.LastMovedAt = ply
}

// FENLetter is the placement letter, uppercase for White.
func (p *Piece) FENLetter() byte {
	l := p.Type.Letter()
	if p.Color == Black {
		return l + ('a' - 'A')
	}
	return l
}

func (p *Piece) String() string { return p.ID }
