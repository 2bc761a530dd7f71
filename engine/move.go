package engine

import (
	"chess-rules/board"
)

// Move is one entry of the game history.
type Move struct {
	Number int
	Ply    int
	Color  board.Color
	// Piece is the mover's type before the move; Promoted is set when the
	// move promoted it.
	Piece    board.PieceType
	Promoted board.PieceType
	PieceID  string
	Captured string
	From     board.Coord
	To       board.Coord
	Actions  ActionSet
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return coordMove(m.From, m.To, m.Promoted)
}

func coordMove(from, to board.Coord, promoted board.PieceType) string {
	s := from.String() + to.String()
	if promoted != board.NoPieceType {
		s += string(promoted.Letter() + ('a' - 'A'))
	}
	return s
}
