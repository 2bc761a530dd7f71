package board

import (
	"fmt"
	"strings"
)

// StartPlacement is the standard 8x8 initial setup.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// PlacementError reports a malformed placement string.
type PlacementError struct {
	Input  string
	Token  string
	Reason string
}

func (e *PlacementError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid placement %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid placement %q: %s at %q", e.Input, e.Reason, e.Token)
}

// ParsePlacement builds a position from the piece-placement field of a FEN.
// The first '/'-separated segment is the top row; the number of segments is
// the board size. Runs of digits are empty-square counts, so "10" skips ten
// squares on large boards. Pieces are registered scanning rows top to bottom,
// columns left to right.
func ParsePlacement(s string) (*Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &PlacementError{Input: s, Reason: "empty placement"}
	}
	rows := strings.Split(s, "/")
	size := len(rows)
	pos, err := NewPosition(size)
	if err != nil {
		return nil, &PlacementError{Input: s, Reason: err.Error()}
	}
	for i, row := range rows {
		if row == "" {
			return nil, &PlacementError{Input: s, Token: "/", Reason: fmt.Sprintf("empty row %d", i+1)}
		}
		r := size - 1 - i
		col := 0
		run := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '0' && ch <= '9' {
				run = run*10 + int(ch-'0')
				continue
			}
			col += run
			run = 0
			pt := PieceTypeFromLetter(ch)
			if pt == NoPieceType {
				return nil, &PlacementError{Input: s, Token: string(ch), Reason: "unrecognized piece character"}
			}
			if col >= size {
				return nil, &PlacementError{Input: s, Token: row, Reason: "too many squares in row"}
			}
			color := White
			if ch >= 'a' {
				color = Black
			}
			if _, err := pos.Place(Coord{Col: col, Row: r}, color, pt); err != nil {
				return nil, &PlacementError{Input: s, Token: string(ch), Reason: err.Error()}
			}
			col++
		}
		col += run
		if col != size {
			return nil, &PlacementError{Input: s, Token: row, Reason: fmt.Sprintf("row has %d columns, want %d", col, size)}
		}
	}
	markDisplacedPawns(pos)
	return pos, nil
}

// priorPly stamps pieces known to have moved before the position was set up.
// It is far enough back that no en-passant window is open.
const priorPly = -2

// markDisplacedPawns records a pawn found off its starting row as already
// moved, so it cannot double-step.
func markDisplacedPawns(pos *Position) {
	n := pos.Size()
	for _, t := range pos.Teams {
		start := t.Color().HomeRow(n) + t.Color().Forward().Row
		for _, pc := range t.ByType(Pawn, true) {
			if c, ok := pos.Locate(pc); ok && c.Row != start {
				pc.TimesMoved, pc.LastMovedAt = 1, priorPly
			}
		}
	}
}

// ParseFEN accepts a full or partial FEN. The engine derives castling and
// en-passant eligibility from piece history, so those fields are translated
// into history: a missing castling right marks its rook as moved, and an
// en-passant square marks the pawn in front of it as having just
// double-stepped. Clock fields are ignored. A missing side-to-move field
// means White.
func ParseFEN(fen string) (*Position, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, White, &PlacementError{Input: fen, Reason: "empty FEN"}
	}
	pos, err := ParsePlacement(fields[0])
	if err != nil {
		return nil, White, err
	}
	side := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			side = Black
		default:
			return nil, White, &PlacementError{Input: fen, Token: fields[1], Reason: "side to move must be 'w' or 'b'"}
		}
	}
	if len(fields) > 2 {
		if err := applyCastlingField(pos, fields[2]); err != nil {
			return nil, White, &PlacementError{Input: fen, Token: fields[2], Reason: err.Error()}
		}
	}
	if len(fields) > 3 && fields[3] != "-" {
		if err := applyEnPassantField(pos, side, fields[3]); err != nil {
			return nil, White, &PlacementError{Input: fen, Token: fields[3], Reason: err.Error()}
		}
	}
	return pos, side, nil
}

func applyCastlingField(pos *Position, field string) error {
	var keep [2][2]bool
	if field != "-" {
		for i := 0; i < len(field); i++ {
			switch field[i] {
			case 'K':
				keep[White][0] = true
			case 'Q':
				keep[White][1] = true
			case 'k':
				keep[Black][0] = true
			case 'q':
				keep[Black][1] = true
			default:
				return fmt.Errorf("invalid castling character %q", field[i])
			}
		}
	}
	for _, c := range []Color{White, Black} {
		for i, kingSide := range []bool{true, false} {
			if keep[c][i] {
				continue
			}
			if _, rook, ok := castleRook(pos, c, kingSide); ok {
				pc := pos.PieceAt(rook)
				pc.TimesMoved, pc.LastMovedAt = 1, priorPly
			}
		}
	}
	return nil
}

func applyEnPassantField(pos *Position, side Color, field string) error {
	sq, err := ParseCoord(field)
	if err != nil || !pos.Board.InBounds(sq) {
		return fmt.Errorf("invalid en passant square")
	}
	enemy := side.Opposite()
	pc := pos.PieceAt(sq.Add(enemy.Forward()))
	if pc == nil || pc.Type != Pawn || pc.Color != enemy {
		return fmt.Errorf("no pawn in front of en passant square")
	}
	pos.Ply = 1
	pc.TimesMoved, pc.LastMovedAt = 1, 0
	return nil
}

// WritePlacement renders the position's placement field.
func WritePlacement(p *Position) string {
	var sb strings.Builder
	n := p.Size()
	for row := n - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < n; col++ {
			pc := p.PieceAt(Coord{Col: col, Row: row})
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteByte(pc.FENLetter())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// WriteFEN renders a full FEN for 8x8 positions, deriving castling rights
// from unmoved kings and rooks on their home squares. Used to hand positions
// to external move generators.
func WriteFEN(p *Position, side Color) string {
	rights := ""
	for _, c := range []Color{White, Black} {
		if CanCastleShape(p, c, true) {
			rights += castleLetter(c, 'K')
		}
		if CanCastleShape(p, c, false) {
			rights += castleLetter(c, 'Q')
		}
	}
	if rights == "" {
		rights = "-"
	}
	ep := "-"
	if sq, ok := EnPassantSquare(p, side); ok {
		ep = sq.String()
	}
	stm := "w"
	if side == Black {
		stm = "b"
	}
	return fmt.Sprintf("%s %s %s %s 0 1", WritePlacement(p), stm, rights, ep)
}

func castleLetter(c Color, l byte) string {
	if c == Black {
		l += 'a' - 'A'
	}
	return string(l)
}
