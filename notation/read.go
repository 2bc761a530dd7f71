// Package notation reads and writes moves in simplified standard algebraic
// notation, resolving them against a game's legal moves.
package notation

import (
	"fmt"
	"strings"

	"chess-rules/board"
	"chess-rules/engine"
)

// ParseError reports a token that could not be turned into a move.
type ParseError struct {
	Token  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notation %q: %s: %v", e.Token, e.Reason, e.Err)
	}
	return fmt.Sprintf("notation %q: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

type castleSide uint8

const (
	noCastle castleSide = iota
	castleKing
	castleQueen
)

// token is a parsed move token before it is resolved against a position.
type token struct {
	piece   board.PieceType
	to      board.Coord
	fromCol int
	fromRow int
	promote board.PieceType
	castle  castleSide
}

// parseToken splits a SAN token. Capture, check and annotation marks are
// ignored; legality decides those.
func parseToken(raw string) (token, error) {
	tk := token{piece: board.Pawn, fromCol: -1, fromRow: -1}
	s := raw
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimRight(s, "+#!?")
	switch s {
	case "O-O", "0-0":
		tk.castle = castleKing
		return tk, nil
	case "O-O-O", "0-0-0":
		tk.castle = castleQueen
		return tk, nil
	}
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+2 != len(s) {
			return tk, &ParseError{Token: raw, Reason: "malformed promotion"}
		}
		tk.promote = board.PieceTypeFromLetter(s[i+1])
		s = s[:i]
	}

	var cols, rows []int
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			pt := board.PieceTypeFromLetter(ch)
			if pt == board.NoPieceType {
				return tk, &ParseError{Token: raw, Reason: fmt.Sprintf("unknown piece %q", ch)}
			}
			if i == 0 {
				tk.piece = pt
			} else if len(rows) > 0 && tk.promote == board.NoPieceType {
				tk.promote = pt
			} else {
				return tk, &ParseError{Token: raw, Reason: "piece letter out of place"}
			}
		case ch >= 'a' && ch <= 'z' && ch != 'x':
			cols = append(cols, int(ch-'a'))
		case ch >= '0' && ch <= '9':
			n := 0
			for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
				n = n*10 + int(s[i]-'0')
			}
			i--
			rows = append(rows, n-1)
		case ch == 'x' || ch == '-':
		default:
			return tk, &ParseError{Token: raw, Reason: fmt.Sprintf("unexpected character %q", ch)}
		}
	}
	if len(cols) == 0 || len(rows) == 0 || len(cols) > 2 || len(rows) > 2 {
		return tk, &ParseError{Token: raw, Reason: "no target square"}
	}
	tk.to = board.Sq(cols[len(cols)-1], rows[len(rows)-1])
	if len(cols) == 2 {
		tk.fromCol = cols[0]
	}
	if len(rows) == 2 {
		tk.fromRow = rows[0]
	}
	if tk.promote == board.King || tk.promote == board.Pawn {
		return tk, &ParseError{Token: raw, Reason: "cannot promote to " + tk.promote.String()}
	}
	return tk, nil
}

// ReadMove resolves a SAN token against the legal moves of the side to move.
// promoteTo is Queen unless the token names another piece.
func ReadMove(g *engine.Game, raw string) (from, to board.Coord, promoteTo board.PieceType, err error) {
	tk, err := parseToken(raw)
	if err != nil {
		return board.NoCoord, board.NoCoord, board.NoPieceType, err
	}
	promoteTo = board.Queen
	if tk.promote != board.NoPieceType {
		promoteTo = tk.promote
	}
	if tk.castle != noCastle {
		ks, ok := g.Position().KingSquare(g.OnMove())
		if !ok {
			return board.NoCoord, board.NoCoord, promoteTo, &ParseError{Token: raw, Reason: "no king to castle"}
		}
		dir := board.Right
		if tk.castle == castleQueen {
			dir = board.Left
		}
		return ks, ks.Add(dir.Scale(2)), promoteTo, nil
	}

	var found []engine.Validation
	for _, v := range g.LegalMoves() {
		if v.To != tk.to {
			continue
		}
		pc, _ := g.PieceAt(v.From)
		if pc.Type != tk.piece {
			continue
		}
		if (tk.fromCol >= 0 && v.From.Col != tk.fromCol) || (tk.fromRow >= 0 && v.From.Row != tk.fromRow) {
			continue
		}
		found = append(found, v)
	}
	switch len(found) {
	case 0:
		return board.NoCoord, board.NoCoord, promoteTo, &ParseError{Token: raw, Reason: "no legal move matches", Err: engine.ErrIllegalMove}
	case 1:
		return found[0].From, found[0].To, promoteTo, nil
	}
	return board.NoCoord, board.NoCoord, promoteTo, &ParseError{Token: raw, Reason: fmt.Sprintf("ambiguous between %d pieces", len(found))}
}

// Apply plays a whitespace-separated list of SAN tokens. Move numbers and
// result markers are skipped.
func Apply(g *engine.Game, text string) error {
	for _, raw := range strings.Fields(text) {
		if skipToken(raw) {
			continue
		}
		from, to, pt, err := ReadMove(g, raw)
		if err != nil {
			return err
		}
		ok, err := g.MakeMoveAs(from, to, pt)
		if err != nil {
			return &ParseError{Token: raw, Reason: "move failed", Err: err}
		}
		if !ok {
			return &ParseError{Token: raw, Reason: "move rejected", Err: engine.ErrIllegalMove}
		}
	}
	return nil
}

func skipToken(raw string) bool {
	switch raw {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return strings.HasSuffix(raw, ".") && strings.Trim(raw, "0123456789.") == ""
}

// Replay starts a game from cfg and plays text on it.
func Replay(cfg engine.Config, text string, opts ...engine.Option) (*engine.Game, error) {
	g, err := engine.NewGame(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := Apply(g, text); err != nil {
		return nil, err
	}
	return g, nil
}
