package notation

import (
	"fmt"
	"strings"

	"chess-rules/board"
	"chess-rules/engine"
)

// WriteMove renders from-to in SAN for the game's current position, which
// must be the position before the move. The game is not modified.
func WriteMove(g *engine.Game, from, to board.Coord, promoteTo board.PieceType) (string, error) {
	v := g.Validate(from, to)
	if !v.Legal {
		return "", fmt.Errorf("%w: %v-%v", engine.ErrIllegalMove, from, to)
	}
	pc, _ := g.PieceAt(from)

	var sb strings.Builder
	switch {
	case v.Actions.Has(engine.ActionCastleKing):
		sb.WriteString("O-O")
	case v.Actions.Has(engine.ActionCastleQueen):
		sb.WriteString("O-O-O")
	default:
		capture := v.Actions.Has(engine.ActionCapture) || v.Actions.Has(engine.ActionEnPassant)
		if pc.Type == board.Pawn {
			if capture {
				sb.WriteByte(from.File())
			}
		} else {
			sb.WriteByte(pc.Type.Letter())
			sb.WriteString(disambiguate(g, pc.Type, from, to))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if v.Actions.Has(engine.ActionPromoteQueen) {
			sb.WriteByte('=')
			sb.WriteByte(promoteTo.Letter())
		}
	}

	probe := g.Clone("notation")
	ok, err := probe.MakeMoveAs(from, to, promoteTo)
	if err != nil {
		return "", err
	}
	if ok {
		last, _ := probe.LastMove()
		switch {
		case last.Actions.Has(engine.ActionCheckmate):
			sb.WriteByte('#')
		case last.Actions.Has(engine.ActionCheck):
			sb.WriteByte('+')
		}
	}
	return sb.String(), nil
}

// disambiguate returns the file, rank or square needed to tell the mover
// apart from other pieces of the same type that can reach to.
func disambiguate(g *engine.Game, pt board.PieceType, from, to board.Coord) string {
	var rivals []board.Coord
	for _, v := range g.LegalMoves() {
		if v.To != to || v.From == from {
			continue
		}
		if pc, _ := g.PieceAt(v.From); pc.Type == pt {
			rivals = append(rivals, v.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameCol, sameRow := false, false
	for _, r := range rivals {
		sameCol = sameCol || r.Col == from.Col
		sameRow = sameRow || r.Row == from.Row
	}
	switch {
	case !sameCol:
		return string(from.File())
	case !sameRow:
		return from.Rank()
	}
	return from.String()
}

// Write renders history as numbered SAN ("1. e4 e5 2. Nf3"), replaying it
// from cfg.
func Write(cfg engine.Config, history []engine.Move) (string, error) {
	g, err := engine.NewGame(cfg)
	if err != nil {
		return "", err
	}
	var parts []string
	for i, m := range history {
		promo := m.Promoted
		if promo == board.NoPieceType {
			promo = board.Queen
		}
		san, err := WriteMove(g, m.From, m.To, promo)
		if err != nil {
			return "", err
		}
		switch {
		case g.OnMove() == board.White:
			parts = append(parts, fmt.Sprintf("%d.", g.MoveNumber()))
		case i == 0:
			parts = append(parts, fmt.Sprintf("%d...", g.MoveNumber()))
		}
		parts = append(parts, san)
		if err := playRecorded(g, m, promo); err != nil {
			return "", err
		}
	}
	return strings.Join(parts, " "), nil
}

func playRecorded(g *engine.Game, m engine.Move, promo board.PieceType) error {
	ok, err := g.MakeMoveAs(m.From, m.To, promo)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %v", engine.ErrIllegalMove, m)
	}
	return nil
}
