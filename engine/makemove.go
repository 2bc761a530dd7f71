package engine

import (
	"fmt"

	"go.uber.org/zap"

	"chess-rules/board"
)

// MakeMove plays from-to if it is legal, promoting to the game's default
// piece. An ordinary illegal move returns false and a nil error. A non-nil
// error is an *IllegalMoveError: the move validated but applying it failed,
// and the game was rolled back.
func (g *Game) MakeMove(from, to board.Coord) (bool, error) {
	return g.MakeMoveAs(from, to, g.promoteTo)
}

// MakeMoveAs is MakeMove with an explicit promotion piece. promoteTo is
// ignored for moves that do not promote.
func (g *Game) MakeMoveAs(from, to board.Coord, promoteTo board.PieceType) (bool, error) {
	g.mu.Lock()
	ok, err := g.makeMove(from, to, promoteTo)
	g.mu.Unlock()
	if ok {
		g.Emit()
	}
	return ok, err
}

// Play is MakeMove for callers that treat rejection as an error.
func (g *Game) Play(from, to board.Coord) error {
	ok, err := g.MakeMove(from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %v-%v", ErrIllegalMove, from, to)
	}
	return nil
}

func (g *Game) makeMove(from, to board.Coord, promoteTo board.PieceType) (bool, error) {
	if _, ok := PromotionAction(promoteTo); !ok {
		return false, fmt.Errorf("%w: %v", ErrInvalidPromotion, promoteTo)
	}
	res := g.validator.Validate(from, to)
	if !res.Legal {
		return false, nil
	}
	snap := g.snapshot()
	mv, err := g.apply(res, promoteTo)
	if err != nil {
		g.restore(snap)
		fault := &IllegalMoveError{
			GameID:      g.id,
			From:        from,
			To:          to,
			Actions:     res.Actions,
			ActiveRules: g.validator.ActiveRules(),
			Alive:       [2][]string{g.pos.Teams[board.White].AliveIDs(), g.pos.Teams[board.Black].AliveIDs()},
			Err:         err,
		}
		g.log.Error("applying validated move failed",
			zap.String("game", g.id),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Stringer("actions", res.Actions),
			zap.Any("active_rules", fault.ActiveRules),
			zap.Strings("white_alive", fault.Alive[board.White]),
			zap.Strings("black_alive", fault.Alive[board.Black]),
			zap.Error(err))
		return false, fault
	}
	g.pushUndo(snap)
	if ce := g.log.Check(zap.DebugLevel, "move"); ce != nil {
		ce.Write(
			zap.String("game", g.id),
			zap.Int("number", mv.Number),
			zap.Stringer("color", mv.Color),
			zap.Stringer("move", mv),
			zap.Stringer("actions", mv.Actions),
			zap.Stringer("state", g.state))
	}
	return true, nil
}

// apply mutates the game for a validated move.
func (g *Game) apply(res Validation, promoteTo board.PieceType) (Move, error) {
	from, to := res.From, res.To
	mover := g.pos.PieceAt(from)
	if mover == nil {
		return Move{}, fmt.Errorf("no piece on %v", from)
	}
	mv := Move{
		Number:  g.moveNumber,
		Ply:     g.pos.Ply,
		Color:   mover.Color,
		Piece:   mover.Type,
		PieceID: mover.ID,
		From:    from,
		To:      to,
	}
	g.pending = pendingMove{promoteTo: promoteTo}

	if victim := g.pos.Capture(to); victim != nil {
		mv.Captured = victim.ID
	}
	if _, err := g.pos.Board.Move(from, to); err != nil {
		return Move{}, err
	}
	mover.Moved(g.pos.Ply)
	if err := g.validator.ApplyAdditionalActions(res.Actions, from, to); err != nil {
		return Move{}, err
	}

	actions := res.Actions
	if actions.Has(ActionPromoteQueen) {
		mv.Promoted = promoteTo
		if a, _ := PromotionAction(promoteTo); a != ActionPromoteQueen {
			actions = actions.Without(ActionPromoteQueen).With(a)
		}
	}

	g.pos.Ply++
	g.onMove = mover.Color.Opposite()
	if mover.Color == board.Black {
		g.moveNumber++
	}
	g.recompute()
	actions |= g.postValidate()
	mv.Actions = actions
	g.history = append(g.history, mv)

	switch {
	case actions.Has(ActionCheckmate):
		g.state = wonBy(mover.Color)
	case actions.Has(ActionStalemate):
		g.state = Tie
	default:
		g.state = toMove(g.onMove)
	}
	return mv, nil
}

// postValidate tags the position reached for the side now on move.
func (g *Game) postValidate() ActionSet {
	side := g.onMove
	check := g.IsCheckFor(side)
	moves := g.HasLegalMovesLeft(side)
	var s ActionSet
	switch {
	case check && !moves:
		s = Actions(ActionCheck, ActionCheckmate)
	case check:
		s = Actions(ActionCheck)
	case !moves:
		s = Actions(ActionStalemate)
	}
	return s
}
