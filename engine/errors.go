package engine

import (
	"errors"
	"fmt"
	"strings"

	"chess-rules/board"
)

var (
	ErrInvalidConfig    = errors.New("invalid game config")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNoUndo           = errors.New("nothing to undo")
)

// IllegalMoveError reports a move that passed validation but whose
// application failed. The game is rolled back before it is returned.
type IllegalMoveError struct {
	GameID      string
	From        board.Coord
	To          board.Coord
	Actions     ActionSet
	ActiveRules []RuleID
	Alive       [2][]string
	Err         error
}

func (e *IllegalMoveError) Error() string {
	rules := make([]string, len(e.ActiveRules))
	for i, id := range e.ActiveRules {
		rules[i] = id.String()
	}
	return fmt.Sprintf("game %s: applying %v-%v %v failed: %v (active rules: %s; white: %s; black: %s)",
		e.GameID, e.From, e.To, e.Actions, e.Err,
		strings.Join(rules, ","), strings.Join(e.Alive[board.White], ","), strings.Join(e.Alive[board.Black], ","))
}

func (e *IllegalMoveError) Unwrap() error { return e.Err }
