package engine

import (
	"chess-rules/board"
)

// Validation is the verdict on one candidate move.
type Validation struct {
	From    board.Coord
	To      board.Coord
	Actions ActionSet
	Applied RuleSet
	Legal   bool
}

// RuleValidator runs the rule list against its game. It holds a non-owning
// reference to the game; a cloned game gets its own validator.
type RuleValidator struct {
	game   *Game
	rules  []Rule
	active [numRules]bool
}

func newRuleValidator(g *Game) *RuleValidator {
	v := &RuleValidator{game: g, rules: defaultRules()}
	for i := range v.active {
		v.active[i] = true
	}
	return v
}

// Clone returns a validator bound to g with the same activation flags.
func (v *RuleValidator) Clone(g *Game) *RuleValidator {
	c := &RuleValidator{game: g, rules: v.rules, active: v.active}
	return c
}

// Rules returns the registered rules in evaluation order.
func (v *RuleValidator) Rules() []Rule { return v.rules }

// SetActive toggles rules on or off. With no ids it toggles every rule.
func (v *RuleValidator) SetActive(active bool, ids ...RuleID) {
	if len(ids) == 0 {
		for i := range v.active {
			v.active[i] = active
		}
		return
	}
	for _, id := range ids {
		if id < numRules {
			v.active[id] = active
		}
	}
}

// ActiveRules lists the ids currently switched on.
func (v *RuleValidator) ActiveRules() []RuleID {
	var out []RuleID
	for _, r := range v.rules {
		if v.active[r.ID()] {
			out = append(out, r.ID())
		}
	}
	return out
}

// Validate runs the phased rule pipeline for from-to.
func (v *RuleValidator) Validate(from, to board.Coord) Validation {
	return v.validate(from, to, 0)
}

// validate skips the rules in the skip set in addition to inactive ones.
func (v *RuleValidator) validate(from, to board.Coord, skip RuleSet) Validation {
	res := Validation{From: from, To: to, Legal: true}
	for order := 0; order <= MaxOrder && res.Legal; order++ {
		for _, r := range v.rules {
			id := r.ID()
			if id.Order() != order || !v.active[id] || skip.Has(id) {
				continue
			}
			if r.Validate(v.game, from, to) {
				res.Actions |= r.Tags()
				res.Applied |= Rules(id)
			}
		}
		res.Legal = evaluateLegality(res)
	}
	return res
}

func evaluateLegality(res Validation) bool {
	if res.Actions.Empty() || !res.Actions.Has(ActionMove) {
		return false
	}
	for _, id := range res.Applied.Slice() {
		if !id.Legal() {
			return false
		}
	}
	return true
}

// ValidateFrom validates every destination the move generator considers for
// the piece on from.
func (v *RuleValidator) ValidateFrom(from board.Coord) map[board.Coord]Validation {
	return v.validateFrom(from, 0)
}

func (v *RuleValidator) validateFrom(from board.Coord, skip RuleSet) map[board.Coord]Validation {
	out := make(map[board.Coord]Validation)
	board.PseudoLegalMoves(v.game.pos, from).Each(func(to board.Coord) bool {
		out[to] = v.validate(from, to, skip)
		return true
	})
	return out
}

// eachLegal calls fn with every legal destination from from until fn
// returns false. It reports whether iteration ran to completion.
func (v *RuleValidator) eachLegal(from board.Coord, skip RuleSet, fn func(Validation) bool) bool {
	done := true
	board.PseudoLegalMoves(v.game.pos, from).Each(func(to board.Coord) bool {
		res := v.validate(from, to, skip)
		if res.Legal && !fn(res) {
			done = false
			return false
		}
		return true
	})
	return done
}

// ApplyAdditionalActions runs the side effect of every rule whose tags are
// all present in actions.
func (v *RuleValidator) ApplyAdditionalActions(actions ActionSet, from, to board.Coord) error {
	for _, r := range v.rules {
		if !actions.ContainsAll(r.Tags()) {
			continue
		}
		if err := r.Apply(v.game, from, to); err != nil {
			return &ruleFault{rule: r.ID(), err: err}
		}
	}
	return nil
}

type ruleFault struct {
	rule RuleID
	err  error
}

func (f *ruleFault) Error() string { return f.rule.String() + ": " + f.err.Error() }
func (f *ruleFault) Unwrap() error { return f.err }
