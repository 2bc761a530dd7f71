package engine

import (
	"fmt"

	"chess-rules/board"
)

// RuleID names a rule kind. Its order and legality contribution are fixed
// per kind.
type RuleID uint8

const (
	RuleGameIsFinished RuleID = iota
	RuleOutOfBounds
	RuleTeamNotOnMove
	RuleAllowedToCapture
	RulePawnMove
	RuleBishopMove
	RuleKnightMove
	RuleRookMove
	RuleQueenMove
	RuleKingMove
	RulePromoting
	RuleEnPassant
	RuleCastleQueenSide
	RuleCastleKingSide
	RuleKingWouldBeInCheck
	numRules
)

// MaxOrder is the last validation phase.
const MaxOrder = 1

var ruleMeta = [numRules]struct {
	name  string
	legal bool
	order int
}{
	RuleGameIsFinished:     {"GAME_IS_FINISHED", false, 0},
	RuleOutOfBounds:        {"POSITION_IS_OUT_OF_BOUNDS", false, 0},
	RuleTeamNotOnMove:      {"TEAM_IS_NOT_ON_MOVE", false, 0},
	RuleAllowedToCapture:   {"ALLOWED_TO_CAPTURE", true, 0},
	RulePawnMove:           {"PAWN_MOVE", true, 0},
	RuleBishopMove:         {"BISHOP_MOVE", true, 0},
	RuleKnightMove:         {"KNIGHT_MOVE", true, 0},
	RuleRookMove:           {"ROOK_MOVE", true, 0},
	RuleQueenMove:          {"QUEEN_MOVE", true, 0},
	RuleKingMove:           {"KING_MOVE", true, 0},
	RulePromoting:          {"PROMOTING", true, 0},
	RuleEnPassant:          {"EN_PASSANT", true, 0},
	RuleCastleQueenSide:    {"CASTLING_QUEEN_SIDE", true, 0},
	RuleCastleKingSide:     {"CASTLING_KING_SIDE", true, 0},
	RuleKingWouldBeInCheck: {"KING_WOULD_BE_IN_CHECK", false, 1},
}

func (id RuleID) String() string {
	if id < numRules {
		return ruleMeta[id].name
	}
	return fmt.Sprintf("RuleID(%d)", uint8(id))
}

// Order is the validation phase the rule runs in.
func (id RuleID) Order() int { return ruleMeta[id].order }

// Legal reports whether firing the rule keeps a move legal. A firing rule
// with Legal() == false disqualifies the move.
func (id RuleID) Legal() bool { return ruleMeta[id].legal }

// RuleSet is a bit set of RuleID.
type RuleSet uint32

func Rules(ids ...RuleID) RuleSet {
	var s RuleSet
	for _, id := range ids {
		s |= 1 << id
	}
	return s
}

func (s RuleSet) Has(id RuleID) bool { return s&(1<<id) != 0 }

func (s RuleSet) Slice() []RuleID {
	var out []RuleID
	for id := RuleID(0); id < numRules; id++ {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Rule is one validation predicate plus its optional post-move side effect.
// Apply runs after the moving piece has been relocated, for every rule whose
// tags are all present in the move's actions.
type Rule interface {
	ID() RuleID
	Tags() ActionSet
	Validate(g *Game, from, to board.Coord) bool
	Apply(g *Game, from, to board.Coord) error
}

// defaultRules returns the full rule list in evaluation order.
func defaultRules() []Rule {
	return []Rule{
		finishedRule{},
		boundsRule{},
		turnRule{},
		captureRule{},
		pieceMoveRule{id: RulePawnMove, pt: board.Pawn},
		pieceMoveRule{id: RuleBishopMove, pt: board.Bishop},
		pieceMoveRule{id: RuleKnightMove, pt: board.Knight},
		pieceMoveRule{id: RuleRookMove, pt: board.Rook},
		pieceMoveRule{id: RuleQueenMove, pt: board.Queen},
		pieceMoveRule{id: RuleKingMove, pt: board.King},
		promotionRule{},
		enPassantRule{},
		castleRule{kingSide: false},
		castleRule{kingSide: true},
		kingSafetyRule{},
	}
}

type noEffect struct{}

func (noEffect) Apply(*Game, board.Coord, board.Coord) error { return nil }

type finishedRule struct{ noEffect }

func (finishedRule) ID() RuleID { return RuleGameIsFinished }
func (finishedRule) Tags() ActionSet { return Actions(ActionMove) }
func (finishedRule) Validate(g *Game, _, _ board.Coord) bool {
	return g.state.Finished()
}

type boundsRule struct{ noEffect }

func (boundsRule) ID() RuleID { return RuleOutOfBounds }
func (boundsRule) Tags() ActionSet { return Actions(ActionMove) }
func (boundsRule) Validate(g *Game, from, to board.Coord) bool {
	return !g.pos.Board.InBounds(from) || !g.pos.Board.InBounds(to)
}

type turnRule struct{ noEffect }

func (turnRule) ID() RuleID { return RuleTeamNotOnMove }
func (turnRule) Tags() ActionSet { return Actions(ActionMove) }
func (turnRule) Validate(g *Game, from, _ board.Coord) bool {
	pc := g.pos.PieceAt(from)
	return pc == nil || pc.Color != g.onMove
}

type captureRule struct{ noEffect }

func (captureRule) ID() RuleID { return RuleAllowedToCapture }
func (captureRule) Tags() ActionSet { return Actions(ActionCapture) }
func (captureRule) Validate(g *Game, from, to board.Coord) bool {
	mover, target := g.pos.PieceAt(from), g.pos.PieceAt(to)
	return mover != nil && target != nil && mover.Color != target.Color
}

// pieceMoveRule accepts the ordinary move geometry of one piece type.
type pieceMoveRule struct {
	noEffect
	id RuleID
	pt board.PieceType
}

func (r pieceMoveRule) ID() RuleID { return r.id }
func (pieceMoveRule) Tags() ActionSet { return Actions(ActionMove) }
func (r pieceMoveRule) Validate(g *Game, from, to board.Coord) bool {
	pc := g.pos.PieceAt(from)
	if pc == nil || pc.Type != r.pt {
		return false
	}
	return board.MovesFor(g.pos, from).Has(to)
}

// promotionRule fires for a pawn reaching the enemy back rank, by push or
// capture. The promotion target is chosen per move; the validator reports
// the queen tag and makeMove rewrites it for other choices.
type promotionRule struct{}

func (promotionRule) ID() RuleID { return RulePromoting }
func (promotionRule) Tags() ActionSet { return Actions(ActionPromoteQueen) }
func (promotionRule) Validate(g *Game, from, to board.Coord) bool {
	pc := g.pos.PieceAt(from)
	if pc == nil || pc.Type != board.Pawn {
		return false
	}
	return to.Row == pc.Color.Opposite().HomeRow(g.pos.Size())
}

func (promotionRule) Apply(g *Game, _, to board.Coord) error {
	pc := g.pos.PieceAt(to)
	if pc == nil || pc.Type != board.Pawn {
		return fmt.Errorf("promotion: no pawn on %v", to)
	}
	pc.Type = g.pending.promoteTo
	return nil
}

type enPassantRule struct{}

func (enPassantRule) ID() RuleID { return RuleEnPassant }
func (enPassantRule) Tags() ActionSet { return Actions(ActionEnPassant, ActionMove) }
func (enPassantRule) Validate(g *Game, from, to board.Coord) bool {
	return board.EnPassantMoves(g.pos, from).Has(to)
}

func (enPassantRule) Apply(g *Game, from, to board.Coord) error {
	victim := board.Sq(to.Col, from.Row)
	if g.pos.Capture(victim) == nil {
		return fmt.Errorf("en passant: no pawn to take on %v", victim)
	}
	return nil
}

type castleRule struct{ kingSide bool }

func (r castleRule) ID() RuleID {
	if r.kingSide {
		return RuleCastleKingSide
	}
	return RuleCastleQueenSide
}

func (r castleRule) Tags() ActionSet {
	if r.kingSide {
		return Actions(ActionCastleKing, ActionMove)
	}
	return Actions(ActionCastleQueen, ActionMove)
}

func (r castleRule) Validate(g *Game, from, to board.Coord) bool {
	if r.kingSide {
		return board.CastleKingSideMoves(g.pos, from).Has(to)
	}
	return board.CastleQueenSideMoves(g.pos, from).Has(to)
}

// Apply moves the rook next to the king, which has already landed on to.
func (r castleRule) Apply(g *Game, from, _ board.Coord) error {
	rookFrom, rookTo := board.CastleRookSquares(g.pos, from, r.kingSide)
	rook := g.pos.PieceAt(rookFrom)
	if rook == nil || rook.Type != board.Rook {
		return fmt.Errorf("castling: no rook on %v", rookFrom)
	}
	if _, err := g.pos.Board.Move(rookFrom, rookTo); err != nil {
		return fmt.Errorf("castling: %w", err)
	}
	rook.Moved(g.pos.Ply)
	return nil
}

// kingSafetyRule disqualifies moves that leave or put the mover's own king
// in check. It reads the per-ply safety cache instead of simulating the move;
// en passant, which clears two squares of one rank, is checked on a scratch
// copy.
type kingSafetyRule struct{ noEffect }

func (kingSafetyRule) ID() RuleID { return RuleKingWouldBeInCheck }
func (kingSafetyRule) Tags() ActionSet { return Actions(ActionCheck) }
func (kingSafetyRule) Validate(g *Game, from, to board.Coord) bool {
	pc := g.pos.PieceAt(from)
	if pc == nil {
		return false
	}
	sf := &g.safety[pc.Color]
	if !sf.HasKing {
		return false
	}
	if from == sf.King {
		if d := to.Col - from.Col; to.Row == from.Row && (d == 2 || d == -2) {
			mid := board.Sq(from.Col+d/2, from.Row)
			return sf.InCheck() || sf.Attacked.Has(mid) || sf.Attacked.Has(to)
		}
		return sf.Attacked.Has(to)
	}
	if pc.Type == board.Pawn && to.Col != from.Col && !g.pos.Board.Occupied(to) {
		return board.ExposesKing(g.pos, from, to, board.Sq(to.Col, from.Row))
	}
	if sf.Checkers > 1 {
		return true
	}
	if sf.Checkers == 1 && !sf.Evasions.Has(to) {
		return true
	}
	if line, pinned := sf.PinLine(from); pinned && !line.Has(to) {
		return true
	}
	return false
}
