package engine

import (
	"strings"

	"chess-rules/board"
)

// ActionType tags what a move does.
type ActionType uint8

const (
	ActionMove ActionType = iota
	ActionCapture
	ActionEnPassant
	ActionPromoteQueen
	ActionPromoteRook
	ActionPromoteBishop
	ActionPromoteKnight
	ActionCastleKing
	ActionCastleQueen
	ActionCheck
	ActionCheckmate
	ActionStalemate
	numActions
)

var actionNames = [numActions]string{
	"MOVE", "CAPTURE", "EN_PASSANT",
	"PROMOTE_QUEEN", "PROMOTE_ROOK", "PROMOTE_BISHOP", "PROMOTE_KNIGHT",
	"CASTLE_KING", "CASTLE_QUEEN",
	"CHECK", "CHECKMATE", "STALEMATE",
}

func (a ActionType) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "UNKNOWN"
}

// PromotionAction maps a promotion target to its action tag.
func PromotionAction(pt board.PieceType) (ActionType, bool) {
	switch pt {
	case board.Queen:
		return ActionPromoteQueen, true
	case board.Rook:
		return ActionPromoteRook, true
	case board.Bishop:
		return ActionPromoteBishop, true
	case board.Knight:
		return ActionPromoteKnight, true
	}
	return 0, false
}

var promotionActions = []ActionType{ActionPromoteQueen, ActionPromoteRook, ActionPromoteBishop, ActionPromoteKnight}

// ActionSet is a bit set of ActionType.
type ActionSet uint16

// Actions builds a set.
func Actions(as ...ActionType) ActionSet {
	var s ActionSet
	for _, a := range as {
		s = s.With(a)
	}
	return s
}

func (s ActionSet) With(a ActionType) ActionSet { return s | 1<<a }
func (s ActionSet) Without(a ActionType) ActionSet { return s &^ (1 << a) }
func (s ActionSet) Has(a ActionType) bool { return s&(1<<a) != 0 }
func (s ActionSet) Empty() bool { return s == 0 }

// ContainsAll reports whether every action of o is in s.
func (s ActionSet) ContainsAll(o ActionSet) bool { return s&o == o }

// IsPromotion reports whether any promotion tag is present.
func (s ActionSet) IsPromotion() bool {
	for _, a := range promotionActions {
		if s.Has(a) {
			return true
		}
	}
	return false
}

// Slice lists the members in declaration order.
func (s ActionSet) Slice() []ActionType {
	var out []ActionType
	for a := ActionType(0); a < numActions; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	names := make([]string, 0, numActions)
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
