package board_test

import (
	"testing"

	"chess-rules/board"
)

func wantSet(t *testing.T, label string, got board.SquareSet, squares ...string) {
	t.Helper()
	var want board.SquareSet
	for _, s := range squares {
		want.Add(sq(t, s))
	}
	if got != want {
		t.Fatalf("%s: got %v want %v", label, got, want)
	}
}

func TestInitialPieceMoves(t *testing.T) {
	pos, _ := mustParse(t, board.StartPlacement)
	wantSet(t, "knight b1", board.KnightMoves(pos, sq(t, "b1")), "a3", "c3")
	wantSet(t, "pawn e2", board.PawnMoves(pos, sq(t, "e2")), "e3", "e4")
	wantSet(t, "pawn d7", board.PawnMoves(pos, sq(t, "d7")), "d6", "d5")
	wantSet(t, "rook a1", board.RookMoves(pos, sq(t, "a1")))
	wantSet(t, "king e1", board.KingMoves(pos, sq(t, "e1")))
	wantSet(t, "castle e1", board.CastleKingSideMoves(pos, sq(t, "e1")))
}

func TestSliderStopsAtBlockers(t *testing.T) {
	pos, _ := mustParse(t, "k7/8/8/3p4/8/1R1Q4/8/7K w - -")
	wantSet(t, "queen d3", board.QueenMoves(pos, sq(t, "d3")),
		"c3", "e3", "f3", "g3", "h3",
		"d1", "d2", "d4", "d5",
		"c2", "b1", "e2", "f1",
		"c4", "b5", "a6", "e4", "f5", "g6", "h7")
	wantSet(t, "bishop empty", board.BishopMoves(pos, sq(t, "e6")))
}

func TestDisplacedPawnCannotDoubleStep(t *testing.T) {
	pos, _ := mustParse(t, "k7/8/8/8/8/4P3/8/7K w - -")
	wantSet(t, "pawn e3", board.PawnPushes(pos, sq(t, "e3")), "e4")
}

func TestEnPassantWindow(t *testing.T) {
	pos, side := mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if side != board.White {
		t.Fatalf("side: got %v want white", side)
	}
	wantSet(t, "ep e5", board.EnPassantMoves(pos, sq(t, "e5")), "d6")
	if got, ok := board.EnPassantSquare(pos, board.White); !ok || got != sq(t, "d6") {
		t.Fatalf("EnPassantSquare: got %v %v", got, ok)
	}
	pos.Ply += 2
	wantSet(t, "ep e5 expired", board.EnPassantMoves(pos, sq(t, "e5")))
}

func TestEnPassantWithoutFieldIsNotAvailable(t *testing.T) {
	pos, _ := mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - -")
	wantSet(t, "ep e5", board.EnPassantMoves(pos, sq(t, "e5")))
}

func TestCastleMoves(t *testing.T) {
	pos, _ := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	wantSet(t, "white O-O", board.CastleKingSideMoves(pos, sq(t, "e1")), "g1")
	wantSet(t, "white O-O-O", board.CastleQueenSideMoves(pos, sq(t, "e1")), "c1")
	wantSet(t, "black O-O", board.CastleKingSideMoves(pos, sq(t, "e8")), "g8")

	pos, _ = mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w Kq -")
	wantSet(t, "white O-O-O without right", board.CastleQueenSideMoves(pos, sq(t, "e1")))
	wantSet(t, "black O-O without right", board.CastleKingSideMoves(pos, sq(t, "e8")))

	pos, _ = mustParse(t, "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq -")
	wantSet(t, "blocked O-O-O", board.CastleQueenSideMoves(pos, sq(t, "e1")))
}

func TestPseudoLegalIncludesSpecials(t *testing.T) {
	pos, _ := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	wantSet(t, "king e1", board.PseudoLegalMoves(pos, sq(t, "e1")),
		"d1", "f1", "d2", "e2", "f2", "c1", "g1")
}
