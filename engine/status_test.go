package engine_test

import (
	"testing"

	"chess-rules/board"
	"chess-rules/engine"
)

func at(t testing.TB, s string) board.Coord {
	t.Helper()
	c, err := board.ParseCoord(s)
	if err != nil {
		t.Fatalf("ParseCoord(%q): %v", s, err)
	}
	return c
}

func play(t testing.TB, g *engine.Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.Play(at(t, m[:2]), at(t, m[2:])); err != nil {
			t.Fatalf("play %s: %v", m, err)
		}
	}
}

func wantActions(t *testing.T, got engine.ActionSet, want ...engine.ActionType) {
	t.Helper()
	if got != engine.Actions(want...) {
		t.Fatalf("actions: got %v want %v", got, engine.Actions(want...))
	}
}

func TestCheckmateMoveActions(t *testing.T) {
	g := newGame(t, "k3/2RQ/4/3K")
	play(t, g, "d3d4")
	last, ok := g.LastMove()
	if !ok {
		t.Fatalf("history is empty")
	}
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionCheck, engine.ActionCheckmate)
	if !g.IsFinished() || g.State() != engine.WhiteWon {
		t.Fatalf("state: got %v want %v", g.State(), engine.WhiteWon)
	}
}

func TestStalemateMoveActions(t *testing.T) {
	g := newGame(t, "k3/2RQ/4/3K")
	play(t, g, "c3b3")
	last, _ := g.LastMove()
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionStalemate)
	if !g.IsFinished() || g.State() != engine.Tie {
		t.Fatalf("state: got %v want %v", g.State(), engine.Tie)
	}
}

func TestFinishedGameRejectsMoves(t *testing.T) {
	g := newGame(t, "k3/2RQ/4/3K")
	play(t, g, "d3d4")
	v := g.Validate(at(t, "a4"), at(t, "a3"))
	if v.Legal || !v.Applied.Has(engine.RuleGameIsFinished) {
		t.Fatalf("finished game accepted a move: %+v", v)
	}
	if ok, err := g.MakeMove(at(t, "a4"), at(t, "a3")); ok || err != nil {
		t.Fatalf("MakeMove after mate: ok=%v err=%v", ok, err)
	}
}

func TestSimpleCheck(t *testing.T) {
	g := newGame(t, "k3/4/4/R2K")
	if !g.IsCheckFor(board.Black) {
		t.Fatalf("expected Black to be in check")
	}
	if g.IsCheckFor(board.White) {
		t.Fatalf("White is not in check")
	}
}

func TestCheckmateConditions(t *testing.T) {
	for _, placement := range []string{"k3/Q3/R3/3K", "k2Q/3R/4/3K"} {
		g := newGame(t, placement)
		if !g.IsCheckmateFor(board.Black) {
			t.Fatalf("%s: expected checkmate for Black", placement)
		}
		if g.IsStalemateFor(board.Black) {
			t.Fatalf("%s: not a stalemate", placement)
		}
	}
}

func TestStalemateConditions(t *testing.T) {
	for _, placement := range []string{"k3/4/4/3K", "k3/1R2/1Q2/3K"} {
		g := newGame(t, placement)
		if g.IsCheckmateFor(board.Black) {
			t.Fatalf("%s: not a checkmate", placement)
		}
		if !g.IsStalemateFor(board.Black) {
			t.Fatalf("%s: expected stalemate for Black", placement)
		}
	}
}

func TestBlockedSideHasNoMoves(t *testing.T) {
	g := newGame(t, "kPQ1/PP2/Q3/3K")
	if g.HasLegalMovesLeft(board.Black) {
		t.Fatalf("Black should have no legal moves")
	}
	if !g.HasLegalMovesLeft(board.White) {
		t.Fatalf("White has moves")
	}
}

func TestFoolsMate(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if g.State() != engine.BlackWon {
		t.Fatalf("state: got %v want %v", g.State(), engine.BlackWon)
	}
	if !g.IsCheckmateFor(board.White) {
		t.Fatalf("expected checkmate for White")
	}
	if g.MoveNumber() != 3 {
		t.Fatalf("move number: got %d want 3", g.MoveNumber())
	}
}

func TestTurnOrder(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	v := g.Validate(at(t, "e7"), at(t, "e5"))
	if v.Legal || !v.Applied.Has(engine.RuleTeamNotOnMove) {
		t.Fatalf("Black moved out of turn: %+v", v)
	}
	if v := g.Validate(at(t, "e4"), at(t, "e5")); v.Legal {
		t.Fatalf("moving from an empty square must be illegal")
	}
	if v := g.Validate(at(t, "e2"), board.Sq(4, 9)); v.Legal || !v.Applied.Has(engine.RuleOutOfBounds) {
		t.Fatalf("off-board target accepted: %+v", v)
	}
	play(t, g, "e2e4")
	if g.OnMove() != board.Black || g.State() != engine.BlackToMove {
		t.Fatalf("turn did not pass to Black")
	}
}

func TestPinnedPieceCannotLeaveLine(t *testing.T) {
	g := newGame(t, "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if !g.Pinned(board.White).Has(at(t, "e2")) {
		t.Fatalf("e2 should be pinned")
	}
	v := g.Validate(at(t, "e2"), at(t, "c3"))
	if v.Legal || !v.Applied.Has(engine.RuleKingWouldBeInCheck) {
		t.Fatalf("pinned knight moved: %+v", v)
	}
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	g := newGame(t, "4r2k/8/8/8/8/8/8/3K4 w - - 0 1")
	if v := g.Validate(at(t, "d1"), at(t, "e1")); v.Legal {
		t.Fatalf("king stepped onto an attacked file")
	}
	if v := g.Validate(at(t, "d1"), at(t, "c1")); !v.Legal {
		t.Fatalf("c1 is safe: %+v", v)
	}
}

func TestMustAnswerCheck(t *testing.T) {
	g := newGame(t, "4r2k/8/8/8/8/8/PP6/R3K3 w - - 0 1")
	if !g.IsCheckFor(board.White) {
		t.Fatalf("White is in check")
	}
	if v := g.Validate(at(t, "a2"), at(t, "a3")); v.Legal {
		t.Fatalf("pawn push ignores the check")
	}
	for _, m := range g.LegalMoves() {
		if m.From != at(t, "e1") {
			t.Fatalf("only king moves answer this check, got %v-%v", m.From, m.To)
		}
	}
}

func TestLegalMovesFromStart(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	if n := len(g.LegalMoves()); n != 20 {
		t.Fatalf("legal moves: got %d want 20", n)
	}
	if n := len(g.LegalMovesFor(board.Black)); n != 20 {
		t.Fatalf("black sandbox moves: got %d want 20", n)
	}
	vs := g.ValidateFrom(at(t, "g1"))
	if len(vs) != 2 || !vs[at(t, "f3")].Legal || !vs[at(t, "h3")].Legal {
		t.Fatalf("knight g1: %+v", vs)
	}
}
