package engine_test

import (
	"errors"
	"testing"

	"chess-rules/board"
	"chess-rules/engine"
)

func TestUndoRoundTrip(t *testing.T) {
	g := newGame(t, board.StartPlacement, engine.WithUndoDepth(0))
	startHash := g.Hash()
	startPlacement := g.Placement()

	play(t, g, "e2e4", "e7e5", "g1f3")
	for i := 0; i < 3; i++ {
		if err := g.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if g.Hash() != startHash {
		t.Fatalf("hash mismatch after undo")
	}
	if g.Placement() != startPlacement {
		t.Fatalf("placement after undo: got %q want %q", g.Placement(), startPlacement)
	}
	if len(g.History()) != 0 || g.OnMove() != board.White || g.Ply() != 0 || g.MoveNumber() != 1 {
		t.Fatalf("state not restored: history=%d onMove=%v ply=%d number=%d",
			len(g.History()), g.OnMove(), g.Ply(), g.MoveNumber())
	}
	if pc, _ := g.PieceAt(at(t, "e2")); pc.TimesMoved != 0 {
		t.Fatalf("move counter not restored")
	}
	if !errors.Is(g.Undo(), engine.ErrNoUndo) {
		t.Fatalf("expected ErrNoUndo on empty stack")
	}
}

func TestDefaultUndoIsSingleLevel(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	play(t, g, "e2e4", "e7e5")
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := g.Undo(); !errors.Is(err, engine.ErrNoUndo) {
		t.Fatalf("second undo: got %v want ErrNoUndo", err)
	}
	if pc, ok := g.PieceAt(at(t, "e4")); !ok || pc.Type != board.Pawn {
		t.Fatalf("e2e4 should still be on the board")
	}
}

func TestCaptureMarksVictimDead(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	play(t, g, "e2e4", "d7d5", "e4d5")
	last, _ := g.LastMove()
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionCapture)
	if last.Captured != "B_PAWN_3" {
		t.Fatalf("captured: got %q want B_PAWN_3", last.Captured)
	}
	pc, ok := g.Position().Teams[board.Black].ByID("B_PAWN_3")
	if !ok || pc.Alive {
		t.Fatalf("captured pawn still alive")
	}
}

func TestCastlingMovesRook(t *testing.T) {
	g := newGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, g, "e1g1")
	last, _ := g.LastMove()
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionCastleKing)
	if pc, ok := g.PieceAt(at(t, "f1")); !ok || pc.Type != board.Rook || pc.TimesMoved != 1 {
		t.Fatalf("rook not on f1: %+v", pc)
	}
	if _, ok := g.PieceAt(at(t, "h1")); ok {
		t.Fatalf("h1 should be empty")
	}
	play(t, g, "e8c8")
	last, _ = g.LastMove()
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionCastleQueen)
	if pc, ok := g.PieceAt(at(t, "d8")); !ok || pc.Type != board.Rook {
		t.Fatalf("rook not on d8")
	}
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	g := newGame(t, "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1")
	if v := g.Validate(at(t, "e1"), at(t, "g1")); v.Legal {
		t.Fatalf("castled through an attacked square")
	}
	if v := g.Validate(at(t, "e1"), at(t, "c1")); !v.Legal {
		t.Fatalf("queen side castling is fine: %+v", v)
	}
}

func TestCastlingRightLostAfterKingMoves(t *testing.T) {
	g := newGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", engine.WithUndoDepth(0))
	play(t, g, "e1f1", "e8f8", "f1e1", "f8e8")
	if v := g.Validate(at(t, "e1"), at(t, "g1")); v.Legal {
		t.Fatalf("king that moved may not castle")
	}
}

func TestEnPassantCapture(t *testing.T) {
	g := newGame(t, "k7/3p4/8/4P3/8/8/8/7K b - - 0 1")
	play(t, g, "d7d5")
	if v := g.Validate(at(t, "e5"), at(t, "d6")); !v.Legal || !v.Actions.Has(engine.ActionEnPassant) {
		t.Fatalf("en passant should be legal: %+v", v)
	}
	play(t, g, "e5d6")
	last, _ := g.LastMove()
	wantActions(t, last.Actions, engine.ActionMove, engine.ActionEnPassant)
	if _, ok := g.PieceAt(at(t, "d5")); ok {
		t.Fatalf("passed pawn should be removed")
	}
}

func TestEnPassantExpires(t *testing.T) {
	g := newGame(t, "k7/3p4/8/4P3/8/8/8/7K b - - 0 1")
	play(t, g, "d7d5", "h1h2", "a8b8")
	if v := g.Validate(at(t, "e5"), at(t, "d6")); v.Legal {
		t.Fatalf("en passant window should have closed")
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := newGame(t, "k7/4P3/8/8/8/8/8/7K w - - 0 1")
	play(t, g, "e7e8")
	last, _ := g.LastMove()
	if !last.Actions.Has(engine.ActionPromoteQueen) || last.Promoted != board.Queen {
		t.Fatalf("promotion: %+v", last)
	}
	if pc, _ := g.PieceAt(at(t, "e8")); pc.Type != board.Queen || pc.ID != "W_PAWN_0" {
		t.Fatalf("e8: got %+v", pc)
	}
	if last.String() != "e7e8q" {
		t.Fatalf("string: got %q", last.String())
	}
}

func TestUnderPromotion(t *testing.T) {
	g := newGame(t, "k7/4P3/8/8/8/8/8/7K w - - 0 1")
	ok, err := g.MakeMoveAs(at(t, "e7"), at(t, "e8"), board.Knight)
	if !ok || err != nil {
		t.Fatalf("MakeMoveAs: ok=%v err=%v", ok, err)
	}
	last, _ := g.LastMove()
	if !last.Actions.Has(engine.ActionPromoteKnight) || last.Actions.Has(engine.ActionPromoteQueen) {
		t.Fatalf("actions: %v", last.Actions)
	}
	if _, err := g.MakeMoveAs(at(t, "a8"), at(t, "a7"), board.King); !errors.Is(err, engine.ErrInvalidPromotion) {
		t.Fatalf("expected ErrInvalidPromotion, got %v", err)
	}
}

func TestListenersAndReset(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	calls := 0
	g.AddListener(engine.ListenerFunc(func(*engine.Game) { calls++ }))
	play(t, g, "e2e4")
	if ok, _ := g.MakeMove(at(t, "e2"), at(t, "e4")); ok {
		t.Fatalf("illegal move accepted")
	}
	if calls != 1 {
		t.Fatalf("listener calls after move: got %d want 1", calls)
	}
	if err := g.Reset(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 || len(g.History()) != 0 || g.Placement() != board.StartPlacement {
		t.Fatalf("reset: calls=%d history=%d placement=%q", calls, len(g.History()), g.Placement())
	}
}

func TestCloneIsIsolated(t *testing.T) {
	g := newGame(t, board.StartPlacement, engine.WithID("main"))
	c := g.Clone("sandbox")
	if c.ID() != "main::sandbox" {
		t.Fatalf("clone id: got %q", c.ID())
	}
	play(t, c, "e2e4")
	if _, ok := g.PieceAt(at(t, "e4")); ok {
		t.Fatalf("clone move leaked into the original")
	}
	if g.OnMove() != board.White {
		t.Fatalf("original turn changed")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := engine.NewGame(engine.Config{Placement: "k3/4/4/4"}); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("missing white king: got %v", err)
	}
	var pe *board.PlacementError
	if _, err := engine.NewGame(engine.Config{Placement: "k3/4/4/3X"}); !errors.As(err, &pe) {
		t.Fatalf("expected a PlacementError, got %v", err)
	}
	if _, err := engine.NewGame(engine.DefaultConfig(), engine.WithPromotion(board.King)); !errors.Is(err, engine.ErrInvalidPromotion) {
		t.Fatalf("king promotion accepted: %v", err)
	}
}

func TestStartingColorFromConfig(t *testing.T) {
	g, err := engine.NewGame(engine.Config{Placement: board.StartPlacement, Starting: board.Black})
	if err != nil {
		t.Fatal(err)
	}
	if g.OnMove() != board.Black || g.State() != engine.BlackToMove {
		t.Fatalf("Black should start")
	}
}
