package engine_test

import (
	"testing"

	"chess-rules/board"
	"chess-rules/engine"
)

func newGame(t testing.TB, fen string, opts ...engine.Option) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(engine.Config{Placement: fen}, opts...)
	if err != nil {
		t.Fatalf("NewGame(%q) failed: %v", fen, err)
	}
	return g
}

var full = engine.PerftOptions{UnderPromotions: true}

func checkPerft(t *testing.T, label, fen string, want []uint64) {
	t.Helper()
	g := newGame(t, fen)
	for i, n := range want {
		depth := i + 1
		if depth >= 4 && testing.Short() {
			break
		}
		if got := engine.Perft(g, depth, full); got != n {
			div := engine.PerftDivide(g, depth, full)
			t.Logf("divide: %v", div)
			t.Fatalf("%s depth%d: got %d want %d", label, depth, got, n)
		}
	}
}

func TestPerftInitialPosition(t *testing.T) {
	checkPerft(t, "initial", board.StartPlacement+" w KQkq - 0 1", []uint64{20, 400, 8902, 197281})
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	checkPerft(t, "Kiwipete", fen, []uint64{48, 2039, 97862})
}

func TestPerftEnPassantPosition(t *testing.T) {
	checkPerft(t, "EP", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []uint64{5, 19})
}

func TestPerftPromotionPosition(t *testing.T) {
	checkPerft(t, "Promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []uint64{11})
}

func TestPerftPosition3(t *testing.T) {
	checkPerft(t, "Position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238})
}

func TestPerftPosition4(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	checkPerft(t, "Position4", fen, []uint64{6, 264, 9467})
}

func TestPerftPosition5(t *testing.T) {
	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	checkPerft(t, "Position5", fen, []uint64{44, 1486, 62379})
}

func TestPerftPosition6(t *testing.T) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	checkPerft(t, "Position6", fen, []uint64{46, 2079, 89890})
}

func TestPerftQueenOnlyPromotions(t *testing.T) {
	g := newGame(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if got := engine.Perft(g, 1, engine.PerftOptions{}); got != 5 {
		t.Fatalf("queen-only promotions: got %d want %d", got, 5)
	}
}

func TestPerftDivideMatchesPerft(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	div := engine.PerftDivide(g, 2, full)
	if len(div) != 20 {
		t.Fatalf("divide roots: got %d want 20", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want 400", sum)
	}
	if div["e2e4"] != 20 {
		t.Fatalf("e2e4: got %d want 20", div["e2e4"])
	}
}

func TestPerftLeavesGameUntouched(t *testing.T) {
	g := newGame(t, board.StartPlacement)
	before := g.Hash()
	_ = engine.Perft(g, 3, full)
	if g.Hash() != before || len(g.History()) != 0 {
		t.Fatalf("perft mutated the game")
	}
}

func TestPerftHashTableAgrees(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	g := newGame(t, fen)
	hashed := engine.PerftOptions{UnderPromotions: true, HashMB: 1}
	if got := engine.Perft(g, 3, hashed); got != 97862 {
		t.Fatalf("hashed perft depth3: got %d want %d", got, 97862)
	}
	div := engine.PerftDivide(g, 3, hashed)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 97862 {
		t.Fatalf("hashed divide sum: got %d want %d", sum, 97862)
	}
}
