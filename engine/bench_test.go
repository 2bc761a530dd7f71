package engine_test

import (
	"testing"

	"chess-rules/board"
	"chess-rules/engine"
)

func benchPerft(b *testing.B, fen string, depth int) {
	g := newGame(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Perft(g, depth, full)
	}
}

func BenchmarkPerft_Initial_D3(b *testing.B) {
	benchPerft(b, board.StartPlacement, 3)
}

func BenchmarkPerft_Kiwipete_D2(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchPerft(b, fen, 2)
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	g := newGame(b, board.StartPlacement)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.LegalMoves()
	}
}
