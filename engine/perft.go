package engine

import (
	"chess-rules/board"
)

// PerftOptions tunes move counting.
type PerftOptions struct {
	// UnderPromotions counts each promotion four times (Q, R, B, N), the
	// convention of published perft tables.
	UnderPromotions bool
	// HashMB sizes a table of subtree counts shared across the run. Zero
	// disables it.
	HashMB int
}

var underPromotions = []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

func (o PerftOptions) promotions(v Validation, def board.PieceType) []board.PieceType {
	if !v.Actions.Has(ActionPromoteQueen) {
		return []board.PieceType{def}
	}
	if o.UnderPromotions {
		return underPromotions
	}
	return []board.PieceType{def}
}

// Perft counts the leaf nodes of the legal move tree to depth. It works on
// a clone, so g is not modified.
func Perft(g *Game, depth int, opts PerftOptions) uint64 {
	if depth <= 0 {
		return 1
	}
	w := g.worker()
	return w.perft(depth, opts, newPerftTable(opts.HashMB))
}

// PerftDivide returns the perft count below each root move, keyed by
// coordinate notation ("e2e4", "e7e8n").
func PerftDivide(g *Game, depth int, opts PerftOptions) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	w := g.worker()
	tt := newPerftTable(opts.HashMB)
	for _, v := range w.LegalMoves() {
		for _, pt := range opts.promotions(v, w.promoteTo) {
			key := coordMove(v.From, v.To, promotedTo(v, pt))
			if depth == 1 {
				out[key]++
				continue
			}
			if ok, _ := w.makeMove(v.From, v.To, pt); !ok {
				continue
			}
			out[key] += w.perft(depth-1, opts, tt)
			w.popUndo()
		}
	}
	return out
}

func promotedTo(v Validation, pt board.PieceType) board.PieceType {
	if v.Actions.Has(ActionPromoteQueen) {
		return pt
	}
	return board.NoPieceType
}

func (g *Game) worker() *Game {
	w := g.Clone("perft")
	w.undoDepth = 0
	return w
}

func (g *Game) perft(depth int, opts PerftOptions, tt *perftTable) uint64 {
	var hash uint64
	if tt != nil && depth > 1 {
		hash = g.Hash()
		if n, ok := tt.get(hash, depth); ok {
			return n
		}
	}
	moves := g.LegalMoves()
	if depth == 1 {
		var n uint64
		for _, v := range moves {
			n += uint64(len(opts.promotions(v, g.promoteTo)))
		}
		return n
	}
	var nodes uint64
	for _, v := range moves {
		for _, pt := range opts.promotions(v, g.promoteTo) {
			if ok, _ := g.makeMove(v.From, v.To, pt); !ok {
				continue
			}
			nodes += g.perft(depth-1, opts, tt)
			g.popUndo()
		}
	}
	if tt != nil {
		tt.store(hash, depth, nodes)
	}
	return nodes
}
