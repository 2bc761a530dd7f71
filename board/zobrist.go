package board

import "math/rand"

const gridSquares = MaxBoardSize * MaxBoardSize

// Zobrist keys per (color, piece type, square), plus keys for pieces that
// still hold castling rights, for the en-passant file and for the side to
// move.
var (
	zobristPiece     [2][King + 1][gridSquares]uint64
	zobristUnmoved   [2][gridSquares]uint64
	zobristEnPassant [MaxBoardSize]uint64
	zobristSide      uint64
)

func init() {
	// fixed seed keeps hashes stable across runs
	rnd := rand.New(rand.NewSource(0xC0DE))
	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
		for sq := range zobristUnmoved[c] {
			zobristUnmoved[c][sq] = rnd.Uint64()
		}
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash computes the Zobrist key of the position with side to move.
func (p *Position) Hash(side Color) uint64 {
	var key uint64
	n := p.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Coord{Col: col, Row: row}
			pc := p.PieceAt(c)
			if pc == nil {
				continue
			}
			key ^= zobristPiece[pc.Color][pc.Type][c.index()]
			if pc.TimesMoved == 0 && (pc.Type == King || pc.Type == Rook) {
				key ^= zobristUnmoved[pc.Color][c.index()]
			}
		}
	}
	if side == Black {
		key ^= zobristSide
	}
	if sq, ok := EnPassantSquare(p, side); ok {
		key ^= zobristEnPassant[sq.Col]
	}
	return key
}
