// Package oracle cross-checks move counts against independent 8x8 move
// generators. It only understands standard FEN positions.
package oracle

import (
	"fmt"
	"strings"

	dragontoothmg "github.com/dylhunn/dragontoothmg"
	"github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-rules/board"
	"chess-rules/engine"
)

// Divide maps a root move in coordinate notation to its perft count.
type Divide map[string]uint64

// Total sums the counts.
func (d Divide) Total() uint64 {
	var n uint64
	for _, c := range d {
		n += c
	}
	return n
}

// Moves returns the root moves sorted.
func (d Divide) Moves() []string {
	keys := maps.Keys(d)
	slices.Sort(keys)
	return keys
}

// Mismatch is a root move whose counts disagree. A missing move has a zero count.
type Mismatch struct {
	Move   string
	Ours   uint64
	Theirs uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: ours=%d theirs=%d", m.Move, m.Ours, m.Theirs)
}

// Compare lists the root moves where ours and theirs differ, sorted by move.
func Compare(ours, theirs Divide) []Mismatch {
	seen := make(map[string]struct{}, len(ours)+len(theirs))
	for k := range ours {
		seen[k] = struct{}{}
	}
	for k := range theirs {
		seen[k] = struct{}{}
	}
	keys := maps.Keys(seen)
	slices.Sort(keys)

	var out []Mismatch
	for _, k := range keys {
		if ours[k] != theirs[k] {
			out = append(out, Mismatch{Move: k, Ours: ours[k], Theirs: theirs[k]})
		}
	}
	return out
}

// Engine runs PerftDivide on a fresh game loaded from fen, counting
// under-promotions so the result lines up with the other generators.
func Engine(fen string, depth int) (Divide, error) {
	g, err := engine.NewGame(engine.Config{Placement: fen})
	if err != nil {
		return nil, err
	}
	if g.BoardSize() != 8 {
		return nil, fmt.Errorf("oracle: board size %d is not supported", g.BoardSize())
	}
	return engine.PerftDivide(g, depth, engine.PerftOptions{UnderPromotions: true}), nil
}

// EngineFEN renders g's position as a standard FEN for the oracles.
func EngineFEN(g *engine.Game) string {
	return board.WriteFEN(g.Position(), g.OnMove())
}

// Dragontooth counts with github.com/dylhunn/dragontoothmg.
func Dragontooth(fen string, depth int) Divide {
	out := make(Divide)
	if depth <= 0 {
		return out
	}
	b := dragontoothmg.ParseFen(fen)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[strings.ToLower(m.String())] += dragontoothPerft(&b, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		n += dragontoothPerft(b, depth-1)
		unapply()
	}
	return n
}

// Goose counts with github.com/Oliverans/GooseEngineMG.
func Goose(fen string, depth int) (Divide, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}
	out := make(Divide)
	for m, n := range goosemg.PerftDivide(b, depth) {
		out[strings.ToLower(m.String())] += n
	}
	return out, nil
}
