package engine

import (
	"go.uber.org/zap"

	"chess-rules/board"
)

// snapshot is the pre-move game state kept for Undo. The position is a deep
// copy and becomes the live position again when restored.
type snapshot struct {
	pos        *board.Position
	onMove     board.Color
	state      GameState
	moveNumber int
	historyLen int
	safety     [2]board.Safety
}

func (g *Game) snapshot() snapshot {
	return snapshot{
		pos:        g.pos.Clone(),
		onMove:     g.onMove,
		state:      g.state,
		moveNumber: g.moveNumber,
		historyLen: len(g.history),
		safety:     g.safety,
	}
}

func (g *Game) restore(s snapshot) {
	g.pos = s.pos
	g.onMove = s.onMove
	g.state = s.state
	g.moveNumber = s.moveNumber
	g.history = g.history[:s.historyLen]
	g.safety = s.safety
}

// pushUndo appends s, dropping the oldest entry beyond the undo depth.
func (g *Game) pushUndo(s snapshot) {
	g.undo = append(g.undo, s)
	if g.undoDepth > 0 && len(g.undo) > g.undoDepth {
		n := copy(g.undo, g.undo[len(g.undo)-g.undoDepth:])
		for i := n; i < len(g.undo); i++ {
			g.undo[i] = snapshot{}
		}
		g.undo = g.undo[:n]
	}
}

func (g *Game) popUndo() bool {
	n := len(g.undo)
	if n == 0 {
		return false
	}
	s := g.undo[n-1]
	g.undo[n-1] = snapshot{}
	g.undo = g.undo[:n-1]
	g.restore(s)
	return true
}

// UndoDepth reports how many moves can currently be undone.
func (g *Game) UndoDepth() int { return len(g.undo) }

// Undo reverts the last move. It returns ErrNoUndo when the undo stack is
// empty.
func (g *Game) Undo() error {
	g.mu.Lock()
	ok := g.popUndo()
	g.mu.Unlock()
	if !ok {
		return ErrNoUndo
	}
	g.log.Debug("undo", zap.String("game", g.id), zap.Int("ply", g.pos.Ply))
	g.Emit()
	return nil
}

// Reset restores the configured starting position and clears the history.
func (g *Game) Reset() error {
	g.mu.Lock()
	err := g.load()
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.log.Debug("reset", zap.String("game", g.id))
	g.Emit()
	return nil
}
