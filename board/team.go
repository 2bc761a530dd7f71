package board

import "fmt"

// Team owns every piece registered for one side, dead ones included. Pieces
// are addressed by a dense slot index; the string id is kept for display and
// lookup.
type Team struct {
	color  Color
	pieces []Piece
	counts [King + 1]int
	king   int
}

// NewTeam returns an empty team for the side.
func NewTeam(c Color) *Team {
	return &Team{color: c, king: -1}
}

func (t *Team) Color() Color { return t.color }
func (t *Team) Len() int { return len(t.pieces) }

// Register adds a new living piece of the given type and returns its slot.
// The id is "<W|B>_<TYPE>_<n>" where n counts the team's earlier pieces of
// that type.
func (t *Team) Register(pt PieceType) int {
	slot := len(t.pieces)
	t.pieces = append(t.pieces, Piece{
		ID:    fmt.Sprintf("%s_%s_%d", t.color.Letter(), pt, t.counts[pt]),
		Slot:  slot,
		Type:  pt,
		Color: t.color,
		Alive: true,
	})
	t.counts[pt]++
	if pt == King && t.king < 0 {
		t.king = slot
	}
	return slot
}

// Piece returns the piece in a slot, or nil for an unknown slot.
func (t *Team) Piece(slot int) *Piece {
	if slot < 0 || slot >= len(t.pieces) {
		return nil
	}
	return &t.pieces[slot]
}

// ByID looks a piece up by its id.
func (t *Team) ByID(id string) (*Piece, bool) {
	for i := range t.pieces {
		if t.pieces[i].ID == id {
			return &t.pieces[i], true
		}
	}
	return nil, false
}

// King returns the team's king, or nil when none was registered.
func (t *Team) King() *Piece {
	if t.king < 0 {
		return nil
	}
	return &t.pieces[t.king]
}

// Kings counts the registered kings.
func (t *Team) Kings() int { return t.counts[King] }

// Alive returns pointers to the living pieces in slot order.
func (t *Team) Alive() []*Piece {
	out := make([]*Piece, 0, len(t.pieces))
	for i := range t.pieces {
		if t.pieces[i].Alive {
			out = append(out, &t.pieces[i])
		}
	}
	return out
}

// AliveCount counts the living pieces.
func (t *Team) AliveCount() int {
	n := 0
	for i := range t.pieces {
		if t.pieces[i].Alive {
			n++
		}
	}
	return n
}

// AliveIDs lists the ids of living pieces, used in diagnostics.
func (t *Team) AliveIDs() []string {
	out := make([]string, 0, len(t.pieces))
	for i := range t.pieces {
		if t.pieces[i].Alive {
			out = append(out, t.pieces[i].ID)
		}
	}
	return out
}

// ByType returns the pieces of a type, optionally only living ones.
func (t *Team) ByType(pt PieceType, aliveOnly bool) []*Piece {
	var out []*Piece
	for i := range t.pieces {
		p := &t.pieces[i]
		if p.Type == pt && (p.Alive || !aliveOnly) {
			out = append(out, p)
		}
	}
	return out
}

// Clone deep-copies the team.
func (t *Team) Clone() *Team {
	c := *t
	c.pieces = append([]Piece(nil), t.pieces...)
	return &c
}
