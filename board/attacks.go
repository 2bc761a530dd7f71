package board

// AttacksFrom returns the squares the piece on from threatens: pawn forward
// diagonals whether or not occupied, leaper targets, and slider rays up to
// and including the first blocker of either color. Rays pass through the
// transparent square (pass NoCoord for none).
func AttacksFrom(p *Position, from Coord, transparent Coord) SquareSet {
	pc := p.PieceAt(from)
	if pc == nil {
		return SquareSet{}
	}
	switch pc.Type {
	case Pawn:
		var s SquareSet
		fwd := pc.Color.Forward()
		for _, side := range [2]Coord{Left, Right} {
			if c := from.Add(fwd).Add(side); p.Board.InBounds(c) {
				s.Add(c)
			}
		}
		return s
	case Knight:
		return leap(p, from, knightJumps[:], pc.Color, true)
	case King:
		return leap(p, from, AllDirections[:], pc.Color, true)
	case Bishop:
		return slide(p, from, Diagonal[:], pc.Color, true, transparent)
	case Rook:
		return slide(p, from, Orthogonal[:], pc.Color, true, transparent)
	case Queen:
		return slide(p, from, AllDirections[:], pc.Color, true, transparent)
	}
	return SquareSet{}
}

// AttackedBy unions the attack sets of every living piece of side.
func AttackedBy(p *Position, side Color, transparent Coord) SquareSet {
	var s SquareSet
	for _, pc := range p.Teams[side].Alive() {
		if c, ok := p.Locate(pc); ok {
			s = s.Union(AttacksFrom(p, c, transparent))
		}
	}
	return s
}

// Between returns the squares strictly between a and b on a shared line.
func Between(a, b Coord) SquareSet {
	var s SquareSet
	dir, ok := a.Step(b)
	if !ok {
		return s
	}
	for c := a.Add(dir); c != b; c = c.Add(dir) {
		s.Add(c)
	}
	return s
}

// Pin is an own piece that may only move along Line (king side excluded,
// pinner included).
type Pin struct {
	Square Coord
	Line   SquareSet
}

// Safety summarises the threats against one side's king.
type Safety struct {
	King    Coord
	HasKing bool
	// Attacked holds every square the enemy attacks, computed with the king
	// removed so that it cannot step back along a checking ray.
	Attacked SquareSet
	Checkers int
	// Evasions are the capture-or-block squares when Checkers == 1.
	Evasions SquareSet
	Pins     []Pin
}

// InCheck reports whether the king is attacked.
func (s *Safety) InCheck() bool { return s.Checkers > 0 }

// PinLine returns the allowed line of a pinned piece on c.
func (s *Safety) PinLine(c Coord) (SquareSet, bool) {
	for _, pin := range s.Pins {
		if pin.Square == c {
			return pin.Line, true
		}
	}
	return SquareSet{}, false
}

// Pinned lists the squares of pinned pieces.
func (s *Safety) Pinned() SquareSet {
	var out SquareSet
	for _, pin := range s.Pins {
		out.Add(pin.Square)
	}
	return out
}

// ComputeSafety derives checkers, evasion squares and pins for side by
// ray-casting from its king, and the enemy's king-transparent attack set.
func ComputeSafety(p *Position, side Color) Safety {
	var sf Safety
	ks, ok := p.KingSquare(side)
	if !ok {
		sf.Attacked = AttackedBy(p, side.Opposite(), NoCoord)
		return sf
	}
	sf.King, sf.HasKing = ks, true
	sf.Attacked = AttackedBy(p, side.Opposite(), ks)

	enemy := side.Opposite()
	for _, pc := range p.Teams[enemy].Alive() {
		c, ok := p.Locate(pc)
		if !ok || !AttacksFrom(p, c, NoCoord).Has(ks) {
			continue
		}
		sf.Checkers++
		if sf.Checkers == 1 {
			sf.Evasions = SetOf(c)
			if pc.Type.IsSlider() {
				sf.Evasions = sf.Evasions.Union(Between(ks, c))
			}
		}
	}
	if sf.Checkers > 1 {
		sf.Evasions = SquareSet{}
	}

	for i, d := range AllDirections {
		diagonal := i >= 4
		var line SquareSet
		pinned := NoCoord
		for c := ks.Add(d); p.Board.InBounds(c); c = c.Add(d) {
			line.Add(c)
			r := p.Board.At(c)
			if r.Empty() {
				continue
			}
			if r.Color() == side {
				if pinned != NoCoord {
					break
				}
				pinned = c
				continue
			}
			if pinned != NoCoord && slidesAlong(p.Piece(r).Type, diagonal) {
				sf.Pins = append(sf.Pins, Pin{Square: pinned, Line: line})
			}
			break
		}
	}
	return sf
}

func slidesAlong(pt PieceType, diagonal bool) bool {
	if pt == Queen {
		return true
	}
	if diagonal {
		return pt == Bishop
	}
	return pt == Rook
}

// PinnedBy returns the squares of defender pieces pinned against their king
// by attacker's sliders.
func PinnedBy(p *Position, attacker Color) SquareSet {
	sf := ComputeSafety(p, attacker.Opposite())
	return sf.Pinned()
}

// ExposesKing plays from-to on a scratch copy, additionally removing the
// piece on removed (NoCoord for none), and reports whether the mover's king
// ends up attacked.
func ExposesKing(p *Position, from, to, removed Coord) bool {
	pc := p.PieceAt(from)
	if pc == nil {
		return false
	}
	scratch := p.Clone()
	if removed != NoCoord {
		scratch.Capture(removed)
	}
	if to != from {
		if victim := scratch.PieceAt(to); victim != nil {
			victim.Alive = false
		}
		if _, err := scratch.Board.Move(from, to); err != nil {
			return false
		}
	}
	ks, ok := scratch.KingSquare(pc.Color)
	if !ok {
		return false
	}
	return AttackedBy(scratch, pc.Color.Opposite(), NoCoord).Has(ks)
}
