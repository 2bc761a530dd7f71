package board

// ==========================
// Occupancy helpers
// ==========================

func (p *Position) own(c Coord, side Color) bool {
	r := p.Board.At(c)
	return !r.Empty() && r.Color() == side
}

func (p *Position) enemy(c Coord, side Color) bool {
	r := p.Board.At(c)
	return !r.Empty() && r.Color() != side
}

// ==========================
// Per-piece generators
// ==========================

// slide walks each direction until the board edge or a blocker. An enemy
// blocker is included; an own blocker is included only when includeContact
// is set (attack view).
func slide(p *Position, from Coord, dirs []Coord, side Color, includeContact bool, transparent Coord) SquareSet {
	var s SquareSet
	for _, d := range dirs {
		for c := from.Add(d); p.Board.InBounds(c); c = c.Add(d) {
			r := p.Board.At(c)
			if r.Empty() || c == transparent {
				s.Add(c)
				continue
			}
			if r.Color() != side || includeContact {
				s.Add(c)
			}
			break
		}
	}
	return s
}

func leap(p *Position, from Coord, offsets []Coord, side Color, includeContact bool) SquareSet {
	var s SquareSet
	for _, d := range offsets {
		c := from.Add(d)
		if !p.Board.InBounds(c) {
			continue
		}
		if includeContact || !p.own(c, side) {
			s.Add(c)
		}
	}
	return s
}

func sideOf(p *Position, from Coord) (Color, bool) {
	r := p.Board.At(from)
	if r.Empty() {
		return White, false
	}
	return r.Color(), true
}

// KnightMoves returns the knight jumps from from that do not land on an own piece.
func KnightMoves(p *Position, from Coord) SquareSet {
	side, ok := sideOf(p, from)
	if !ok {
		return SquareSet{}
	}
	return leap(p, from, knightJumps[:], side, false)
}

// KingMoves returns the single steps from from that do not land on an own piece.
func KingMoves(p *Position, from Coord) SquareSet {
	side, ok := sideOf(p, from)
	if !ok {
		return SquareSet{}
	}
	return leap(p, from, AllDirections[:], side, false)
}

func BishopMoves(p *Position, from Coord) SquareSet {
	side, ok := sideOf(p, from)
	if !ok {
		return SquareSet{}
	}
	return slide(p, from, Diagonal[:], side, false, NoCoord)
}

func RookMoves(p *Position, from Coord) SquareSet {
	side, ok := sideOf(p, from)
	if !ok {
		return SquareSet{}
	}
	return slide(p, from, Orthogonal[:], side, false, NoCoord)
}

func QueenMoves(p *Position, from Coord) SquareSet {
	side, ok := sideOf(p, from)
	if !ok {
		return SquareSet{}
	}
	return slide(p, from, AllDirections[:], side, false, NoCoord)
}

// PawnPushes returns the one-step push onto an empty square and, for a pawn
// that has never moved, the two-step push when both squares are empty.
func PawnPushes(p *Position, from Coord) SquareSet {
	var s SquareSet
	pc := p.PieceAt(from)
	if pc == nil {
		return s
	}
	fwd := pc.Color.Forward()
	one := from.Add(fwd)
	if !p.Board.InBounds(one) || p.Board.Occupied(one) {
		return s
	}
	s.Add(one)
	two := one.Add(fwd)
	if pc.TimesMoved == 0 && p.Board.InBounds(two) && !p.Board.Occupied(two) {
		s.Add(two)
	}
	return s
}

// PawnCaptures returns the forward diagonals holding an enemy piece.
func PawnCaptures(p *Position, from Coord) SquareSet {
	var s SquareSet
	pc := p.PieceAt(from)
	if pc == nil {
		return s
	}
	fwd := pc.Color.Forward()
	for _, side := range [2]Coord{Left, Right} {
		c := from.Add(fwd).Add(side)
		if p.enemy(c, pc.Color) {
			s.Add(c)
		}
	}
	return s
}

// PawnMoves is pushes plus ordinary captures.
func PawnMoves(p *Position, from Coord) SquareSet {
	return PawnPushes(p, from).Union(PawnCaptures(p, from))
}

// EnPassantMoves returns the diagonal squares behind an adjacent enemy pawn
// that made its double step on the previous ply. The mover must stand three
// rows from the enemy's back rank.
func EnPassantMoves(p *Position, from Coord) SquareSet {
	var s SquareSet
	pc := p.PieceAt(from)
	if pc == nil || pc.Type != Pawn {
		return s
	}
	n := p.Size()
	enemy := pc.Color.Opposite()
	if from.Row != enemy.HomeRow(n)+3*enemy.Forward().Row {
		return s
	}
	for _, side := range [2]Coord{Left, Right} {
		adj := from.Add(side)
		if passedPawn(p, adj, enemy) == nil {
			continue
		}
		to := adj.Add(pc.Color.Forward())
		if p.Board.InBounds(to) && !p.Board.Occupied(to) {
			s.Add(to)
		}
	}
	return s
}

// passedPawn returns the enemy pawn on c if it can be taken en passant.
func passedPawn(p *Position, c Coord, enemy Color) *Piece {
	if !p.enemy(c, enemy.Opposite()) {
		return nil
	}
	pc := p.PieceAt(c)
	if pc.Type != Pawn || pc.TimesMoved != 1 || p.Ply-pc.LastMovedAt > 1 {
		return nil
	}
	return pc
}

// EnPassantSquare returns the square side could capture onto en passant,
// i.e. the square an enemy pawn skipped on the previous ply.
func EnPassantSquare(p *Position, side Color) (Coord, bool) {
	enemy := side.Opposite()
	n := p.Size()
	row := enemy.HomeRow(n) + 3*enemy.Forward().Row
	for _, pc := range p.Teams[enemy].ByType(Pawn, true) {
		c, ok := p.Locate(pc)
		if !ok || c.Row != row {
			continue
		}
		if passedPawn(p, c, enemy) != nil {
			return c.Sub(enemy.Forward()), true
		}
	}
	return NoCoord, false
}

// ==========================
// Castling
// ==========================

const castleKingCol = 4

// castleRook returns the unmoved rook partnering an unmoved king on its
// home square.
func castleRook(p *Position, side Color, kingSide bool) (king, rook Coord, ok bool) {
	n := p.Size()
	home := side.HomeRow(n)
	king = Coord{Col: castleKingCol, Row: home}
	rook = Coord{Col: 0, Row: home}
	if kingSide {
		rook.Col = n - 1
	}
	if (kingSide && rook.Col <= castleKingCol) || !p.Board.InBounds(king) {
		return king, rook, false
	}
	k, r := p.PieceAt(king), p.PieceAt(rook)
	if k == nil || k.Type != King || k.Color != side || k.TimesMoved != 0 {
		return king, rook, false
	}
	if r == nil || r.Type != Rook || r.Color != side || r.TimesMoved != 0 {
		return king, rook, false
	}
	return king, rook, true
}

// CanCastleShape reports whether side still has an unmoved king and rook on
// their home squares for the given wing.
func CanCastleShape(p *Position, side Color, kingSide bool) bool {
	_, _, ok := castleRook(p, side, kingSide)
	return ok
}

// CastleRookSquares returns where the rook starts and lands for a castle of
// the king on from.
func CastleRookSquares(p *Position, from Coord, kingSide bool) (rookFrom, rookTo Coord) {
	if kingSide {
		return Coord{Col: p.Size() - 1, Row: from.Row}, from.Add(Right)
	}
	return Coord{Col: 0, Row: from.Row}, from.Add(Left)
}

func castleMoves(p *Position, from Coord, kingSide bool) SquareSet {
	var s SquareSet
	pc := p.PieceAt(from)
	if pc == nil || pc.Type != King {
		return s
	}
	king, rook, ok := castleRook(p, pc.Color, kingSide)
	if !ok || king != from {
		return s
	}
	dir := Left
	if kingSide {
		dir = Right
	}
	for c := king.Add(dir); c != rook; c = c.Add(dir) {
		if p.Board.Occupied(c) {
			return s
		}
	}
	to := king.Add(dir.Scale(2))
	if p.Board.InBounds(to) {
		s.Add(to)
	}
	return s
}

// CastleKingSideMoves returns the king's two-step destination towards the
// right-hand rook when the path is clear.
func CastleKingSideMoves(p *Position, from Coord) SquareSet { return castleMoves(p, from, true) }

// CastleQueenSideMoves is the left-hand counterpart of CastleKingSideMoves.
func CastleQueenSideMoves(p *Position, from Coord) SquareSet { return castleMoves(p, from, false) }

// ==========================
// Aggregates
// ==========================

// MovesFor returns the ordinary (non-special) move set of the piece on from.
func MovesFor(p *Position, from Coord) SquareSet {
	pc := p.PieceAt(from)
	if pc == nil {
		return SquareSet{}
	}
	switch pc.Type {
	case Pawn:
		return PawnMoves(p, from)
	case Knight:
		return KnightMoves(p, from)
	case Bishop:
		return BishopMoves(p, from)
	case Rook:
		return RookMoves(p, from)
	case Queen:
		return QueenMoves(p, from)
	case King:
		return KingMoves(p, from)
	}
	return SquareSet{}
}

// PseudoLegalMoves is the superset of destinations any rule could accept for
// the piece on from: ordinary moves plus en passant and castling.
func PseudoLegalMoves(p *Position, from Coord) SquareSet {
	s := MovesFor(p, from)
	pc := p.PieceAt(from)
	if pc == nil {
		return s
	}
	switch pc.Type {
	case Pawn:
		s = s.Union(EnPassantMoves(p, from))
	case King:
		s = s.Union(CastleKingSideMoves(p, from)).Union(CastleQueenSideMoves(p, from))
	}
	return s
}
