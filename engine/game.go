package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"chess-rules/board"
)

// GameState is the lifecycle state of a game.
type GameState uint8

const (
	WhiteToMove GameState = iota
	BlackToMove
	WhiteWon
	BlackWon
	Tie
)

var stateNames = [...]string{"WHITE_TO_MOVE", "BLACK_TO_MOVE", "WHITE_WON", "BLACK_WON", "TIE"}

func (s GameState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("GameState(%d)", uint8(s))
}

// Finished reports whether the state is terminal.
func (s GameState) Finished() bool { return s >= WhiteWon }

func toMove(c board.Color) GameState {
	if c == board.Black {
		return BlackToMove
	}
	return WhiteToMove
}

func wonBy(c board.Color) GameState {
	if c == board.Black {
		return BlackWon
	}
	return WhiteWon
}

// Config is the starting setup of a game. Placement is a FEN placement
// field; when it is a full FEN its side-to-move field overrides Starting.
type Config struct {
	Placement string
	Starting  board.Color
}

// DefaultConfig is the standard 8x8 game with White to move.
func DefaultConfig() Config {
	return Config{Placement: board.StartPlacement, Starting: board.White}
}

// Option customises a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithID overrides the generated game id.
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// WithUndoDepth bounds how many moves can be undone. Zero means unbounded.
// The default is a single level.
func WithUndoDepth(n int) Option {
	return func(g *Game) { g.undoDepth = n }
}

// WithPromotion sets the piece pawns promote to when MakeMove is used.
func WithPromotion(pt board.PieceType) Option {
	return func(g *Game) { g.promoteTo = pt }
}

// Game is a chess game on an N x N board. MakeMove, MakeMoveAs, Undo and
// Reset are serialized; queries are not and must not race with them.
type Game struct {
	mu        sync.Mutex
	id        string
	cfg       Config
	log       *zap.Logger
	undoDepth int
	promoteTo board.PieceType
	validator *RuleValidator
	listeners []Listener

	pos        *board.Position
	onMove     board.Color
	state      GameState
	moveNumber int
	history    []Move
	safety     [2]board.Safety
	undo       []snapshot
	pending    pendingMove
}

type pendingMove struct {
	promoteTo board.PieceType
}

// NewGame sets up a game from cfg.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	g := &Game{
		id:        uuid.NewString(),
		cfg:       cfg,
		log:       zap.NewNop(),
		undoDepth: 1,
		promoteTo: board.Queen,
	}
	for _, o := range opts {
		o(g)
	}
	if _, ok := PromotionAction(g.promoteTo); !ok {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrInvalidPromotion, g.promoteTo)
	}
	if g.undoDepth < 0 {
		return nil, fmt.Errorf("%w: negative undo depth %d", ErrInvalidConfig, g.undoDepth)
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.validator = newRuleValidator(g)
	return g, nil
}

func (g *Game) load() error {
	pos, side, err := board.ParseFEN(g.cfg.Placement)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := pos.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !hasSideField(g.cfg.Placement) {
		side = g.cfg.Starting
	}
	g.pos = pos
	g.onMove = side
	g.state = toMove(side)
	g.moveNumber = 1
	g.history = nil
	g.undo = nil
	g.recompute()
	return nil
}

func hasSideField(placement string) bool {
	return strings.ContainsRune(strings.TrimSpace(placement), ' ')
}

// recompute refreshes the per-ply safety cache for both sides.
func (g *Game) recompute() {
	g.safety[board.White] = board.ComputeSafety(g.pos, board.White)
	g.safety[board.Black] = board.ComputeSafety(g.pos, board.Black)
}

// ==========================
// Queries
// ==========================

func (g *Game) ID() string { return g.id }
func (g *Game) Config() Config { return g.cfg }
func (g *Game) BoardSize() int { return g.pos.Size() }
func (g *Game) OnMove() board.Color { return g.onMove }
func (g *Game) State() GameState { return g.state }
func (g *Game) IsFinished() bool { return g.state.Finished() }
func (g *Game) MoveNumber() int { return g.moveNumber }
func (g *Game) Ply() int { return g.pos.Ply }
func (g *Game) Validator() *RuleValidator { return g.validator }
func (g *Game) Hash() uint64 { return g.pos.Hash(g.onMove) }
func (g *Game) Placement() string { return board.WritePlacement(g.pos) }
func (g *Game) FEN() string { return board.WriteFEN(g.pos, g.onMove) }
func (g *Game) IsCheckFor(c board.Color) bool { return g.safety[c].InCheck() }

// Position exposes the live position for read-only use.
func (g *Game) Position() *board.Position { return g.pos }

// PieceAt returns a copy of the piece on c.
func (g *Game) PieceAt(c board.Coord) (board.Piece, bool) {
	pc := g.pos.PieceAt(c)
	if pc == nil {
		return board.Piece{}, false
	}
	return *pc, true
}

// ColorAt returns the side owning the piece on c.
func (g *Game) ColorAt(c board.Coord) (board.Color, bool) {
	pc := g.pos.PieceAt(c)
	if pc == nil {
		return board.White, false
	}
	return pc.Color, true
}

// Attacked returns the squares where side's king would stand attacked.
func (g *Game) Attacked(side board.Color) board.SquareSet { return g.safety[side].Attacked }

// Pinned returns the squares of side's pieces pinned to its king.
func (g *Game) Pinned(side board.Color) board.SquareSet { return g.safety[side].Pinned() }

// History returns a copy of the move history.
func (g *Game) History() []Move { return slices.Clone(g.history) }

// LastMove returns the most recent move.
func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Validate runs the rule pipeline for from-to.
func (g *Game) Validate(from, to board.Coord) Validation { return g.validator.Validate(from, to) }

// ValidateFrom validates every candidate destination of the piece on from.
func (g *Game) ValidateFrom(from board.Coord) map[board.Coord]Validation {
	return g.validator.ValidateFrom(from)
}

// sandbox lets queries about the side not on move, or about a finished
// game, see the moves that side could make.
var sandbox = Rules(RuleTeamNotOnMove, RuleGameIsFinished)

// LegalMoves returns the legal moves of the side to move, ordered by piece
// slot then destination.
func (g *Game) LegalMoves() []Validation { return g.legalMovesFor(g.onMove, 0) }

// LegalMovesFor returns the moves side could make if it were on move.
func (g *Game) LegalMovesFor(side board.Color) []Validation { return g.legalMovesFor(side, sandbox) }

func (g *Game) legalMovesFor(side board.Color, skip RuleSet) []Validation {
	var out []Validation
	for _, pc := range g.pos.Teams[side].Alive() {
		from, ok := g.pos.Locate(pc)
		if !ok {
			continue
		}
		g.validator.eachLegal(from, skip, func(v Validation) bool {
			out = append(out, v)
			return true
		})
	}
	return out
}

// HasLegalMovesLeft reports whether side has at least one legal move.
func (g *Game) HasLegalMovesLeft(side board.Color) bool {
	for _, pc := range g.pos.Teams[side].Alive() {
		from, ok := g.pos.Locate(pc)
		if !ok {
			continue
		}
		if !g.validator.eachLegal(from, sandbox, func(Validation) bool { return false }) {
			return true
		}
	}
	return false
}

// IsCheckmateFor reports check with no way out.
func (g *Game) IsCheckmateFor(side board.Color) bool {
	return g.IsCheckFor(side) && !g.HasLegalMovesLeft(side)
}

// IsStalemateFor reports no legal move while not in check. Two bare kings
// are also a stalemate.
func (g *Game) IsStalemateFor(side board.Color) bool {
	if g.pos.Teams[board.White].AliveCount() == 1 && g.pos.Teams[board.Black].AliveCount() == 1 {
		return true
	}
	return !g.IsCheckFor(side) && !g.HasLegalMovesLeft(side)
}

// Clone deep-copies the game for exploratory use. The clone's id is
// "<id>::<tag>"; it has its own validator, no listeners and an empty undo
// stack.
func (g *Game) Clone(tag string) *Game {
	c := &Game{
		id:         g.id + "::" + tag,
		cfg:        g.cfg,
		log:        g.log,
		undoDepth:  g.undoDepth,
		promoteTo:  g.promoteTo,
		pos:        g.pos.Clone(),
		onMove:     g.onMove,
		state:      g.state,
		moveNumber: g.moveNumber,
		history:    slices.Clone(g.history),
		safety:     g.safety,
	}
	c.validator = g.validator.Clone(c)
	return c
}
