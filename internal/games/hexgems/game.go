// Package hexgems is the playable hex match-three game built on the board
// engine. Swaps go through the swap controller, which runs on a tick-driven
// clock so all engine callbacks happen inside Step.
package hexgems

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/cascade"
	"github.com/vovakirdan/hexgems/internal/config"
	"github.com/vovakirdan/hexgems/internal/core"
	"github.com/vovakirdan/hexgems/internal/hex"
	"github.com/vovakirdan/hexgems/internal/match"
	"github.com/vovakirdan/hexgems/internal/registry"
	"github.com/vovakirdan/hexgems/internal/swap"
)

// Variant selects the rules a game instance plays with.
type Variant string

const (
	VariantClassic Variant = "classic" // rectangular board, move budget
	VariantEndless Variant = "endless" // rectangular board, no budget
	VariantFlower  Variant = "flower"  // hexagonal board, move budget
)

// maxReseeds bounds how often a board without moves is seeded again.
const maxReseeds = 10

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown or empty values
// keep the values from the config file.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes engine debug logs. Nil is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements the hex gem game.
type Game struct {
	variant Variant
	cfg     config.HexGems
	rng     *rand.Rand
	tick    uint64
	tickDur time.Duration

	board    *board.Board
	pool     *board.Pool
	types    []board.GemType
	factory  *gemFactory
	finder   *match.LineFinder
	resolver *cascade.Resolver
	swaps    *swap.Controller
	clock    *swap.Clock
	anim     *presentation

	cursor       hex.Coord
	selected     hex.Coord
	hasSelection bool

	score     int
	moves     int
	bestChain int
	lastChain int
	lastGain  int
	shuffles  int
	scoring   bool

	gameOver bool
	paused   bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic game.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewEndless creates a game without a move budget.
func NewEndless() *Game {
	return &Game{variant: VariantEndless}
}

// NewFlower creates a game on a hexagon-shaped board.
func NewFlower() *Game {
	return &Game{variant: VariantFlower}
}

func init() {
	registry.Register("hexgems", func() registry.Game {
		return New()
	})
	registry.Register("hexgems_endless", func() registry.Game {
		return NewEndless()
	})
	registry.Register("hexgems_flower", func() registry.Game {
		return NewFlower()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.variant {
	case VariantEndless:
		return "hexgems_endless"
	case VariantFlower:
		return "hexgems_flower"
	default:
		return "hexgems"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case VariantEndless:
		return "Hex Gems (Endless)"
	case VariantFlower:
		return "Hex Gems (Flower)"
	default:
		return "Hex Gems"
	}
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	switch g.variant {
	case VariantEndless:
		return "Swap gems with no move limit"
	case VariantFlower:
		return "A hexagon-shaped board with a move budget"
	default:
		return "Score as much as you can within the move budget"
	}
}

// loadConfig resolves the config file, the difficulty preset and the
// variant overrides, in that order.
func (g *Game) loadConfig() config.HexGems {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.Default()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}

	switch g.variant {
	case VariantEndless:
		cfg.Rules.Moves = 0
	case VariantFlower:
		cfg.Board.Shape = config.ShapeFlower
		if cfg.Board.Radius < 1 {
			cfg.Board.Radius = config.Default().Board.Radius
		}
	}
	return cfg
}

// ConfigFor returns the resolved config the registered variant id plays
// with. The simulator uses it to run the same rules headless.
func ConfigFor(id string) (config.HexGems, error) {
	game, err := registry.Create(id)
	if err != nil {
		return config.HexGems{}, err
	}
	g, ok := game.(*Game)
	if !ok {
		return config.HexGems{}, fmt.Errorf("hexgems: %q is not a hex gems variant", id)
	}
	return g.loadConfig(), nil
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.resetWith(rt)
}

// resetWith builds a fresh board from g.cfg.
func (g *Game) resetWith(rt core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.tick = 0
	tickRate := rt.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	shape, err := g.cfg.Board.BuildShape()
	if err != nil {
		logger.Warn("invalid board shape, using default", "err", err)
		g.cfg.Board = config.Default().Board
		shape, _ = g.cfg.Board.BuildShape()
	}

	g.board = board.New(shape)
	g.pool = board.NewPool()
	g.finder = match.NewLineFinder(g.cfg.Rules.MinRun)
	g.anim = newPresentation(g.board, g.tickDur)
	g.anim.now = g.tick

	g.types = board.GemTypes(g.cfg.Gems.Types)
	g.factory = &gemFactory{pool: g.pool, anim: g.anim}
	g.resolver = cascade.New(g.board, g.finder, g.finder, g.factory, g.types, g.rng,
		cascade.WithGravity(g.cfg.Rules.Gravity()),
		cascade.WithPresenter(g.anim),
		cascade.WithLogger(logger),
		cascade.WithWaveHook(g.onWave))
	g.reseed()

	g.clock = swap.NewClock()
	g.swaps = swap.New(g.board, g.finder, g.resolver, g.clock,
		swap.WithAnimator(g.anim),
		swap.WithTiming(g.cfg.Timing.SwapDuration(), g.cfg.Timing.SettleDelay()),
		swap.WithLogger(logger),
		swap.WithOnSettled(g.onSettled))

	cells := g.board.Cells()
	g.cursor = cells[len(cells)/2]
	g.hasSelection = false

	g.score = 0
	g.moves = 0
	g.bestChain = 0
	g.lastChain = 0
	g.lastGain = 0
	g.shuffles = 0
	g.gameOver = false
	g.paused = false

	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.checkScreenSize()
}

// reseed fills the board again until it offers at least one move. Seeding
// is best-effort, so lines it leaves behind are cleared without scoring.
func (g *Game) reseed() {
	g.scoring = false
	defer func() { g.scoring = true }()

	for attempt := 0; attempt < maxReseeds; attempt++ {
		g.board.Initialize(g.types, g.finder, g.factory, g.rng)
		g.resolver.Resolve(nil)
		if g.finder.HasMove(g.board) {
			return
		}
	}
	logger.Warn("board has no moves after reseeding", "attempts", maxReseeds)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.now = g.tick
	g.clock.Advance(g.tickDur)
	g.anim.prune()

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.handleCursor(in)
	if g.swaps.IsAcceptingInput() {
		g.handleSelection(in)
	}

	return core.StepResult{State: g.State()}
}

// handleCursor moves the cursor. On screen X points up and Y points right,
// so every move lands on a neighbouring cell.
func (g *Game) handleCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(hex.C(1, 0))
	case in.Has(core.ActionDown):
		g.moveCursor(hex.C(-1, 0))
	case in.Has(core.ActionRight):
		g.moveCursor(hex.C(0, 1))
	case in.Has(core.ActionLeft):
		g.moveCursor(hex.C(0, -1))
	}
}

// moveCursor steps in direction d, skipping holes, and stays put when it
// would leave the board.
func (g *Game) moveCursor(d hex.Coord) {
	bounds := g.board.Shape().Bounds()
	for c := g.cursor.Add(d); bounds.Contains(c); c = c.Add(d) {
		if g.board.Has(c) {
			g.cursor = c
			return
		}
	}
}

func (g *Game) handleSelection(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.hasSelection = false
	}
	if !in.Has(core.ActionConfirm) {
		return
	}

	switch {
	case !g.hasSelection:
		g.selected = g.cursor
		g.hasSelection = true
	case g.selected == g.cursor:
		g.hasSelection = false
	case !hex.Adjacent(g.selected, g.cursor):
		g.selected = g.cursor
	default:
		if g.swaps.RequestSwap(g.selected, g.cursor) {
			g.hasSelection = false
		}
	}
}

// onWave scores one cascade wave.
func (g *Game) onWave(w cascade.Wave) {
	if !g.scoring {
		return
	}
	gain := g.cfg.Scoring.PerGem*len(w.Cleared) + g.cfg.Scoring.ChainBonus*(w.Index-1)
	g.score += gain
	g.lastGain = gain
	g.anim.flash(w.Cleared)
}

// onSettled counts successful moves and ends the game when the budget is
// spent.
func (g *Game) onSettled(o swap.Outcome) {
	if !o.Matched {
		return
	}
	g.moves++
	g.lastChain = o.Result.Waves
	g.bestChain = max(g.bestChain, o.Result.Waves)

	if g.cfg.Rules.Moves > 0 && g.moves >= g.cfg.Rules.Moves {
		g.gameOver = true
		logger.Debug("game over", "score", g.score, "moves", g.moves, "best_chain", g.bestChain)
		return
	}

	if !g.finder.HasMove(g.board) {
		g.reseed()
		g.shuffles++
		logger.Debug("board reshuffled", "shuffles", g.shuffles)
	}
}

// Resize adapts the layout to a new screen size. The board is kept.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.board != nil {
		g.checkScreenSize()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		Moves:     g.moves,
		BestChain: g.bestChain,
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}

// MovesLeft returns the remaining move budget, or -1 when unlimited.
func (g *Game) MovesLeft() int {
	if g.cfg.Rules.Moves == 0 {
		return -1
	}
	return max(g.cfg.Rules.Moves-g.moves, 0)
}

// Shuffles returns how often the board ran out of moves and was reseeded.
func (g *Game) Shuffles() int {
	return g.shuffles
}

// Board exposes the board for inspection.
func (g *Game) Board() *board.Board {
	return g.board
}

// Cursor returns the cell under the cursor.
func (g *Game) Cursor() hex.Coord {
	return g.cursor
}

// Busy reports whether a swap or cascade is still in progress.
func (g *Game) Busy() bool {
	return !g.swaps.IsAcceptingInput()
}
