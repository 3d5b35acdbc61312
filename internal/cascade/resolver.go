// Package cascade clears matched gems, lets the rest fall along the gravity
// axis, refills the gaps and repeats until the board is stable.
package cascade

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// Matcher returns the cells that currently form matches. An empty result
// means the board is stable.
type Matcher interface {
	FindMatches(b *board.Board) []hex.Coord
}

// Presenter moves the visual of a gem that fell from one cell to another.
type Presenter interface {
	Snap(g *board.Gem, from, to hex.Coord)
}

// Wave describes one clear/compact/refill pass.
type Wave struct {
	Index   int // 1-based
	Cleared []hex.Coord
	Moved   int
	Spawned int
}

// Result summarizes a full resolution.
type Result struct {
	Waves   int
	Cleared int
	Moved   int
	Spawned int
	PerWave []int // cleared count per wave
}

// Resolver runs cascades on a single board.
type Resolver struct {
	board   *board.Board
	matcher Matcher
	placer  board.Placer
	factory board.Factory
	types   []board.GemType
	rng     board.Rand

	gravity   hex.Axis
	columns   [][]hex.Coord
	presenter Presenter
	logger    *log.Logger
	onWave    func(Wave)

	resolving bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGravity sets the axis gems fall along. Defaults to E-W, falling
// towards the backward end.
func WithGravity(axis hex.Axis) Option {
	return func(r *Resolver) {
		r.gravity = axis
	}
}

// WithPresenter sets the visual hook for falling gems.
func WithPresenter(p Presenter) Option {
	return func(r *Resolver) {
		r.presenter = p
	}
}

// WithLogger sets the logger for wave events.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithWaveHook registers a callback invoked after every wave.
func WithWaveHook(fn func(Wave)) Option {
	return func(r *Resolver) {
		r.onWave = fn
	}
}

// New creates a resolver. Columns are computed once here since the set of
// cells never changes after the board is built.
func New(b *board.Board, matcher Matcher, placer board.Placer, factory board.Factory,
	types []board.GemType, rng board.Rand, opts ...Option) *Resolver {
	r := &Resolver{
		board:   b,
		matcher: matcher,
		placer:  placer,
		factory: factory,
		types:   types,
		rng:     rng,
		gravity: hex.AxisEW,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.columns = b.Columns(r.gravity)
	return r
}

// Gravity returns the axis gems fall along.
func (r *Resolver) Gravity() hex.Axis {
	return r.gravity
}

// Columns returns the cached gravity columns, bottom first.
func (r *Resolver) Columns() [][]hex.Coord {
	return r.columns
}

// IsResolving reports whether a resolution is in progress.
func (r *Resolver) IsResolving() bool {
	return r.resolving
}

// Resolve clears the initial matches and keeps cascading until the matcher
// reports none. A nil initial set asks the matcher first. Returns false
// without touching the board if a resolution is already running.
func (r *Resolver) Resolve(initial []hex.Coord) (Result, bool) {
	if r.resolving {
		r.logger.Debug("resolve ignored, already resolving")
		return Result{}, false
	}
	r.resolving = true
	defer func() { r.resolving = false }()

	matches := initial
	if matches == nil {
		matches = r.matcher.FindMatches(r.board)
	}

	var res Result
	for len(matches) > 0 {
		res.Waves++
		wave := Wave{Index: res.Waves, Cleared: matches}

		cleared := r.Clear(matches)
		for _, col := range r.columns {
			moved, _ := r.CompactColumn(col)
			wave.Moved += moved
		}
		wave.Spawned = r.Refill(r.columns)

		res.Cleared += cleared
		res.Moved += wave.Moved
		res.Spawned += wave.Spawned
		res.PerWave = append(res.PerWave, cleared)

		r.logger.Debug("cascade wave",
			"wave", wave.Index,
			"cleared", cleared,
			"moved", wave.Moved,
			"spawned", wave.Spawned)
		if r.onWave != nil {
			r.onWave(wave)
		}

		matches = r.matcher.FindMatches(r.board)
	}
	return res, true
}

// Clear destroys the gems at cells and empties them. Empty or invalid cells
// are skipped. Returns the number of gems destroyed.
func (r *Resolver) Clear(cells []hex.Coord) int {
	n := 0
	for _, c := range cells {
		g, ok := r.board.TryGet(c)
		if !ok {
			continue
		}
		r.factory.Destroy(g)
		r.board.Set(c, nil)
		n++
	}
	return n
}

// CompactColumn packs the gems of col towards its bottom, keeping their
// order. It returns the number of gems that moved and the index of the first
// empty cell.
func (r *Resolver) CompactColumn(col []hex.Coord) (moved, write int) {
	for read, c := range col {
		g, ok := r.board.TryGet(c)
		if !ok {
			continue
		}
		if read != write {
			to := col[write]
			r.board.Set(to, g)
			r.board.Set(c, nil)
			if r.presenter != nil {
				r.presenter.Snap(g, c, to)
			}
			moved++
		}
		write++
	}
	for i := write; i < len(col); i++ {
		r.board.Set(col[i], nil)
	}
	return moved, write
}

// Refill fills every empty cell of cols, scanning each column from the top,
// with a type the placer accepts where possible. Returns the number of gems
// spawned.
func (r *Resolver) Refill(cols [][]hex.Coord) int {
	n := 0
	for _, col := range cols {
		for i := len(col) - 1; i >= 0; i-- {
			c := col[i]
			if _, ok := r.board.TryGet(c); ok {
				continue
			}
			t := board.ChooseType(c, r.types, r.placer, r.board, r.rng)
			r.board.Set(c, r.factory.Create(t, c))
			n++
		}
	}
	return n
}
