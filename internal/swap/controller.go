// Package swap exchanges two gems on request, waits for the swap to settle
// and then either hands the resulting matches to the cascade or swaps the
// gems back.
package swap

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/cascade"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// Default timings.
const (
	DefaultSwapDuration = 250 * time.Millisecond
	DefaultSettleDelay  = 350 * time.Millisecond
)

// State is the phase of the controller.
type State uint8

const (
	Idle State = iota
	Swapping
	Resolving
	Reverting
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Swapping:
		return "swapping"
	case Resolving:
		return "resolving"
	case Reverting:
		return "reverting"
	default:
		return "unknown"
	}
}

// Resolver is the cascade stage the controller hands matches to. Resolve
// reports false when it refused to start because a cascade is running.
type Resolver interface {
	Resolve(initial []hex.Coord) (cascade.Result, bool)
	IsResolving() bool
}

// Animator shows two gems trading places over d. It is called after the
// board already holds the new arrangement.
type Animator interface {
	AnimateSwap(a, b hex.Coord, d time.Duration)
}

// Outcome is reported when a swap request has fully settled.
type Outcome struct {
	A, B    hex.Coord
	Matched bool
	Result  cascade.Result
}

// Controller owns the swap state machine and the input gate.
type Controller struct {
	board     *board.Board
	matcher   cascade.Matcher
	resolver  Resolver
	scheduler Scheduler

	animator  Animator
	logger    *log.Logger
	onSettled func(Outcome)

	swapDuration time.Duration
	settleDelay  time.Duration

	state     State
	accepting bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithAnimator sets the swap animation hook.
func WithAnimator(a Animator) Option {
	return func(c *Controller) {
		c.animator = a
	}
}

// WithTiming sets the swap animation length and the total wait before
// matches are checked. Negative values are treated as zero.
func WithTiming(swapDuration, settleDelay time.Duration) Option {
	return func(c *Controller) {
		c.swapDuration = max(swapDuration, 0)
		c.settleDelay = max(settleDelay, 0)
	}
}

// WithLogger sets the logger for swap events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnSettled registers a callback run each time a request finishes,
// after input has been re-enabled.
func WithOnSettled(fn func(Outcome)) Option {
	return func(c *Controller) {
		c.onSettled = fn
	}
}

// New creates an idle controller that accepts input.
func New(b *board.Board, matcher cascade.Matcher, resolver Resolver, scheduler Scheduler, opts ...Option) *Controller {
	c := &Controller{
		board:        b,
		matcher:      matcher,
		resolver:     resolver,
		scheduler:    scheduler,
		logger:       log.New(io.Discard),
		swapDuration: DefaultSwapDuration,
		settleDelay:  DefaultSettleDelay,
		state:        Idle,
		accepting:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// IsAcceptingInput reports whether a new swap request would be considered.
func (c *Controller) IsAcceptingInput() bool {
	return c.accepting
}

// RequestSwap swaps the gems at a and b and starts the settle timer. It
// returns false and changes nothing when a equals b, either cell holds no
// gem, or a previous request or a cascade is still in progress. Adjacency
// is the caller's concern.
func (c *Controller) RequestSwap(a, b hex.Coord) bool {
	if c.state != Idle {
		c.logger.Debug("swap rejected", "reason", "busy", "state", c.state)
		return false
	}
	if c.resolver.IsResolving() {
		c.logger.Debug("swap rejected", "reason", "cascade running")
		return false
	}
	if a == b {
		c.logger.Debug("swap rejected", "reason", "same cell", "cell", a)
		return false
	}
	if _, ok := c.board.TryGet(a); !ok {
		c.logger.Debug("swap rejected", "reason", "no occupant", "cell", a)
		return false
	}
	if _, ok := c.board.TryGet(b); !ok {
		c.logger.Debug("swap rejected", "reason", "no occupant", "cell", b)
		return false
	}

	c.board.Swap(a, b)
	c.state = Swapping
	c.accepting = false
	c.logger.Debug("swap accepted", "a", a, "b", b)

	if c.animator != nil {
		c.animator.AnimateSwap(a, b, c.swapDuration)
	}
	c.scheduler.After(c.settleDelay, func() {
		c.settle(a, b)
	})
	return true
}

// settle hands the matches to the resolver, or swaps back when there are
// none or the resolver refuses them.
func (c *Controller) settle(a, b hex.Coord) {
	matches := c.matcher.FindMatches(c.board)
	if len(matches) > 0 {
		c.state = Resolving
		res, ok := c.resolver.Resolve(matches)
		if ok {
			c.logger.Debug("swap matched", "waves", res.Waves, "cleared", res.Cleared)
			c.finish(Outcome{A: a, B: b, Matched: true, Result: res})
			return
		}
		c.logger.Warn("cascade refused, reverting swap", "a", a, "b", b)
	}

	c.revert(a, b)
}

func (c *Controller) revert(a, b hex.Coord) {
	c.board.Swap(a, b)
	c.state = Reverting
	c.logger.Debug("swap reverted", "a", a, "b", b)
	if c.animator != nil {
		c.animator.AnimateSwap(a, b, c.swapDuration)
	}
	c.scheduler.After(c.swapDuration, func() {
		c.finish(Outcome{A: a, B: b})
	})
}

func (c *Controller) finish(out Outcome) {
	c.state = Idle
	c.accepting = true
	if c.onSettled != nil {
		c.onSettled(out)
	}
}
