package swap

import (
	"sort"
	"time"
)

// Scheduler runs fn once d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs every callback synchronously, ignoring the delay.
type Immediate struct{}

// After calls fn right away.
func (Immediate) After(_ time.Duration, fn func()) {
	fn()
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// Clock is a manual scheduler. Time only moves when Advance is called, and
// callbacks run on the caller's goroutine.
type Clock struct {
	now     time.Duration
	seq     uint64
	pending []timer
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// After schedules fn at now+d.
func (c *Clock) After(d time.Duration, fn func()) {
	c.seq++
	c.pending = append(c.pending, timer{at: c.now + max(d, 0), seq: c.seq, fn: fn})
}

// Advance moves time forward by d and fires every callback that falls due,
// earliest first. Callbacks scheduled while advancing also fire if they are
// due before the new time.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + max(d, 0)
	for {
		i, ok := c.next(target)
		if !ok {
			break
		}
		t := c.pending[i]
		c.pending = append(c.pending[:i], c.pending[i+1:]...)
		c.now = t.at
		t.fn()
	}
	c.now = target
}

func (c *Clock) next(target time.Duration) (int, bool) {
	if len(c.pending) == 0 {
		return 0, false
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at != c.pending[j].at {
			return c.pending[i].at < c.pending[j].at
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if c.pending[0].at > target {
		return 0, false
	}
	return 0, true
}

// Now returns the elapsed time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of callbacks not yet fired.
func (c *Clock) Pending() int {
	return len(c.pending)
}
