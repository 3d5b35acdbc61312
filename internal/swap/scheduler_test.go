package swap

import (
	"testing"
	"time"
)

func TestClockFiresInDueOrder(t *testing.T) {
	c := NewClock()
	var order []string

	c.After(30*time.Millisecond, func() { order = append(order, "c") })
	c.After(10*time.Millisecond, func() { order = append(order, "a") })
	c.After(10*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(5 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("nothing should fire before it is due, got %v", order)
	}

	c.Advance(25 * time.Millisecond)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("fired %v, want %v", order, want)
			break
		}
	}
	if c.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", c.Now())
	}
}

func TestClockChainsCallbacksWithinOneAdvance(t *testing.T) {
	c := NewClock()
	var fired []time.Duration

	c.After(10*time.Millisecond, func() {
		fired = append(fired, c.Now())
		c.After(10*time.Millisecond, func() {
			fired = append(fired, c.Now())
		})
	})

	c.Advance(50 * time.Millisecond)
	if len(fired) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(fired))
	}
	if fired[0] != 10*time.Millisecond || fired[1] != 20*time.Millisecond {
		t.Errorf("callbacks ran at %v, want [10ms 20ms]", fired)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestImmediateRunsSynchronously(t *testing.T) {
	ran := false
	Immediate{}.After(time.Hour, func() { ran = true })
	if !ran {
		t.Error("Immediate should run the callback before returning")
	}
}
