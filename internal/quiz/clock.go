package quiz

import "context"

// Clock delivers one tick per second to an armed session. Arm replaces any
// previous callback; after Disarm no earlier callback may fire.
type Clock interface {
	Arm(fire func(ctx context.Context))
	Disarm()
}

// ManualClock is a Clock driven by the caller. Tests use it to step time.
type ManualClock struct {
	fire func(ctx context.Context)
}

// NewManualClock returns a disarmed clock.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Arm(fire func(ctx context.Context)) {
	c.fire = fire
}

func (c *ManualClock) Disarm() {
	c.fire = nil
}

// Armed reports whether a callback is waiting for ticks.
func (c *ManualClock) Armed() bool {
	return c.fire != nil
}

// Advance delivers n ticks, stopping early if the callback disarms the clock.
// It returns the number of ticks delivered.
func (c *ManualClock) Advance(ctx context.Context, n int) int {
	delivered := 0
	for range n {
		if c.fire == nil {
			break
		}
		c.fire(ctx)
		delivered++
	}
	return delivered
}

// nopClock never fires. Sessions without a clock only move on explicit Tick.
type nopClock struct{}

func (nopClock) Arm(func(context.Context)) {}
func (nopClock) Disarm()                   {}
