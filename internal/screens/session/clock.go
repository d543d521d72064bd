package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/quiz"
)

// tickClock adapts the bubbletea tick loop to quiz.Clock. Every Arm and
// Disarm starts a new generation, so a tick scheduled before a phase change
// can never reach the session.
type tickClock struct {
	gen       int
	scheduled int // generation with a tick in flight, -1 for none
	fire      func(ctx context.Context)
	interval  time.Duration
}

var _ quiz.Clock = (*tickClock)(nil)

func newTickClock() *tickClock {
	return &tickClock{scheduled: -1, interval: time.Second}
}

func (c *tickClock) Arm(fire func(ctx context.Context)) {
	c.gen++
	c.fire = fire
}

func (c *tickClock) Disarm() {
	c.gen++
	c.fire = nil
}

// schedule returns a tick command for the current generation, or nil when
// disarmed or a tick is already pending.
func (c *tickClock) schedule() tea.Cmd {
	if c.fire == nil || c.scheduled == c.gen {
		return nil
	}
	c.scheduled = c.gen
	gen := c.gen
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

// deliver fires the armed callback for a current tick. It reports whether
// the tick was live.
func (c *tickClock) deliver(ctx context.Context, msg timerTickMsg) bool {
	if msg.gen == c.scheduled {
		c.scheduled = -1
	}
	if msg.gen != c.gen || c.fire == nil {
		return false
	}
	c.fire(ctx)
	return true
}
