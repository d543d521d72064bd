package rewards

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/bridgewise/internal/economy"
)

// ErrAlreadyClaimed is returned when today's reward was already taken.
var ErrAlreadyClaimed = errors.New("daily reward already claimed")

// Grant describes a check-in payout.
type Grant struct {
	Gems     int
	CycleDay int
	Streak   int

	// Milestone is the row reached by the new streak, if any. It is reported
	// for display only; Gems already includes the only payout.
	Milestone *Entry
}

// CheckIn claims the next day of the streak. The claimed day is
// LoginStreak+1, so a player at streak 6 claims cycle day 7. It applies no
// daily gate; callers must enforce once per day.
func CheckIn(p economy.Profile) (economy.Delta, Grant) {
	claim := p.LoginStreak + 1
	day := CycleDay(claim)
	base := BaseReward(day)

	g := Grant{
		Gems:     base.Gems,
		CycleDay: day,
		Streak:   claim,
	}
	if m, ok := MilestoneAt(claim); ok {
		g.Milestone = &m
	}

	d := economy.Delta{
		Reason: economy.ReasonCheckIn,
		Gems:   base.Gems,
		Streak: 1,
	}
	return d, g
}

// MilestoneState is a milestone with its achievement flag.
type MilestoneState struct {
	Entry
	Achieved bool
}

// MilestoneStatus reports whether the profile's streak has reached day.
func MilestoneStatus(p economy.Profile, day int) MilestoneState {
	m, ok := MilestoneAt(day)
	if !ok {
		m = Entry{Day: day}
	}
	return MilestoneState{Entry: m, Achieved: p.LoginStreak >= day}
}

// AllMilestones returns every milestone with its status for p.
func AllMilestones(p economy.Profile) []MilestoneState {
	out := make([]MilestoneState, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, MilestoneState{Entry: m, Achieved: p.LoginStreak >= m.Day})
	}
	return out
}

// CellStatus is the display state of a calendar cell.
type CellStatus int

const (
	CellLocked CellStatus = iota
	CellCurrent
	CellClaimed
)

func (s CellStatus) String() string {
	switch s {
	case CellClaimed:
		return "claimed"
	case CellCurrent:
		return "current"
	default:
		return "locked"
	}
}

// Cell is one day of the 7-cell calendar.
type Cell struct {
	Entry
	Status CellStatus
}

// Week returns the seven calendar cells for p. The cell the next check-in
// would claim is current; earlier cells in the cycle are claimed.
func Week(p economy.Profile) []Cell {
	next := CycleDay(p.LoginStreak + 1)
	cells := make([]Cell, 0, CycleLength)
	for _, e := range baseTable {
		c := Cell{Entry: e}
		switch {
		case e.Day < next:
			c.Status = CellClaimed
		case e.Day == next:
			c.Status = CellCurrent
		}
		cells = append(cells, c)
	}
	return cells
}

// Eligible reports whether a check-in is allowed at now given the last one.
// Claims are limited to one per local calendar day.
func Eligible(last, now time.Time) bool {
	if last.IsZero() {
		return true
	}
	ly, lm, ld := last.Local().Date()
	ny, nm, nd := now.Local().Date()
	if ly == ny && lm == nm && ld == nd {
		return false
	}
	return now.After(last)
}

// Calendar applies the daily gate and commits check-ins through a ledger.
type Calendar struct {
	now    func() time.Time
	logger *slog.Logger
}

// CalendarOption configures a Calendar.
type CalendarOption func(*Calendar)

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) CalendarOption {
	return func(c *Calendar) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CalendarOption {
	return func(c *Calendar) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalendar creates a calendar using the system clock.
func NewCalendar(opts ...CalendarOption) *Calendar {
	c := &Calendar{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the calendar's current time.
func (c *Calendar) Now() time.Time {
	return c.now()
}

// CheckIn claims today's reward if last is on an earlier day.
func (c *Calendar) CheckIn(ctx context.Context, ledger *economy.Ledger, last time.Time) (Grant, error) {
	if !Eligible(last, c.now()) {
		return Grant{}, ErrAlreadyClaimed
	}

	d, g := CheckIn(ledger.Profile())
	if _, err := ledger.Commit(ctx, d); err != nil {
		return Grant{}, err
	}

	attrs := []any{"gems", g.Gems, "cycle_day", g.CycleDay, "streak", g.Streak}
	if g.Milestone != nil {
		attrs = append(attrs, "milestone", g.Milestone.Label)
	}
	c.logger.Info("daily check-in", attrs...)
	return g, nil
}
