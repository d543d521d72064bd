package economy

import (
	"context"
	"fmt"
	"log/slog"
)

// ApplyGemDelta returns p with delta gems added. It rejects any change that
// would leave the balance negative.
func ApplyGemDelta(p Profile, delta int) (Profile, error) {
	if p.Gems+delta < 0 {
		return p, &FundsError{Need: -delta, Have: p.Gems}
	}
	p.Gems += delta
	return p, nil
}

// ApplyHeartDelta returns p with delta hearts added, clamped to [0, MaxHearts].
func ApplyHeartDelta(p Profile, delta int) Profile {
	p.Hearts = min(max(p.Hearts+delta, 0), p.MaxHearts)
	return p
}

// ComputeLevel returns the level reached after earning gemsEarned in a
// session, using the default gems-per-level step.
func ComputeLevel(currentLevel, gemsEarned int) int {
	return DefaultRules().LevelFor(currentLevel, gemsEarned)
}

// CompleteWorld marks world id completed. Completing twice is a no-op.
func CompleteWorld(p Profile, id int) Profile {
	p.CompletedWorlds = p.CompletedWorlds.With(id)
	return p
}

// UnlockWorld marks world id unlocked. Unlocking twice is a no-op. World 1 is
// always unlockable; any other world needs its predecessor completed.
func UnlockWorld(p Profile, id int) (Profile, error) {
	if id < 1 {
		return p, fmt.Errorf("%w: world id %d", ErrInvalidProfile, id)
	}
	if id > 1 && !p.CompletedWorlds.Has(id-1) {
		return p, fmt.Errorf("unlock world %d: %w", id, ErrProgressionGate)
	}
	p.UnlockedWorlds = p.UnlockedWorlds.With(id)
	return p, nil
}

// Apply returns p with every field of d applied, or p unchanged and an error.
// Completion is applied before unlocking so a single delta can finish world w
// and open w+1.
func Apply(p Profile, d Delta) (Profile, error) {
	next, err := ApplyGemDelta(p, d.Gems)
	if err != nil {
		return p, err
	}
	next = ApplyHeartDelta(next, d.Hearts)

	if next.Level+d.Levels < 1 {
		return p, fmt.Errorf("%w: level %d", ErrInvalidProfile, next.Level+d.Levels)
	}
	next.Level += d.Levels

	if next.LoginStreak+d.Streak < 0 {
		return p, fmt.Errorf("%w: login streak %d", ErrInvalidProfile, next.LoginStreak+d.Streak)
	}
	next.LoginStreak += d.Streak

	if d.Name != "" {
		next.Name = d.Name
	}

	if d.Complete != 0 {
		next = CompleteWorld(next, d.Complete)
	}
	if d.Unlock != 0 {
		next, err = UnlockWorld(next, d.Unlock)
		if err != nil {
			return p, err
		}
	}
	return next, nil
}

// Sink receives every committed delta together with the resulting profile.
// It owns durability; the ledger neither retries nor verifies the write.
type Sink interface {
	Record(ctx context.Context, d Delta, after Profile) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, d Delta, after Profile) error

func (f SinkFunc) Record(ctx context.Context, d Delta, after Profile) error {
	return f(ctx, d, after)
}

// Ledger owns the live profile while a session or check-in runs. Commit is
// the only way to change it; everyone else reads copies.
type Ledger struct {
	profile Profile
	sink    Sink
	logger  *slog.Logger
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithLogger sets the logger used for sink failures.
func WithLogger(l *slog.Logger) LedgerOption {
	return func(lg *Ledger) {
		if l != nil {
			lg.logger = l
		}
	}
}

// NewLedger creates a ledger over p. sink may be nil.
func NewLedger(p Profile, sink Sink, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		profile: p.Clone(),
		sink:    sink,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Profile returns a copy of the live profile.
func (l *Ledger) Profile() Profile {
	return l.profile.Clone()
}

// Commit applies d as a whole-profile replacement and forwards it to the
// sink. On rejection the live profile is left untouched.
func (l *Ledger) Commit(ctx context.Context, d Delta) (Profile, error) {
	next, err := Apply(l.profile, d)
	if err != nil {
		return l.Profile(), err
	}
	l.profile = next

	if l.sink != nil {
		if err := l.sink.Record(ctx, d, next.Clone()); err != nil {
			l.logger.Warn("failed to record profile delta",
				"reason", d.Reason,
				"session_id", d.SessionID,
				"err", err)
		}
	}
	return l.Profile(), nil
}
