// Package game wires the quiz, economy and reward packages to persistence
// for the terminal front-ends. Screens and commands go through Services
// instead of touching the ledger directly.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/questionbank"
	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/rewards"
	"github.com/abhisek/bridgewise/internal/store"
)

// MaxNameLength bounds the player name in runes.
const MaxNameLength = 24

// ErrInvalidName is returned by Rename for blank or overlong names.
var ErrInvalidName = errors.New("invalid player name")

// Services bundles the live profile with the collaborators the front-ends
// need. Events and Recorder may be nil; check-in eligibility then falls back
// to the last check-in made through this value.
type Services struct {
	Ledger   *economy.Ledger
	Bank     *questionbank.Bank
	Rules    economy.Rules
	Calendar *rewards.Calendar
	Events   store.EventRepo
	Recorder quiz.Recorder
	Logger   *slog.Logger

	lastCheckIn time.Time
}

// Options configures New.
type Options struct {
	Profile  economy.Profile
	Sink     economy.Sink
	Bank     *questionbank.Bank
	Rules    economy.Rules
	Calendar *rewards.Calendar
	Events   store.EventRepo
	Recorder quiz.Recorder
	Logger   *slog.Logger
}

// New builds Services around a ledger over opts.Profile. A nil Bank uses the
// built-in worlds, zero Rules use DefaultRules and a nil Calendar uses the
// system clock.
func New(opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bank := opts.Bank
	if bank == nil {
		bank = questionbank.Default()
	}
	rules := opts.Rules
	if rules == (economy.Rules{}) {
		rules = economy.DefaultRules()
	}
	cal := opts.Calendar
	if cal == nil {
		cal = rewards.NewCalendar(rewards.WithLogger(logger))
	}
	return &Services{
		Ledger:   economy.NewLedger(opts.Profile, opts.Sink, economy.WithLogger(logger)),
		Bank:     bank,
		Rules:    rules,
		Calendar: cal,
		Events:   opts.Events,
		Recorder: opts.Recorder,
		Logger:   logger,
	}
}

// Profile returns a copy of the live profile.
func (s *Services) Profile() economy.Profile {
	return s.Ledger.Profile()
}

// StartSession opens a quiz on worldID. Known worlds must be unlocked;
// unknown ids play the fallback world.
func (s *Services) StartSession(ctx context.Context, worldID int, clock quiz.Clock) (*quiz.Session, error) {
	if _, known := s.Bank.Lookup(worldID); known && !s.Profile().UnlockedWorlds.Has(worldID) {
		return nil, fmt.Errorf("world %d: %w", worldID, economy.ErrProgressionGate)
	}

	opts := []quiz.Option{
		quiz.WithRules(s.Rules),
		quiz.WithClock(clock),
		quiz.WithLogger(s.Logger),
	}
	if s.Recorder != nil {
		opts = append(opts, quiz.WithRecorder(s.Recorder))
	}
	return quiz.Start(ctx, s.Ledger, s.Bank, worldID, opts...)
}

// LastCheckIn returns when the reward was last claimed, or zero.
func (s *Services) LastCheckIn(ctx context.Context) (time.Time, error) {
	if s.Events == nil {
		return s.lastCheckIn, nil
	}
	last, err := s.Events.LastCheckIn(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if s.lastCheckIn.After(last) {
		return s.lastCheckIn, nil
	}
	return last, nil
}

// CanCheckIn reports whether today's reward is still available.
func (s *Services) CanCheckIn(ctx context.Context) (bool, error) {
	last, err := s.LastCheckIn(ctx)
	if err != nil {
		return false, err
	}
	return rewards.Eligible(last, s.Calendar.Now()), nil
}

// CheckIn claims today's reward. It returns rewards.ErrAlreadyClaimed when
// the reward was taken earlier today.
func (s *Services) CheckIn(ctx context.Context) (rewards.Grant, error) {
	last, err := s.LastCheckIn(ctx)
	if err != nil {
		return rewards.Grant{}, err
	}
	g, err := s.Calendar.CheckIn(ctx, s.Ledger, last)
	if err != nil {
		return rewards.Grant{}, err
	}
	s.lastCheckIn = s.Calendar.Now()
	return g, nil
}

// Rename sets the player name.
func (s *Services) Rename(ctx context.Context, name string) (economy.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Profile(), fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return s.Profile(), fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	return s.Ledger.Commit(ctx, economy.Delta{Reason: economy.ReasonRename, Name: name})
}

// History returns up to limit finished sessions, newest first. Without an
// event repo it returns nothing.
func (s *Services) History(ctx context.Context, limit int) ([]store.SessionSummaryRecord, error) {
	if s.Events == nil {
		return nil, nil
	}
	return s.Events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
}

// Transactions returns up to limit committed deltas, newest first. Without
// an event repo it returns nothing.
func (s *Services) Transactions(ctx context.Context, limit int) ([]store.DeltaRecord, error) {
	if s.Events == nil {
		return nil, nil
	}
	return s.Events.QueryDeltas(ctx, store.QueryOpts{Limit: limit})
}
