package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/questionbank"
)

type fakeRecorder struct {
	sessions []SessionEvent
	answers  []AnswerEvent
}

func (r *fakeRecorder) RecordSession(_ context.Context, ev SessionEvent) error {
	r.sessions = append(r.sessions, ev)
	return nil
}

func (r *fakeRecorder) RecordAnswer(_ context.Context, ev AnswerEvent) error {
	r.answers = append(r.answers, ev)
	return nil
}

type fixture struct {
	ledger   *economy.Ledger
	clock    *ManualClock
	recorder *fakeRecorder
	session  *Session
}

func newFixture(t *testing.T, p economy.Profile, worldID int) *fixture {
	t.Helper()
	f := &fixture{
		ledger:   economy.NewLedger(p, nil),
		clock:    NewManualClock(),
		recorder: &fakeRecorder{},
	}
	s, err := Start(context.Background(), f.ledger, questionbank.Default(), worldID,
		WithClock(f.clock), WithRecorder(f.recorder))
	require.NoError(t, err)
	f.session = s
	return f
}

func defaultProfile() economy.Profile {
	return economy.NewProfile(economy.DefaultRules())
}

func (f *fixture) correct() int {
	return f.session.View().Question.CorrectIndex
}

func (f *fixture) wrong() int {
	q := f.session.View().Question
	return (q.CorrectIndex + 1) % len(q.Options)
}

func TestStart(t *testing.T) {
	f := newFixture(t, defaultProfile(), 2)
	v := f.session.View()

	assert.Equal(t, PhasePresenting, v.Phase)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, 10, v.Total)
	assert.Equal(t, 30, v.Remaining)
	assert.Equal(t, 5, v.HeartsAtStart)
	assert.Equal(t, "Opening Bids", v.WorldName)
	assert.True(t, f.clock.Armed())
	require.Len(t, f.recorder.sessions, 1)
	assert.Equal(t, ActionStart, f.recorder.sessions[0].Action)
}

func TestStartUnknownWorldFallsBack(t *testing.T) {
	f := newFixture(t, defaultProfile(), 42)
	v := f.session.View()

	want := questionbank.Default().Questions(1)
	assert.Equal(t, want[0].Prompt, v.Question.Prompt)
	assert.Equal(t, 42, v.WorldID)
}

func TestStartNonPositiveWorldPlaysWorldOne(t *testing.T) {
	for _, id := range []int{0, -3} {
		t.Run(fmt.Sprintf("world %d", id), func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, defaultProfile(), id)
			assert.Equal(t, 1, f.session.View().WorldID)

			var sum *Summary
			for range 10 {
				_, err := f.session.Submit(ctx, f.correct())
				require.NoError(t, err)
				sum, err = f.session.Advance(ctx)
				require.NoError(t, err)
			}
			require.NotNil(t, sum)

			got := f.ledger.Profile()
			assert.True(t, got.CompletedWorlds.Has(1))
			assert.True(t, got.UnlockedWorlds.Has(2))
			assert.NoError(t, got.Validate())
		})
	}
}

func TestStartWithoutHeartsIsExhausted(t *testing.T) {
	p := defaultProfile()
	p.Hearts = 0
	f := newFixture(t, p, 1)

	assert.Equal(t, PhaseExhausted, f.session.Phase())
	assert.False(t, f.clock.Armed())

	_, err := f.session.Submit(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWorldOneScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)
	s := f.session

	res, err := s.Submit(ctx, f.correct())
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 10, res.GemsAwarded)
	v := s.View()
	assert.Equal(t, 10, v.GemsEarned)
	assert.Equal(t, 1, v.Correct)
	assert.Equal(t, 5, v.Profile.Hearts)

	_, err = s.Advance(ctx)
	require.NoError(t, err)
	res, err = s.Submit(ctx, f.wrong())
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 4, f.ledger.Profile().Hearts)

	_, err = s.Advance(ctx)
	require.NoError(t, err)
	hint, err := s.UseHint(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.View().Question.Explanation, hint)
	assert.Equal(t, 40, f.ledger.Profile().Gems)

	res, err = s.Submit(ctx, f.correct())
	require.NoError(t, err)
	assert.Equal(t, 5, res.GemsAwarded)
	assert.Equal(t, 15, s.View().GemsEarned)
}

func TestSubmitOncePerQuestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	_, err := f.session.Submit(ctx, f.correct())
	require.NoError(t, err)

	_, err = f.session.Submit(ctx, f.correct())
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "submit", te.Op)
	assert.Equal(t, PhaseRevealed, te.Phase)
	assert.Equal(t, 10, f.session.View().GemsEarned)
}

func TestSubmitInvalidChoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	for _, choice := range []int{-2, 4, 100} {
		_, err := f.session.Submit(ctx, choice)
		assert.ErrorIs(t, err, ErrInvalidChoice, "choice %d", choice)
	}
	assert.Equal(t, PhasePresenting, f.session.Phase())
	assert.Equal(t, 5, f.ledger.Profile().Hearts)
}

func TestUseHint(t *testing.T) {
	ctx := context.Background()

	t.Run("once per question", func(t *testing.T) {
		f := newFixture(t, defaultProfile(), 1)
		_, err := f.session.UseHint(ctx)
		require.NoError(t, err)
		_, err = f.session.UseHint(ctx)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 40, f.ledger.Profile().Gems)
	})

	t.Run("unaffordable", func(t *testing.T) {
		p := defaultProfile()
		p.Gems = 9
		f := newFixture(t, p, 1)
		_, err := f.session.UseHint(ctx)
		assert.ErrorIs(t, err, economy.ErrInsufficientFunds)
		assert.Equal(t, 9, f.ledger.Profile().Gems)
		assert.False(t, f.session.View().HintUsed)
	})

	t.Run("not after submit", func(t *testing.T) {
		f := newFixture(t, defaultProfile(), 1)
		_, err := f.session.Submit(ctx, f.correct())
		require.NoError(t, err)
		_, err = f.session.UseHint(ctx)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 50, f.ledger.Profile().Gems)
	})

	t.Run("resets on next question", func(t *testing.T) {
		f := newFixture(t, defaultProfile(), 1)
		_, err := f.session.UseHint(ctx)
		require.NoError(t, err)
		_, err = f.session.Submit(ctx, f.correct())
		require.NoError(t, err)
		_, err = f.session.Advance(ctx)
		require.NoError(t, err)
		assert.False(t, f.session.View().HintUsed)
		_, err = f.session.UseHint(ctx)
		require.NoError(t, err)
		assert.Equal(t, 30, f.ledger.Profile().Gems)
	})
}

func TestTimerExpiryAutoSubmits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	delivered := f.clock.Advance(ctx, 100)
	assert.Equal(t, 30, delivered)
	assert.False(t, f.clock.Armed())

	v := f.session.View()
	assert.Equal(t, PhaseRevealed, v.Phase)
	require.NotNil(t, v.Last)
	assert.True(t, v.Last.TimedOut)
	assert.False(t, v.Last.Correct)
	assert.Equal(t, 4, v.Profile.Hearts)
	assert.Equal(t, 0, v.Remaining)

	require.Len(t, f.recorder.answers, 1)
	assert.Equal(t, TimeoutChoice, f.recorder.answers[0].Choice)
}

func TestTickOnlyWhilePresenting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	expired, err := f.session.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, 29, f.session.View().Remaining)

	_, err = f.session.Submit(ctx, f.correct())
	require.NoError(t, err)
	_, err = f.session.Tick(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStaleTicksCannotFire(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	f.clock.Advance(ctx, 10)
	_, err := f.session.Submit(ctx, f.correct())
	require.NoError(t, err)
	assert.Equal(t, 0, f.clock.Advance(ctx, 5))

	_, err = f.session.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, f.session.View().Remaining)
	assert.True(t, f.clock.Armed())
}

func TestHeartsStayInRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)

	for range 20 {
		if f.session.Phase() == PhaseExhausted {
			break
		}
		if f.session.Phase() == PhaseRevealed {
			_, err := f.session.Advance(ctx)
			require.NoError(t, err)
		}
		_, err := f.session.Submit(ctx, f.wrong())
		require.NoError(t, err)
		h := f.ledger.Profile().Hearts
		require.GreaterOrEqual(t, h, 0)
		require.LessOrEqual(t, h, 5)
	}
	assert.Equal(t, PhaseExhausted, f.session.Phase())
	assert.Equal(t, 0, f.ledger.Profile().Hearts)
}

func TestRefillRetriesSameQuestion(t *testing.T) {
	ctx := context.Background()
	p := defaultProfile()
	p.Hearts = 1
	p.Gems = 60
	f := newFixture(t, p, 1)

	_, err := f.session.Submit(ctx, f.correct())
	require.NoError(t, err)
	_, err = f.session.Advance(ctx)
	require.NoError(t, err)

	_, err = f.session.Submit(ctx, f.wrong())
	require.NoError(t, err)
	require.Equal(t, PhaseExhausted, f.session.Phase())

	_, err = f.session.Advance(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.session.RefillHearts(ctx))
	v := f.session.View()
	assert.Equal(t, PhasePresenting, v.Phase)
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, 30, v.Remaining)
	assert.Equal(t, 5, v.Profile.Hearts)
	assert.Equal(t, 10, v.Profile.Gems)
	assert.True(t, f.clock.Armed())
}

func TestRefillUnaffordable(t *testing.T) {
	ctx := context.Background()
	p := defaultProfile()
	p.Hearts = 0
	p.Gems = 49
	f := newFixture(t, p, 1)

	err := f.session.RefillHearts(ctx)
	assert.ErrorIs(t, err, economy.ErrInsufficientFunds)
	assert.Equal(t, PhaseExhausted, f.session.Phase())
	assert.Equal(t, 49, f.ledger.Profile().Gems)

	sum, err := f.session.Exit(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseAbandoned, sum.Outcome)
}

func TestCompletion(t *testing.T) {
	ctx := context.Background()
	p := defaultProfile()
	p.Level = 3
	f := newFixture(t, p, 1)
	s := f.session

	// Eight clean answers, one hinted, one wrong: 80 + 5 = 85.
	for i := range 10 {
		switch i {
		case 4:
			_, err := s.UseHint(ctx)
			require.NoError(t, err)
			_, err = s.Submit(ctx, f.correct())
			require.NoError(t, err)
		case 7:
			_, err := s.Submit(ctx, f.wrong())
			require.NoError(t, err)
		default:
			_, err := s.Submit(ctx, f.correct())
			require.NoError(t, err)
		}

		sum, err := s.Advance(ctx)
		require.NoError(t, err)
		if i < 9 {
			require.Nil(t, sum)
			continue
		}

		require.NotNil(t, sum)
		assert.Equal(t, 85, sum.GemsEarned)
		assert.Equal(t, 3, sum.LevelBefore)
		assert.Equal(t, 4, sum.LevelAfter)
		assert.Equal(t, 9, sum.Correct)
		assert.Equal(t, 2, sum.Unlocked)
		assert.True(t, sum.Completed())
	}

	got := f.ledger.Profile()
	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, 4, got.Level)
	assert.Equal(t, 50-10+85, got.Gems)
	assert.Equal(t, 4, got.Hearts)
	assert.True(t, got.CompletedWorlds.Has(1))
	assert.True(t, got.UnlockedWorlds.Has(2))
	assert.NoError(t, got.Validate())

	_, err := s.Exit(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	require.Len(t, f.recorder.sessions, 2)
	assert.Equal(t, "completed", f.recorder.sessions[1].Outcome)
}

func TestCompletionIdempotentUnlock(t *testing.T) {
	ctx := context.Background()
	p := defaultProfile()
	p.CompletedWorlds = economy.NewWorldSet(1)
	p.UnlockedWorlds = economy.NewWorldSet(1, 2)
	f := newFixture(t, p, 1)

	var sum *Summary
	for range 10 {
		_, err := f.session.Submit(ctx, f.correct())
		require.NoError(t, err)
		sum, err = f.session.Advance(ctx)
		require.NoError(t, err)
	}
	require.NotNil(t, sum)
	got := f.ledger.Profile()
	assert.Equal(t, economy.NewWorldSet(1, 2), got.UnlockedWorlds)
	assert.Equal(t, economy.NewWorldSet(1), got.CompletedWorlds)
}

func TestExitKeepsEagerLosses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultProfile(), 1)
	s := f.session

	_, err := s.Submit(ctx, f.correct())
	require.NoError(t, err)
	_, err = s.Advance(ctx)
	require.NoError(t, err)
	_, err = s.UseHint(ctx)
	require.NoError(t, err)
	_, err = s.Submit(ctx, f.wrong())
	require.NoError(t, err)

	sum, err := s.Exit(ctx)
	require.NoError(t, err)
	assert.Equal(t, economy.ReasonSessionExit, sum.Delta.Reason)
	assert.Equal(t, 0, sum.GemsEarned)
	assert.Equal(t, 10, sum.GemsForfeited)
	assert.Equal(t, 10, sum.GemsSpent)
	assert.Equal(t, 1, sum.HeartsLost)
	assert.False(t, f.clock.Armed())

	got := f.ledger.Profile()
	assert.Equal(t, 40, got.Gems)
	assert.Equal(t, 4, got.Hearts)
	assert.False(t, got.CompletedWorlds.Has(1))

	_, err = s.Exit(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = s.Submit(ctx, 0)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSummaryDuration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	ledger := economy.NewLedger(defaultProfile(), nil)
	s, err := Start(ctx, ledger, questionbank.Default(), 1, WithNow(clock))
	require.NoError(t, err)

	now = now.Add(90 * time.Second)
	sum, err := s.Exit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Zero(t, sum.Accuracy())
}
