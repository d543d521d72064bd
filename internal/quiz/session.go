package quiz

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/questionbank"
)

// TimeoutChoice is submitted when the question timer runs out. It never
// matches an option.
const TimeoutChoice = -1

// Result is the outcome of one submitted answer.
type Result struct {
	QuestionID   int
	Choice       int
	Correct      bool
	TimedOut     bool
	CorrectIndex int
	Explanation  string
	GemsAwarded  int
	HeartsLeft   int
}

// View is a read-only snapshot of a session for rendering.
type View struct {
	SessionID       string
	WorldID         int
	WorldName       string
	Phase           Phase
	Index           int
	Total           int
	Question        questionbank.Question
	Remaining       int
	HintUsed        bool
	Hint            string
	GemsEarned      int
	Correct         int
	HeartsAtStart   int
	Profile         economy.Profile
	Last            *Result
	CanAffordHint   bool
	CanAffordRefill bool
}

// Option configures a session.
type Option func(*Session)

// WithClock sets the tick source. Without one the session only moves on
// explicit Tick calls.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRules overrides the economy numbers.
func WithRules(r economy.Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithRecorder sets the event recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow overrides the wall clock used for durations.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is one attempt at a world. It is driven by a single actor; commands
// must not be issued concurrently.
type Session struct {
	id        string
	worldID   int
	worldName string
	questions []questionbank.Question

	index         int
	heartsAtStart int
	levelAtStart  int
	gemsEarned    int
	correct       int
	answered      int
	hintUsed      bool
	remaining     int
	phase         Phase
	last          *Result
	questionStart time.Time

	hintsUsed  int
	heartsLost int
	gemsSpent  int

	ledger   *economy.Ledger
	rules    economy.Rules
	clock    Clock
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	started  time.Time
}

// Start begins a session for worldID. Unknown worlds play world 1's
// questions but still credit worldID on completion. Ids below 1 cannot be
// credited and are played as world 1. A profile with no hearts opens the
// session in PhaseExhausted.
func Start(ctx context.Context, ledger *economy.Ledger, bank *questionbank.Bank, worldID int, opts ...Option) (*Session, error) {
	if ledger == nil || bank == nil {
		return nil, errors.New("quiz: ledger and bank are required")
	}
	if worldID < 1 {
		worldID = questionbank.FallbackWorld
	}

	s := &Session{
		id:      uuid.NewString(),
		worldID: worldID,
		ledger:  ledger,
		rules:   economy.DefaultRules(),
		clock:   nopClock{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	world, known := bank.Lookup(worldID)
	if !known {
		s.logger.Info("unknown world, using fallback questions",
			"world_id", worldID, "fallback", questionbank.FallbackWorld)
		world = bank.World(worldID)
	}
	s.worldName = world.Name
	s.questions = bank.Questions(worldID)

	p := ledger.Profile()
	s.heartsAtStart = p.Hearts
	s.levelAtStart = p.Level
	s.started = s.now()
	s.remaining = s.rules.QuestionSeconds

	if p.Hearts == 0 {
		s.phase = PhaseExhausted
	} else {
		s.present()
	}

	s.recordSession(ctx, SessionEvent{
		SessionID: s.id,
		WorldID:   s.worldID,
		Action:    ActionStart,
	})
	s.logger.Debug("session started", "session_id", s.id, "world_id", worldID, "phase", s.phase)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// View returns a snapshot of the session.
func (s *Session) View() View {
	p := s.ledger.Profile()
	q := s.questions[s.index]
	v := View{
		SessionID:       s.id,
		WorldID:         s.worldID,
		WorldName:       s.worldName,
		Phase:           s.phase,
		Index:           s.index,
		Total:           len(s.questions),
		Question:        q,
		Remaining:       s.remaining,
		HintUsed:        s.hintUsed,
		GemsEarned:      s.gemsEarned,
		Correct:         s.correct,
		HeartsAtStart:   s.heartsAtStart,
		Profile:         p,
		Last:            s.last,
		CanAffordHint:   p.Gems >= s.rules.HintCost,
		CanAffordRefill: p.Gems >= s.rules.RefillCost,
	}
	if s.hintUsed {
		v.Hint = q.Explanation
	}
	return v
}

// Tick counts down one second. At zero it submits TimeoutChoice. It reports
// whether the timer expired on this tick.
func (s *Session) Tick(ctx context.Context) (bool, error) {
	if err := s.require("tick", PhasePresenting); err != nil {
		return false, err
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return false, nil
	}
	if _, err := s.submit(ctx, TimeoutChoice); err != nil {
		return true, err
	}
	return true, nil
}

// Submit answers the current question.
func (s *Session) Submit(ctx context.Context, choice int) (Result, error) {
	if err := s.require("submit", PhasePresenting); err != nil {
		return Result{}, err
	}
	q := s.questions[s.index]
	if choice != TimeoutChoice && (choice < 0 || choice >= len(q.Options)) {
		return Result{}, ErrInvalidChoice
	}
	return s.submit(ctx, choice)
}

func (s *Session) submit(ctx context.Context, choice int) (Result, error) {
	q := s.questions[s.index]
	res := Result{
		QuestionID:   q.ID,
		Choice:       choice,
		Correct:      q.IsCorrect(choice),
		TimedOut:     choice == TimeoutChoice,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}

	if res.Correct {
		res.GemsAwarded = s.rules.Reward(s.hintUsed)
		s.gemsEarned += res.GemsAwarded
		s.correct++
	} else {
		before := s.ledger.Profile().Hearts
		p, err := s.ledger.Commit(ctx, economy.Delta{
			Reason:    economy.ReasonHeartLost,
			SessionID: s.id,
			Hearts:    -1,
		})
		if err != nil {
			return Result{}, err
		}
		s.heartsLost += before - p.Hearts
	}

	hearts := s.ledger.Profile().Hearts
	res.HeartsLeft = hearts
	s.answered++
	s.last = &res
	s.clock.Disarm()
	if hearts == 0 {
		s.phase = PhaseExhausted
	} else {
		s.phase = PhaseRevealed
	}

	s.recordAnswer(ctx, AnswerEvent{
		SessionID:  s.id,
		WorldID:    s.worldID,
		QuestionID: q.ID,
		Choice:     choice,
		Correct:    res.Correct,
		TimedOut:   res.TimedOut,
		HintUsed:   s.hintUsed,
		TimeTaken:  s.now().Sub(s.questionStart),
	})
	return res, nil
}

// UseHint buys the current question's explanation. It returns the hint text.
func (s *Session) UseHint(ctx context.Context) (string, error) {
	if err := s.require("hint", PhasePresenting); err != nil {
		return "", err
	}
	if s.hintUsed {
		return "", &TransitionError{Op: "hint", Phase: s.phase, Reason: "hint already used for this question"}
	}

	_, err := s.ledger.Commit(ctx, economy.Delta{
		Reason:    economy.ReasonHint,
		SessionID: s.id,
		Gems:      -s.rules.HintCost,
	})
	if err != nil {
		return "", err
	}
	s.hintUsed = true
	s.hintsUsed++
	s.gemsSpent += s.rules.HintCost
	return s.questions[s.index].Explanation, nil
}

// Advance moves past a revealed answer. After the last question it pays out
// the session, completes the world and returns the summary; otherwise it
// returns nil and presents the next question.
func (s *Session) Advance(ctx context.Context) (*Summary, error) {
	if err := s.require("advance", PhaseRevealed); err != nil {
		return nil, err
	}
	if s.ledger.Profile().Hearts == 0 {
		return nil, &TransitionError{Op: "advance", Phase: s.phase, Reason: "no hearts left"}
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.hintUsed = false
		s.present()
		return nil, nil
	}

	level := s.ledger.Profile().Level
	delta := economy.Delta{
		Reason:    economy.ReasonSessionComplete,
		SessionID: s.id,
		Gems:      s.gemsEarned,
		Levels:    s.rules.LevelFor(level, s.gemsEarned) - level,
		Complete:  s.worldID,
		Unlock:    s.worldID + 1,
	}
	p, err := s.ledger.Commit(ctx, delta)
	if err != nil {
		return nil, err
	}
	s.phase = PhaseCompleted

	sum := s.summary(delta, p)
	sum.GemsEarned = s.gemsEarned
	sum.Unlocked = s.worldID + 1
	s.finish(ctx, sum)
	return &sum, nil
}

// RefillHearts restores hearts to the maximum for the refill price and
// retries the same question with a fresh timer.
func (s *Session) RefillHearts(ctx context.Context) error {
	if err := s.require("refill", PhaseExhausted); err != nil {
		return err
	}
	p := s.ledger.Profile()
	_, err := s.ledger.Commit(ctx, economy.Delta{
		Reason:    economy.ReasonRefill,
		SessionID: s.id,
		Gems:      -s.rules.RefillCost,
		Hearts:    p.MaxHearts - p.Hearts,
	})
	if err != nil {
		return err
	}
	s.gemsSpent += s.rules.RefillCost
	s.present()
	return nil
}

// Exit abandons the session. Hearts lost and gems spent stay spent; the
// uncommitted session gems are forfeited.
func (s *Session) Exit(ctx context.Context) (Summary, error) {
	if s.phase == PhaseAbandoned {
		return Summary{}, ErrSessionClosed
	}
	if s.phase == PhaseCompleted {
		return Summary{}, &TransitionError{Op: "exit", Phase: s.phase}
	}

	s.clock.Disarm()
	delta := economy.Delta{Reason: economy.ReasonSessionExit, SessionID: s.id}
	p, err := s.ledger.Commit(ctx, delta)
	if err != nil {
		return Summary{}, err
	}
	s.phase = PhaseAbandoned

	sum := s.summary(delta, p)
	sum.GemsForfeited = s.gemsEarned
	s.finish(ctx, sum)
	return sum, nil
}

// present enters PhasePresenting on the current index with a full timer.
func (s *Session) present() {
	s.phase = PhasePresenting
	s.remaining = s.rules.QuestionSeconds
	s.last = nil
	s.questionStart = s.now()
	s.clock.Arm(s.onTick)
}

func (s *Session) onTick(ctx context.Context) {
	if _, err := s.Tick(ctx); err != nil {
		s.logger.Warn("tick failed", "session_id", s.id, "err", err)
	}
}

func (s *Session) require(op string, want Phase) error {
	if s.phase == PhaseAbandoned {
		return ErrSessionClosed
	}
	if s.phase != want {
		return &TransitionError{Op: op, Phase: s.phase}
	}
	return nil
}

func (s *Session) summary(delta economy.Delta, after economy.Profile) Summary {
	return Summary{
		SessionID:      s.id,
		WorldID:        s.worldID,
		WorldName:      s.worldName,
		Outcome:        s.phase,
		TotalQuestions: len(s.questions),
		Answered:       s.answered,
		Correct:        s.correct,
		GemsSpent:      s.gemsSpent,
		HeartsLost:     s.heartsLost,
		HintsUsed:      s.hintsUsed,
		LevelBefore:    s.levelAtStart,
		LevelAfter:     after.Level,
		Duration:       s.now().Sub(s.started),
		Delta:          delta,
	}
}

func (s *Session) finish(ctx context.Context, sum Summary) {
	s.recordSession(ctx, SessionEvent{
		SessionID:       s.id,
		WorldID:         s.worldID,
		Action:          ActionEnd,
		Outcome:         sum.Outcome.String(),
		QuestionsServed: sum.Answered,
		CorrectAnswers:  sum.Correct,
		GemsEarned:      sum.GemsEarned,
		Duration:        sum.Duration,
	})
	s.logger.Info("session ended",
		"session_id", s.id,
		"world_id", s.worldID,
		"outcome", sum.Outcome,
		"correct", sum.Correct,
		"answered", sum.Answered,
		"gems_earned", sum.GemsEarned)
}

func (s *Session) recordSession(ctx context.Context, ev SessionEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSession(ctx, ev); err != nil {
		s.logger.Warn("failed to record session event", "session_id", s.id, "action", ev.Action, "err", err)
	}
}

func (s *Session) recordAnswer(ctx context.Context, ev AnswerEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordAnswer(ctx, ev); err != nil {
		s.logger.Warn("failed to record answer event", "session_id", s.id, "err", err)
	}
}
