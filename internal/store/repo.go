package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bridgewise/internal/economy"
)

const (
	tableSnapshots = "profile_snapshots"
	tableDeltas    = "profile_deltas"
	tableSessions  = "session_events"
	tableAnswers   = "answer_events"
	tableLLM       = "llm_request_events"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// now is the timestamp source for new rows. Stored times are UTC so that
// text comparisons order correctly.
var now = func() time.Time { return time.Now().UTC() }

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// apply adds the filters to a selector ordered newest first.
func (o QueryOpts) apply(s *entsql.Selector) *entsql.Selector {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT(colSequence, o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, o.From.UTC()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, o.To.UTC()))
	}
	if len(preds) > 0 {
		s = s.Where(entsql.And(preds...))
	}
	s = s.OrderBy(entsql.Desc(colSequence))
	if o.Limit > 0 {
		s = s.Limit(o.Limit)
	}
	return s
}

// ProfileRepo persists the player profile as sequenced snapshots.
type ProfileRepo interface {
	// Load returns the most recent profile, or false if none was saved.
	Load(ctx context.Context) (economy.Profile, bool, error)

	// Save stores p as the latest profile. seq is the last event it includes.
	Save(ctx context.Context, p economy.Profile, seq int64) error

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// DeltaRecord is a stored profile delta.
type DeltaRecord struct {
	economy.Delta
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	WorldID         int
	Action          string
	Outcome         string
	QuestionsServed int
	CorrectAnswers  int
	GemsEarned      int
	DurationSecs    int
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID  string
	WorldID    int
	QuestionID int
	Choice     int
	Correct    bool
	TimedOut   bool
	HintUsed   bool
	TimeMs     int64
}

// SessionSummaryRecord is a finished session for the history view.
type SessionSummaryRecord struct {
	SessionID       string
	WorldID         int
	Outcome         string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	GemsEarned      int
	DurationSecs    int
	HeartsLost      int
	HintsUsed       int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendDelta records a committed profile delta and returns its sequence.
	AppendDelta(ctx context.Context, d economy.Delta) (int64, error)
	QueryDeltas(ctx context.Context, opts QueryOpts) ([]DeltaRecord, error)

	// LastCheckIn returns the time of the latest check-in, or zero if none.
	LastCheckIn(ctx context.Context) (time.Time, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMEvents lists requests newest first. A non-empty purpose
	// filters before the limit applies.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
