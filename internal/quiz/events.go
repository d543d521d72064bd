package quiz

import (
	"context"
	"time"
)

// Session actions recorded in the event log.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEvent marks the start or end of a session.
type SessionEvent struct {
	SessionID       string
	WorldID         int
	Action          string
	Outcome         string
	QuestionsServed int
	CorrectAnswers  int
	GemsEarned      int
	Duration        time.Duration
}

// AnswerEvent records one answered question.
type AnswerEvent struct {
	SessionID  string
	WorldID    int
	QuestionID int
	Choice     int
	Correct    bool
	TimedOut   bool
	HintUsed   bool
	TimeTaken  time.Duration
}

// Recorder receives session and answer events. Failures are logged and
// never affect the session.
type Recorder interface {
	RecordSession(ctx context.Context, ev SessionEvent) error
	RecordAnswer(ctx context.Context, ev AnswerEvent) error
}
