package quiz

import (
	"time"

	"github.com/abhisek/bridgewise/internal/economy"
)

// Summary describes how a session ended.
type Summary struct {
	SessionID string
	WorldID   int
	WorldName string
	Outcome   Phase

	TotalQuestions int
	Answered       int
	Correct        int

	// GemsEarned is the session payout committed on completion. On exit it is
	// zero and the uncommitted amount is reported in GemsForfeited.
	GemsEarned    int
	GemsForfeited int
	GemsSpent     int
	HeartsLost    int
	HintsUsed     int

	LevelBefore int
	LevelAfter  int
	Unlocked    int

	Duration time.Duration
	Delta    economy.Delta
}

// Accuracy returns the fraction of answered questions that were correct.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Completed reports whether the world was finished.
func (s Summary) Completed() bool {
	return s.Outcome == PhaseCompleted
}
