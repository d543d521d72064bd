package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/quiz"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.insert(ctx, tableSessions,
		[]string{"session_id", "world_id", "action", "outcome", "questions_served", "correct_answers", "gems_earned", "duration_secs"},
		[]any{data.SessionID, data.WorldID, data.Action, data.Outcome, data.QuestionsServed, data.CorrectAnswers, data.GemsEarned, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	_, err := r.insert(ctx, tableAnswers,
		[]string{"session_id", "world_id", "question_id", "choice", "correct", "timed_out", "hint_used", "time_ms"},
		[]any{data.SessionID, data.WorldID, data.QuestionID, data.Choice, data.Correct, data.TimedOut, data.HintUsed, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().Select("session_id", "world_id", "outcome", colTimestamp,
		"questions_served", "correct_answers", "gems_earned", "duration_secs").
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("action", quiz.ActionEnd))
	query, args := opts.apply(sel).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.WorldID, &rec.Outcome, &rec.Timestamp,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.GemsEarned, &rec.DurationSecs); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	counts, err := r.sessionDeltaCounts(ctx, records)
	if err != nil {
		return nil, err
	}
	for i := range records {
		c := counts[records[i].SessionID]
		records[i].HeartsLost = c[economy.ReasonHeartLost]
		records[i].HintsUsed = c[economy.ReasonHint]
	}
	return records, nil
}

// sessionDeltaCounts counts deltas per session and reason.
func (r *eventRepo) sessionDeltaCounts(ctx context.Context, records []SessionSummaryRecord) (map[string]map[economy.Reason]int, error) {
	ids := make([]any, len(records))
	for i, rec := range records {
		ids[i] = rec.SessionID
	}

	query, args := builder().Select("session_id", "reason", entsql.Count("*")).
		From(entsql.Table(tableDeltas)).
		Where(entsql.In("session_id", ids...)).
		GroupBy("session_id", "reason").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count session deltas: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]map[economy.Reason]int)
	for rows.Next() {
		var (
			sessionID, reason string
			n                 int
		)
		if err := rows.Scan(&sessionID, &reason, &n); err != nil {
			return nil, fmt.Errorf("scan session delta count: %w", err)
		}
		if counts[sessionID] == nil {
			counts[sessionID] = make(map[economy.Reason]int)
		}
		counts[sessionID][economy.Reason(reason)] = n
	}
	return counts, rows.Err()
}

// SessionRecorder returns a quiz.Recorder that writes to this store.
func (s *Store) SessionRecorder() quiz.Recorder {
	return &sessionRecorder{repo: s.EventRepo()}
}

type sessionRecorder struct {
	repo EventRepo
}

func (r *sessionRecorder) RecordSession(ctx context.Context, ev quiz.SessionEvent) error {
	return r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:       ev.SessionID,
		WorldID:         ev.WorldID,
		Action:          ev.Action,
		Outcome:         ev.Outcome,
		QuestionsServed: ev.QuestionsServed,
		CorrectAnswers:  ev.CorrectAnswers,
		GemsEarned:      ev.GemsEarned,
		DurationSecs:    int(ev.Duration.Seconds()),
	})
}

func (r *sessionRecorder) RecordAnswer(ctx context.Context, ev quiz.AnswerEvent) error {
	return r.repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID:  ev.SessionID,
		WorldID:    ev.WorldID,
		QuestionID: ev.QuestionID,
		Choice:     ev.Choice,
		Correct:    ev.Correct,
		TimedOut:   ev.TimedOut,
		HintUsed:   ev.HintUsed,
		TimeMs:     ev.TimeTaken.Milliseconds(),
	})
}
