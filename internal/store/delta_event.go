package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bridgewise/internal/economy"
)

func (r *eventRepo) AppendDelta(ctx context.Context, d economy.Delta) (int64, error) {
	seq, err := r.insert(ctx, tableDeltas,
		[]string{"reason", "session_id", "gems", "hearts", "levels", "streak", "complete_world", "unlock_world"},
		[]any{string(d.Reason), d.SessionID, d.Gems, d.Hearts, d.Levels, d.Streak, d.Complete, d.Unlock},
	)
	if err != nil {
		return 0, fmt.Errorf("save profile delta: %w", err)
	}
	return seq, nil
}

func (r *eventRepo) QueryDeltas(ctx context.Context, opts QueryOpts) ([]DeltaRecord, error) {
	sel := builder().Select(colSequence, colTimestamp, "reason", "session_id",
		"gems", "hearts", "levels", "streak", "complete_world", "unlock_world").
		From(entsql.Table(tableDeltas))
	query, args := opts.apply(sel).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profile deltas: %w", err)
	}
	defer rows.Close()

	var records []DeltaRecord
	for rows.Next() {
		var (
			rec    DeltaRecord
			reason string
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &reason, &rec.SessionID,
			&rec.Gems, &rec.Hearts, &rec.Levels, &rec.Streak, &rec.Complete, &rec.Unlock); err != nil {
			return nil, fmt.Errorf("scan profile delta: %w", err)
		}
		rec.Reason = economy.Reason(reason)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) LastCheckIn(ctx context.Context) (time.Time, error) {
	query, args := builder().Select(colTimestamp).
		From(entsql.Table(tableDeltas)).
		Where(entsql.EQ("reason", string(economy.ReasonCheckIn))).
		OrderBy(entsql.Desc(colSequence)).
		Limit(1).
		Query()

	var ts time.Time
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query last check-in: %w", err)
	}
	return ts, nil
}
