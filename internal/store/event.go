package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table auto-increment ids can't order a heart loss
// against the answer that caused it; this shared counter can. It also lets a
// profile snapshot name the last delta it includes.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level. The tracking row is created by the
// initial migration.
type sequenceCounter struct {
	mu sync.Mutex
}

// querier is the part of *sql.DB and *sql.Tx the repos need, so the same
// repo code runs inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Next atomically returns the next sequence number and increments the
// counter. q must be the handle the caller writes the event through.
func (sc *sequenceCounter) Next(ctx context.Context, q querier) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := q.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on plain SQL built with the ent dialect
// builder, stamped by the global sequence counter.
type eventRepo struct {
	db  querier
	seq *sequenceCounter
}

// insert stamps a row with the next sequence and the current time.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return 0, err
	}

	columns = append([]string{colSequence, colTimestamp}, columns...)
	values = append([]any{seqNum, now()}, values...)

	query, args := builder().Insert(table).Columns(columns...).Values(values...).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	return seqNum, nil
}
