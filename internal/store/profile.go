package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bridgewise/internal/economy"
)

// profileRepo implements ProfileRepo over the profile_snapshots table.
type profileRepo struct {
	db querier
}

func (r *profileRepo) Load(ctx context.Context) (economy.Profile, bool, error) {
	query, args := builder().Select("data").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colSequence), entsql.Desc(colID)).
		Limit(1).
		Query()

	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return economy.Profile{}, false, nil
	}
	if err != nil {
		return economy.Profile{}, false, fmt.Errorf("query latest profile: %w", err)
	}

	var p economy.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return economy.Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	if p.UnlockedWorlds == nil {
		p.UnlockedWorlds = economy.NewWorldSet(1)
	}
	if p.CompletedWorlds == nil {
		p.CompletedWorlds = economy.WorldSet{}
	}
	return p, true, nil
}

func (r *profileRepo) Save(ctx context.Context, p economy.Profile, seq int64) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query, args := builder().Insert(tableSnapshots).
		Columns(colSequence, colTimestamp, "data").
		Values(seq, now(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Prune(ctx context.Context, keep int) error {
	// Find the id of the Nth most recent snapshot.
	query, args := builder().Select(colID).
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colID)).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tableSnapshots).
		Where(entsql.LTE(colID, threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// snapshotKeep is how many profile snapshots the sink retains.
const snapshotKeep = 20

// Sink returns an economy.Sink that logs each delta and stores the
// resulting profile.
func (s *Store) Sink() economy.Sink {
	return economy.SinkFunc(func(ctx context.Context, d economy.Delta, after economy.Profile) error {
		return s.withTx(ctx, func(tx *sql.Tx) error {
			events := &eventRepo{db: tx, seq: s.seq}
			profiles := &profileRepo{db: tx}

			seq, err := events.AppendDelta(ctx, d)
			if err != nil {
				return err
			}
			if err := profiles.Save(ctx, after, seq); err != nil {
				return err
			}
			return profiles.Prune(ctx, snapshotKeep)
		})
	})
}

// LoadOrCreateProfile returns the saved profile, or saves and returns a new
// one built from rules.
func (s *Store) LoadOrCreateProfile(ctx context.Context, rules economy.Rules) (economy.Profile, error) {
	repo := s.ProfileRepo()
	p, ok, err := repo.Load(ctx)
	if err != nil {
		return economy.Profile{}, err
	}
	if ok {
		if err := p.Validate(); err != nil {
			return economy.Profile{}, fmt.Errorf("saved profile: %w", err)
		}
		return p, nil
	}

	p = economy.NewProfile(rules)
	if err := repo.Save(ctx, p, 0); err != nil {
		return economy.Profile{}, err
	}
	return p, nil
}
