package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bridgewise.db")
	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// Reopening runs migrations again without error.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := range 5 {
		seq, err := s.seq.Next(ctx, s.db)
		if err != nil {
			t.Fatal(err)
		}
		if seq <= last {
			t.Fatalf("sequence %d: got %d after %d", i, seq, last)
		}
		last = seq
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	_, ok, err := repo.Load(ctx)
	if err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	p := economy.NewProfile(economy.DefaultRules())
	p.Name = "Ada"
	p.CompletedWorlds = economy.NewWorldSet(1)
	p.UnlockedWorlds = economy.NewWorldSet(1, 2)
	p.Cosmetics.Avatar = "spade"
	if err := repo.Save(ctx, p, 3); err != nil {
		t.Fatal(err)
	}

	got, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Name != "Ada" || !got.UnlockedWorlds.Has(2) || got.Cosmetics.Avatar != "spade" {
		t.Errorf("loaded %+v", got)
	}
}

func TestProfilePrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	p := economy.NewProfile(economy.DefaultRules())
	for i := range 5 {
		p.Gems = i
		if err := repo.Save(ctx, p, int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM profile_snapshots").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("snapshots = %d, want 2", n)
	}
	got, _, _ := repo.Load(ctx)
	if got.Gems != 4 {
		t.Errorf("latest gems = %d, want 4", got.Gems)
	}
}

func TestSinkRecordsDeltaAndProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.LoadOrCreateProfile(ctx, economy.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	ledger := economy.NewLedger(p, s.Sink())

	if _, err := ledger.Commit(ctx, economy.Delta{Reason: economy.ReasonHint, SessionID: "s1", Gems: -10}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Commit(ctx, economy.Delta{Reason: economy.ReasonHeartLost, SessionID: "s1", Hearts: -1}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.ProfileRepo().Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Gems != 40 || got.Hearts != 4 {
		t.Errorf("persisted profile = %+v", got)
	}

	deltas, err := s.EventRepo().QueryDeltas(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}
	// Newest first.
	if deltas[0].Reason != economy.ReasonHeartLost || deltas[1].Gems != -10 {
		t.Errorf("deltas = %+v", deltas)
	}
	if deltas[0].Sequence <= deltas[1].Sequence {
		t.Errorf("sequences not ordered: %d, %d", deltas[0].Sequence, deltas[1].Sequence)
	}
}

func TestSinkRollsBackOnSnapshotFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.DB().ExecContext(ctx, "DROP TABLE "+tableSnapshots); err != nil {
		t.Fatal(err)
	}

	p := economy.NewProfile(economy.DefaultRules())
	err := s.Sink().Record(ctx, economy.Delta{Reason: economy.ReasonCheckIn, Gems: 5, Streak: 1}, p)
	if err == nil {
		t.Fatal("expected the snapshot write to fail")
	}

	deltas, err := s.EventRepo().QueryDeltas(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(deltas) != 0 {
		t.Errorf("delta row survived a failed snapshot: %+v", deltas)
	}
	last, err := s.EventRepo().LastCheckIn(ctx)
	if err != nil || !last.IsZero() {
		t.Errorf("LastCheckIn = %v, %v; want zero", last, err)
	}
}

func TestLoadOrCreateRejectsInvalidSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := economy.NewProfile(economy.DefaultRules())
	bad.Hearts = 9
	bad.Gems = -20
	bad.UnlockedWorlds = economy.NewWorldSet(1, 5)
	if err := s.ProfileRepo().Save(ctx, bad, 0); err != nil {
		t.Fatal(err)
	}

	_, err := s.LoadOrCreateProfile(ctx, economy.DefaultRules())
	if !errors.Is(err, economy.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
}

func TestQueryDeltasOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	var seqs []int64
	for range 4 {
		seq, err := repo.AppendDelta(ctx, economy.Delta{Reason: economy.ReasonCheckIn, Gems: 5, Streak: 1})
		if err != nil {
			t.Fatal(err)
		}
		seqs = append(seqs, seq)
	}

	got, err := repo.QueryDeltas(ctx, QueryOpts{After: seqs[0], Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Sequence != seqs[3] || got[1].Sequence != seqs[2] {
		t.Errorf("got %+v", got)
	}

	got, err = repo.QueryDeltas(ctx, QueryOpts{Before: seqs[1]})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Sequence != seqs[0] {
		t.Errorf("before filter: %+v", got)
	}
}

func TestLastCheckIn(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	last, err := repo.LastCheckIn(ctx)
	if err != nil || !last.IsZero() {
		t.Fatalf("empty: %v %v", last, err)
	}

	if _, err := repo.AppendDelta(ctx, economy.Delta{Reason: economy.ReasonCheckIn, Gems: 5, Streak: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AppendDelta(ctx, economy.Delta{Reason: economy.ReasonHint, Gems: -10}); err != nil {
		t.Fatal(err)
	}

	last, err = repo.LastCheckIn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(last) > time.Minute {
		t.Errorf("last check-in = %v", last)
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	rec := s.SessionRecorder()
	repo := s.EventRepo()
	ctx := context.Background()

	if err := rec.RecordSession(ctx, quiz.SessionEvent{SessionID: "a", WorldID: 1, Action: quiz.ActionStart}); err != nil {
		t.Fatal(err)
	}
	if err := rec.RecordAnswer(ctx, quiz.AnswerEvent{SessionID: "a", WorldID: 1, QuestionID: 1, Choice: 2, TimeTaken: 1500 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	for _, d := range []economy.Delta{
		{Reason: economy.ReasonHeartLost, SessionID: "a", Hearts: -1},
		{Reason: economy.ReasonHeartLost, SessionID: "a", Hearts: -1},
		{Reason: economy.ReasonHint, SessionID: "a", Gems: -10},
	} {
		if _, err := repo.AppendDelta(ctx, d); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.RecordSession(ctx, quiz.SessionEvent{
		SessionID: "a", WorldID: 1, Action: quiz.ActionEnd, Outcome: "completed",
		QuestionsServed: 10, CorrectAnswers: 8, GemsEarned: 75, Duration: 3 * time.Minute,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("summaries = %d, want 1", len(got))
	}
	sum := got[0]
	if sum.Outcome != "completed" || sum.CorrectAnswers != 8 || sum.DurationSecs != 180 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.HeartsLost != 2 || sum.HintsUsed != 1 {
		t.Errorf("hearts lost %d, hints %d", sum.HeartsLost, sum.HintsUsed)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "world-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "world-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "validate", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, "", QueryOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Model != "gpt-4o" {
		t.Fatalf("list = %+v", list)
	}

	gen, err := repo.QueryLLMEvents(ctx, "world-gen", QueryOpts{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(gen) != 1 || gen[0].InputTokens != 300 {
		t.Fatalf("world-gen events = %+v", gen)
	}

	e, err := repo.GetLLMEvent(ctx, list[0].ID)
	if err != nil || e == nil {
		t.Fatalf("get: %v %v", e, err)
	}
	if e.ErrorMessage != "rate limited" || e.Success {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event: %v %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("by purpose = %+v", byPurpose)
	}
	// Ordered by purpose name: validate, world-gen.
	wg := byPurpose[1]
	if wg.Purpose != "world-gen" || wg.Calls != 2 || wg.InputTokens != 400 || wg.AvgLatencyMs != 300 {
		t.Errorf("world-gen usage = %+v", wg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude-sonnet-4-5" {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadOrCreateProfile(ctx, economy.DefaultRules()); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "x", Success: true}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.ProfileRepo().Load(ctx); ok {
		t.Error("profile survived reset")
	}
	if list, _ := s.EventRepo().QueryLLMEvents(ctx, "", QueryOpts{}); len(list) != 1 {
		t.Errorf("LLM events = %d, want 1", len(list))
	}
}
