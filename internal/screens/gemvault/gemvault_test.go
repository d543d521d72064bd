package gemvault

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/store"
)

func newVault(t *testing.T) (*GemVaultScreen, *game.Services) {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	rules := economy.DefaultRules()
	p, err := st.LoadOrCreateProfile(ctx, rules)
	if err != nil {
		t.Fatal(err)
	}
	svc := game.New(game.Options{Profile: p, Sink: st.Sink(), Rules: rules, Events: st.EventRepo()})
	return New(svc), svc
}

func load(s *GemVaultScreen) {
	s.Update(s.Init()())
}

func TestGemVault_Title(t *testing.T) {
	s, _ := newVault(t)
	if s.Title() != "Gem Vault" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestGemVault_Loading(t *testing.T) {
	s, _ := newVault(t)
	if !strings.Contains(s.View(80, 24), "Opening the vault") {
		t.Error("expected loading text before the ledger arrives")
	}
}

func TestGemVault_Empty(t *testing.T) {
	s, _ := newVault(t)
	load(s)
	if !strings.Contains(s.View(80, 24), "Nothing here yet") {
		t.Error("expected empty state")
	}
}

func TestGemVault_ListsAndFilters(t *testing.T) {
	s, svc := newVault(t)
	ctx := context.Background()
	if _, err := svc.CheckIn(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Ledger.Commit(ctx, economy.Delta{Reason: economy.ReasonHeartLost, Hearts: -1}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Rename(ctx, "East"); err != nil {
		t.Fatal(err)
	}
	load(s)

	if len(s.entries) != 2 {
		t.Fatalf("entries = %d, want 2 (rename has no resource change)", len(s.entries))
	}
	if !strings.Contains(s.View(100, 30), "Daily check-in") {
		t.Error("expected the check-in entry")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := len(s.filtered()); got != 1 {
		t.Errorf("earned entries = %d, want 1", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := len(s.filtered()); got != 0 {
		t.Errorf("spent entries = %d, want 0", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := len(s.filtered()); got != 1 {
		t.Errorf("heart entries = %d, want 1", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.selected != 2 {
		t.Errorf("selected = %d after shift+tab, want 2", s.selected)
	}
}

func TestGemVault_QuitPops(t *testing.T) {
	s, _ := newVault(t)
	load(s)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestFilterMatch(t *testing.T) {
	earn := store.DeltaRecord{Delta: economy.Delta{Gems: 5}}
	spend := store.DeltaRecord{Delta: economy.Delta{Gems: -10, Hearts: 5}}

	if !FilterEarned.Match(earn) || FilterEarned.Match(spend) {
		t.Error("earned filter mismatch")
	}
	if !FilterSpent.Match(spend) || FilterSpent.Match(earn) {
		t.Error("spent filter mismatch")
	}
	if !FilterHearts.Match(spend) || FilterHearts.Match(earn) {
		t.Error("hearts filter mismatch")
	}
	if !FilterAll.Match(earn) {
		t.Error("all filter should match everything")
	}
}
