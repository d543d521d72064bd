package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome(name string) (*WelcomeScreen, *game.Services, *int) {
	p := economy.NewProfile(economy.DefaultRules())
	p.Name = name
	svc := game.New(game.Options{Profile: p, Rules: economy.DefaultRules()})

	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(svc, factory), svc, &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func expectReplace(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _, _ := newTestWelcome("Returning")

	if strings.Contains(w.View(80, 24), "one trick at a time") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(80, 24), "one trick at a time") {
		t.Error("tagline should be visible after 1.5s")
	}
}

func TestKeypressDuringAnimationSkipsToEnd(t *testing.T) {
	w, _, callCount := newTestWelcome("Returning")
	sendTicks(w, 3)

	_, cmd := w.Update(keyPress(' '))
	if cmd != nil {
		t.Error("first key should only finish the animation")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *callCount != 0 {
		t.Errorf("factory called %d times", *callCount)
	}
}

func TestReturningPlayerGoesStraightThrough(t *testing.T) {
	w, _, callCount := newTestWelcome("Returning")
	sendTicks(w, 25)

	_, cmd := w.Update(keyPress(' '))
	expectReplace(t, cmd)
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFirstLaunchAsksForName(t *testing.T) {
	w, svc, callCount := newTestWelcome(economy.DefaultPlayerName)
	sendTicks(w, 25)

	w.Update(keyPress(' '))
	if !w.naming || !w.CapturesEscape() {
		t.Fatal("expected the name prompt")
	}
	if !strings.Contains(w.View(80, 30), "What should we call you") {
		t.Error("expected the prompt text")
	}

	w.input.Model.SetValue("Declarer")
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	expectReplace(t, cmd)
	if got := svc.Profile().Name; got != "Declarer" {
		t.Errorf("Name = %q, want Declarer", got)
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFirstLaunchSkipKeepsDefault(t *testing.T) {
	w, svc, _ := newTestWelcome(economy.DefaultPlayerName)
	sendTicks(w, 25)
	w.Update(keyPress(' '))

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	expectReplace(t, cmd)
	if svc.Profile().Name != economy.DefaultPlayerName {
		t.Errorf("Name = %q, want the default", svc.Profile().Name)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, _, callCount := newTestWelcome("Returning")
	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, _, callCount := newTestWelcome("Returning")
	sendTicks(w, 45)
	w.Update(keyPress('a'))

	_, cmd := w.Update(keyPress('b'))
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome("Returning")
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
