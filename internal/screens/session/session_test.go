package session

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screens/summary"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testServices(p economy.Profile) *game.Services {
	rules := economy.DefaultRules()
	rules.QuestionSeconds = 3
	return game.New(game.Options{Profile: p, Rules: rules})
}

func startedScreen(t *testing.T, p economy.Profile, world int) (*SessionScreen, *game.Services) {
	t.Helper()
	svc := testServices(p)
	s := New(svc, world)
	if cmd := s.Init(); cmd == nil && s.errMsg == "" && s.session.Phase() == quiz.PhasePresenting {
		t.Fatal("expected a tick command for a presenting session")
	}
	return s, svc
}

func newProfile() economy.Profile {
	return economy.NewProfile(economy.DefaultRules())
}

func answerKey(v quiz.View, correct bool) tea.KeyPressMsg {
	idx := v.Question.CorrectIndex
	if !correct {
		idx = (idx + 1) % len(v.Question.Options)
	}
	return keyPress(rune('1' + idx))
}

func update(t *testing.T, s *SessionScreen, msg tea.Msg) (*SessionScreen, tea.Cmd) {
	t.Helper()
	scr, cmd := s.Update(msg)
	ss, ok := scr.(*SessionScreen)
	if !ok {
		t.Fatalf("Update returned %T", scr)
	}
	return ss, cmd
}

func TestSessionScreen_Title(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)
	if !strings.HasPrefix(s.Title(), "World 1") {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSessionScreen_View(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)
	view := s.View(100, 30)
	if !strings.Contains(view, s.session.View().Question.Prompt) {
		t.Error("expected the question prompt in the view")
	}
}

func TestSessionScreen_CorrectAnswerThenAdvance(t *testing.T) {
	s, svc := startedScreen(t, newProfile(), 1)

	s, _ = update(t, s, answerKey(s.session.View(), true))
	v := s.session.View()
	if v.Phase != quiz.PhaseRevealed || !v.Last.Correct {
		t.Fatalf("phase = %v, last = %+v", v.Phase, v.Last)
	}
	if v.GemsEarned != svc.Rules.CorrectReward {
		t.Errorf("GemsEarned = %d", v.GemsEarned)
	}
	if !s.choices.Revealed() {
		t.Error("expected choices to be revealed")
	}

	s, cmd := update(t, s, specialKey(tea.KeyEnter))
	v = s.session.View()
	if v.Phase != quiz.PhasePresenting || v.Index != 1 {
		t.Errorf("phase = %v index = %d, want presenting 1", v.Phase, v.Index)
	}
	if cmd == nil {
		t.Error("expected the timer to restart")
	}
	if s.choices.Revealed() {
		t.Error("expected fresh choices for the next question")
	}
}

func TestSessionScreen_WrongAnswerCostsHeart(t *testing.T) {
	s, svc := startedScreen(t, newProfile(), 1)

	s, _ = update(t, s, answerKey(s.session.View(), false))
	if got := svc.Profile().Hearts; got != 4 {
		t.Errorf("Hearts = %d, want 4", got)
	}
	if !strings.Contains(s.View(100, 30), "Not quite") {
		t.Error("expected wrong-answer feedback")
	}
}

func TestSessionScreen_TimerTimesOut(t *testing.T) {
	s, svc := startedScreen(t, newProfile(), 1)

	for range svc.Rules.QuestionSeconds {
		s, _ = update(t, s, timerTickMsg{gen: s.clock.gen})
	}

	v := s.session.View()
	if v.Phase != quiz.PhaseRevealed || !v.Last.TimedOut {
		t.Fatalf("phase = %v last = %+v, want timed-out reveal", v.Phase, v.Last)
	}
	if svc.Profile().Hearts != 4 {
		t.Errorf("Hearts = %d, want 4", svc.Profile().Hearts)
	}
	if !strings.Contains(s.View(100, 30), "Time's up") {
		t.Error("expected timeout feedback")
	}
}

func TestSessionScreen_StaleTickIgnored(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)
	stale := timerTickMsg{gen: s.clock.gen}

	s, _ = update(t, s, answerKey(s.session.View(), true))
	s, _ = update(t, s, specialKey(tea.KeyEnter))
	before := s.session.View().Remaining

	s, cmd := update(t, s, stale)
	if got := s.session.View().Remaining; got != before {
		t.Errorf("stale tick changed remaining from %d to %d", before, got)
	}
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
}

func TestSessionScreen_Hint(t *testing.T) {
	s, svc := startedScreen(t, newProfile(), 1)

	s, _ = update(t, s, keyPress('h'))
	if got := svc.Profile().Gems; got != 50-svc.Rules.HintCost {
		t.Errorf("Gems = %d", got)
	}
	if !s.session.View().HintUsed {
		t.Error("expected hint to be used")
	}

	// A second hint on the same question is rejected without charging.
	s, _ = update(t, s, keyPress('h'))
	if got := svc.Profile().Gems; got != 50-svc.Rules.HintCost {
		t.Errorf("Gems = %d after second hint", got)
	}
	if s.notice == "" {
		t.Error("expected a notice for the rejected hint")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)
	if !s.CapturesEscape() {
		t.Fatal("live session should capture Esc")
	}

	s, _ = update(t, s, specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation dialog")
	}

	s, _ = update(t, s, keyPress('n'))
	if s.confirmQuit {
		t.Error("expected quit confirmation to be dismissed")
	}
	if s.session.Phase() != quiz.PhasePresenting {
		t.Errorf("phase = %v", s.session.Phase())
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)

	s, _ = update(t, s, specialKey(tea.KeyEscape))
	s, cmd := update(t, s, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement screen = %T", msg.Screen)
	}
	if s.session.Phase() != quiz.PhaseAbandoned {
		t.Errorf("phase = %v, want abandoned", s.session.Phase())
	}
	if s.CapturesEscape() {
		t.Error("finished session should release Esc")
	}
}

func TestSessionScreen_ExhaustedRefill(t *testing.T) {
	p := newProfile()
	p.Hearts = 1
	s, svc := startedScreen(t, p, 1)
	first := s.session.View().Question.ID

	s, _ = update(t, s, answerKey(s.session.View(), false))
	if s.session.Phase() != quiz.PhaseExhausted {
		t.Fatalf("phase = %v, want exhausted", s.session.Phase())
	}
	if !strings.Contains(s.View(100, 30), "Out of hearts") {
		t.Error("expected the exhausted panel")
	}

	s, cmd := update(t, s, keyPress('r'))
	v := s.session.View()
	if v.Phase != quiz.PhasePresenting || v.Question.ID != first {
		t.Errorf("phase = %v question = %d, want same question presenting", v.Phase, v.Question.ID)
	}
	if v.Remaining != svc.Rules.QuestionSeconds {
		t.Errorf("Remaining = %d, want a full timer", v.Remaining)
	}
	if cmd == nil {
		t.Error("expected the timer to restart after refill")
	}
	if got := svc.Profile(); got.Hearts != got.MaxHearts || got.Gems != 0 {
		t.Errorf("profile after refill = %+v", got)
	}
	if s.choices.Revealed() {
		t.Error("expected choices to reset after refill")
	}
}

func TestSessionScreen_ExhaustedCannotAfford(t *testing.T) {
	p := newProfile()
	p.Hearts = 0
	p.Gems = 10
	s, _ := startedScreen(t, p, 1)

	if s.session.Phase() != quiz.PhaseExhausted {
		t.Fatalf("phase = %v, want exhausted at start", s.session.Phase())
	}
	s, _ = update(t, s, keyPress('r'))
	if s.session.Phase() != quiz.PhaseExhausted {
		t.Errorf("phase = %v after failed refill", s.session.Phase())
	}
	if !strings.Contains(s.notice, "Not enough gems") {
		t.Errorf("notice = %q", s.notice)
	}
	if !s.buttons.Buttons[0].Disabled {
		t.Error("refill button should be disabled")
	}
}

func TestSessionScreen_ExhaustedLeaveButton(t *testing.T) {
	p := newProfile()
	p.Hearts = 0
	s, _ := startedScreen(t, p, 1)

	s, _ = update(t, s, specialKey(tea.KeyRight))
	_, cmd := update(t, s, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from the leave button")
	}
	s, cmd = update(t, s, cmd())
	if s.session.Phase() != quiz.PhaseAbandoned {
		t.Errorf("phase = %v, want abandoned", s.session.Phase())
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected the summary to replace the session")
	}
}

func TestSessionScreen_CompleteWorld(t *testing.T) {
	s, svc := startedScreen(t, newProfile(), 1)
	total := s.session.View().Total

	var cmd tea.Cmd
	for i := range total {
		s, _ = update(t, s, answerKey(s.session.View(), true))
		s, cmd = update(t, s, specialKey(tea.KeyEnter))
		if i < total-1 && s.session.Phase() != quiz.PhasePresenting {
			t.Fatalf("question %d: phase = %v", i, s.session.Phase())
		}
	}

	if s.session.Phase() != quiz.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", s.session.Phase())
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected the summary to replace the session")
	}
	p := svc.Profile()
	if !p.CompletedWorlds.Has(1) || !p.UnlockedWorlds.Has(2) {
		t.Errorf("worlds after completion: %v / %v", p.CompletedWorlds, p.UnlockedWorlds)
	}
	if want := 50 + total*svc.Rules.CorrectReward; p.Gems != want {
		t.Errorf("Gems = %d, want %d", p.Gems, want)
	}
}

func TestSessionScreen_LockedWorld(t *testing.T) {
	svc := testServices(newProfile())
	s := New(svc, 3)
	if cmd := s.Init(); cmd != nil {
		t.Error("locked world should not start a timer")
	}
	if !strings.Contains(s.View(100, 30), "locked") {
		t.Error("expected locked message")
	}

	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected navigation back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s, _ := startedScreen(t, newProfile(), 1)
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}

func TestTickClockSchedulesOncePerGeneration(t *testing.T) {
	c := newTickClock()
	c.interval = time.Millisecond
	if c.schedule() != nil {
		t.Error("disarmed clock should not schedule")
	}

	fired := 0
	c.Arm(func(_ context.Context) { fired++ })
	if c.schedule() == nil {
		t.Fatal("armed clock should schedule")
	}
	if c.schedule() != nil {
		t.Error("second schedule in the same generation should be nil")
	}

	c.deliver(context.Background(), timerTickMsg{gen: c.gen})
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	old := c.gen
	c.Disarm()
	if c.deliver(context.Background(), timerTickMsg{gen: old}) {
		t.Error("tick after disarm should be dropped")
	}
}
