package session

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/screens/summary"
	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/layout"
)

// SessionScreen plays one world. It owns the live quiz.Session and is the
// only caller of its commands.
type SessionScreen struct {
	svc     *game.Services
	worldID int
	ctx     context.Context

	session  *quiz.Session
	clock    *tickClock
	choices  components.MultiChoice
	buttons  components.ButtonRow
	question int // index the choices were built for, -1 before the first

	confirmQuit bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeCapturer = (*SessionScreen)(nil)

// New creates a session screen for worldID. The session starts in Init.
func New(svc *game.Services, worldID int) *SessionScreen {
	return &SessionScreen{
		svc:      svc,
		worldID:  worldID,
		ctx:      context.Background(),
		clock:    newTickClock(),
		question: -1,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	sess, err := s.svc.StartSession(s.ctx, s.worldID, s.clock)
	if err != nil {
		s.errMsg = startError(s.worldID, err)
		return nil
	}
	s.session = sess
	s.sync()
	return s.clock.schedule()
}

func (s *SessionScreen) Title() string {
	if s.session == nil {
		return fmt.Sprintf("World %d", s.worldID)
	}
	v := s.session.View()
	return fmt.Sprintf("World %d · %s", v.WorldID, v.WorldName)
}

// CapturesEscape keeps Esc on this screen while the session is live so the
// player confirms before forfeiting.
func (s *SessionScreen) CapturesEscape() bool {
	return s.session != nil && !s.session.Phase().Terminal()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.session == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave world"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	switch s.session.Phase() {
	case quiz.PhaseRevealed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Leave"},
		}
	case quiz.PhaseExhausted:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "R", Description: "Refill"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "H", Description: fmt.Sprintf("Hint (%d ◆)", s.svc.Rules.HintCost)},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)
	case refillPressedMsg:
		return s.refill()
	case exitPressedMsg:
		return s.exit()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || !s.clock.deliver(s.ctx, msg) {
		return s, nil
	}
	s.sync()
	return s, s.clock.schedule()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.session == nil {
		return s, router.Pop()
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s.exit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.session.Phase() {
	case quiz.PhasePresenting:
		return s.handlePresentingKey(msg)
	case quiz.PhaseRevealed:
		switch key {
		case "enter", " ", "space", "n":
			return s.advance()
		}
	case quiz.PhaseExhausted:
		if key == "r" || key == "R" {
			return s.refill()
		}
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handlePresentingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "enter":
		return s.submit(s.choices.Selected)
	case "h", "H":
		return s.hint()
	}
	if choice, ok := s.choices.ChoiceForKey(key); ok {
		return s.submit(choice)
	}

	s.choices, _ = s.choices.Update(msg)
	return s, nil
}

func (s *SessionScreen) submit(choice int) (screen.Screen, tea.Cmd) {
	if _, err := s.session.Submit(s.ctx, choice); err != nil {
		return s.fail("submit", err)
	}
	s.sync()
	return s, nil
}

func (s *SessionScreen) hint() (screen.Screen, tea.Cmd) {
	if _, err := s.session.UseHint(s.ctx); err != nil {
		return s.fail("hint", err)
	}
	s.notice = ""
	return s, nil
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	sum, err := s.session.Advance(s.ctx)
	if err != nil {
		return s.fail("advance", err)
	}
	if sum != nil {
		s.clock.Disarm()
		return s, router.Replace(summary.New(*sum))
	}
	s.sync()
	return s, s.clock.schedule()
}

func (s *SessionScreen) refill() (screen.Screen, tea.Cmd) {
	if err := s.session.RefillHearts(s.ctx); err != nil {
		return s.fail("refill", err)
	}
	s.sync()
	return s, s.clock.schedule()
}

func (s *SessionScreen) exit() (screen.Screen, tea.Cmd) {
	sum, err := s.session.Exit(s.ctx)
	if err != nil {
		return s.fail("exit", err)
	}
	return s, router.Replace(summary.New(sum))
}

// fail turns a rejected command into a notice. Rejections leave the session
// unchanged, so play continues.
func (s *SessionScreen) fail(op string, err error) (screen.Screen, tea.Cmd) {
	var funds *economy.FundsError
	switch {
	case errors.As(err, &funds):
		s.notice = fmt.Sprintf("Not enough gems: need %d, have %d", funds.Need, funds.Have)
	case errors.Is(err, quiz.ErrInvalidTransition):
		s.notice = "That's not available right now"
	default:
		s.notice = fmt.Sprintf("Could not %s: %v", op, err)
	}
	s.svc.Logger.Debug("session command rejected", "op", op, "err", err)
	return s, nil
}

// sync rebuilds the widgets from the session snapshot.
func (s *SessionScreen) sync() {
	v := s.session.View()

	if v.Phase == quiz.PhasePresenting && (v.Index != s.question || s.choices.Revealed()) {
		s.choices = components.NewMultiChoice(v.Question.Options)
		s.question = v.Index
		s.notice = ""
	}
	if v.Last != nil && !s.choices.Revealed() {
		s.choices.Reveal(v.Last.Choice, v.Last.CorrectIndex)
	}
	if v.Phase == quiz.PhaseExhausted {
		s.buttons = components.NewButtonRow(
			components.Button{
				Label:    fmt.Sprintf("Refill hearts (%d ◆)", s.svc.Rules.RefillCost),
				Disabled: !v.CanAffordRefill,
				OnPress:  s.pressRefill,
			},
			components.Button{
				Label:   "Leave world",
				OnPress: s.pressExit,
			},
		)
	}
}

func (s *SessionScreen) pressRefill() tea.Cmd {
	return func() tea.Msg { return refillPressedMsg{} }
}

func (s *SessionScreen) pressExit() tea.Cmd {
	return func() tea.Msg { return exitPressedMsg{} }
}

func startError(worldID int, err error) string {
	if errors.Is(err, economy.ErrProgressionGate) {
		return fmt.Sprintf("World %d is locked. Complete world %d first.", worldID, worldID-1)
	}
	return err.Error()
}
