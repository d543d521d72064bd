package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/store"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// historyLimit caps how many sessions are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

// HistoryScreen displays past world runs.
type HistoryScreen struct {
	svc      *game.Services
	sessions []store.SessionSummaryRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *game.Services) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.svc.History(context.Background(), historyLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Deal yourself in!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Local().Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		var accuracy float64
		if sess.QuestionsServed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s  %-24s %s  %2d/%-2d  %3.0f%%  %s",
			prefix, dateStr, s.worldLabel(sess.WorldID), durationStr,
			sess.CorrectAnswers, sess.QuestionsServed, accuracy, outcomeLabel(sess.Outcome))

		style := lipgloss.NewStyle().Foreground(outcomeColor(sess.Outcome))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(details(sess))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) worldLabel(id int) string {
	w := s.svc.Bank.World(id)
	label := fmt.Sprintf("%d. %s", id, w.Name)
	if r := []rune(label); len(r) > 24 {
		label = string(r[:23]) + "…"
	}
	return label
}

// details renders the expanded resource line for one run.
func details(sess store.SessionSummaryRecord) string {
	parts := []string{
		fmt.Sprintf("◆ +%d earned", sess.GemsEarned),
		fmt.Sprintf("♥ -%d", sess.HeartsLost),
		fmt.Sprintf("%d hint%s", sess.HintsUsed, plural(sess.HintsUsed)),
	}
	return "    " + strings.Join(parts, "   ")
}

func outcomeLabel(outcome string) string {
	switch outcome {
	case quiz.PhaseCompleted.String():
		return "★ cleared"
	case quiz.PhaseAbandoned.String():
		return "left"
	default:
		return outcome
	}
}

func outcomeColor(outcome string) color.Color {
	switch outcome {
	case quiz.PhaseCompleted.String():
		return theme.Success
	case quiz.PhaseAbandoned.String():
		return theme.TextDim
	default:
		return theme.Text
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
