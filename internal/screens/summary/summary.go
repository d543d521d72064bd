package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// SummaryScreen displays how a session ended.
type SummaryScreen struct {
	summary quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The session screen was replaced by this one, so a single pop
			// returns to where play started.
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(outcomeColor(sum)).Bold(true).Render(headline(sum)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("World %d · %s", sum.WorldID, sum.WorldName)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d/%d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.TotalQuestions, sum.Correct, sum.Accuracy()*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Resources")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, line := range resourceLines(sum) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(line.color).Render(line.text)))
		b.WriteString("\n")
	}

	return b.String()
}

func headline(sum quiz.Summary) string {
	if sum.Completed() {
		return theme.Spade + " World complete! " + theme.Spade
	}
	return "You left the world"
}

func outcomeColor(sum quiz.Summary) color.Color {
	if sum.Completed() {
		return theme.Primary
	}
	return theme.Accent
}

type styledLine struct {
	text  string
	color color.Color
}

func resourceLines(sum quiz.Summary) []styledLine {
	var lines []styledLine
	if sum.GemsEarned > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("◆ +%d gems earned", sum.GemsEarned), theme.Gem})
	}
	if sum.GemsForfeited > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("◆ %d gems forfeited", sum.GemsForfeited), theme.TextDim})
	}
	if sum.GemsSpent > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("◆ %d gems spent on hints and refills", sum.GemsSpent), theme.TextDim})
	}
	if sum.HeartsLost > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("%s %d hearts lost", theme.HeartS, sum.HeartsLost), theme.Heart})
	}
	if sum.HintsUsed > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("%d hints used", sum.HintsUsed), theme.ArcadeCyan})
	}
	if sum.LevelAfter > sum.LevelBefore {
		lines = append(lines, styledLine{
			fmt.Sprintf("Level up! %d → %d", sum.LevelBefore, sum.LevelAfter), theme.ArcadeYellow})
	}
	if sum.Completed() && sum.Unlocked > 0 {
		lines = append(lines, styledLine{fmt.Sprintf("World %d unlocked", sum.Unlocked), theme.Success})
	}
	if len(lines) == 0 {
		lines = append(lines, styledLine{"No changes", theme.TextDim})
	}
	return lines
}
