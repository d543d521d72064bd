package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/quiz"
	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session == nil {
		return renderLoading(width)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, s.session.View())
	}

	v := s.session.View()
	if v.Phase == quiz.PhaseExhausted {
		return s.renderExhausted(width, v)
	}
	return s.renderQuestion(width, v)
}

// renderQuestion renders the question card for the presenting and revealed
// phases.
func (s *SessionScreen) renderQuestion(width int, v quiz.View) string {
	var b strings.Builder
	inner := components.ContentWidth(width)

	b.WriteString(s.renderInfoLine(width, v))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if v.Phase == quiz.PhasePresenting {
		b.WriteString("  ")
		b.WriteString(components.TimerBar(v.Remaining, s.svc.Rules.QuestionSeconds, inner))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Question.Prompt))
	b.WriteString("\n\n")

	b.WriteString(indent(s.choices.View(), "  "))
	b.WriteString("\n")

	if v.Hint != "" && v.Phase == quiz.PhasePresenting {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Padding(0, 2).
			Foreground(theme.ArcadeCyan).
			Render("💡 " + v.Hint))
		b.WriteString("\n\n")
	}

	if v.Phase == quiz.PhaseRevealed && v.Last != nil {
		b.WriteString(renderFeedback(width, *v.Last))
	}

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *SessionScreen) renderInfoLine(width int, v quiz.View) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s %s", theme.Club, v.WorldName))

	right := fmt.Sprintf("Q %d/%d  %s  %s  +%d this world",
		v.Index+1, v.Total,
		components.HeartBar(v.Profile.Hearts, v.Profile.MaxHearts),
		components.GemCount(v.Profile.Gems),
		v.GemsEarned,
	)

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func renderFeedback(width int, r quiz.Result) string {
	var headline string
	switch {
	case r.Correct:
		headline = theme.Correct.Render(fmt.Sprintf("Correct! +%d ◆", r.GemsAwarded))
	case r.TimedOut:
		headline = theme.Incorrect.Render("Time's up! −1 " + theme.HeartS)
	default:
		headline = theme.Incorrect.Render("Not quite. −1 " + theme.HeartS)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(headline))
	b.WriteString("\n\n")
	if r.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Padding(0, 4).
			Foreground(theme.TextDim).
			Render(r.Explanation))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to continue..."))
	b.WriteString("\n")
	return b.String()
}

// renderExhausted renders the out-of-hearts panel.
func (s *SessionScreen) renderExhausted(width int, v quiz.View) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center)

	var body strings.Builder
	body.WriteString(theme.HeartStyle.Render("Out of hearts!"))
	body.WriteString("\n\n")
	body.WriteString(components.HeartBar(0, v.Profile.MaxHearts))
	body.WriteString("\n\n")
	body.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Refill to %d hearts for %d gems and retry this question. You have %d.",
			v.Profile.MaxHearts, s.svc.Rules.RefillCost, v.Profile.Gems)))
	if v.GemsEarned > 0 {
		body.WriteString("\n\n")
		body.WriteString(center.Foreground(theme.Accent).Render(
			fmt.Sprintf("Leaving now forfeits the %d gems earned in this world.", v.GemsEarned)))
	}
	body.WriteString("\n\n")
	body.WriteString(s.buttons.View())
	if s.notice != "" {
		body.WriteString("\n\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	card := components.ArcadeCard(body.String(), cw)
	return "\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card)
}

// renderQuitConfirm renders the leave-world confirmation dialog.
func renderQuitConfirm(width int, v quiz.View) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this world?"))
	b.WriteString("\n")

	warning := "Hearts lost and gems spent stay spent."
	if v.GemsEarned > 0 {
		warning = fmt.Sprintf("You will forfeit the %d gems earned here. %s", v.GemsEarned, warning)
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(warning))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep playing"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Shuffling the deck...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
