package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/rewards"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

type eligibilityMsg struct {
	OK  bool
	Err error
}

// CheckInScreen shows the daily reward calendar and claims today's reward.
type CheckInScreen struct {
	svc      *game.Services
	loaded   bool
	canClaim bool
	grant    *rewards.Grant
	notice   string
	errMsg   string
}

var _ screen.Screen = (*CheckInScreen)(nil)
var _ screen.KeyHintProvider = (*CheckInScreen)(nil)

// New creates a new CheckInScreen.
func New(svc *game.Services) *CheckInScreen {
	return &CheckInScreen{svc: svc}
}

func (s *CheckInScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ok, err := s.svc.CanCheckIn(context.Background())
		return eligibilityMsg{OK: ok, Err: err}
	}
}

func (s *CheckInScreen) Title() string {
	return "Daily Check-In"
}

func (s *CheckInScreen) KeyHints() []layout.KeyHint {
	if s.canClaim {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Claim"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CheckInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eligibilityMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.canClaim = msg.OK
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "c", "C":
			if s.grant != nil {
				return s, router.Pop()
			}
			s.claim()
		case "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *CheckInScreen) claim() {
	g, err := s.svc.CheckIn(context.Background())
	switch {
	case errors.Is(err, rewards.ErrAlreadyClaimed):
		s.canClaim = false
		s.notice = "Already claimed today. Come back tomorrow!"
	case err != nil:
		s.svc.Logger.Warn("check-in failed", "err", err)
		s.notice = fmt.Sprintf("Could not claim: %v", err)
	default:
		s.grant = &g
		s.canClaim = false
		s.notice = ""
	}
}

func (s *CheckInScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Checking the calendar...")
	}

	p := s.svc.Profile()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Login streak: %d day%s", p.LoginStreak, plural(p.LoginStreak))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderWeek(rewards.Week(p))))
	b.WriteString("\n\n")

	switch {
	case s.grant != nil:
		b.WriteString(center.Render(renderGrant(*s.grant)))
	case s.canClaim:
		b.WriteString(center.Foreground(theme.ArcadeYellow).Bold(true).
			Render("Today's reward is ready! Press Enter to claim."))
	default:
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Today's reward is claimed. Come back tomorrow!"))
	}
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.notice))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderMilestones(rewards.AllMilestones(p))))
	return b.String()
}

// renderWeek draws the seven calendar cells side by side.
func renderWeek(cells []rewards.Cell) string {
	rendered := make([]string, 0, len(cells))
	for _, c := range cells {
		rendered = append(rendered, renderCell(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCell(c rewards.Cell) string {
	border := theme.Border
	fg := theme.TextDim
	mark := " "
	switch c.Status {
	case rewards.CellClaimed:
		border = theme.Success
		fg = theme.Success
		mark = "✓"
	case rewards.CellCurrent:
		border = theme.ArcadeYellow
		fg = theme.ArcadeYellow
		mark = "▸"
	}

	gems := fmt.Sprintf("%d◆", c.Gems)
	if c.Milestone {
		gems = theme.Diamond + " " + gems
	}
	body := fmt.Sprintf("Day %d\n%s\n%s", c.Day, gems, mark)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Width(9).
		Align(lipgloss.Center).
		Render(body)
}

func renderGrant(g rewards.Grant) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render(fmt.Sprintf("Claimed day %d: +%d gems", g.CycleDay, g.Gems)))
	if g.Milestone != nil {
		b.WriteString("\n")
		b.WriteString(theme.GemStyle.Render(fmt.Sprintf("Milestone reached: %s (%d days)", g.Milestone.Label, g.Milestone.Day)))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Streak is now %d. Press Enter to continue.", g.Streak)))
	return b.String()
}

func renderMilestones(ms []rewards.MilestoneState) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Milestones"))
	b.WriteString("\n")
	for _, m := range ms {
		icon := "○"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if m.Achieved {
			icon = "●"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %-10s %3d days  %s", icon, m.Label, m.Day, components.GemCount(m.Gems))))
		b.WriteString("\n")
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
