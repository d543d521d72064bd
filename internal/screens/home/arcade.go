package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// Fanned honour cards over the name.
const arcadeTitleFull = `┌─────┐┌─────┐┌─────┐┌─────┐
│A    ││K    ││Q    ││J    │
│  ♠  ││  ♥  ││  ♦  ││  ♣  │
│    A││    K││    Q││    J│
└─────┘└─────┘└─────┘└─────┘
  B · R · I · D · G · E · W · I · S · E`

const arcadeTitleCompact = "♠ B R I D G E W I S E ♥"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// homeStats is what the dashboard shows.
type homeStats struct {
	Level     int
	Gems      int
	Hearts    int
	MaxHearts int
	Streak    int
	Completed int
	Worlds    int
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st homeStats, cw int, compact bool) string {
	levelStyle := theme.LevelStyle
	worldStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			levelStyle.Render(fmt.Sprintf("Lv%d", st.Level)),
			theme.GemStyle.Render(fmt.Sprintf("◆%d", st.Gems)),
			theme.HeartStyle.Render(fmt.Sprintf("♥%d", st.Hearts)),
			worldStyle.Render(fmt.Sprintf("%d/%d", st.Completed, st.Worlds)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s\n%s  %s",
			levelStyle.Render(fmt.Sprintf("LEVEL %d", st.Level)),
			components.GemCount(st.Gems),
			components.HeartBar(st.Hearts, st.MaxHearts),
			worldStyle.Render(fmt.Sprintf("%d/%d WORLDS", st.Completed, st.Worlds)),
			streakText(st.Streak),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func streakText(streak int) string {
	if streak == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("★ NO STREAK")
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("★ %d DAY STREAK", streak))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, badges map[int]string) string {
	var buttons []string
	for i, label := range items {
		if b, ok := badges[i]; ok {
			label += " " + b
		}
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, badges map[int]string) string {
	var lines []string
	for i, label := range items {
		if b, ok := badges[i]; ok {
			label += " " + b
		}
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderNotice renders a dim one-line notice under the menu.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
