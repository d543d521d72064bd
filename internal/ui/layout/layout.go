package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the header drops the level and streak.
	CompactWidth = 100
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Stats are the player resources shown in the header.
type Stats struct {
	Gems      int
	Hearts    int
	MaxHearts int
	Level     int
	Streak    int
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"%s Terminal too small %s\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
			theme.Spade, theme.Spade, MinWidth, MinHeight, width, height,
		))
}

// resources renders the right side of the header. Level and streak are
// left out on narrow terminals.
func resources(s Stats, width int) string {
	gap := "   "
	parts := []string{
		theme.GemStyle.Render(fmt.Sprintf("◆ %d", s.Gems)),
		theme.HeartStyle.Render(fmt.Sprintf("%s %d/%d", theme.HeartS, s.Hearts, s.MaxHearts)),
	}
	if width >= CompactWidth {
		parts = append(parts, theme.LevelStyle.Render(fmt.Sprintf("Lv %d", s.Level)))
		if s.Streak > 0 {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Accent).
				Render(fmt.Sprintf("★ %d day", s.Streak)))
		}
	}
	return strings.Join(parts, gap)
}

// RenderHeader renders the title bar with the screen title centered and the
// player's resources on the right.
func RenderHeader(title string, stats Stats, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + theme.Spade + " Bridgewise")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := resources(stats, width)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, sizing the content to the
// height left over.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return header + "\n" + body + "\n" + footer
}
