package worldmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// WorldDetailScreen shows the description and topics of one world.
type WorldDetailScreen struct {
	world game.WorldStatus
}

var _ screen.Screen = (*WorldDetailScreen)(nil)
var _ screen.KeyHintProvider = (*WorldDetailScreen)(nil)

func newWorldDetail(w game.WorldStatus) *WorldDetailScreen {
	return &WorldDetailScreen{world: w}
}

func (d *WorldDetailScreen) Init() tea.Cmd { return nil }
func (d *WorldDetailScreen) Title() string { return d.world.Name }

func (d *WorldDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *WorldDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *WorldDetailScreen) View(width, height int) string {
	w := d.world
	contentWidth := min(width-8, 70)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  World %d · %s", stateIcon(w.State), w.ID, w.Name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + w.State.String()))
	b.WriteString("\n\n")

	if w.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(w.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	b.WriteString(dimStyle.Render("  Questions: ") + valStyle.Render(fmt.Sprintf("%d", len(w.Questions))) + "\n\n")

	if len(w.Topics) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Topics"))
		b.WriteString("\n")
		for _, t := range w.Topics {
			b.WriteString(dimStyle.Render("  " + theme.Diamond + " " + t))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
