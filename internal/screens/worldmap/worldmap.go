package worldmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	sessionscreen "github.com/abhisek/bridgewise/internal/screens/session"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// WorldMapScreen lists every world with its progression state.
type WorldMapScreen struct {
	svc          *game.Services
	worlds       []game.WorldStatus
	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*WorldMapScreen)(nil)
var _ screen.KeyHintProvider = (*WorldMapScreen)(nil)
var _ screen.Resumer = (*WorldMapScreen)(nil)

// New creates a world map for the live profile.
func New(svc *game.Services) *WorldMapScreen {
	s := &WorldMapScreen{svc: svc}
	s.refresh()
	s.cursor = s.indexOf(game.NextWorld(svc.Bank, svc.Profile()))
	return s
}

func (s *WorldMapScreen) Init() tea.Cmd { return nil }

func (s *WorldMapScreen) Title() string { return "World Map" }

// Resume reloads world states after a session returns.
func (s *WorldMapScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *WorldMapScreen) refresh() {
	s.worlds = s.svc.Worlds()
	if s.cursor >= len(s.worlds) {
		s.cursor = max(len(s.worlds)-1, 0)
	}
}

func (s *WorldMapScreen) indexOf(worldID int) int {
	for i, w := range s.worlds {
		if w.ID == worldID {
			return i
		}
	}
	return 0
}

func (s *WorldMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "D", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WorldMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(s.worlds) == 0 {
		return s, nil
	}

	switch km.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "home", "g":
		s.cursor = 0
	case "end", "G":
		s.cursor = len(s.worlds) - 1
	case "enter":
		return s, s.play()
	case "d", "D", "right":
		return s, router.Push(newWorldDetail(s.worlds[s.cursor]))
	case "q":
		return s, router.Pop()
	}
	s.notice = ""
	return s, nil
}

func (s *WorldMapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	if next < 0 || next >= len(s.worlds) {
		return
	}
	s.cursor = next
}

// play starts the world under the cursor if it is unlocked.
func (s *WorldMapScreen) play() tea.Cmd {
	w := s.worlds[s.cursor]
	if !w.Playable() {
		s.notice = fmt.Sprintf("World %d is locked. Complete world %d first.", w.ID, w.ID-1)
		return nil
	}
	s.notice = ""
	return router.Push(sessionscreen.New(s.svc, w.ID))
}

// adjustScroll keeps the cursor visible within height rows.
func (s *WorldMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *WorldMapScreen) View(width, height int) string {
	var b strings.Builder

	done := 0
	for _, w := range s.worlds {
		if w.State == game.WorldCompleted {
			done++
		}
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Padding(1, 0, 0, 2).
		Render(fmt.Sprintf("%s WORLDS  %d/%d complete", theme.Spade, done, len(s.worlds))))
	b.WriteString("\n\n")

	if len(s.worlds) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  No worlds loaded."))
		return b.String()
	}

	listHeight := height - 6
	s.adjustScroll(listHeight)
	end := len(s.worlds)
	if listHeight > 0 && s.scrollOffset+listHeight < end {
		end = s.scrollOffset + listHeight
	}
	for i := s.scrollOffset; i < end; i++ {
		b.WriteString(renderRow(s.worlds[i], i == s.cursor, width))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).PaddingLeft(2).Render(s.notice))
	}
	return b.String()
}

func stateIcon(st game.WorldState) string {
	switch st {
	case game.WorldCompleted:
		return "★"
	case game.WorldUnlocked:
		return "▶"
	default:
		return "🔒"
	}
}

func renderRow(w game.WorldStatus, selected bool, width int) string {
	countWidth := 14
	labelWidth := 10
	nameWidth := width - 12 - countWidth - labelWidth
	if nameWidth < 10 {
		nameWidth = 10
	}

	name := fmt.Sprintf("%d. %s", w.ID, w.Name)
	if r := []rune(name); len(r) > nameWidth {
		name = string(r[:nameWidth-1]) + "…"
	}

	var nameStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case w.State == game.WorldCompleted:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = nameStyle
	case w.State == game.WorldUnlocked:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Locked)
		labelStyle = nameStyle
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		stateIcon(w.State),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		dim.Render(fmt.Sprintf("%*d questions", countWidth-10, len(w.Questions))),
		labelStyle.Render(fmt.Sprintf("%9s", w.State)),
	)
}
