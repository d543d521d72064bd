package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/screens/gemvault"
	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// ProfileScreen shows the player's stats and edits their name.
type ProfileScreen struct {
	svc     *game.Services
	editing bool
	input   components.TextInput
	notice  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.EscapeCapturer = (*ProfileScreen)(nil)

// New creates a new ProfileScreen.
func New(svc *game.Services) *ProfileScreen {
	return &ProfileScreen{svc: svc}
}

func (s *ProfileScreen) Init() tea.Cmd { return nil }

func (s *ProfileScreen) Title() string { return "Profile" }

// CapturesEscape keeps Esc for cancelling an edit.
func (s *ProfileScreen) CapturesEscape() bool { return s.editing }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Edit name"},
		{Key: "V", Description: "Gem vault"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch km.String() {
	case "e", "E", "enter":
		s.editing = true
		s.notice = ""
		s.input = components.NewTextInput("Your name", s.svc.Profile().DisplayName(), game.MaxNameLength)
		return s, s.input.Init()
	case "v", "V":
		return s, router.Push(gemvault.New(s.svc))
	case "q":
		return s, router.Pop()
	}
	return s, nil
}

func (s *ProfileScreen) updateEditing(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			s.editing = false
			return s, nil
		case "enter":
			s.save()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ProfileScreen) save() {
	p, err := s.svc.Rename(context.Background(), s.input.Value())
	if err != nil {
		if errors.Is(err, game.ErrInvalidName) {
			s.input.SetError(fmt.Sprintf("Name must be 1-%d characters", game.MaxNameLength))
			return
		}
		s.svc.Logger.Warn("rename failed", "err", err)
		s.input.SetError(err.Error())
		return
	}
	s.editing = false
	s.notice = fmt.Sprintf("Saved. Welcome to the table, %s!", p.Name)
}

func (s *ProfileScreen) View(width, height int) string {
	p := s.svc.Profile()
	cw := components.ContentWidth(width)

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	completed := 0
	worlds := s.svc.Worlds()
	for _, w := range worlds {
		if w.State == game.WorldCompleted {
			completed++
		}
	}

	var body strings.Builder
	if s.editing {
		body.WriteString(label.Render("Name"))
		body.WriteString("\n")
		body.WriteString(s.input.View())
	} else {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(theme.Spade + " " + p.DisplayName()))
	}
	body.WriteString("\n\n")

	rows := [][2]string{
		{"Level", theme.LevelStyle.Render(fmt.Sprintf("Lv %d", p.Level))},
		{"Gems", components.GemCount(p.Gems)},
		{"Hearts", components.HeartBar(p.Hearts, p.MaxHearts)},
		{"Login streak", value.Render(fmt.Sprintf("%d", p.LoginStreak))},
		{"Worlds cleared", value.Render(fmt.Sprintf("%d/%d", completed, len(worlds)))},
		{"Avatar", value.Render(p.Cosmetics.EquippedAvatar())},
	}
	for _, r := range rows {
		body.WriteString(label.Render(r[0]))
		body.WriteString(r[1])
		body.WriteString("\n")
	}

	if s.notice != "" {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}

	card := components.ArcadeCard(body.String(), cw)
	return "\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card)
}
