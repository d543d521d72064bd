package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/ui/components"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const cardArt = `╭─────╮╭─────╮╭─────╮╭─────╮
│A    ││K    ││Q    ││J    │
│  ♠  ││  ♥  ││  ♦  ││  ♣  │
│    A││    K││    Q││    J│
╰─────╯╰─────╯╰─────╯╰─────╯`

// sparkle frames cycle around the cards
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, asks a new player for their name
// and then replaces itself with the screen produced by next.
type WelcomeScreen struct {
	svc          *game.Services
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	naming       bool
	input        components.TextInput
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)
var _ screen.EscapeCapturer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen built by next.
func New(svc *game.Services, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{svc: svc, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) CapturesEscape() bool { return w.naming }

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Skip"},
		}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// firstLaunch reports whether the player still has the default name.
func (w *WelcomeScreen) firstLaunch() bool {
	return w.svc.Profile().Name == economy.DefaultPlayerName
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.naming {
		return w.updateNaming(msg)
	}

	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		// A key during the animation skips to its end.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		if w.firstLaunch() {
			w.naming = true
			w.input = components.NewTextInput("Your name", "", game.MaxNameLength)
			return w, w.input.Init()
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) updateNaming(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if km, ok := msg.(tea.KeyPressMsg); ok {
		switch km.String() {
		case "esc":
			w.naming = false
			return w, w.transition()
		case "enter":
			if w.input.Value() == "" {
				w.naming = false
				return w, w.transition()
			}
			if _, err := w.svc.Rename(context.Background(), w.input.Value()); err != nil {
				w.input.SetError(fmt.Sprintf("Name must be 1-%d characters", game.MaxNameLength))
				return w, nil
			}
			w.naming = false
			return w, w.transition()
		}
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Text).Render(cardArt)

	// Phase 2+: sparkles around the cards
	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 0 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 2 {
			lines[2] = s2 + "  " + lines[2] + "  " + s1
		}
		if len(lines) > 4 {
			lines[4] = s1 + "  " + lines[4] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn bridge one trick at a time!"))
	}

	switch {
	case w.naming:
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("What should we call you at the table?"),
			w.input.View())
	case w.elapsed >= totalDur:
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
