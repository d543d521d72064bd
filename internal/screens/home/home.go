package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/screens/checkin"
	"github.com/abhisek/bridgewise/internal/screens/history"
	"github.com/abhisek/bridgewise/internal/screens/profile"
	sessionscreen "github.com/abhisek/bridgewise/internal/screens/session"
	"github.com/abhisek/bridgewise/internal/screens/worldmap"
	"github.com/abhisek/bridgewise/internal/ui/components"
)

const (
	itemPlay = iota
	itemWorldMap
	itemCheckIn
	itemHistory
	itemProfile
	itemExit
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc        *game.Services
	menu       components.Menu
	menuLabels []string
	canCheckIn bool
	notice     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *game.Services) *HomeScreen {
	menuLabels := []string{"PLAY", "WORLD MAP", "DAILY CHECK-IN", "HISTORY", "PROFILE", "EXIT GAME"}

	items := []components.MenuItem{
		{Label: menuLabels[itemPlay], Action: func() tea.Cmd {
			return router.Push(sessionscreen.New(svc, game.NextWorld(svc.Bank, svc.Profile())))
		}},
		{Label: menuLabels[itemWorldMap], Action: func() tea.Cmd {
			return router.Push(worldmap.New(svc))
		}},
		{Label: menuLabels[itemCheckIn], Action: func() tea.Cmd {
			return router.Push(checkin.New(svc))
		}},
		{Label: menuLabels[itemHistory], Action: func() tea.Cmd {
			return router.Push(history.New(svc))
		}},
		{Label: menuLabels[itemProfile], Action: func() tea.Cmd {
			return router.Push(profile.New(svc))
		}},
		{Label: menuLabels[itemExit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:        svc,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

// Resume refreshes the daily reward badge after a child screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	ok, err := h.svc.CanCheckIn(context.Background())
	if err != nil {
		h.svc.Logger.Warn("check-in lookup failed", "err", err)
		h.notice = "Could not read check-in history"
		return
	}
	h.canCheckIn = ok
	h.notice = ""
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) stats() homeStats {
	p := h.svc.Profile()
	return homeStats{
		Level:     p.Level,
		Gems:      p.Gems,
		Hearts:    p.Hearts,
		MaxHearts: p.MaxHearts,
		Streak:    p.LoginStreak,
		Completed: countCompleted(h.svc.Worlds()),
		Worlds:    h.svc.Bank.Len(),
	}
}

func (h *HomeScreen) mascot(st homeStats) MascotVariant {
	switch {
	case st.Worlds > 0 && st.Completed == st.Worlds:
		return MascotCelebrating
	case h.canCheckIn:
		return MascotAlert
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 40 || width < 100
	cw := components.ContentWidth(width)
	st := h.stats()

	badges := map[int]string{}
	if h.canCheckIn {
		badges[itemCheckIn] = "!"
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(st), cw))
	}
	sections = append(sections, renderStatsBar(st, cw, compact))
	if termHeight < 34 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, badges))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, badges))
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func countCompleted(worlds []game.WorldStatus) int {
	n := 0
	for _, w := range worlds {
		if w.State == game.WorldCompleted {
			n++
		}
	}
	return n
}
