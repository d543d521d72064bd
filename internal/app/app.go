package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/screens/home"
	sessionscreen "github.com/abhisek/bridgewise/internal/screens/session"
	"github.com/abhisek/bridgewise/internal/screens/welcome"
	"github.com/abhisek/bridgewise/internal/ui/layout"
)

// Options configures the interactive program.
type Options struct {
	Services *game.Services

	// StartWorld, when positive, drops straight into that world on launch.
	StartWorld int

	// Welcome shows the splash and first-run name prompt before home.
	Welcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc        *game.Services
	router     *router.Router
	startWorld int
	width      int
	height     int
}

// newAppModel creates a new AppModel rooted at the home screen, or at the
// welcome splash when requested.
func newAppModel(opts Options) AppModel {
	svc := opts.Services
	var root screen.Screen = home.New(svc)
	if opts.Welcome && opts.StartWorld <= 0 {
		root = welcome.New(svc, func() screen.Screen { return home.New(svc) })
	}
	return AppModel{
		svc:        svc,
		router:     router.New(root),
		startWorld: opts.StartWorld,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.startWorld > 0 {
		return tea.Batch(cmd, m.router.Push(sessionscreen.New(m.svc, m.startWorld)))
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ec, ok := m.router.Active().(screen.EscapeCapturer); ok && ec.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// stats reads the header numbers from the live profile.
func (m AppModel) stats() layout.Stats {
	p := m.svc.Profile()
	return layout.Stats{
		Gems:      p.Gems,
		Hearts:    p.Hearts,
		MaxHearts: p.MaxHearts,
		Level:     p.Level,
		Streak:    p.LoginStreak,
	}
}

func (m AppModel) footerHints() []layout.KeyHint {
	active := m.router.Active()
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Services == nil {
		return fmt.Errorf("app: no services")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
