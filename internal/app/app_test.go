package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screens/home"
	sessionscreen "github.com/abhisek/bridgewise/internal/screens/session"
	"github.com/abhisek/bridgewise/internal/screens/welcome"
)

func newModel(startWorld int) AppModel {
	svc := game.New(game.Options{Profile: economy.NewProfile(economy.DefaultRules()), Rules: economy.DefaultRules()})
	return newAppModel(Options{Services: svc, StartWorld: startWorld})
}

func TestAppStartsHome(t *testing.T) {
	m := newModel(0)
	m.Init()
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T, want home", m.router.Active())
	}
}

func TestAppStartsOnWelcome(t *testing.T) {
	svc := game.New(game.Options{Profile: economy.NewProfile(economy.DefaultRules()), Rules: economy.DefaultRules()})
	m := newAppModel(Options{Services: svc, Welcome: true})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("active = %T, want welcome", m.router.Active())
	}

	m = newAppModel(Options{Services: svc, Welcome: true, StartWorld: 1})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T, want home under a direct world start", m.router.Active())
	}
}

func TestAppStartWorld(t *testing.T) {
	m := newModel(1)
	m.Init()
	if _, ok := m.router.Active().(*sessionscreen.SessionScreen); !ok {
		t.Fatalf("active = %T, want session", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestAppEscapeCapturedBySession(t *testing.T) {
	m := newModel(1)
	m.Init()

	model, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = model.(AppModel)
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d; esc should not pop a live session", m.router.Depth())
	}
}

func TestAppEscapePops(t *testing.T) {
	m := newModel(0)
	m.Init()
	m.router.Update(router.PushScreenMsg{Screen: home.New(m.svc)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestAppViewHeaderStats(t *testing.T) {
	m := newModel(0)
	m.Init()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(AppModel)

	if v := m.View(); v.Content == nil {
		t.Fatal("expected content once the window size is known")
	}
	st := m.stats()
	if st.Level != 1 || st.Hearts != st.MaxHearts {
		t.Errorf("stats = %+v", st)
	}
	if _, err := m.svc.Rename(t.Context(), "North"); err != nil {
		t.Fatal(err)
	}
	if got := m.footerHints(); len(got) == 0 || got[len(got)-1].Key != "Ctrl+C" {
		t.Errorf("footer hints = %+v", got)
	}
}
