package gemvault

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/router"
	"github.com/abhisek/bridgewise/internal/screen"
	"github.com/abhisek/bridgewise/internal/store"
	"github.com/abhisek/bridgewise/internal/ui/layout"
	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// vaultLimit caps how many ledger entries are loaded.
const vaultLimit = 200

type ledgerLoadedMsg struct {
	Records []store.DeltaRecord
	Err     error
}

// Filter selects which ledger entries a tab shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterEarned
	FilterSpent
	FilterHearts
)

// AllFilters returns the tabs in display order.
func AllFilters() []Filter {
	return []Filter{FilterAll, FilterEarned, FilterSpent, FilterHearts}
}

func (f Filter) DisplayName() string {
	switch f {
	case FilterEarned:
		return "Earned"
	case FilterSpent:
		return "Spent"
	case FilterHearts:
		return "Hearts"
	default:
		return "All"
	}
}

// Match reports whether rec belongs under the tab.
func (f Filter) Match(rec store.DeltaRecord) bool {
	switch f {
	case FilterEarned:
		return rec.Gems > 0
	case FilterSpent:
		return rec.Gems < 0
	case FilterHearts:
		return rec.Hearts != 0
	default:
		return true
	}
}

// GemVaultScreen lists the ledger of gem and heart changes.
type GemVaultScreen struct {
	svc          *game.Services
	entries      []store.DeltaRecord
	selected     int // index into AllFilters
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*GemVaultScreen)(nil)
var _ screen.KeyHintProvider = (*GemVaultScreen)(nil)

// New creates a new GemVaultScreen.
func New(svc *game.Services) *GemVaultScreen {
	return &GemVaultScreen{svc: svc}
}

func (s *GemVaultScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.svc.Transactions(context.Background(), vaultLimit)
		return ledgerLoadedMsg{Records: records, Err: err}
	}
}

func (s *GemVaultScreen) Title() string {
	return "Gem Vault"
}

func (s *GemVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GemVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = nonZero(msg.Records)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		filters := AllFilters()
		switch msg.String() {
		case "q":
			return s, router.Pop()
		case "tab", "right", "l":
			s.selected = (s.selected + 1) % len(filters)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selected = (s.selected - 1 + len(filters)) % len(filters)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *GemVaultScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Opening the vault...")
	}

	p := s.svc.Profile()
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nBalance: %d gems · %d/%d hearts\n", p.Gems, p.Hearts, p.MaxHearts)))
	b.WriteString("\n")

	var tabs []string
	for i, f := range AllFilters() {
		label := fmt.Sprintf("%s (%d)", f.DisplayName(), s.count(f))
		if i == s.selected {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for i := start; i < end; i++ {
		rec := filtered[i]
		line := fmt.Sprintf("  %-18s %8s %6s   %s",
			reasonLabel(rec.Reason),
			signed(rec.Gems, "◆"),
			signed(rec.Hearts, "♥"),
			rec.Timestamp.Local().Format("Jan 02 15:04"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(entryColor(rec)).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *GemVaultScreen) filtered() []store.DeltaRecord {
	f := AllFilters()[s.selected]
	var out []store.DeltaRecord
	for _, rec := range s.entries {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *GemVaultScreen) count(f Filter) int {
	n := 0
	for _, rec := range s.entries {
		if f.Match(rec) {
			n++
		}
	}
	return n
}

// nonZero drops entries that moved no resource, such as exits and renames.
func nonZero(records []store.DeltaRecord) []store.DeltaRecord {
	out := records[:0:0]
	for _, rec := range records {
		if rec.Gems != 0 || rec.Hearts != 0 {
			out = append(out, rec)
		}
	}
	return out
}

func reasonLabel(r economy.Reason) string {
	switch r {
	case economy.ReasonHeartLost:
		return "Heart lost"
	case economy.ReasonHint:
		return "Hint"
	case economy.ReasonRefill:
		return "Heart refill"
	case economy.ReasonSessionComplete:
		return "World complete"
	case economy.ReasonCheckIn:
		return "Daily check-in"
	case economy.ReasonReset:
		return "Reset"
	default:
		return string(r)
	}
}

func signed(n int, unit string) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%+d%s", n, unit)
}

func entryColor(rec store.DeltaRecord) color.Color {
	switch {
	case rec.Gems > 0:
		return theme.Gem
	case rec.Gems < 0:
		return theme.Accent
	case rec.Hearts < 0:
		return theme.Heart
	default:
		return theme.Text
	}
}
