package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice renders a question's options with a cursor. The owning screen
// decides when an answer is submitted and calls Reveal with the outcome.
type MultiChoice struct {
	Options  []string
	Selected int

	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice creates a selector over options with the cursor on the first.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		chosen:  -1,
		correct: -1,
	}
}

// Update moves the cursor. Keys are ignored once revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// ChoiceForKey maps "1".."6" or "a".."f" to an option index.
func (m MultiChoice) ChoiceForKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var idx int
	switch {
	case c >= '1' && c <= '9':
		idx = int(c - '1')
	case c >= 'a' && c <= 'f':
		idx = int(c - 'a')
	default:
		return 0, false
	}
	if idx >= len(m.Options) {
		return 0, false
	}
	return idx, true
}

// Reveal marks the chosen option (-1 for none) and the correct one.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// Revealed reports whether the answer is shown.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, choiceLabels[i%len(choiceLabels)], opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
