package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bridgewise/internal/ui/theme"
)

// Button is one entry in a ButtonRow.
type Button struct {
	Label    string
	Disabled bool
	OnPress  func() tea.Cmd
}

// ButtonRow is a horizontal set of buttons navigated with left/right.
type ButtonRow struct {
	Buttons  []Button
	Selected int
}

// NewButtonRow creates a row with the first enabled button selected.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	for i, b := range buttons {
		if !b.Disabled {
			r.Selected = i
			break
		}
	}
	return r
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		for i := r.Selected - 1; i >= 0; i-- {
			if !r.Buttons[i].Disabled {
				r.Selected = i
				break
			}
		}
	case "right", "l", "tab":
		for i := r.Selected + 1; i < len(r.Buttons); i++ {
			if !r.Buttons[i].Disabled {
				r.Selected = i
				break
			}
		}
	case "enter":
		if r.Selected < len(r.Buttons) {
			b := r.Buttons[r.Selected]
			if !b.Disabled && b.OnPress != nil {
				return r, b.OnPress()
			}
		}
	}
	return r, nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons))
	for i, b := range r.Buttons {
		switch {
		case b.Disabled:
			parts = append(parts, theme.ButtonInactive.Foreground(theme.Locked).Render(b.Label))
		case i == r.Selected:
			parts = append(parts, theme.ButtonActive.Render("▸ "+b.Label))
		default:
			parts = append(parts, theme.ButtonInactive.Render(b.Label))
		}
	}
	return strings.Join(parts, "  ")
}
