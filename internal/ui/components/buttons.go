package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// Button is one entry of a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal row of buttons with a single focused entry.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update moves focus with left/right/tab and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if r.Focused > 0 {
			r.Focused--
		}
	case "right", "l", "tab":
		if r.Focused < len(r.Buttons)-1 {
			r.Focused++
		}
	case "enter":
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	rendered := make([]string, 0, len(r.Buttons)*2)
	for i, b := range r.Buttons {
		if i > 0 {
			rendered = append(rendered, "  ")
		}
		if i == r.Focused {
			rendered = append(rendered, theme.ButtonFocused.Render("▸ "+b.Label))
		} else {
			rendered = append(rendered, theme.ButtonBlurred.Render(b.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}
