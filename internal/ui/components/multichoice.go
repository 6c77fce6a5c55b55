package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// ChoiceMsg is emitted when the user picks an option.
type ChoiceMsg struct {
	ID question.OptionID
}

// MultiChoice renders a question with its four options and lets the user
// pick one by letter, digit, or cursor.
type MultiChoice struct {
	Record   question.Record
	Cursor   int
	Revealed bool
	Chosen   question.OptionID
}

// NewMultiChoice creates a selector for rec with the cursor on option A.
func NewMultiChoice(rec question.Record) MultiChoice {
	return MultiChoice{Record: rec}
}

// Update handles navigation and selection. It is inert once revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(question.OptionIDs)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space":
		return m, choose(question.OptionIDs[m.Cursor])
	}

	if id, ok := keyOption(key); ok {
		m.Cursor = optionIndex(id)
		return m, choose(id)
	}
	return m, nil
}

// Reveal locks the selector and marks chosen against the correct answer.
func (m *MultiChoice) Reveal(chosen question.OptionID) {
	m.Revealed = true
	m.Chosen = chosen
}

// View renders the prompt and the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Record.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Record.Options {
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.ID, opt.Text)

		style := theme.Unselected
		switch {
		case m.Revealed && opt.ID == m.Record.CorrectOptionID:
			style = theme.Correct
		case m.Revealed && opt.ID == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = theme.Muted
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect reports whether the revealed choice was the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.Record.IsCorrect(m.Chosen)
}

func choose(id question.OptionID) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{ID: id} }
}

func keyOption(key string) (question.OptionID, bool) {
	switch strings.ToLower(key) {
	case "a", "1":
		return question.OptionA, true
	case "b", "2":
		return question.OptionB, true
	case "c", "3":
		return question.OptionC, true
	case "d", "4":
		return question.OptionD, true
	}
	return "", false
}

func optionIndex(id question.OptionID) int {
	for i, o := range question.OptionIDs {
		if o == id {
			return i
		}
	}
	return 0
}
