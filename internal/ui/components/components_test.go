package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/question"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testRecord() question.Record {
	return question.Record{
		Prompt: "Kto napisał Lalkę?",
		Options: [4]question.Option{
			{ID: question.OptionA, Text: "Orzeszkowa"},
			{ID: question.OptionB, Text: "Sienkiewicz"},
			{ID: question.OptionC, Text: "Prus"},
			{ID: question.OptionD, Text: "Konopnicka"},
		},
		CorrectOptionID: question.OptionC,
	}
}

func chosen(t *testing.T, cmd tea.Cmd) question.OptionID {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a choice command")
	}
	msg, ok := cmd().(ChoiceMsg)
	if !ok {
		t.Fatal("expected ChoiceMsg")
	}
	return msg.ID
}

func TestMultiChoice_LetterAndDigitKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want question.OptionID
	}{
		{'a', question.OptionA},
		{'B', question.OptionB},
		{'3', question.OptionC},
		{'4', question.OptionD},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewMultiChoice(testRecord())
			m, cmd := m.Update(keyPress(tt.key))
			if got := chosen(t, cmd); got != tt.want {
				t.Errorf("chose %q, want %q", got, tt.want)
			}
			if question.OptionIDs[m.Cursor] != tt.want {
				t.Errorf("cursor on %q, want %q", question.OptionIDs[m.Cursor], tt.want)
			}
		})
	}
}

func TestMultiChoice_CursorClamped(t *testing.T) {
	m := NewMultiChoice(testRecord())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	for range 6 {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := chosen(t, cmd); got != question.OptionD {
		t.Errorf("chose %q, want D", got)
	}
}

func TestMultiChoice_RevealLocks(t *testing.T) {
	m := NewMultiChoice(testRecord())
	m.Reveal(question.OptionC)

	if !m.IsCorrect() {
		t.Error("expected correct")
	}
	if _, cmd := m.Update(keyPress('a')); cmd != nil {
		t.Error("expected no command once revealed")
	}
	if !strings.Contains(m.View(60), "C)  Prus") {
		t.Error("expected options in view")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One", Action: func() tea.Cmd { pressed = "One"; return nil }},
		{Label: "Off too", Disabled: true},
		{Label: "Two", Action: func() tea.Cmd { pressed = "Two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("selected = %d, want 1", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != "One" {
		t.Errorf("pressed = %q, want One", pressed)
	}
}

func TestButtonRow_FocusAndPress(t *testing.T) {
	pressed := ""
	r := NewButtonRow(
		Button{Label: "Left", OnPress: func() tea.Cmd { pressed = "Left"; return nil }},
		Button{Label: "Right", OnPress: func() tea.Cmd { pressed = "Right"; return nil }},
	)

	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if r.Focused != 1 {
		t.Errorf("focused = %d, want 1", r.Focused)
	}
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != "Right" {
		t.Errorf("pressed = %q, want Right", pressed)
	}
	if !strings.Contains(r.View(), "▸ Right") {
		t.Error("expected focus marker on Right")
	}
}

func TestProgressBar_DefaultSuffix(t *testing.T) {
	view := NewProgressBar("Done", 0.5, "", 40).View()
	if !strings.Contains(view, "50%") {
		t.Errorf("expected percentage suffix, got %q", view)
	}
}
