package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

type field int

const (
	fieldFile field = iota
	fieldLimit
	fieldShuffle
	numFields
)

type configLoadedMsg struct {
	Config config.QuizConfig
	Err    error
}

type savedMsg struct {
	Config config.QuizConfig
	Notice string
	Err    error
}

// SettingsScreen edits the quiz configuration.
type SettingsScreen struct {
	configs *config.Store

	file    components.TextInput
	count   components.TextInput
	shuffle bool
	focus   field

	loaded bool
	notice string
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(configs *config.Store) *SettingsScreen {
	s := &SettingsScreen{configs: configs}
	s.fill(config.Default())
	return s
}

func (s *SettingsScreen) fill(cfg config.QuizConfig) {
	s.file = components.NewTextInput(config.Default().File(), cfg.QuestionFile, false, 128)
	s.count = components.NewTextInput("20", fmt.Sprint(cfg.QuestionCount), true, 6)
	s.shuffle = cfg.ShuffleQuestions
	s.setFocus(s.focus)
}

func (s *SettingsScreen) Init() tea.Cmd {
	configs := s.configs
	return func() tea.Msg {
		cfg, err := configs.Get(context.Background())
		return configLoadedMsg{Config: cfg, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "Enter", Description: "Save"},
	}
	if s.focus == fieldShuffle {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Defaults"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case configLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.fill(msg.Config)
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.notice = ""
			return s, nil
		}
		s.errMsg = ""
		s.notice = msg.Notice
		s.fill(msg.Config)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "down", "tab":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "enter":
		return s, s.save()
	case "ctrl+r":
		return s, s.reset()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldFile:
		s.file, cmd = s.file.Update(msg)
	case fieldLimit:
		s.count, cmd = s.count.Update(msg)
	case fieldShuffle:
		switch msg.String() {
		case "space", "left", "right", "y", "n":
			s.shuffle = !s.shuffle
		}
	}
	return s, cmd
}

func (s *SettingsScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.file.Blur()
	s.count.Blur()
	switch f {
	case fieldFile:
		return s.file.Focus()
	case fieldLimit:
		return s.count.Focus()
	}
	return nil
}

// save applies all fields as one patch. An invalid field refuses the whole
// update and leaves the stored configuration untouched.
func (s *SettingsScreen) save() tea.Cmd {
	n, err := s.count.NumericValue()
	if err != nil {
		s.count.SetError("enter a whole number")
		return nil
	}
	file := strings.TrimSpace(s.file.Value())
	shuffle := s.shuffle
	patch := config.Patch{QuestionFile: &file, QuestionCount: &n, ShuffleQuestions: &shuffle}

	configs := s.configs
	return func() tea.Msg {
		cfg, err := configs.Update(context.Background(), patch)
		return savedMsg{Config: cfg, Notice: "Settings saved", Err: err}
	}
}

func (s *SettingsScreen) reset() tea.Cmd {
	configs := s.configs
	return func() tea.Msg {
		cfg, err := configs.Reset(context.Background())
		return savedMsg{Config: cfg, Notice: "Defaults restored", Err: err}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading settings...")
	}

	row := func(f field, label, value string) string {
		style := theme.Unselected
		prefix := "  "
		if s.focus == f {
			style = theme.Selected
			prefix = "▸ "
		}
		return style.Render(fmt.Sprintf("%s%-16s", prefix, label)) + value
	}

	shuffle := "off"
	if s.shuffle {
		shuffle = "on"
	}

	var b strings.Builder
	b.WriteString(row(fieldFile, "Question file", s.file.View()))
	b.WriteString("\n\n")
	b.WriteString(row(fieldLimit, "Questions", s.count.View()))
	b.WriteString("\n\n")
	b.WriteString(row(fieldShuffle, "Shuffle", theme.Body.Render("[ "+shuffle+" ]")))

	var status string
	switch {
	case s.errMsg != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg)
	case s.notice != "":
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice)
	}

	card := theme.Card.Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+card+"\n\n"+status)
}
