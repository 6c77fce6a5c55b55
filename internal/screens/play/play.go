package play

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// runStartedMsg is sent when Runner.Restart settles.
type runStartedMsg struct {
	Run *quiz.Run
	Err error
}

// QuestionScreen asks the questions of one run.
type QuestionScreen struct {
	runner  *quiz.Runner
	run     *quiz.Run
	mc      components.MultiChoice
	correct bool
	loading bool
	errMsg  string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)
var _ screen.StatusProvider = (*QuestionScreen)(nil)

// New creates a QuestionScreen that starts a fresh run when shown.
func New(runner *quiz.Runner) *QuestionScreen {
	return &QuestionScreen{runner: runner}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.start()
}

// start loads a fresh question set with the current configuration.
func (s *QuestionScreen) start() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	s.run = nil
	runner := s.runner
	return func() tea.Msg {
		run, err := runner.Restart(context.Background())
		return runStartedMsg{Run: run, Err: err}
	}
}

func (s *QuestionScreen) Title() string {
	return "Quiz"
}

func (s *QuestionScreen) Status() string {
	if s.run == nil {
		return ""
	}
	return s.run.Set.File
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.run == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.mc.Revealed:
		next := "Next question"
		if s.run.Session.IsLast() {
			next = "See results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runStartedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.run = msg.Run
		s.showCurrent()
		return s, nil

	case components.ChoiceMsg:
		return s.handleChoice(msg.ID)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		switch msg.String() {
		case "r", "enter":
			return s, s.start()
		}
		return s, nil
	}
	if s.run == nil {
		return s, nil
	}

	if s.mc.Revealed {
		switch msg.String() {
		case "enter", "space", "right", "n":
			return s.advance()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	return s, cmd
}

func (s *QuestionScreen) handleChoice(id question.OptionID) (screen.Screen, tea.Cmd) {
	if s.run == nil || s.mc.Revealed {
		return s, nil
	}
	correct, err := s.run.SelectAnswer(context.Background(), id)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.correct = correct
	s.mc.Reveal(id)
	return s, nil
}

func (s *QuestionScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.run.Advance(context.Background()); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if s.run.Session.Phase() == quiz.PhaseFinished {
		results := NewResults(s.runner, s.run)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: results}
		}
	}
	s.showCurrent()
	return s, nil
}

func (s *QuestionScreen) showCurrent() {
	rec, _ := s.run.Session.Current()
	s.mc = components.NewMultiChoice(rec)
	s.correct = false
}

func (s *QuestionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not start the quiz: %s\n\n", s.errMsg)) +
			theme.Hint.Width(width).Align(lipgloss.Center).
				Render("Press R to try again or Esc to go back")
	}
	if s.loading || s.run == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading questions...")
	}

	sess := s.run.Session
	cardWidth := min(width-4, 90)

	var b strings.Builder

	info := fmt.Sprintf("Question %d/%d", sess.Index()+1, sess.Len())
	score := fmt.Sprintf("Score: %d", sess.Score())
	pad := max(1, cardWidth-lipgloss.Width(info)-lipgloss.Width(score))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(score))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", sess.Progress(), "", cardWidth).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Card.Width(cardWidth).Render(strings.TrimRight(s.mc.View(cardWidth-6), "\n")))
	b.WriteString("\n\n")

	if s.mc.Revealed {
		b.WriteString(s.renderFeedback())
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *QuestionScreen) renderFeedback() string {
	if s.correct {
		return theme.Correct.Render("Correct!")
	}
	rec := s.mc.Record
	if opt, ok := rec.Option(rec.CorrectOptionID); ok {
		return theme.Incorrect.Render(fmt.Sprintf("Wrong. The answer is %s) %s", opt.ID, opt.Text))
	}
	return theme.Incorrect.Render("Wrong. This question has no valid answer.")
}
