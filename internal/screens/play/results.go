package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// ResultsScreen shows the score of a finished run.
type ResultsScreen struct {
	runner  *quiz.Runner
	run     *quiz.Run
	buttons components.ButtonRow
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// NewResults creates the results screen for a finished run.
func NewResults(runner *quiz.Runner, run *quiz.Run) *ResultsScreen {
	s := &ResultsScreen{runner: runner, run: run}
	s.buttons = components.NewButtonRow(
		components.Button{Label: "Play again", OnPress: s.playAgain},
		components.Button{Label: "Home", OnPress: func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}},
	)
	return s
}

// playAgain replaces the results with a new run, which reloads the
// question set with whatever configuration is current.
func (s *ResultsScreen) playAgain() tea.Cmd {
	runner := s.runner
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: New(runner)}
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Play again"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "r" {
		return s, s.playAgain()
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	sess := s.run.Session
	pct := sess.Percentage()
	band := sess.Band()

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("Quiz complete!")))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.BandColor(band.String())).
		Bold(true).
		Render(fmt.Sprintf("%d%%", pct))))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body.Render(
		fmt.Sprintf("You answered %d of %d questions correctly.", sess.Score(), sess.Len()))))
	b.WriteString("\n")
	b.WriteString(center(theme.Muted.Render(bandMessage(band) + "  ·  " + s.run.Set.File)))
	b.WriteString("\n\n")
	b.WriteString(center(components.NewProgressBar("", float64(pct)/100, "", min(width-8, 50)).View()))
	b.WriteString("\n\n")
	b.WriteString(center(s.buttons.View()))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func bandMessage(b quiz.Band) string {
	switch b {
	case quiz.BandHigh:
		return "Excellent work"
	case quiz.BandMedium:
		return "Good effort"
	default:
		return "Keep practising"
	}
}
