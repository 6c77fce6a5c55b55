package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/store"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// maxSessions caps how many finished sessions are listed.
const maxSessions = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.SessionEvent
	Err       error
}

// HistoryScreen lists finished sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	answers   map[string][]store.SessionEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.SessionEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.RecentFinished(context.Background(), maxSessions)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadAnswers(s.sessions[s.selected].SessionID)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QuerySessionEvents(context.Background(), store.QueryOpts{
			SessionID: sessionID,
			Action:    store.ActionAnswer,
		})
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished quizzes yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		pct := quiz.Percentage(sess.Score, sess.Total)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-24s %2d/%-2d ",
			prefix, sess.Timestamp.Format("Jan 02, 2006 15:04"), sess.QuestionFile, sess.Score, sess.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		pctStyle := lipgloss.NewStyle().Foreground(theme.BandColor(quiz.BandFor(pct).String()))
		b.WriteString(style.Render(line) + pctStyle.Render(fmt.Sprintf("%3d%%", pct)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *HistoryScreen) renderAnswers(sessionID string) string {
	answers, ok := s.answers[sessionID]
	if !ok {
		return theme.Hint.Render("    Loading answers...") + "\n"
	}
	if len(answers) == 0 {
		return theme.Hint.Render("    No answers recorded") + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(fmt.Sprintf("    %s Question %d: answered %s\n", mark, a.QuestionIndex+1, a.Chosen))
	}
	return b.String()
}
