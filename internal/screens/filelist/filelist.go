package filelist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

type filesLoadedMsg struct {
	Files  []files.FileInfo
	Active string
	Err    error
}

type checkedMsg struct {
	Report *files.CheckReport
	Err    error
}

type actionDoneMsg struct {
	Notice string
	Err    error
}

// FileListScreen lists question files and lets the user check, select or
// delete them.
type FileListScreen struct {
	svc     *files.Service
	configs *config.Store

	files    []files.FileInfo
	active   string
	selected int
	loaded   bool

	report     *files.CheckReport
	confirming bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*FileListScreen)(nil)
var _ screen.KeyHintProvider = (*FileListScreen)(nil)
var _ screen.Escaper = (*FileListScreen)(nil)

// New creates a FileListScreen.
func New(svc *files.Service, configs *config.Store) *FileListScreen {
	return &FileListScreen{svc: svc, configs: configs}
}

func (s *FileListScreen) Init() tea.Cmd {
	return s.load()
}

func (s *FileListScreen) load() tea.Cmd {
	svc, configs := s.svc, s.configs
	return func() tea.Msg {
		ctx := context.Background()
		list, err := svc.List(ctx)
		if err != nil {
			return filesLoadedMsg{Err: err}
		}
		active := config.Default().File()
		if configs != nil {
			if cfg, err := configs.Get(ctx); err == nil {
				active = cfg.File()
			}
		}
		return filesLoadedMsg{Files: list, Active: active}
	}
}

func (s *FileListScreen) Title() string {
	return "Question Files"
}

// HandlesEsc is true while a delete confirmation is open.
func (s *FileListScreen) HandlesEsc() bool {
	return s.confirming
}

func (s *FileListScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Check"},
		{Key: "U", Description: "Use"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FileListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case filesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.files = msg.Files
		s.active = msg.Active
		s.selected = min(s.selected, max(len(s.files)-1, 0))
		return s, nil

	case checkedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Report
		return s, nil

	case actionDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.notice = msg.Notice
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *FileListScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirming {
		s.confirming = false
		if msg.String() == "y" {
			return s, s.deleteSelected()
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
			s.report = nil
		}
	case "down", "j":
		if s.selected < len(s.files)-1 {
			s.selected++
			s.report = nil
		}
	case "enter":
		return s, s.checkSelected()
	case "u":
		return s, s.useSelected()
	case "d":
		if f, ok := s.current(); ok && f.Cached {
			s.errMsg, s.notice = "", ""
			s.confirming = true
		}
	}
	return s, nil
}

func (s *FileListScreen) current() (files.FileInfo, bool) {
	if s.selected < 0 || s.selected >= len(s.files) {
		return files.FileInfo{}, false
	}
	return s.files[s.selected], true
}

func (s *FileListScreen) checkSelected() tea.Cmd {
	f, ok := s.current()
	if !ok {
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		rep, err := svc.Check(context.Background(), f.Name)
		return checkedMsg{Report: rep, Err: err}
	}
}

func (s *FileListScreen) useSelected() tea.Cmd {
	f, ok := s.current()
	if !ok || s.configs == nil {
		return nil
	}
	configs := s.configs
	return func() tea.Msg {
		_, err := configs.Update(context.Background(), config.Patch{QuestionFile: &f.Name})
		return actionDoneMsg{Notice: fmt.Sprintf("Now using %s", f.Name), Err: err}
	}
}

func (s *FileListScreen) deleteSelected() tea.Cmd {
	f, ok := s.current()
	if !ok {
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		err := svc.Delete(context.Background(), f.Name)
		if errors.Is(err, files.ErrNotFound) {
			err = nil
		}
		return actionDoneMsg{Notice: fmt.Sprintf("Deleted cached copy of %s", f.Name), Err: err}
	}
}

func (s *FileListScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading files...")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.files) == 0 {
		b.WriteString(theme.Hint.Render("  No question files yet. Add one with `quizz files add`."))
		b.WriteString("\n")
	}
	for i, f := range s.files {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := prefix + f.Name
		if f.Name == s.active {
			line += " (active)"
		}
		b.WriteString(style.Render(line))
		b.WriteString("  " + theme.Muted.Render(sourceLabel(f)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.confirming:
		f, _ := s.current()
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
			Render(fmt.Sprintf("Delete cached copy of %s? (y/n)", f.Name)))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}
	b.WriteString("\n")

	if s.report != nil {
		b.WriteString("\n")
		b.WriteString(theme.Card.Render(renderReport(s.report)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func sourceLabel(f files.FileInfo) string {
	switch {
	case f.Cached && f.Builtin:
		return "stored, built-in"
	case f.Cached:
		return "stored"
	default:
		return "built-in"
	}
}

func renderReport(r *files.CheckReport) string {
	var b strings.Builder
	status := theme.Correct.Render("loads")
	if !r.OK() {
		status = theme.Incorrect.Render("no questions found")
	}
	fmt.Fprintf(&b, "%s: %s\n", r.Name, status)
	fmt.Fprintf(&b, "%d questions, %d skipped lines, %d malformed, %d invalid answers",
		r.Questions, r.Skipped, len(r.Malformed), len(r.InvalidAnswers))
	for _, issue := range r.Malformed {
		fmt.Fprintf(&b, "\n  line %d: %s", issue.Line, issue.Reason)
	}
	for _, issue := range r.InvalidAnswers {
		fmt.Fprintf(&b, "\n  line %d: %s", issue.Line, issue.Reason)
	}
	return b.String()
}
