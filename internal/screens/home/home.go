package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/screens/filelist"
	"github.com/abhisek/quizz/internal/screens/history"
	"github.com/abhisek/quizz/internal/screens/play"
	"github.com/abhisek/quizz/internal/screens/settings"
	"github.com/abhisek/quizz/internal/store"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// Deps are the services reachable from the start screen.
type Deps struct {
	Runner  *quiz.Runner
	Configs *config.Store
	Files   *files.Service
	Events  store.EventRepo
}

type configLoadedMsg struct {
	Config config.QuizConfig
	Err    error
}

// HomeScreen is the start screen: a summary of the active configuration
// and the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	cfg    config.QuizConfig
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, cfg: config.Default()}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "Start quiz", Action: push(func() screen.Screen {
			return play.New(deps.Runner)
		}), Disabled: deps.Runner == nil},
		{Label: "Question files", Action: push(func() screen.Screen {
			return filelist.New(deps.Files, deps.Configs)
		}), Disabled: deps.Files == nil},
		{Label: "Settings", Action: push(func() screen.Screen {
			return settings.New(deps.Configs)
		}), Disabled: deps.Configs == nil},
		{Label: "History", Action: push(func() screen.Screen {
			return history.New(deps.Events)
		}), Disabled: deps.Events == nil},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadConfig()
}

// Resume reloads the configuration summary after settings or files change it.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadConfig()
}

func (h *HomeScreen) loadConfig() tea.Cmd {
	if h.deps.Configs == nil {
		return nil
	}
	configs := h.deps.Configs
	return func() tea.Msg {
		cfg, err := configs.Get(context.Background())
		return configLoadedMsg{Config: cfg, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() string {
	if !h.loaded {
		return ""
	}
	return h.cfg.File()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(configLoadedMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.cfg = msg.Config
		h.loaded = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Width(width).Render("Quizz"),
		theme.Subtitle.Width(width).Render("Multiple-choice quizzes in your terminal"),
	)

	summary := theme.Muted.Render("Loading settings...")
	if h.errMsg != "" {
		summary = lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + h.errMsg)
	} else if h.loaded {
		summary = describeConfig(h.cfg)
	}
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, summary))

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func describeConfig(cfg config.QuizConfig) string {
	order := "in file order"
	if cfg.ShuffleQuestions {
		order = "shuffled"
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("%s  ·  up to %d questions  ·  %s", cfg.File(), cfg.QuestionCount, order))
}
