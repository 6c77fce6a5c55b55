package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/app"
	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
	"github.com/abhisek/quizz/internal/questionset"
	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/store"
)

// deps bundles the services built from the database and environment.
type deps struct {
	store    *store.Store
	settings config.Settings
	configs  *config.Store
	loader   *questionset.Loader
	files    *files.Service
	runner   *quiz.Runner
}

// openDeps opens the store and wires the services on top of it. logf
// receives non-fatal warnings; nil writes them to stderr.
func openDeps(cmd *cobra.Command, logf questionset.Logger) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if logf == nil {
		logf = questionset.StderrLogger
	}

	settings := config.SettingsFromEnv()
	opts := questionset.Options{
		Cache:  st.KV(),
		Logger: logf,
	}
	if settings.SourceURL != "" {
		opts.Remote = questionset.NewHTTPSource(settings.SourceURL, nil, settings.FetchTimeout)
	}

	d := &deps{
		store:    st,
		settings: settings,
		configs:  config.NewStore(st.KV(), logf),
		loader:   questionset.NewLoader(opts),
		files:    files.NewService(st.KV()),
	}
	d.runner = quiz.NewRunner(d.loader, d.configs, st.EventRepo())
	d.runner.SetLogger(logf)
	return d, nil
}

func (d *deps) Close() error {
	return d.store.Close()
}

// runApp opens the store, builds dependencies, and launches the TUI.
// Warnings are dropped while the alternate screen is active.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, questionset.Discard)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.Options{
		Runner:  d.runner,
		Configs: d.configs,
		Files:   d.files,
		Events:  d.store.EventRepo(),
	})
}
