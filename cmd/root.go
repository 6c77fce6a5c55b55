package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/store"
)

// Execute runs the quizz command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizz",
		Short: "Multiple-choice quizzes in the terminal",
		Long: "Quizz runs multiple-choice quizzes loaded from simple comma-separated\n" +
			"question files. Run without arguments to open the interactive app.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZZ_DB env var)")

	root.AddCommand(
		newPlayCmd(),
		newConfigCmd(),
		newFilesCmd(),
		newServeCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)
	return root
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
