package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/quiz"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "List recently finished quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			sessions, err := d.store.EventRepo().RecentFinished(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No finished quizzes yet.")
				return nil
			}

			fmt.Fprintf(out, "%-19s  %-28s  %7s  %5s  %s\n", "Finished", "File", "Score", "Pct", "Session")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, s := range sessions {
				pct := quiz.Percentage(s.Score, s.Total)
				fmt.Fprintf(out, "%-19s  %-28s  %3d/%-3d  %4d%%  %s\n",
					s.Timestamp.Local().Format("2006-01-02 15:04:05"),
					s.QuestionFile, s.Score, s.Total, pct, s.SessionID)
			}
			return nil
		},
	}
	c.Flags().Int("limit", 20, "Maximum number of sessions to list")
	return c
}
