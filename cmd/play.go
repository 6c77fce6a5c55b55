package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/quiz"
)

func newPlayCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "play",
		Short: "Take a quiz in plain terminal mode",
		Long: "Play asks the questions one by one on standard output and reads\n" +
			"answers (A-D) from standard input. Flags override the stored\n" +
			"configuration for this run only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := d.configs.Get(ctx)
			if err != nil {
				return err
			}
			cfg, err = cfg.Apply(patchFromFlags(cmd))
			if err != nil {
				return err
			}

			runner := quiz.NewRunner(d.loader, quiz.StaticConfig(cfg), d.store.EventRepo())
			run, err := runner.Restart(ctx)
			if err != nil {
				return err
			}
			return playQuiz(ctx, run, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	addConfigFlags(c)
	return c
}

// addConfigFlags registers the flags understood by patchFromFlags.
func addConfigFlags(c *cobra.Command) {
	c.Flags().String("file", "", "Question file name")
	c.Flags().Int("count", 0, "Maximum number of questions")
	c.Flags().Bool("shuffle", true, "Shuffle questions before limiting")
}

// patchFromFlags turns the explicitly set config flags into a Patch.
func patchFromFlags(cmd *cobra.Command) config.Patch {
	var p config.Patch
	if cmd.Flags().Changed("file") {
		v, _ := cmd.Flags().GetString("file")
		p.QuestionFile = &v
	}
	if cmd.Flags().Changed("count") {
		v, _ := cmd.Flags().GetInt("count")
		p.QuestionCount = &v
	}
	if cmd.Flags().Changed("shuffle") {
		v, _ := cmd.Flags().GetBool("shuffle")
		p.ShuffleQuestions = &v
	}
	return p
}

// playQuiz drives run to completion with answers read line by line from in.
func playQuiz(ctx context.Context, run *quiz.Run, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	sess := run.Session

	fmt.Fprintf(out, "%s: %d questions\n", run.Set.File, sess.Len())

	for sess.Phase() == quiz.PhaseInProgress {
		rec, _ := sess.Current()
		fmt.Fprintf(out, "\nQuestion %d/%d  (score %d)\n%s\n", sess.Index()+1, sess.Len(), sess.Score(), rec.Prompt)
		for _, opt := range rec.Options {
			fmt.Fprintf(out, "  %s) %s\n", opt.ID, opt.Text)
		}

		id, err := readAnswer(scanner, out)
		if err != nil {
			return err
		}
		correct, err := run.SelectAnswer(ctx, id)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else if opt, ok := rec.Option(rec.CorrectOptionID); ok {
			fmt.Fprintf(out, "Wrong. The answer is %s) %s\n", opt.ID, opt.Text)
		} else {
			fmt.Fprintln(out, "Wrong. This question has no valid answer.")
		}

		if err := run.Advance(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nYou answered %d of %d questions correctly: %d%% (%s)\n",
		sess.Score(), sess.Len(), sess.Percentage(), sess.Band())
	return nil
}

// errQuizAborted is returned when input ends before the last answer.
var errQuizAborted = errors.New("quiz aborted: input closed")

func readAnswer(scanner *bufio.Scanner, out io.Writer) (question.OptionID, error) {
	for {
		fmt.Fprint(out, "Your answer [A-D]: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("read answer: %w", err)
			}
			return "", errQuizAborted
		}
		id := question.OptionID(strings.ToUpper(strings.TrimSpace(scanner.Text())))
		if id.Valid() {
			return id, nil
		}
		fmt.Fprintln(out, "Please answer with A, B, C or D.")
	}
}
