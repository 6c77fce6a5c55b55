package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
)

func newFilesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "files",
		Short: "Manage question files",
	}
	c.AddCommand(
		newFilesListCmd(),
		newFilesShowCmd(),
		newFilesAddCmd(),
		newFilesDeleteCmd(),
		newFilesCheckCmd(),
		newFilesTidyCmd(),
		newFilesExampleCmd(),
	)
	return c
}

func newFilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored and built-in question files",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			list, err := d.files.List(cmd.Context())
			if err != nil {
				return err
			}
			cfg, err := d.configs.Get(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-32s  %-6s  %-8s  %s\n", "Name", "Stored", "Built-in", "Active")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, f := range list {
				active := ""
				if f.Name == cfg.File() {
					active = "*"
				}
				fmt.Fprintf(out, "%-32s  %-6s  %-8s  %s\n", f.Name, yesNo(f.Cached), yesNo(f.Builtin), active)
			}
			return nil
		},
	}
}

func newFilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the raw text of a question file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			text, err := d.files.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newFilesAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <name> <path|->",
		Short: "Store a question file, replacing any stored copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := files.ValidateName(name); err != nil {
				return err
			}
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}

			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx := cmd.Context()
			if err := d.files.Put(ctx, name, string(data)); err != nil {
				return err
			}
			rep, err := d.files.Check(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d questions)\n", name, rep.Questions)
			if !rep.OK() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: no valid questions found in", name)
			}

			if use, _ := cmd.Flags().GetBool("use"); use {
				cfg, err := d.configs.Update(ctx, config.Patch{QuestionFile: &name})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now using %s\n", cfg.File())
			}
			return nil
		},
	}
	c.Flags().Bool("use", false, "Also make it the active question file")
	return c
}

func newFilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored question file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.files.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newFilesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>",
		Short: "Report how a question file parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			rep, err := d.files.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:            %s\n", rep.Name)
			fmt.Fprintf(out, "Questions:       %d\n", rep.Questions)
			fmt.Fprintf(out, "Skipped lines:   %d\n", rep.Skipped)
			fmt.Fprintf(out, "Malformed:       %d\n", len(rep.Malformed))
			fmt.Fprintf(out, "Invalid answers: %d\n", len(rep.InvalidAnswers))
			for _, issue := range rep.Malformed {
				fmt.Fprintf(out, "  line %d: %s: %s\n", issue.Line, issue.Reason, issue.Text)
			}
			for _, issue := range rep.InvalidAnswers {
				fmt.Fprintf(out, "  line %d: %s: %s\n", issue.Line, issue.Reason, issue.Text)
			}
			if !rep.OK() {
				return fmt.Errorf("%s: no questions found", rep.Name)
			}
			return nil
		},
	}
}

func newFilesTidyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tidy <name>",
		Short: "Rewrite a stored question file in canonical form, dropping rejected lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			rep, err := d.files.Tidy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tidied %s: kept %d questions, dropped %d malformed lines\n",
				rep.Name, rep.Questions, len(rep.Malformed))
			return nil
		},
	}
}

func newFilesExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example question file",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), files.ExampleContent)
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
