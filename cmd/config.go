package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/config"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show or change the quiz configuration",
	}
	c.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
		newConfigImportCmd(),
		newConfigExportCmd(),
	)
	return c
}

func newConfigShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := d.configs.Get(cmd.Context())
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return writeConfig(cmd.OutOrStdout(), cfg, asJSON)
		},
	}
	c.Flags().Bool("json", false, "Print as JSON instead of YAML")
	return c
}

func newConfigSetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set",
		Short: "Change configuration values",
		Example: "  quizz config set --file Pytania2.csv --count 5\n" +
			"  quizz config set --shuffle=false",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := patchFromFlags(cmd)
			if patch == (config.Patch{}) {
				return errors.New("nothing to set: pass --file, --count or --shuffle")
			}

			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := d.configs.Update(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg, false)
		},
	}
	addConfigFlags(c)
	return c
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := d.configs.Reset(cmd.Context())
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg, false)
		},
	}
}

func newConfigImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Replace the configuration with a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			cfg, err := config.ParseYAML(data)
			if err != nil {
				return err
			}

			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.configs.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg, false)
		},
	}
}

func newConfigExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write the configuration as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := d.configs.Get(cmd.Context())
			if err != nil {
				return err
			}
			data, err := config.MarshalYAML(cfg)
			if err != nil {
				return err
			}
			if len(args) == 0 || args[0] == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
			return nil
		},
	}
}

func writeConfig(w io.Writer, cfg config.QuizConfig, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	data, err := config.MarshalYAML(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readInput reads a named file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
