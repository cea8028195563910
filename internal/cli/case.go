package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ejector-tool/internal/casefile"
)

func newCaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Generate or validate case files",
		Long: `Manage YAML case files holding motive and suction streams.

Subcommands:
  init     - Write an example case file
  validate - Check a case file and list its streams`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example case file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := casefile.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save case: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created case file: %s\n", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Edit the streams and run:\n  ejector-tool size --case %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "case.yaml", "output case file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a case file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := casefile.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Case valid: %s\n", path)
			if c.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Name:    %s\n", c.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Motive:  %d stream(s)\n", len(c.Motive))
			fmt.Fprintf(cmd.OutOrStdout(), "  Suction: %d stream(s)\n", len(c.Suction))
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to case file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
