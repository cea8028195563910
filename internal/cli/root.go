package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"ejector-tool/internal/config"
)

// Version is set at build time with -ldflags "-X ejector-tool/internal/cli.Version=...".
var Version = "dev"

// NewRootCmd builds the command tree. Running the root command with no
// sub-command starts the GUI through runGUI.
func NewRootCmd(cfg config.Config, runGUI func() error) *cobra.Command {
	root := &cobra.Command{
		Use:   "ejector-tool",
		Short: "Multi-stream ejector sizing tool",
		Long: `Sizes an ejector nozzle throat and mixing chamber from a set of motive and
suction streams (gas, oil or water).

Run without arguments to open the desktop form, or use a sub-command:
  ejector-tool size --motive gas:10:1000 --suction water:5000
  ejector-tool case init -o well.yaml
  ejector-tool serve --addr :8080`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
	}

	root.AddCommand(newSizeCmd(cfg))
	root.AddCommand(newCaseCmd())
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ejector-tool %s\n", Version)
		},
	}
}

// newLogger returns a text slog logger; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
