package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"ejector-tool/internal/cli"
	"ejector-tool/internal/config"
	"ejector-tool/ui"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// No sub-command = use GUI
	root := cli.NewRootCmd(cfg, func() error {
		a := app.NewWithID("com.ejector-tool.gui")
		win := ui.BuildMainWindow(a, cfg)
		win.ShowAndRun()
		return nil
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
