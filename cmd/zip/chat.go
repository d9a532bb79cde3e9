package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/zip/internal/tui"
)

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// stderr belongs to the TUI, so logs only go to the file
	a, err := setup(ctx, setupOptions{engine: true, journal: true, console: false})
	if err != nil {
		return err
	}
	defer a.Close()

	coord, err := a.coordinator()
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.Options{
		Coordinator:   coord,
		Journal:       a.journal,
		Model:         a.cfg.Engine.Model,
		DefaultWindow: a.cfg.DefaultWindow,
		Logger:        a.logger,
	})
}
