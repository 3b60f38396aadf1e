package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmterm/internal/lineedit"
	"github.com/nikbrunner/bmterm/internal/shell"
	"github.com/nikbrunner/bmterm/internal/tui"
	"github.com/spf13/cobra"
)

// runUI runs the interactive prompt until the user quits.
func runUI(cmd *cobra.Command, opts *rootOptions) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	interp := shell.New(shell.Params{
		Store:           s.store,
		DefaultFolderID: s.cfg.DefaultFolder,
		Logger:          s.logger,
	})
	if err := interp.Start(ctx); err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	queue := shell.NewQueue(interp, s.cfg.QueueSize)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = queue.Run(ctx)
	}()

	app := tui.NewApp(tui.AppParams{
		Queue:  queue,
		Editor: lineedit.New(shell.CommandNames()),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	// Stop the queue before the database closes.
	cancel()
	<-done

	if err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	s.logger.Info("session closed", "snapshot_generation", interp.Generation())
	return nil
}
