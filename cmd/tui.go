package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/zhuifan/internal/shared"
	"github.com/desertthunder/zhuifan/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/zhuifan-tui.log"

// TUI launches the interactive terminal UI against the configured store.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.tracker == nil {
		return fmt.Errorf("%w: tracker not initialized", shared.ErrServiceUnavailable)
	}

	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLevel(r.config.Log.Level))
	r.SetLogger(shared.WithLogger(fileLogger, "store", r.config.Client.BaseURL))

	model := ui.NewModel(ctx, r.tracker, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
