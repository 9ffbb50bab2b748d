package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/tui"
)

// UICmd launches an interactive terminal dashboard
type UICmd struct{}

// Run executes the UI command
func (c *UICmd) Run(globals *Globals) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	globals.Debug("Opening snapshot feed for TUI")
	feed, err := openFeed(globals)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}

	watcher := dashboard.NewWatcher(feed, nil, zapLogger(globals))
	go watcher.Run(ctx)

	model := tui.New(watcher.Views())
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
