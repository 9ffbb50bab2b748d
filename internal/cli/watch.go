package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/output"
)

// WatchCmd streams recomputed dashboard views
type WatchCmd struct {
	OnChange bool `help:"Only emit when the derived view changes"`
	Once     bool `help:"Emit a single view and exit"`
}

// Run executes the watch command
func (c *WatchCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, c.OnChange, c.Once); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	feed, err := openFeed(globals)
	if err != nil {
		return outputErrorCommon(globals, "STORE_OPEN_FAILED", err.Error(), "check --store and --store-path")
	}

	watcher := dashboard.NewWatcher(feed, nil, zapLogger(globals))
	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Run(ctx)
	}()

	// Output watch info
	if !globals.Quiet && globals.Format != "ndjson" {
		fmt.Fprintf(globals.Stderr, "Watching %s store: %s\n", globals.Store.Driver, globals.Store.Path)
		fmt.Fprintln(globals.Stderr, "Press Ctrl+C to stop")
	}

	ndjson := output.NewNDJSONWriter(globals.Stdout)
	text := output.NewTextWriter(globals.Stdout)

	var lastFingerprint string
	for view := range watcher.Views() {
		if c.OnChange {
			fp := viewFingerprint(view)
			if fp == lastFingerprint {
				continue
			}
			lastFingerprint = fp
		}

		if globals.Format == "ndjson" {
			err = ndjson.WriteView(view)
		} else {
			err = text.Status(view, view.ComputedAt)
		}
		if err != nil {
			cancel()
			<-errCh
			return err
		}

		if c.Once {
			cancel()
			break
		}
	}
	return <-errCh
}

// viewFingerprint ignores the fields that change on every tick so --on-change
// only fires on material changes.
func viewFingerprint(view dashboard.View) string {
	view.Countdown = 0
	view.ComputedAt = time.Time{}
	b, _ := json.Marshal(view)
	return string(b)
}
