package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/server"
)

// ServeCmd serves dashboard views over HTTP
type ServeCmd struct {
	Host string `help:"Address to bind" default:"${config_serve_host}"`
	Port int    `short:"p" help:"Port to bind" default:"${config_serve_port}"`
}

// Run executes the serve command
func (c *ServeCmd) Run(globals *Globals) error {
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
	go watcher.Run(ctx)

	if !globals.Quiet {
		if globals.Format == "ndjson" {
			fmt.Fprintf(globals.Stdout, `{"type":"info","message":"serving dashboard","addr":"%s:%d"}`+"\n", c.Host, c.Port)
		} else {
			fmt.Fprintf(globals.Stderr, "Serving dashboard on http://%s:%d\n", c.Host, c.Port)
			fmt.Fprintln(globals.Stderr, "Press Ctrl+C to stop")
		}
	}

	srv := server.New(c.Host, c.Port)
	if err := srv.Run(ctx, watcher.Views()); err != nil {
		return outputErrorCommon(globals, "SERVE_FAILED", err.Error())
	}
	return nil
}
