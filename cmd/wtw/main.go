package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/wtw/internal/cli"
	"github.com/vburojevic/wtw/internal/config"
)

const quickStart = `wtw - device telemetry dashboard for collector snapshot stores

Quick start:
  wtw status                            Device status (online, battery, window)
  wtw sessions                          Recent computer sessions
  wtw usage --top 10                    Ranked app usage
  wtw watch --format ndjson             Stream recomputed views

For help:
  wtw --help                            All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":       cfg.Format,
		"config_store_driver": cfg.Store.Driver,
		"config_store_path":   cfg.Store.Path,
		"config_serve_host":   cfg.Serve.Host,
		"config_serve_port":   strconv.Itoa(cfg.Serve.Port),
	}

	ctx := kong.Parse(&c,
		kong.Name("wtw"),
		kong.Description("WinTrack Watcher: derive dashboard views from device telemetry snapshots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
