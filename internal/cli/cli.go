// Package cli defines the wtw command tree.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/vburojevic/wtw/internal/config"
)

// Version information, set via ldflags at build time
var (
	Version = "dev"
	Commit  = "unknown"
)

// CLI is the top-level command structure
type CLI struct {
	// Global flags
	Format    string `help:"Output format (text or ndjson)" enum:"text,ndjson" default:"${config_format}"`
	Quiet     bool   `short:"q" help:"Suppress informational output (ndjson only)"`
	Verbose   bool   `short:"v" help:"Enable verbose debug logging"`
	Store     string `help:"Snapshot store driver (file or sqlite)" enum:"file,sqlite" default:"${config_store_driver}"`
	StorePath string `help:"Path to the collector's snapshot store" default:"${config_store_path}"`

	// Commands
	Status   StatusCmd   `cmd:"" help:"Show device status (online state, battery, active window)"`
	Sessions SessionsCmd `cmd:"" help:"Show recent computer sessions"`
	Usage    UsageCmd    `cmd:"" help:"Show per-app usage ranking"`
	GameMode GameModeCmd `cmd:"" name:"gamemode" help:"Show game mode state and playtime"`
	Watch    WatchCmd    `cmd:"" help:"Stream recomputed dashboard views"`
	Serve    ServeCmd    `cmd:"" help:"Serve dashboard views over HTTP"`
	UI       UICmd       `cmd:"" help:"Interactive terminal dashboard"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
	Update   UpdateCmd   `cmd:"" help:"Show how to upgrade wtw"`
}

// Globals carries resolved global state into command Run methods.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Store   config.StoreConfig
	Serve   config.ServeConfig
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	logger *debugLogger
}

// NewGlobalsWithConfig merges parsed flags with config file fallbacks.
// Flags win; the config supplies whatever the user did not say.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	store := cfg.Store
	if c.Store != "" {
		store.Driver = c.Store
	}
	if c.StorePath != "" {
		store.Path = c.StorePath
	}
	if store.PollInterval <= 0 {
		store.PollInterval = 5 * time.Second
	}

	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet,
		Verbose: c.Verbose,
		Store:   store,
		Serve:   cfg.Serve,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	g.logger = newDebugLogger(g)
	return g
}

// Debug logs a verbose diagnostic line; a no-op unless --verbose is set.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger == nil {
		return
	}
	g.logger.Debug(format, args...)
}
