package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigCmd groups configuration subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"1" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file location"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample configuration file"`
}

// ConfigShowCmd shows the resolved configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"store": map[string]interface{}{
				"driver":        cfg.Store.Driver,
				"path":          cfg.Store.Path,
				"poll_interval": cfg.Store.PollInterval.String(),
			},
			"serve": map[string]interface{}{
				"host": cfg.Serve.Host,
				"port": cfg.Serve.Port,
			},
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "Store:")
	fmt.Fprintf(globals.Stdout, "  driver: %s\n", cfg.Store.Driver)
	fmt.Fprintf(globals.Stdout, "  path: %s\n", cfg.Store.Path)
	fmt.Fprintf(globals.Stdout, "  poll_interval: %s\n", cfg.Store.PollInterval)
	fmt.Fprintln(globals.Stdout, "Serve:")
	fmt.Fprintf(globals.Stdout, "  host: %s\n", cfg.Serve.Host)
	fmt.Fprintf(globals.Stdout, "  port: %d\n", cfg.Serve.Port)
	return nil
}

// ConfigPathCmd shows where configuration is loaded from
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := findConfigFile()

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "Searched: /etc/wtw/, $XDG_CONFIG_HOME/wtw/, ~/.wtw.yaml, ./wtw.yaml")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	return nil
}

// findConfigFile checks the load paths in precedence order.
func findConfigFile() string {
	candidates := []string{"/etc/wtw/wtw.yaml"}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "wtw", "wtw.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".wtw.yaml"))
	}
	candidates = append(candidates, "wtw.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigGenerateCmd prints a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# wtw configuration file
# Place in ~/.wtw.yaml or $XDG_CONFIG_HOME/wtw/wtw.yaml

# Output format: text or ndjson
format: text

# Suppress informational output (ndjson only)
quiet: false

store:
  # Snapshot store driver: file (NDJSON) or sqlite
  driver: file
  path: ~/.wtw/system_logs.ndjson
  # sqlite driver only
  poll_interval: 5s

serve:
  host: 127.0.0.1
  port: 8777
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
