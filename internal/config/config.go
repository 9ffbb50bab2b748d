package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	Store StoreConfig `mapstructure:"store"`
	Serve ServeConfig `mapstructure:"serve"`
}

// StoreConfig selects the snapshot feed the collector writes into.
type StoreConfig struct {
	// Driver is "file" (NDJSON, one snapshot per line) or "sqlite".
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	// PollInterval applies to the sqlite driver only.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ServeConfig configures the read-only HTTP API.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format: "text",
		Store: StoreConfig{
			Driver:       "file",
			Path:         defaultStorePath(),
			PollInterval: 5 * time.Second,
		},
		Serve: ServeConfig{
			Host: "127.0.0.1",
			Port: 8777,
		},
	}
}

func defaultStorePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".wtw", "system_logs.ndjson")
	}
	return "system_logs.ndjson"
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("wtw")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/wtw/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "wtw"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".wtw")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("WTW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "WTW_FORMAT")
	v.BindEnv("quiet", "WTW_QUIET")
	v.BindEnv("verbose", "WTW_VERBOSE")
	v.BindEnv("store.driver", "WTW_STORE_DRIVER")
	v.BindEnv("store.path", "WTW_STORE_PATH")

	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.poll_interval", cfg.Store.PollInterval)
	v.SetDefault("serve.host", cfg.Serve.Host)
	v.SetDefault("serve.port", cfg.Serve.Port)

	// Missing config file is fine; any other read error is not
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
