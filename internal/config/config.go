package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "BARCODEAPI"

// Output formats understood by the CLI.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`

	BaseURL        string        `mapstructure:"base_url"`
	Token          string        `mapstructure:"token"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`

	ShareStore           string        `mapstructure:"share_store"`
	ShareStorePath       string        `mapstructure:"share_store_path"`
	ShareTTLSeconds      int64         `mapstructure:"share_ttl_seconds"`
	ShareCleanupSeconds  int64         `mapstructure:"share_cleanup_interval_seconds"`
	ShareTTL             time.Duration `mapstructure:"-"`
	ShareCleanupInterval time.Duration `mapstructure:"-"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"token":       "token",
	"timeout":     "timeout_seconds",
	"log-level":   "log_level",
	"output":      "output",
	"share-store": "share_store",
	"share-db":    "share_store_path",
}

// Load reads configuration from an optional .env file, BARCODEAPI_* environment
// variables and any flags in fs that were set explicitly.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("app_name", "barcodeapi")
	v.SetDefault("log_level", "warn")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("base_url", "https://barcodeapi.org")
	v.SetDefault("token", "")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("share_store", "bbolt")
	v.SetDefault("share_store_path", defaultShareStorePath())
	v.SetDefault("share_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("share_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base_url (must not be empty)")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output != OutputJSON && cfg.Output != OutputYAML {
		return nil, fmt.Errorf("invalid output %q (expected json or yaml)", cfg.Output)
	}

	if cfg.ShareTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid share_ttl_seconds (must be positive seconds)")
	}
	if cfg.ShareCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid share_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.ShareTTL = time.Duration(cfg.ShareTTLSeconds) * time.Second
	cfg.ShareCleanupInterval = time.Duration(cfg.ShareCleanupSeconds) * time.Second

	return &cfg, nil
}

// Summary returns the loggable view of the configuration. The token is
// reported only as present or absent.
func (c *Config) Summary() map[string]any {
	return map[string]any{
		"app_name":         c.AppName,
		"log_level":        c.LogLevel,
		"output":           c.Output,
		"base_url":         c.BaseURL,
		"token_set":        c.Token != "",
		"timeout":          c.Timeout.String(),
		"share_store":      c.ShareStore,
		"share_store_path": c.ShareStorePath,
		"share_ttl":        c.ShareTTL.String(),
	}
}

func defaultShareStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "data", "shares.db")
	}
	return filepath.Join(dir, "barcodeapi", "shares.db")
}
