// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/llm"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config holds the application configuration.
type Config struct {
	Day           DayConfig          `toml:"day"`
	Storage       StorageConfig      `toml:"storage"`
	Notifications NotificationConfig `toml:"notifications"`
	LLM           LLMConfig          `toml:"llm"`
	UI            UIConfig           `toml:"ui"`
	Log           LogConfig          `toml:"log"`
}

// DayConfig is the window used for free time and planning.
type DayConfig struct {
	Start string `toml:"start"` // e.g., "07:00"
	End   string `toml:"end"`   // e.g., "23:00"
}

// StorageConfig selects and locates the schedule backend.
type StorageConfig struct {
	Backend  string `toml:"backend"` // "sqlite" or "json"
	DBPath   string `toml:"db_path"`
	JSONPath string `toml:"json_path"`
}

// NotificationConfig holds start-time notification settings.
type NotificationConfig struct {
	Enabled      bool   `toml:"enabled"`
	Sender       string `toml:"sender"`        // "terminal" or "log"
	PollInterval string `toml:"poll_interval"` // e.g., "30s"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme    string `toml:"theme"`    // "mocha", "macchiato", "frappe", "latte"
	Language string `toml:"language"` // "en" or "ko"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Day: DayConfig{
			Start: "07:00",
			End:   "23:00",
		},
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			DBPath:   defaultDataPath("clockplan.db"),
			JSONPath: defaultDataPath("schedules.json"),
		},
		Notifications: NotificationConfig{
			Enabled:      true,
			Sender:       "terminal",
			PollInterval: "30s",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme:    "mocha",
			Language: "en",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "clockplan", name)
}

// DefaultConfigPath returns the config file path. CLOCKPLAN_CONFIG
// overrides the default location.
func DefaultConfigPath() string {
	if p := os.Getenv("CLOCKPLAN_CONFIG"); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "clockplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.JSONPath = expandPath(cfg.Storage.JSONPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies CLOCKPLAN_* environment variables.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLOCKPLAN_DAY_START"); v != "" {
		cfg.Day.Start = v
	}
	if v := os.Getenv("CLOCKPLAN_DAY_END"); v != "" {
		cfg.Day.End = v
	}

	if v := os.Getenv("CLOCKPLAN_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("CLOCKPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CLOCKPLAN_JSON_PATH"); v != "" {
		cfg.Storage.JSONPath = v
	}

	if v := os.Getenv("CLOCKPLAN_NOTIFICATIONS"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "on", "yes":
			cfg.Notifications.Enabled = true
		case "0", "false", "off", "no":
			cfg.Notifications.Enabled = false
		}
	}
	if v := os.Getenv("CLOCKPLAN_NOTIFY_SENDER"); v != "" {
		cfg.Notifications.Sender = v
	}

	if v := os.Getenv("CLOCKPLAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("CLOCKPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("CLOCKPLAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("CLOCKPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("CLOCKPLAN_LANGUAGE"); v != "" {
		cfg.UI.Language = strings.ToLower(v)
	}

	if v := os.Getenv("CLOCKPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CLOCKPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Day.Start, "day.start"); err != nil {
		return err
	}
	if err := validateTime(c.Day.End, "day.end"); err != nil {
		return err
	}
	if !clock.IsEndTimeValid(c.Day.Start, c.Day.End) {
		return errors.New("day.start must be before day.end")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("storage.db_path must be set")
		}
	case BackendJSON:
		if c.Storage.JSONPath == "" {
			return errors.New("storage.json_path must be set")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendJSON, c.Storage.Backend)
	}

	switch c.Notifications.Sender {
	case "terminal", "log":
	default:
		return fmt.Errorf("notifications.sender must be \"terminal\" or \"log\", got %q", c.Notifications.Sender)
	}
	if _, err := c.PollInterval(); err != nil {
		return err
	}

	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		return fmt.Errorf("llm.provider: %w", err)
	}

	switch c.UI.Language {
	case "en", "ko":
	default:
		return fmt.Errorf("ui.language must be \"en\" or \"ko\", got %q", c.UI.Language)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// PollInterval returns how often the notify daemon reloads schedules.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Notifications.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("notifications.poll_interval: %w", err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("notifications.poll_interval must be at least 1s, got %s", d)
	}
	return d, nil
}

// StoragePath returns the file used by the configured backend.
func (c *Config) StoragePath() string {
	if c.Storage.Backend == BackendJSON {
		return c.Storage.JSONPath
	}
	return c.Storage.DBPath
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if !clock.IsValidTime(t) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
