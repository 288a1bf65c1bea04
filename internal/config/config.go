// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Config holds the application configuration.
type Config struct {
	Timeline      TimelineConfig      `toml:"timeline"`
	Pomodoro      PomodoroConfig      `toml:"pomodoro"`
	Notifications NotificationsConfig `toml:"notifications"`
	Analytics     AnalyticsConfig     `toml:"analytics"`
	Storage       StorageConfig       `toml:"storage"`
	UI            UIConfig            `toml:"ui"`
	LLM           LLMConfig           `toml:"llm"`
	Log           LogConfig           `toml:"log"`
}

// TimelineConfig holds the daily view window.
type TimelineConfig struct {
	DayStartHour int `toml:"day_start_hour"` // first hourly slot, e.g. 6
	DayEndHour   int `toml:"day_end_hour"`   // last hourly slot (inclusive), e.g. 23
}

// PomodoroConfig holds focus timer lengths.
type PomodoroConfig struct {
	FocusMinutes int `toml:"focus_minutes"`
	BreakMinutes int `toml:"break_minutes"`
}

// NotificationsConfig holds deadline reminder settings.
type NotificationsConfig struct {
	Enabled       bool   `toml:"enabled"`
	CheckInterval string `toml:"check_interval"` // Go duration, e.g. "1m"
	LeadMinutes   int    `toml:"lead_minutes"`
}

// AnalyticsConfig holds stats defaults.
type AnalyticsConfig struct {
	Period             string `toml:"period"` // "week", "month", "all"
	DeadlineWindowDays int    `toml:"deadline_window_days"`
	UrgentDays         int    `toml:"urgent_days"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath    string `toml:"db_path"`
	Namespace string `toml:"namespace"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme       string `toml:"theme"`        // "mocha", "macchiato", "frappe", "latte"
	DefaultView string `toml:"default_view"` // "daily" or "weekly"
	AccentColor string `toml:"accent_color"` // "#RRGGBB"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
	File   string `toml:"file"`   // empty for the default file, "-" for stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			DayStartHour: 6,
			DayEndHour:   23,
		},
		Pomodoro: PomodoroConfig{
			FocusMinutes: 25,
			BreakMinutes: 5,
		},
		Notifications: NotificationsConfig{
			Enabled:       true,
			CheckInterval: "1m",
			LeadMinutes:   30,
		},
		Analytics: AnalyticsConfig{
			Period:             "week",
			DeadlineWindowDays: 7,
			UrgentDays:         2,
		},
		Storage: StorageConfig{
			DBPath:    defaultDataPath("studyplan.db"),
			Namespace: "ssp",
		},
		UI: UIConfig{
			Theme:       "mocha",
			DefaultView: "daily",
			AccentColor: study.DefaultAccent,
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// defaultDataPath returns a path under the user's data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "studyplan", name)
}

// DefaultLogPath returns the log file used when none is configured.
func DefaultLogPath() string {
	return defaultDataPath("studyplan.log")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "studyplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// DotEnvFile is read before environment overrides are applied.
var DotEnvFile = ".env"

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Variables already in the environment win over .env entries
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", DotEnvFile, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	// Validate
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
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STUDYPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("STUDYPLAN_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("STUDYPLAN_DEFAULT_VIEW"); v != "" {
		cfg.UI.DefaultView = v
	}

	if v := os.Getenv("STUDYPLAN_FOCUS_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYPLAN_FOCUS_MINUTES: %w", err)
		}
		cfg.Pomodoro.FocusMinutes = n
	}
	if v := os.Getenv("STUDYPLAN_BREAK_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYPLAN_BREAK_MINUTES: %w", err)
		}
		cfg.Pomodoro.BreakMinutes = n
	}
	if v := os.Getenv("STUDYPLAN_NOTIFICATIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STUDYPLAN_NOTIFICATIONS: %w", err)
		}
		cfg.Notifications.Enabled = b
	}

	// LLM overrides
	if v := os.Getenv("STUDYPLAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("STUDYPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("STUDYPLAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Log overrides
	if v := os.Getenv("STUDYPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STUDYPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
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
	t := c.Timeline
	if t.DayStartHour < 0 || t.DayStartHour > 23 || t.DayEndHour < 0 || t.DayEndHour > 23 {
		return errors.New("timeline hours must be between 0 and 23")
	}
	if t.DayStartHour >= t.DayEndHour {
		return errors.New("day_start_hour must be before day_end_hour")
	}

	if c.Pomodoro.FocusMinutes <= 0 {
		return errors.New("focus_minutes must be positive")
	}
	if c.Pomodoro.BreakMinutes <= 0 {
		return errors.New("break_minutes must be positive")
	}

	if _, err := time.ParseDuration(c.Notifications.CheckInterval); err != nil {
		return fmt.Errorf("check_interval must be a duration such as \"1m\", got %q", c.Notifications.CheckInterval)
	}
	if c.Notifications.LeadMinutes <= 0 {
		return errors.New("lead_minutes must be positive")
	}

	switch c.Analytics.Period {
	case "week", "month", "all":
	default:
		return fmt.Errorf("invalid period: %s", c.Analytics.Period)
	}
	if c.Analytics.DeadlineWindowDays <= 0 {
		return errors.New("deadline_window_days must be positive")
	}
	if c.Analytics.UrgentDays < 0 {
		return errors.New("urgent_days cannot be negative")
	}

	switch c.UI.DefaultView {
	case "daily", "weekly":
	default:
		return fmt.Errorf("invalid default_view: %s", c.UI.DefaultView)
	}
	if !study.IsHexColor(c.UI.AccentColor) {
		return fmt.Errorf("accent_color must be #RRGGBB, got %q", c.UI.AccentColor)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// CheckEvery returns the reminder interval.
func (c *Config) CheckEvery() time.Duration {
	d, err := time.ParseDuration(c.Notifications.CheckInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Lead returns how long before a deadline reminders fire.
func (c *Config) Lead() time.Duration {
	return time.Duration(c.Notifications.LeadMinutes) * time.Minute
}

// Settings returns the stored-settings defaults derived from the config.
func (c *Config) Settings() study.Settings {
	return study.Settings{
		Notifications:          c.Notifications.Enabled,
		DefaultSessionDuration: c.Pomodoro.FocusMinutes,
		BreakDuration:          c.Pomodoro.BreakMinutes,
		DefaultView:            c.UI.DefaultView,
		AccentColor:            c.UI.AccentColor,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
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
