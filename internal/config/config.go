package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "hackernews"

type APIConfig struct {
	BaseURL           string  `yaml:"base_url"`
	SearchPath        string  `yaml:"search_path"`
	HitsPerPage       int     `yaml:"hits_per_page"`
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // empty = LogPath()
}

type Config struct {
	DefaultQuery     string    `yaml:"default_query"`
	HistoryRetention string    `yaml:"history_retention"`
	API              APIConfig `yaml:"api"`
	Log              LogConfig `yaml:"log"`
}

// SearchURL joins the base URL and the search path.
func (c *Config) SearchURL() string {
	return strings.TrimRight(c.API.BaseURL, "/") + "/" + strings.TrimLeft(c.API.SearchPath, "/")
}

// GetHitsPerPage returns the page size, defaulting to 100.
func (c *Config) GetHitsPerPage() int {
	if c.API.HitsPerPage <= 0 {
		return 100
	}
	return c.API.HitsPerPage
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	if c.HistoryRetention == "" {
		return 90 * 24 * time.Hour
	}
	d, err := ParseDuration(c.HistoryRetention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// LogLevel parses log.level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return LogPath()
}

// ParseDuration accepts the "Nd" day syntax on top of time.ParseDuration.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.DataHome, appName, "history.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the XDG default) on top of the embedded
// defaults, so keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: the embedded defaults still apply
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: host is required")
	}
	if cfg.API.SearchPath == "" {
		return fmt.Errorf("api.search_path is required")
	}
	if cfg.API.HitsPerPage < 1 || cfg.API.HitsPerPage > 1000 {
		return fmt.Errorf("api.hits_per_page must be between 1 and 1000, got %d", cfg.API.HitsPerPage)
	}
	if cfg.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("api.requests_per_second must be positive, got %v", cfg.API.RequestsPerSecond)
	}
	if cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1, got %d", cfg.API.Burst)
	}
	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}
