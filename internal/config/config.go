// Package config handles citenet configuration.
//
// Values are resolved in increasing precedence: built-in defaults, the YAML
// file at $XDG_CONFIG_HOME/citenet/config.yml, CITENET_* environment variables
// (a .env file in the working directory is loaded first), then CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/citenet/internal/metrics"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of a run.
type Config struct {
	Profiles []string `yaml:"profiles,omitempty"` // Profile IDs or profile URLs
	Title    string   `yaml:"title,omitempty"`    // Heading of the network view

	TopK            int     `yaml:"top_k,omitempty"`
	Damping         float64 `yaml:"damping,omitempty"`
	Tolerance       float64 `yaml:"tolerance,omitempty"`
	EigenMaxIter    int     `yaml:"eigen_max_iter,omitempty"`
	PageRankMaxIter int     `yaml:"pagerank_max_iter,omitempty"`

	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty"`
	Concurrency  int           `yaml:"concurrency,omitempty"`
	RateLimit    float64       `yaml:"rate_limit,omitempty"` // Profile page loads per second
	ChromePath   string        `yaml:"chrome_path,omitempty"`
	ShowBrowser  bool          `yaml:"show_browser,omitempty"` // Disable headless mode

	LayoutSeed    uint64 `yaml:"layout_seed,omitempty"`
	HistogramBins int    `yaml:"histogram_bins,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citenet"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CITENET_"
)

// Built-in defaults.
const (
	DefaultTopK          = 5
	DefaultFetchTimeout  = 60 * time.Second
	DefaultConcurrency   = 2
	DefaultRateLimit     = 0.5
	DefaultLayoutSeed    = 42
	DefaultHistogramBins = 20
	DefaultLogLevel      = "info"
	DefaultTitle         = "Citation Network"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() *Config {
	m := metrics.DefaultConfig()
	return &Config{
		Title:           DefaultTitle,
		TopK:            DefaultTopK,
		Damping:         m.Damping,
		Tolerance:       m.Tolerance,
		EigenMaxIter:    m.EigenMaxIter,
		PageRankMaxIter: m.PageRankMaxIter,
		FetchTimeout:    DefaultFetchTimeout,
		Concurrency:     DefaultConcurrency,
		RateLimit:       DefaultRateLimit,
		LayoutSeed:      DefaultLayoutSeed,
		HistogramBins:   DefaultHistogramBins,
		LogLevel:        DefaultLogLevel,
	}
}

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citenet/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load resolves the configuration from defaults, the file at path (Path()
// when empty) and the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	if path == "" {
		path = Path()
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file onto c. Keys absent from the file keep defaults.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays CITENET_* variables read through getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "PROFILES"); v != "" {
		c.Profiles = splitList(v)
	}
	if v := getenv(EnvPrefix + "TITLE"); v != "" {
		c.Title = v
	}
	if v := getenv(EnvPrefix + "CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if v := getenv(EnvPrefix + "TOP_K"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sTOP_K=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.TopK = n
	}
	if v := getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sCONCURRENCY=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.Concurrency = n
	}
	if v := getenv(EnvPrefix + "FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sFETCH_TIMEOUT=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.FetchTimeout = d
	}
	if v := getenv(EnvPrefix + "SHOW_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sSHOW_BROWSER=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.ShowBrowser = b
	}

	return nil
}

// Validate checks ranges of numeric settings.
func (c *Config) Validate() error {
	switch {
	case c.TopK <= 0:
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidConfig, c.TopK)
	case c.Damping <= 0 || c.Damping >= 1:
		return fmt.Errorf("%w: damping must be in (0, 1), got %g", ErrInvalidConfig, c.Damping)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	case c.EigenMaxIter <= 0:
		return fmt.Errorf("%w: eigen_max_iter must be positive, got %d", ErrInvalidConfig, c.EigenMaxIter)
	case c.PageRankMaxIter <= 0:
		return fmt.Errorf("%w: pagerank_max_iter must be positive, got %d", ErrInvalidConfig, c.PageRankMaxIter)
	case c.FetchTimeout <= 0:
		return fmt.Errorf("%w: fetch_timeout must be positive, got %s", ErrInvalidConfig, c.FetchTimeout)
	case c.Concurrency <= 0:
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	case c.RateLimit <= 0:
		return fmt.Errorf("%w: rate_limit must be positive, got %g", ErrInvalidConfig, c.RateLimit)
	case c.HistogramBins <= 0:
		return fmt.Errorf("%w: histogram_bins must be positive, got %d", ErrInvalidConfig, c.HistogramBins)
	}
	return nil
}

// Metrics returns the metric parameters.
func (c *Config) Metrics() metrics.Config {
	return metrics.Config{
		Damping:         c.Damping,
		Tolerance:       c.Tolerance,
		EigenMaxIter:    c.EigenMaxIter,
		PageRankMaxIter: c.PageRankMaxIter,
	}
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Map returns the configuration keyed by YAML names, for JSON output.
func (c *Config) Map() (map[string]interface{}, error) {
	data, err := c.Marshal()
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// HelpfulConfigMessage explains how to configure profiles when none are set.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`No profiles configured.

Pass profile IDs as arguments, set %sPROFILES, or create %s:
  mkdir -p %s
  printf 'profiles:\n  - 6Rzu0kMAAAAJ\n' > %s`,
		EnvPrefix,
		configPath,
		filepath.Dir(configPath),
		configPath)
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
