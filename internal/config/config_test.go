package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/citenet/config.yml", Path())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	assert.Equal(t, filepath.Join(home, ".config", "citenet", "config.yml"), Path())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, 0.85, cfg.Damping)
	assert.Equal(t, 1000, cfg.EigenMaxIter)
	assert.Equal(t, 100, cfg.PageRankMaxIter)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, uint64(42), cfg.LayoutSeed)
	assert.Equal(t, 20, cfg.HistogramBins)
	assert.Empty(t, cfg.Profiles)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTestConfig(t, `
profiles:
  - 6Rzu0kMAAAAJ
  - https://scholar.google.com/citations?user=vAY9ddAAAAAJ&hl=en
title: Citation Network of Two Authors
top_k: 10
damping: 0.9
fetch_timeout: 90s
histogram_bins: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Profiles, 2)
	assert.Equal(t, "Citation Network of Two Authors", cfg.Title)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 0.9, cfg.Damping)
	assert.Equal(t, 90*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.HistogramBins)
	// Unset keys keep defaults
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, "top_k: 10\nprofiles: [a]\n")
	t.Setenv("CITENET_TOP_K", "3")
	t.Setenv("CITENET_PROFILES", "x, y,,z")
	t.Setenv("CITENET_FETCH_TIMEOUT", "5s")
	t.Setenv("CITENET_SHOW_BROWSER", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Profiles)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.ShowBrowser)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("CITENET_TOP_K", "five")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeTestConfig(t, "top_k: [oops\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top_k", func(c *Config) { c.TopK = 0 }},
		{"damping one", func(c *Config) { c.Damping = 1 }},
		{"negative damping", func(c *Config) { c.Damping = -0.1 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"zero eigen iterations", func(c *Config) { c.EigenMaxIter = 0 }},
		{"zero pagerank iterations", func(c *Config) { c.PageRankMaxIter = 0 }},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"zero rate", func(c *Config) { c.RateLimit = 0 }},
		{"zero bins", func(c *Config) { c.HistogramBins = 0 }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestMetricsAndMarshal(t *testing.T) {
	cfg := Default()
	cfg.Damping = 0.7

	m := cfg.Metrics()
	assert.Equal(t, 0.7, m.Damping)
	assert.Equal(t, cfg.EigenMaxIter, m.EigenMaxIter)

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "damping: 0.7")

	cm, err := cfg.Map()
	require.NoError(t, err)
	assert.Equal(t, 0.7, cm["damping"])
	assert.Equal(t, "1m0s", cm["fetch_timeout"])
	assert.Equal(t, DefaultTopK, cm["top_k"])
}

func TestLoad_ZeroInFileOverridesDefault(t *testing.T) {
	path := writeTestConfig(t, "top_k: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,b, "))
	assert.Nil(t, splitList(""))
}
