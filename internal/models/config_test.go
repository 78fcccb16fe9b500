package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if config.MaxConcurrentChecks != 5 {
		t.Errorf("Expected MaxConcurrentChecks=5, got %d", config.MaxConcurrentChecks)
	}

	if config.OutputFormat != "json" {
		t.Errorf("Expected OutputFormat=json, got %s", config.OutputFormat)
	}

	if _, ok := config.FailVerdict(); ok {
		t.Error("Expected no fail verdict by default")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		c := DefaultConfig()
		mutate(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "invalid concurrency (too low)",
			config:  valid(func(c *Config) { c.MaxConcurrentChecks = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid concurrency (too high)",
			config:  valid(func(c *Config) { c.MaxConcurrentChecks = 101 }),
			wantErr: true,
		},
		{
			name:    "empty output directory",
			config:  valid(func(c *Config) { c.OutputDir = "" }),
			wantErr: true,
		},
		{
			name:    "negative debounce",
			config:  valid(func(c *Config) { c.WatchDebounce = -time.Second }),
			wantErr: true,
		},
		{
			name:    "unknown fail-on",
			config:  valid(func(c *Config) { c.FailOn = "dangerous" }),
			wantErr: true,
		},
		{
			name:    "fail-on any case",
			config:  valid(func(c *Config) { c.FailOn = "Suspicious" }),
			wantErr: false,
		},
		{
			name:    "unknown format",
			config:  valid(func(c *Config) { c.OutputFormat = "json,pdf" }),
			wantErr: true,
		},
		{
			name:    "all formats",
			config:  valid(func(c *Config) { c.OutputFormat = "json, csv,HTML,md,markdown" }),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	original := DefaultConfig()

	clone := original.Clone()
	clone.MaxConcurrentChecks = 100
	clone.OutputDir = "elsewhere"

	if original.MaxConcurrentChecks != 5 {
		t.Errorf("Clone modified original MaxConcurrentChecks")
	}
	if original.OutputDir != "results" {
		t.Errorf("Clone modified original OutputDir")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".linkrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency: 12\noutput_format: html,md\nfail_on: unsafe\nwatch_debounce: 2s\n"), 0644))

	config := DefaultConfig()
	require.NoError(t, LoadConfigFile(path, config))

	assert.Equal(t, 12, config.MaxConcurrentChecks)
	assert.Equal(t, "html,md", config.OutputFormat)
	assert.Equal(t, "results", config.OutputDir)
	assert.Equal(t, 2*time.Second, config.WatchDebounce)

	v, ok := config.FailVerdict()
	assert.True(t, ok)
	assert.Equal(t, VerdictUnsafe, v)
}

func TestLoadConfigFileMissing(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), config))
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency: [not, a, number]\n"), 0644))

	assert.Error(t, LoadConfigFile(path, DefaultConfig()))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LINKRISK_CONCURRENCY", "9")
	t.Setenv("LINKRISK_OUTPUT_DIR", "out")
	t.Setenv("LINKRISK_FAIL_ON", "suspicious")
	t.Setenv("LINKRISK_WATCH_DEBOUNCE", "not-a-duration")

	config := DefaultConfig()
	config.ApplyEnv()

	assert.Equal(t, 9, config.MaxConcurrentChecks)
	assert.Equal(t, "out", config.OutputDir)
	assert.Equal(t, "suspicious", config.FailOn)
	assert.Equal(t, 500*time.Millisecond, config.WatchDebounce)
}
