package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for linkrisk
type Config struct {
	MaxConcurrentChecks int           `yaml:"concurrency"`
	OutputDir           string        `yaml:"output_dir"`
	LogVerbose          bool          `yaml:"verbose"`
	NoColor             bool          `yaml:"no_color"`
	Quiet               bool          `yaml:"quiet"`
	NoProgress          bool          `yaml:"no_progress"`
	OutputFormat        string        `yaml:"output_format"`
	ExportPath          string        `yaml:"export"`
	FailOn              string        `yaml:"fail_on"`
	WatchDebounce       time.Duration `yaml:"watch_debounce"`
}

// ReportFormats are the accepted values of OutputFormat
var ReportFormats = []string{"json", "csv", "html", "markdown", "md"}

// Validate checks if the configuration is valid and returns an error if not
func (c *Config) Validate() error {
	if c.MaxConcurrentChecks < 1 {
		return fmt.Errorf("max concurrent checks must be at least 1, got %d", c.MaxConcurrentChecks)
	}
	if c.MaxConcurrentChecks > 100 {
		return fmt.Errorf("max concurrent checks cannot exceed 100, got %d", c.MaxConcurrentChecks)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch debounce cannot be negative, got %v", c.WatchDebounce)
	}
	if c.FailOn != "" {
		if _, err := ParseVerdict(c.FailOn); err != nil {
			return fmt.Errorf("invalid fail-on: %w", err)
		}
	}
	if _, err := ParseFormats(c.OutputFormat); err != nil {
		return err
	}
	return nil
}

// Clone creates a copy of the config
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// FailVerdict returns the verdict that should fail a run, if any
func (c *Config) FailVerdict() (Verdict, bool) {
	if c.FailOn == "" {
		return "", false
	}
	v, err := ParseVerdict(c.FailOn)
	if err != nil {
		return "", false
	}
	return v, true
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrentChecks: 5,
		OutputDir:           "results",
		LogVerbose:          false,
		NoColor:             false,
		Quiet:               false,
		NoProgress:          false,
		OutputFormat:        "json",
		ExportPath:          "",
		FailOn:              "",
		WatchDebounce:       500 * time.Millisecond,
	}
}

// LoadConfigFile overlays the YAML file at path onto c. A missing file is not an error.
//
//	concurrency: 8
//	output_dir: results
//	output_format: html,md
//	fail_on: suspicious
//	watch_debounce: 1s
func LoadConfigFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c from LINKRISK_* environment variables. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if envConcurrency := os.Getenv("LINKRISK_CONCURRENCY"); envConcurrency != "" {
		if concurrency, err := strconv.Atoi(envConcurrency); err == nil {
			c.MaxConcurrentChecks = concurrency
		}
	}
	if envOutputDir := os.Getenv("LINKRISK_OUTPUT_DIR"); envOutputDir != "" {
		c.OutputDir = envOutputDir
	}
	if envFailOn := os.Getenv("LINKRISK_FAIL_ON"); envFailOn != "" {
		c.FailOn = envFailOn
	}
	if envDebounce := os.Getenv("LINKRISK_WATCH_DEBOUNCE"); envDebounce != "" {
		if d, err := time.ParseDuration(envDebounce); err == nil {
			c.WatchDebounce = d
		}
	}
}

// ParseFormats splits a comma-separated format list, rejecting unknown entries
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		known := false
		for _, rf := range ReportFormats {
			if f == rf {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown output format %q", f)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
