// Package config loads and validates mandex configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPageOffset is the difference between a physical page index in the
// extracted text and the manual's own printed page numbering. The default
// covers the front matter of the manual editions mandex was written against;
// other editions override it via page_offset.
const DefaultPageOffset = 3

// DefaultHeadingLine is the physical line of a definition page carrying the
// section heading in the supported manual layout.
const DefaultHeadingLine = 4

// Config represents the complete mandex configuration.
type Config struct {
	Version  int           `yaml:"version" json:"version"`
	Manual   ManualConfig  `yaml:"manual" json:"manual"`
	Cache    CacheConfig   `yaml:"cache" json:"cache"`
	Viewer   ViewerConfig  `yaml:"viewer" json:"viewer"`
	Extract  ExtractConfig `yaml:"extract" json:"extract"`
	Rules    []RuleConfig  `yaml:"rules" json:"rules"`
	LogLevel string        `yaml:"log_level" json:"log_level"`
}

// ManualConfig locates the manual and its extracted text rendering.
type ManualConfig struct {
	// PDF is the path to the manual PDF opened by the viewer.
	PDF string `yaml:"pdf" json:"pdf"`
	// Text is the path to the pre-extracted plain text with form-feed
	// page breaks. This is the index builder's input.
	Text string `yaml:"text" json:"text"`
	// PageOffset is added to a physical page index to obtain the manual's
	// printed page number.
	PageOffset int `yaml:"page_offset" json:"page_offset"`
	// HeadingLine is the 1-indexed physical line of a definition page that
	// carries the section heading.
	HeadingLine int `yaml:"heading_line" json:"heading_line"`
}

// CacheConfig configures the on-disk index cache.
type CacheConfig struct {
	// Dir is the cache directory. One file per source-text content hash.
	Dir string `yaml:"dir" json:"dir"`
}

// ViewerConfig configures PDF viewer dispatch.
type ViewerConfig struct {
	// Command pins a specific viewer (e.g. "zathura"). Empty tries each
	// known viewer in order.
	Command string `yaml:"command" json:"command"`
}

// ExtractConfig configures text extraction from the PDF.
type ExtractConfig struct {
	// Workers is the number of concurrent pdftotext invocations.
	Workers int `yaml:"workers" json:"workers"`
}

// RuleConfig declares a user-defined mnemonic expansion rule.
// Pattern is matched against the normalized raw mnemonic; each suffix is
// substituted via the pattern's first capture group.
type RuleConfig struct {
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Manual: ManualConfig{
			PageOffset:  DefaultPageOffset,
			HeadingLine: DefaultHeadingLine,
		},
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
		},
		Extract: ExtractConfig{
			Workers: runtime.NumCPU(),
		},
		LogLevel: "info",
	}
}

// DefaultCacheDir returns the default index cache directory.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".mandex", "cache")
	}
	return filepath.Join(home, ".mandex", "cache")
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/mandex/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/mandex/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mandex", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "mandex", "config.yaml")
	}
	return filepath.Join(home, ".config", "mandex", "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load loads configuration, applying sources in order of increasing
// precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/mandex/config.yaml)
//  3. Project config (.mandex.yaml in dir)
//  4. Environment variables (MANDEX_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	projectPath := filepath.Join(dir, ".mandex.yaml")
	if fileExists(projectPath) {
		if err := cfg.loadYAML(projectPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Manual.PDF != "" {
		c.Manual.PDF = other.Manual.PDF
	}
	if other.Manual.Text != "" {
		c.Manual.Text = other.Manual.Text
	}
	if other.Manual.PageOffset != 0 {
		c.Manual.PageOffset = other.Manual.PageOffset
	}
	if other.Manual.HeadingLine != 0 {
		c.Manual.HeadingLine = other.Manual.HeadingLine
	}
	if other.Cache.Dir != "" {
		c.Cache.Dir = other.Cache.Dir
	}
	if other.Viewer.Command != "" {
		c.Viewer.Command = other.Viewer.Command
	}
	if other.Extract.Workers != 0 {
		c.Extract.Workers = other.Extract.Workers
	}
	if len(other.Rules) > 0 {
		// User rules take precedence, so they go ahead of any already merged
		c.Rules = append(append([]RuleConfig{}, other.Rules...), c.Rules...)
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies MANDEX_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MANDEX_MANUAL_PDF"); v != "" {
		c.Manual.PDF = v
	}
	if v := os.Getenv("MANDEX_MANUAL_TEXT"); v != "" {
		c.Manual.Text = v
	}
	if v := os.Getenv("MANDEX_PAGE_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Manual.PageOffset = n
		}
	}
	if v := os.Getenv("MANDEX_HEADING_LINE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			c.Manual.HeadingLine = n
		}
	}
	if v := os.Getenv("MANDEX_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("MANDEX_VIEWER"); v != "" {
		c.Viewer.Command = v
	}
	if v := os.Getenv("MANDEX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Manual.PageOffset < 0 {
		return fmt.Errorf("manual.page_offset must be non-negative, got %d", c.Manual.PageOffset)
	}
	if c.Manual.HeadingLine < 1 {
		return fmt.Errorf("manual.heading_line must be at least 1, got %d", c.Manual.HeadingLine)
	}
	if c.Extract.Workers < 1 {
		return fmt.Errorf("extract.workers must be at least 1, got %d", c.Extract.Workers)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	for i, r := range c.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("rules[%d]: pattern must not be empty", i)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("rules[%d]: invalid pattern %q: %w", i, r.Pattern, err)
		}
		if len(r.Suffixes) == 0 {
			return fmt.Errorf("rules[%d]: at least one suffix is required", i)
		}
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
