// Package config provides configuration types and defaults for reckon.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/reckon/internal/diff"
)

// DiffConfig configures the deep comparator.
type DiffConfig struct {
	IgnorePaths []string          `mapstructure:"ignore_paths"`
	MajorPaths  []string          `mapstructure:"major_paths"`
	MinorPaths  []string          `mapstructure:"minor_paths"`
	MaxDepth    int               `mapstructure:"max_depth"`
	Labels      map[string]string `mapstructure:"labels"`
}

// Options converts the config into comparator options.
func (c DiffConfig) Options() diff.Options {
	return diff.Options{
		IgnorePaths: c.IgnorePaths,
		MajorPaths:  c.MajorPaths,
		MinorPaths:  c.MinorPaths,
		MaxDepth:    c.MaxDepth,
		Labels:      c.Labels,
	}
}

// DetectConfig configures the detection run.
type DetectConfig struct {
	// DisabledRules names built-in rules to disable at engine build time.
	DisabledRules []string `mapstructure:"disabled_rules"`
}

// Config holds all configuration options for reckon.
type Config struct {
	Diff     DiffConfig    `mapstructure:"diff"`
	Detect   DetectConfig  `mapstructure:"detect"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Trace    bool          `mapstructure:"trace"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Diff:     DiffConfig{MaxDepth: diff.DefaultOptions().MaxDepth},
		CacheTTL: 5 * time.Minute,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Diff.MaxDepth < 0 {
		return fmt.Errorf("diff.max_depth cannot be negative: %d", c.Diff.MaxDepth)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative: %v", c.CacheTTL)
	}
	return nil
}

// Load reads configuration from the given YAML file, layered over
// Defaults. An empty path returns Defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
