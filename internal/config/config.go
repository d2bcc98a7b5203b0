// Package config handles Caseline configuration loading and validation.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure for Caseline.
type Config struct {
	// Engine settings for the email-thread reduction engine.
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`

	// Timeline settings for fetching and presenting items.
	Timeline TimelineConfig `yaml:"timeline" mapstructure:"timeline"`

	// Polling settings for the new-item poller.
	Polling PollingConfig `yaml:"polling" mapstructure:"polling"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// EngineConfig contains settings for the reduction engine.
type EngineConfig struct {
	// CharacterBudget is the plain-text budget for new content. A natural
	// split is accepted only when the text before the boundary fits the
	// budget. Zero means unlimited.
	CharacterBudget int `yaml:"character_budget" mapstructure:"character_budget"`

	// PreviewLength caps the plain-text preview line.
	PreviewLength int `yaml:"preview_length" mapstructure:"preview_length"`

	// PreviewPlaceholder is shown when an item body has no visible text.
	PreviewPlaceholder string `yaml:"preview_placeholder" mapstructure:"preview_placeholder"`
}

// TimelineConfig contains settings for timeline presentation.
type TimelineConfig struct {
	// PageSize is the fetch batch size.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// SortDirection orders the view (newest-first, oldest-first).
	SortDirection string `yaml:"sort_direction" mapstructure:"sort_direction"`

	// DefaultExpanded is the initial expand/collapse state per item.
	DefaultExpanded bool `yaml:"default_expanded" mapstructure:"default_expanded"`

	// DefaultHistoryVisible is the initial history-toggle state per item.
	DefaultHistoryVisible bool `yaml:"default_history_visible" mapstructure:"default_history_visible"`

	// ShowEmail, ShowPublic, ShowInternal and ShowSystem are the default
	// category-visibility flags.
	ShowEmail    bool `yaml:"show_email" mapstructure:"show_email"`
	ShowPublic   bool `yaml:"show_public" mapstructure:"show_public"`
	ShowInternal bool `yaml:"show_internal" mapstructure:"show_internal"`
	ShowSystem   bool `yaml:"show_system" mapstructure:"show_system"`
}

// PollingConfig contains settings for the new-item poller.
type PollingConfig struct {
	// Interval is how often to ask the data service for new items.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Enabled turns the poller on.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			CharacterBudget:    2000,
			PreviewLength:      400,
			PreviewPlaceholder: "Click to view content...",
		},
		Timeline: TimelineConfig{
			PageSize:              25,
			SortDirection:         "newest-first",
			DefaultExpanded:       false,
			DefaultHistoryVisible: false,
			ShowEmail:             true,
			ShowPublic:            true,
			ShowInternal:          true,
			ShowSystem:            true,
		},
		Polling: PollingConfig{
			Interval: 30 * time.Second,
			Enabled:  true,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Engine.CharacterBudget < 0 {
		return fmt.Errorf("engine.character_budget must not be negative")
	}

	if c.Engine.PreviewLength < 1 {
		return fmt.Errorf("engine.preview_length must be at least 1")
	}

	if c.Timeline.PageSize < 1 {
		return fmt.Errorf("timeline.page_size must be at least 1")
	}

	switch c.Timeline.SortDirection {
	case "newest-first", "oldest-first":
		// ok
	default:
		return fmt.Errorf("timeline.sort_direction must be newest-first or oldest-first")
	}

	if c.Polling.Enabled && c.Polling.Interval < time.Second {
		return fmt.Errorf("polling.interval must be at least 1s")
	}

	return nil
}
