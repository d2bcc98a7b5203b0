package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < env vars < CLI flags
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Set up Viper
	l.setupViper(cfg)

	// Load config file
	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Unmarshal into config struct
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// XDG config directory first, then the plain home fallback
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "caseline"))
	}

	homeDir, _ := os.UserHomeDir()
	if homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "caseline"))
	}

	// Current directory
	v.AddConfigPath(".")

	// Environment variables - CASELINE_ prefix
	v.SetEnvPrefix("CASELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults from config struct
	l.setDefaults(cfg)

	// Explicitly bind environment variables (Viper's Unmarshal has issues without this)
	bindEnvVars(v)

	// AutomaticEnv for any keys not explicitly bound
	v.AutomaticEnv()
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	// Engine
	v.SetDefault("engine.character_budget", cfg.Engine.CharacterBudget)
	v.SetDefault("engine.preview_length", cfg.Engine.PreviewLength)
	v.SetDefault("engine.preview_placeholder", cfg.Engine.PreviewPlaceholder)

	// Timeline
	v.SetDefault("timeline.page_size", cfg.Timeline.PageSize)
	v.SetDefault("timeline.sort_direction", cfg.Timeline.SortDirection)
	v.SetDefault("timeline.default_expanded", cfg.Timeline.DefaultExpanded)
	v.SetDefault("timeline.default_history_visible", cfg.Timeline.DefaultHistoryVisible)
	v.SetDefault("timeline.show_email", cfg.Timeline.ShowEmail)
	v.SetDefault("timeline.show_public", cfg.Timeline.ShowPublic)
	v.SetDefault("timeline.show_internal", cfg.Timeline.ShowInternal)
	v.SetDefault("timeline.show_system", cfg.Timeline.ShowSystem)

	// Polling
	v.SetDefault("polling.interval", cfg.Polling.Interval)
	v.SetDefault("polling.enabled", cfg.Polling.Enabled)

	// Logging
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)
}

// loadConfigFile attempts to load the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			return nil
		}
		return err
	}

	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	loader := NewLoader()
	return loader.Load()
}

// bindEnvVars binds environment variables for config keys.
// Viper's Unmarshal has issues with env vars on nested structs unless explicitly bound.
func bindEnvVars(v *viper.Viper) {
	envBindings := []string{
		// Engine
		"engine.character_budget",
		"engine.preview_length",
		"engine.preview_placeholder",
		// Timeline
		"timeline.page_size",
		"timeline.sort_direction",
		"timeline.default_expanded",
		"timeline.default_history_visible",
		"timeline.show_email",
		"timeline.show_public",
		"timeline.show_internal",
		"timeline.show_system",
		// Polling
		"polling.interval",
		"polling.enabled",
		// Logging
		"logging.level",
		"logging.format",
		"logging.enable_caller",
	}

	for _, key := range envBindings {
		// Convert key to env var format: timeline.page_size -> CASELINE_TIMELINE_PAGE_SIZE
		envSuffix := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, "CASELINE_"+envSuffix)
	}
}
