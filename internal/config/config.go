// Package config provides configuration management for the trade journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"options-journal/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Journal     JournalConfig          `mapstructure:"journal"`
	Volatility  VolatilityConfig       `mapstructure:"volatility"`
	UI          UIConfig               `mapstructure:"ui"`
	Checklist   []models.ChecklistItem `mapstructure:"checklist"`
	Credentials Credentials            `mapstructure:"-"` // Loaded separately
}

// JournalConfig holds the user's risk-discipline settings.
type JournalConfig struct {
	InitialCapital       float64 `mapstructure:"initial_capital"`
	DefaultTargetPercent float64 `mapstructure:"default_target_percent"`
	DefaultStopPercent   float64 `mapstructure:"default_stop_percent"`
	MaxTradesPerDay      int     `mapstructure:"max_trades_per_day"`
	MaxRiskPercent       float64 `mapstructure:"max_risk_percent"`
}

// VolatilityConfig holds the advisory volatility-regime settings.
type VolatilityConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	SourceURL string  `mapstructure:"source_url"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// Credentials holds API credentials for the optional collaborators.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials for the coaching narrative.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-journal"
	}
	return filepath.Join(home, ".config", "options-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("journal.initial_capital", 10000.0)
	v.SetDefault("journal.default_target_percent", 20.0)
	v.SetDefault("journal.default_stop_percent", 10.0)
	v.SetDefault("journal.max_trades_per_day", 3)
	v.SetDefault("journal.max_risk_percent", 4.0)
	v.SetDefault("volatility.threshold", 25.0)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("openai.model", "gpt-4o-mini")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateCredentials(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(creds)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPTIONS_JOURNAL_VIX_URL"); v != "" {
		cfg.Volatility.SourceURL = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.InitialCapital < 0 {
		return fmt.Errorf("initial_capital must be non-negative")
	}
	if c.Journal.DefaultTargetPercent <= 0 || c.Journal.DefaultTargetPercent > 100 {
		return fmt.Errorf("default_target_percent must be between 0 and 100")
	}
	if c.Journal.DefaultStopPercent <= 0 || c.Journal.DefaultStopPercent > 100 {
		return fmt.Errorf("default_stop_percent must be between 0 and 100")
	}
	if c.Journal.MaxTradesPerDay < 0 {
		return fmt.Errorf("max_trades_per_day must be non-negative")
	}
	if c.Journal.MaxRiskPercent <= 0 || c.Journal.MaxRiskPercent > 100 {
		return fmt.Errorf("max_risk_percent must be between 0 and 100")
	}
	if c.Volatility.Threshold < 0 {
		return fmt.Errorf("volatility threshold must be non-negative")
	}

	seen := make(map[string]bool, len(c.Checklist))
	for _, item := range c.Checklist {
		if item.ID == "" {
			return fmt.Errorf("checklist items must have an id")
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate checklist item: %s", item.ID)
		}
		seen[item.ID] = true
	}

	return nil
}
