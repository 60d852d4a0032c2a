package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Sources     SourcesConfig     `mapstructure:"sources"`
	Player      PlayerConfig      `mapstructure:"player"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// SourcesConfig holds station catalog configuration
type SourcesConfig struct {
	Enabled []string `mapstructure:"enabled"` // enabled source ids

	// Base URL overrides; empty means the built-in endpoint.
	YoRadioURL      string `mapstructure:"yoradio_url"`
	RadioBrowserURL string `mapstructure:"radio_browser_url"`
}

// PlayerConfig holds audio player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // player binary, empty for auto-detect
	Args    []string `mapstructure:"args"`
	Volume  float64  `mapstructure:"volume"` // session volume in [0,1]
}

// PreferencesConfig holds user preferences
type PreferencesConfig struct {
	Country             string `mapstructure:"country"` // seeds the country filter
	Theme               string `mapstructure:"theme"`
	Username            string `mapstructure:"username"`
	OnboardingCompleted bool   `mapstructure:"onboarding_completed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Enabled: []string{"yoradio"},
		},
		Player: PlayerConfig{
			Command: "",
			Args:    []string{},
			Volume:  0.7,
		},
		Preferences: PreferencesConfig{
			Country: "Nepal",
			Theme:   "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// IsSourceEnabled reports whether a source id is in the enabled set.
func (c *Config) IsSourceEnabled(id string) bool {
	for _, s := range c.Sources.Enabled {
		if s == id {
			return true
		}
	}
	return false
}

// ToggleSource adds or removes a source id from the enabled set.
func (c *Config) ToggleSource(id string) {
	for i, s := range c.Sources.Enabled {
		if s == id {
			c.Sources.Enabled = append(c.Sources.Enabled[:i], c.Sources.Enabled[i+1:]...)
			return
		}
	}
	c.Sources.Enabled = append(c.Sources.Enabled, id)
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "airwave", "airwave.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "airwave", "airwave.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "airwave")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "airwave")
	}
}

// DefaultDataPath returns the default data directory for the current OS
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "airwave")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "airwave")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("AIRWAVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("sources.enabled", cfg.Sources.Enabled)
	viper.Set("sources.yoradio_url", cfg.Sources.YoRadioURL)
	viper.Set("sources.radio_browser_url", cfg.Sources.RadioBrowserURL)
	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)
	viper.Set("player.volume", cfg.Player.Volume)
	viper.Set("preferences.country", cfg.Preferences.Country)
	viper.Set("preferences.theme", cfg.Preferences.Theme)
	viper.Set("preferences.username", cfg.Preferences.Username)
	viper.Set("preferences.onboarding_completed", cfg.Preferences.OnboardingCompleted)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
