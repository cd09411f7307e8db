package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the PsyQuotes configuration from config.toml
type Config struct {
	Gemini struct {
		APIKey string `toml:"api_key"`
		Model  string `toml:"model"`
	} `toml:"gemini"`
	Shorts struct {
		OutputDir        string `toml:"output_dir"`
		ProgressInterval int    `toml:"progress_interval"` // Seconds between progress messages
		Offline          bool   `toml:"offline"`           // Use the placeholder generator
	} `toml:"shorts"`
	TUI struct {
		Theme string `toml:"theme"`
	} `toml:"tui"`
}

// Default values
const (
	DefaultModel            = "gemini-2.5-flash-image"
	DefaultOutputDir        = "~/Pictures/PsyShorts"
	DefaultProgressInterval = 2
	DefaultTheme            = "clean_cyber"
)

// APIKeyEnvVars are checked in order; the first non-empty one wins over the file
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// Defaults returns a config populated with default values
func Defaults() *Config {
	config := &Config{}
	config.Gemini.Model = DefaultModel
	config.Shorts.OutputDir = DefaultOutputDir
	config.Shorts.ProgressInterval = DefaultProgressInterval
	config.TUI.Theme = DefaultTheme
	return config
}

// Path returns the config file location, honouring XDG_CONFIG_HOME
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "psyquotes", "config.toml"), nil
}

// LoadConfig loads configuration from the standard XDG config path with sensible defaults.
// A .env file in the working directory is loaded first so its keys can override the file.
func LoadConfig() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from an explicit path. A missing file yields defaults.
func LoadFrom(configPath string) (*Config, error) {
	config := Defaults()

	if _, err := os.Stat(configPath); err == nil {
		configData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse TOML config, merging with defaults
		if err := toml.Unmarshal(configData, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	for _, name := range APIKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			config.Gemini.APIKey = v
			break
		}
	}

	config.normalize()
	return config, nil
}

// normalize replaces empty or invalid values with defaults
func (c *Config) normalize() {
	if strings.TrimSpace(c.Gemini.Model) == "" {
		c.Gemini.Model = DefaultModel
	}
	if strings.TrimSpace(c.Shorts.OutputDir) == "" {
		c.Shorts.OutputDir = DefaultOutputDir
	}
	if c.Shorts.ProgressInterval <= 0 {
		c.Shorts.ProgressInterval = DefaultProgressInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
}

// GetProgressInterval returns the progress rotation interval
func (c *Config) GetProgressInterval() time.Duration {
	return time.Duration(c.Shorts.ProgressInterval) * time.Second
}

// UseRemote reports whether the Gemini generator should be used
func (c *Config) UseRemote() bool {
	return !c.Shorts.Offline && c.Gemini.APIKey != ""
}
