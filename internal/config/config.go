package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds file-backed defaults for the CLI. Every field may be empty;
// flags set on the command line always win.
type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Transcription TranscriptionConfig `yaml:"transcription"`
}

// PathsConfig contains the base directories used to resolve bare
// filenames.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
}

// TranscriptionConfig carries engine selection defaults. Empty language
// and device mean auto-detect and are passed through as such.
type TranscriptionConfig struct {
	Backend  string `yaml:"backend"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Device   string `yaml:"device"`
}

// Load reads configuration from ~/.config/scribe/config.yaml.
// If the file doesn't exist, returns a Config with empty values.
// Callers should use ApplyDefaults() after Load() to set defaults.
func Load() (*Config, error) {
	configPath := filepath.Join(os.Getenv("HOME"), ".config", "scribe", "config.yaml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// ExpandPaths replaces ~ with $HOME in all path fields.
func (c *Config) ExpandPaths() {
	home := os.Getenv("HOME")

	c.Paths.InputDir = expandPath(c.Paths.InputDir, home)
	c.Paths.OutputDir = expandPath(c.Paths.OutputDir, home)
}

func expandPath(path, home string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ApplyDefaults sets the built-in conventions for empty configuration
// fields. Language and device stay empty so the engines auto-detect.
func (c *Config) ApplyDefaults() {
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = "media"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "outputs"
	}
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = "whisper"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "small"
	}
}
