// Package config loads notekit configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigTooLarge = errors.New("config file exceeds maximum size")
)

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

// configName is the base name searched in standard locations.
const configName = "notekit"

// Config holds all configuration for the notekit CLI.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Notebook NotebookConfig `yaml:"notebook"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Sync     SyncConfig     `yaml:"sync"`
	Topics   []TopicConfig  `yaml:"topics"`
}

// APIConfig defines language-model access.
type APIConfig struct {
	Key         string `yaml:"key"`         // empty = read OPENAI_API_KEY
	Model       string `yaml:"model"`       // text model (default gpt-4o-mini)
	VisionModel string `yaml:"visionModel"` // vision model (default gpt-4o)
}

// NotebookConfig defines where notes live.
type NotebookConfig struct {
	Dir      string `yaml:"dir"`      // notebook repository root
	Title    string `yaml:"title"`    // notes document title
	Subtitle string `yaml:"subtitle"` // notes document subtitle
}

// ChunkingConfig tunes content splitting.
type ChunkingConfig struct {
	MaxSize int `yaml:"maxSize"` // bytes per chunk, 0 = default
}

// SyncConfig controls the git step.
type SyncConfig struct {
	Enabled bool `yaml:"enabled"`
	Push    bool `yaml:"push"`
}

// TopicConfig adds or overrides a topic in the registry.
type TopicConfig struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

var topicKeyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Chunking.MaxSize < 0 {
		return fmt.Errorf("chunking.maxSize: must not be negative, got %d", c.Chunking.MaxSize)
	}
	for i, t := range c.Topics {
		if t.Key == "" {
			return fmt.Errorf("topics[%d].key: required", i)
		}
		if !topicKeyPattern.MatchString(t.Key) {
			return fmt.Errorf("topics[%d].key: %q is not kebab-case", i, t.Key)
		}
	}
	return nil
}

// APIKey returns the configured key, falling back to the OPENAI_API_KEY
// environment variable.
func (c *Config) APIKey() string {
	if c.API.Key != "" {
		return c.API.Key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{Enabled: true, Push: true},
	}
}

// Load reads configuration from an explicit path, or searches standard
// locations when path is empty: ./notekit.yaml, ./notekit.yml, then
// <user config dir>/go-notekit/. A missing file is only an error when the
// path was explicit; otherwise Load falls back to Default.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	resolved, ok := resolvePath()
	if !ok {
		return Default(), nil
	}
	return loadFile(resolved)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath searches standard locations for a config file.
func resolvePath() (string, bool) {
	for _, ext := range []string{".yaml", ".yml"} {
		local := configName + ext
		if fileExists(local) {
			return local, true
		}
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	for _, ext := range []string{".yaml", ".yml"} {
		candidate := filepath.Join(userConfigDir, "go-notekit", configName+ext)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
