package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for treeval
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// InputConfig controls how documents are read
type InputConfig struct {
	// Kind is auto, json or xml
	Kind string `yaml:"kind"`
}

// ConversionConfig controls tree conversion
type ConversionConfig struct {
	// MaxDepth bounds nesting; 0 disables the limit
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig controls how converted values are rendered
type OutputConfig struct {
	// Format is text, json or yaml
	Format string `yaml:"format"`
	Indent string `yaml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Default values
const (
	DefaultKind     = "auto"
	DefaultMaxDepth = 1000
	DefaultFormat   = "text"
	DefaultIndent   = "  "
)

var (
	validKinds   = []string{"auto", "json", "xml"}
	validFormats = []string{"text", "json", "yaml"}
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input: InputConfig{
			Kind: DefaultKind,
		},
		Conversion: ConversionConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Indent: DefaultIndent,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".treeval.yml", ".treeval.yaml", "treeval.yml", "treeval.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated and numeric settings
func (c *Config) Validate() error {
	c.Input.Kind = strings.ToLower(strings.TrimSpace(c.Input.Kind))
	if !contains(validKinds, c.Input.Kind) {
		return fmt.Errorf("input.kind must be one of %s, got '%s'", strings.Join(validKinds, ", "), c.Input.Kind)
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got '%s'", strings.Join(validFormats, ", "), c.Output.Format)
	}
	if c.Conversion.MaxDepth < 0 {
		return fmt.Errorf("conversion.max_depth must not be negative, got %d", c.Conversion.MaxDepth)
	}
	return nil
}

// Overrides holds values given on the command line. Zero values mean the
// flag was not set.
type Overrides struct {
	Kind     string
	Format   string
	Indent   string
	MaxDepth *int
	Debug    bool
}

// LoadConfigWithCLI loads the config file at configPath (when not empty) and
// applies CLI overrides on top of it.
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.Kind != "" {
		cfg.Input.Kind = overrides.Kind
	}
	if overrides.Format != "" {
		cfg.Output.Format = overrides.Format
	}
	if overrides.Indent != "" {
		cfg.Output.Indent = overrides.Indent
	}
	if overrides.MaxDepth != nil {
		cfg.Conversion.MaxDepth = *overrides.MaxDepth
	}
	// A debug flag can only switch debugging on
	if overrides.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
