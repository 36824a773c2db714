package axmac

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the axmac configuration
type Config struct {
	Dialect  string       `yaml:"dialect"`
	InputDir string       `yaml:"input_dir"`
	Include  []string     `yaml:"include"`
	Exclude  []string     `yaml:"exclude"`
	Output   OutputConfig `yaml:"output"`
}

// OutputConfig controls where expanded files are written
type OutputConfig struct {
	// Dir mirrors the input tree into a separate directory
	Dir string `yaml:"dir"`
	// Suffix writes `name.ax.go` next to `name.go` (inserted before the extension)
	Suffix string `yaml:"suffix"`
	// InPlace overwrites the input files
	InPlace bool `yaml:"in_place"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validDialects := map[string]bool{
		"":       true,
		"native": true,
		"go":     true,
	}
	if !validDialects[config.Dialect] {
		return fmt.Errorf("%w: invalid dialect '%s': must be one of native, go", ErrConfigValidation, config.Dialect)
	}

	if config.Output.InPlace && config.Output.Dir != "" {
		return fmt.Errorf("%w: output.in_place and output.dir are mutually exclusive", ErrConfigValidation)
	}

	if config.Output.InPlace && config.Output.Suffix != "" {
		return fmt.Errorf("%w: output.in_place and output.suffix are mutually exclusive", ErrConfigValidation)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

// applyDefaults fills in defaults for missing values
func applyDefaults(config *Config) {
	if config.Dialect == "" {
		config.Dialect = "native"
	}

	if config.InputDir == "" {
		config.InputDir = "."
	}

	if len(config.Include) == 0 {
		config.Include = []string{"*.go", "*.md"}
	}

	if !config.Output.InPlace && config.Output.Dir == "" && config.Output.Suffix == "" {
		config.Output.Dir = "generated"
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	// Pattern for ${VAR} format
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	// Pattern for $VAR format (word boundaries)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in path fields
func expandConfigEnvVars(config *Config) {
	config.InputDir = expandEnvVars(config.InputDir)
	config.Output.Dir = expandEnvVars(config.Output.Dir)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
