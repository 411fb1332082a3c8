package yuzu

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the Yuzu front-end configuration
type Config struct {
	Scope  ScopeConfig  `yaml:"scope"`
	Output OutputConfig `yaml:"output"`
	Eval   EvalConfig   `yaml:"eval"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ScopeConfig declares the names visible to a parse: locals, the enclosing
// instance's members and the superclass members.
type ScopeConfig struct {
	Locals []string `yaml:"locals"`

	// PromotedTypes maps a local to its flow-promoted type name.
	PromotedTypes map[string]string `yaml:"promoted_types"`

	// InstanceContext makes unresolved identifiers implicit this-accesses.
	InstanceContext bool `yaml:"instance_context"`

	Members      MemberScope `yaml:"members"`
	SuperMembers MemberScope `yaml:"super_members"`
}

// MemberScope lists the resolvable members of one receiver scope. Fields are
// shorthand for a name with both a getter and a setter.
type MemberScope struct {
	Holder  string   `yaml:"holder"`
	Fields  []string `yaml:"fields"`
	Getters []string `yaml:"getters"`
	Setters []string `yaml:"setters"`
}

// OutputConfig represents diagnostic and tree output settings
type OutputConfig struct {
	// Format selects the program dump format: text, tree or json.
	Format string `yaml:"format"`
	// Color selects colored diagnostics: auto, always or never.
	Color string `yaml:"color"`
}

// EvalConfig seeds the reference evaluator
type EvalConfig struct {
	// Variables pre-binds program variables before evaluation.
	Variables map[string]any `yaml:"variables"`
	// Trace prints the access trace after evaluation.
	Trace bool `yaml:"trace"`
}

// WatchConfig represents watch-mode settings
type WatchConfig struct {
	// Extensions are the file suffixes recompiled on change.
	Extensions []string `yaml:"extensions"`
	// Debounce is the settle time after a burst of file events.
	Debounce time.Duration `yaml:"debounce"`
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

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	// Expand environment variables
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	// Validate output format
	if config.Output.Format != "" {
		validFormats := map[string]bool{
			"text": true,
			"tree": true,
			"json": true,
		}
		if !validFormats[config.Output.Format] {
			return fmt.Errorf("%w: output.format '%s' is invalid: must be one of text, tree, json", ErrConfigValidation, config.Output.Format)
		}
	}

	// Validate color mode
	if config.Output.Color != "" {
		validColors := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColors[config.Output.Color] {
			return fmt.Errorf("%w: output.color '%s' is invalid: must be one of auto, always, never", ErrConfigValidation, config.Output.Color)
		}
	}

	// Promoted types only make sense for declared locals
	locals := map[string]bool{}
	for _, name := range config.Scope.Locals {
		locals[name] = true
	}

	for name := range config.Scope.PromotedTypes {
		if !locals[name] {
			return fmt.Errorf("%w: scope.promoted_types refers to '%s', which is not in scope.locals", ErrConfigValidation, name)
		}
	}

	if config.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must be >= 0, got %s", ErrConfigValidation, config.Watch.Debounce)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Scope: ScopeConfig{
			Locals:        []string{},
			PromotedTypes: map[string]string{},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Eval: EvalConfig{
			Variables: map[string]any{},
		},
		Watch: WatchConfig{
			Extensions: []string{".yz"},
			Debounce:   200 * time.Millisecond,
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}

	if config.Output.Color == "" {
		config.Output.Color = "auto"
	}

	if config.Scope.PromotedTypes == nil {
		config.Scope.PromotedTypes = map[string]string{}
	}

	if config.Eval.Variables == nil {
		config.Eval.Variables = map[string]any{}
	}

	if len(config.Watch.Extensions) == 0 {
		config.Watch.Extensions = []string{".yz"}
	}

	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = 200 * time.Millisecond
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
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

// expandConfigEnvVars expands environment variables in string-valued
// configuration entries
func expandConfigEnvVars(config *Config) {
	// Expand pre-bound evaluator variables
	for name, value := range config.Eval.Variables {
		if s, ok := value.(string); ok {
			config.Eval.Variables[name] = expandEnvVars(s)
		}
	}

	config.Scope.Members.Holder = expandEnvVars(config.Scope.Members.Holder)
	config.Scope.SuperMembers.Holder = expandEnvVars(config.Scope.SuperMembers.Holder)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// HasMembers reports whether the scope declares any resolvable member.
func (s *MemberScope) HasMembers() bool {
	return len(s.Fields) > 0 || len(s.Getters) > 0 || len(s.Setters) > 0
}
