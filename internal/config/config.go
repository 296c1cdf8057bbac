package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings of the frag tool, read from a YAML file and then
// overridden by command-line flags.
type Config struct {
	Store string `yaml:"store"` // store DSN, e.g. sqlite:fragments.db
	Env   string `yaml:"env"`   // YAML file seeding the environment
	Color string `yaml:"color"` // auto, always or never
}

func Default() *Config {
	return &Config{Store: "dir:.", Color: "auto"}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.Store == "" {
		return fmt.Errorf("store must not be empty")
	}
	return nil
}

// LoadEnv reads a YAML mapping of variable names to values.
func LoadEnv(path string) (map[string]any, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	vars := map[string]any{}
	if err := yaml.Unmarshal(d, &vars); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return vars, nil
}
