package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	yamlFile = "config.yaml"
	tomlFile = "config.toml"
)

type Config struct {
	TasksFile   string `yaml:"tasks_file,omitempty" toml:"tasks_file"`
	SearchLimit int    `yaml:"search_limit,omitempty" toml:"search_limit"`
}

// Keys lists the settings accepted by Set.
var Keys = []string{"tasks_file", "search_limit"}

// Load reads config.yaml from dataDir, falling back to config.toml. A
// directory with neither yields an empty Config.
func Load(dataDir string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dataDir, yamlFile))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return &cfg, cfg.validate()
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.DecodeFile(filepath.Join(dataDir, tomlFile), &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, cfg.validate()
}

// Save always writes YAML.
func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, yamlFile)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Set assigns a setting by its file key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "tasks_file":
		c.TasksFile = strings.TrimSpace(value)
	case "search_limit":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("search_limit must be an integer: %w", err)
		}
		c.SearchLimit = n
	default:
		return fmt.Errorf("unknown config key %q: must be one of %s", key, strings.Join(Keys, ", "))
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.SearchLimit < 0 {
		return fmt.Errorf("search_limit must not be negative, got %d", c.SearchLimit)
	}
	return nil
}
