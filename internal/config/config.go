package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jensroland/lineblame/pkg/blame"
)

// Config is the contents of .lineblame.toml. Command-line flags override it.
type Config struct {
	Algorithm string `toml:"algorithm"`
	Color     *bool  `toml:"color"`
	Context   int    `toml:"context"`
	DB        string `toml:"db"`
	Workers   int    `toml:"workers"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Algorithm: "myers",
		Color:     nil,
		Context:   3,
		DB:        "",
		Workers:   4,
	}
}

// Read loads the config file at path. A missing file yields the defaults.
func Read(path string) (*Config, error) {
	defaultConfig := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig, err
	}
	config := Default()
	if err := toml.Unmarshal(file, config); err != nil {
		return defaultConfig, fmt.Errorf("parse %s: %w", path, err)
	}
	if config.Context < 0 {
		return defaultConfig, fmt.Errorf("%s: context must not be negative, got %d", path, config.Context)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if _, err := blame.ParseAlgorithm(config.Algorithm); err != nil {
		return defaultConfig, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Options converts the config into blame options.
func (c *Config) Options() (blame.Options, error) {
	a, err := blame.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return blame.Options{}, err
	}
	return blame.Options{Algorithm: a}, nil
}

// UseColor reports whether output should be colored, given whether the
// terminal supports it. An explicit color setting wins.
func (c *Config) UseColor(terminal bool) bool {
	if c.Color != nil {
		return *c.Color
	}
	return terminal
}
