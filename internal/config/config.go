// Package config loads the simulator and window settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/robovac/internal/sim"
)

// Config is the full application configuration. Simulation keys sit at the
// top level next to the room, robot and window sections.
type Config struct {
	sim.Config `yaml:",inline"`

	Window WindowConfig `yaml:"window"`
}

// WindowConfig sizes the GUI window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // Dp
	Height int    `yaml:"height"` // Dp
}

// Defaults returns a config with every field set.
func Defaults() *Config {
	return &Config{
		Config: sim.DefaultConfig(),
		Window: WindowConfig{
			Title:  "Robot Vacuum Simulator",
			Width:  1400,
			Height: 800,
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are used.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
