package aht20

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The AHT20 ships with a factory-fixed 7-bit address; on our boards it sits
// on Linux bus 1.
const (
	DefaultBus          = "1"
	DefaultAddress byte = 0x38
)

// Config carries optional overrides for the sensor location. Zero values are
// replaced with defaults by Start.
type Config struct {
	Bus     string `yaml:"bus"`
	Address byte   `yaml:"address"`
}

func (c Config) withDefaults() Config {
	if c.Bus == "" {
		c.Bus = DefaultBus
	}
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	return c
}

// LoadConfig reads sensor configuration from a YAML file. Fields missing
// from the file keep their zero value and are defaulted later.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}
