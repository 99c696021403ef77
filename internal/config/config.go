// Package config is the per-panel YAML file. Command line flags override it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

type Comms struct {
	Port      int    `yaml:"port"`
	Broadcast string `yaml:"broadcast"`
}

type Loop struct {
	Mode     game.Mode     `yaml:"mode"` // network | local | once
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Status struct {
	Addr string `yaml:"addr,omitempty"` // e.g. :8080, empty disables
}

type Strip struct {
	SPI    string `yaml:"spi,omitempty"` // "" picks the first port
	Pixels int    `yaml:"pixels,omitempty"`
}

type Printer struct {
	Device string `yaml:"device,omitempty"` // e.g. /dev/serial0
	Baud   int    `yaml:"baud,omitempty"`
}

type Config struct {
	Name    string         `yaml:"name"`
	Comms   Comms          `yaml:"comms"`
	Loop    Loop           `yaml:"loop"`
	StartOn []game.Trigger `yaml:"start_on"`
	Status  Status         `yaml:"status,omitempty"`

	// Pins maps a role ("button", "servo", "led3") to a GPIO name.
	Pins     map[string]string `yaml:"pins,omitempty"`
	Strip    Strip             `yaml:"strip,omitempty"`
	ADCPort  string            `yaml:"adc_port,omitempty"`
	Printer  Printer           `yaml:"printer,omitempty"`
	Stations []string          `yaml:"stations,omitempty"`
	Items    int               `yaml:"items,omitempty"`
	Hold     time.Duration     `yaml:"hold,omitempty"`
	Volts    float64           `yaml:"threshold_volts,omitempty"`
}

// Default is a network panel on the standard port that starts on RESET from
// anyone.
func Default(name string) *Config {
	return &Config{
		Name:    name,
		Comms:   Comms{Port: comms.DefaultPort, Broadcast: comms.DefaultBroadcast},
		Loop:    Loop{Mode: game.Network, Interval: game.DefaultInterval, Timeout: game.DefaultTimeout},
		StartOn: []game.Trigger{{Body: comms.Reset}},
	}
}

// Pin returns the configured GPIO for role, or def.
func (c *Config) Pin(role, def string) string {
	if p, ok := c.Pins[role]; ok && p != "" {
		return p
	}
	return def
}

// PinList resolves role0, role1, ... against defs.
func (c *Config) PinList(role string, defs []string) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = c.Pin(fmt.Sprintf("%s%d", role, i), d)
	}
	return out
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("config: name is empty")
	}
	if c.Comms.Port < 0 || c.Comms.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Comms.Port)
	}
	switch c.Loop.Mode {
	case game.Network, game.Local, game.Once:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Loop.Mode)
	}
	if c.Loop.Interval <= 0 {
		return fmt.Errorf("config: interval %s must be positive", c.Loop.Interval)
	}
	if c.Loop.Timeout < 0 {
		return fmt.Errorf("config: negative timeout %s", c.Loop.Timeout)
	}
	for i, t := range c.StartOn {
		if t.Body == "" {
			return fmt.Errorf("config: start_on[%d] has no body", i)
		}
	}
	return nil
}

// Load reads path over base. Fields missing from the file keep base's values.
func Load(path string, base *Config) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := *base
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
