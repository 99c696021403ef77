package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

func TestDefault(t *testing.T) {
	c := Default("hal")
	require.NoError(t, c.Validate())
	assert.Equal(t, 43822, c.Comms.Port)
	assert.Equal(t, "255.255.255.255", c.Comms.Broadcast)
	assert.Equal(t, game.Network, c.Loop.Mode)
	assert.Equal(t, []game.Trigger{{Body: "RESET"}}, c.StartOn)
}

func TestLoadOverBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoltar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: zoltar
loop:
  mode: local
  timeout: 90s
start_on:
  - origin: admin
    body: COIN
pins:
  button: GPIO6
printer:
  device: /dev/serial0
  baud: 19200
`), 0644))

	c, err := Load(path, Default("ignored"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "zoltar", c.Name)
	assert.Equal(t, game.Local, c.Loop.Mode)
	assert.Equal(t, 90*time.Second, c.Loop.Timeout)
	assert.Equal(t, game.DefaultInterval, c.Loop.Interval, "kept from base")
	assert.Equal(t, 43822, c.Comms.Port, "kept from base")
	assert.Equal(t, []game.Trigger{{Origin: "admin", Body: "COIN"}}, c.StartOn)
	assert.Equal(t, "GPIO6", c.Pin("button", "GPIO5"))
	assert.Equal(t, "GPIO19", c.Pin("servo", "GPIO19"))
	assert.Equal(t, 19200, c.Printer.Baud)

	c.Pins["eye1"] = "GPIO4"
	assert.Equal(t, []string{"GPIO17", "GPIO4"}, c.PinList("eye", []string{"GPIO17", "GPIO27"}))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Default("x"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loop: [1, 2"), 0644))
	_, err = Load(path, Default("x"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	c := Default("relay")
	c.Stations = []string{"color_match", "hal"}
	c.Loop.Timeout = 10 * time.Minute
	require.NoError(t, Save(path, c))

	got, err := Load(path, Default(""))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"name":     func(c *Config) { c.Name = "" },
		"port":     func(c *Config) { c.Comms.Port = 70000 },
		"mode":     func(c *Config) { c.Loop.Mode = "forever" },
		"interval": func(c *Config) { c.Loop.Interval = 0 },
		"timeout":  func(c *Config) { c.Loop.Timeout = -time.Second },
		"trigger":  func(c *Config) { c.StartOn = []game.Trigger{{Origin: "admin"}} },
	}
	for name, mutate := range tests {
		c := Default("panel")
		mutate(c)
		assert.Error(t, c.Validate(), name)
	}
}
