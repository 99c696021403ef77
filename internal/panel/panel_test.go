package panel

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := Register(fs, "hal")
	f.Config = filepath.Join(t.TempDir(), "hal.yaml")
	require.NoError(t, fs.Parse(args))
	return f
}

func TestFlagsOverrideFile(t *testing.T) {
	f := parse(t, "-timeout", "5s", "-local")
	require.NoError(t, os.WriteFile(f.Config, []byte("name: hal2\nloop:\n  timeout: 30s\n  interval: 20ms\ncomms:\n  port: 5000\n"), 0644))

	c, err := f.Load(config.Default("hal"))
	require.NoError(t, err)
	assert.Equal(t, "hal2", c.Name, "flag not given, file wins")
	assert.Equal(t, 5*time.Second, c.Loop.Timeout)
	assert.Equal(t, 20*time.Millisecond, c.Loop.Interval)
	assert.Equal(t, 5000, c.Comms.Port)
	assert.Equal(t, game.Local, c.Loop.Mode)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	f := parse(t, "-name", "hal_b", "-once")
	base := config.Default("hal")
	c, err := f.Load(base)
	require.NoError(t, err)
	assert.Equal(t, "hal_b", c.Name)
	assert.Equal(t, game.Once, c.Loop.Mode)
	assert.Equal(t, "hal", base.Name, "base untouched")
}

func TestExplicitMissingFileFails(t *testing.T) {
	f := parse(t, "-config", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := f.Load(config.Default("hal"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidConfig(t *testing.T) {
	f := parse(t, "-interval", "0s")
	_, err := f.Load(config.Default("hal"))
	assert.Error(t, err)
}

type oneShot struct{ begun, ended, cleared int }

func (g *oneShot) Name() string { return "one_shot" }
func (g *oneShot) Begin(*game.Round) error { g.begun++; return nil }
func (g *oneShot) Poll(*game.Round) (bool, error) { return true, nil }
func (g *oneShot) End(*game.Round, game.State) error { g.ended++; return nil }
func (g *oneShot) Clear() error { g.cleared++; return nil }

func loopback(name string) *config.Config {
	c := config.Default(name)
	c.Comms.Port = 0
	c.Comms.Broadcast = "127.0.0.1"
	c.Loop.Interval = time.Millisecond
	return c
}

func TestRunOnce(t *testing.T) {
	c := loopback("one_shot")
	c.Loop.Mode = game.Once
	p, err := NewContext(context.Background(), c)
	require.NoError(t, err)

	g := &oneShot{}
	require.NoError(t, p.Run(g))
	assert.Equal(t, 1, g.begun)
	assert.Equal(t, 1, g.ended)
	assert.Equal(t, 1, g.cleared)
	snap := p.Hub.Snapshot()
	assert.Equal(t, 1, snap.Won)
	assert.Equal(t, game.Idle, snap.State)
}

func TestRunStopsOnCancel(t *testing.T) {
	p, err := NewContext(context.Background(), loopback("idle"))
	require.NoError(t, err)
	time.AfterFunc(20*time.Millisecond, p.Stop)

	g := &oneShot{}
	require.NoError(t, p.Run(g), "shutdown is not an error")
	assert.Zero(t, g.begun, "no trigger arrived")
	assert.Equal(t, 1, g.cleared)
}

func TestRunStartsOnTrigger(t *testing.T) {
	p, err := NewContext(context.Background(), loopback("hal"))
	require.NoError(t, err)
	admin, err := comms.Begin("admin", comms.WithPort(0), comms.WithBroadcast("127.0.0.1"))
	require.NoError(t, err)
	defer admin.Close()

	port := p.Channel.Port()
	done := make(chan error, 1)
	go func() { done <- p.Run(&oneShot{}) }()

	assert.Eventually(t, func() bool {
		_ = admin.SendTo(comms.Reset, port)
		return p.Hub.Snapshot().Won > 0
	}, 2*time.Second, 20*time.Millisecond)
	p.Stop()
	require.NoError(t, <-done)
}

func TestLoopAddsStartTrigger(t *testing.T) {
	c := loopback("zoltar")
	c.StartOn = []game.Trigger{{Body: comms.Coin}}
	p, err := NewContext(context.Background(), c)
	require.NoError(t, err)
	defer p.Close()

	l := p.Loop(&oneShot{})
	assert.Equal(t, []game.Trigger{{Body: "COIN"}, {Body: "START:zoltar"}}, l.Triggers)
	assert.Len(t, c.StartOn, 1, "config untouched")
	assert.Equal(t, time.Millisecond, l.Interval)
	assert.Same(t, p.Events, l.Events)
}

func TestRelayOnlyStation(t *testing.T) {
	c := loopback("hal")
	c.StartOn = []game.Trigger{}
	p, err := NewContext(context.Background(), c)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, []game.Trigger{{Body: "START:hal"}}, p.Loop(&oneShot{}).Triggers)
}
