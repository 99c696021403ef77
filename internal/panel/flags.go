package panel

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

// Flags are the options every panel binary takes.
type Flags struct {
	Config    string
	Name      string
	Port      int
	Broadcast string
	Debug     bool
	Local     bool
	Once      bool
	Addr      string
	Timeout   time.Duration
	Interval  time.Duration

	fs *flag.FlagSet
}

// Register adds the common flags to fs with defaults for the named panel.
func Register(fs *flag.FlagSet, name string) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", name+".yaml", "path to the panel's YAML config")
	fs.StringVar(&f.Name, "name", name, "panel name, the origin of every message sent")
	fs.IntVar(&f.Port, "port", 43822, "broadcast port")
	fs.StringVar(&f.Broadcast, "broadcast", "255.255.255.255", "broadcast address")
	fs.BoolVar(&f.Debug, "debug", false, "debug logging")
	fs.BoolVar(&f.Local, "local", false, "local mode: play round after round without waiting for a trigger")
	fs.BoolVar(&f.Once, "once", false, "play a single round and exit")
	fs.StringVar(&f.Addr, "addr", "", "status feed listen address, e.g. :8080")
	fs.DurationVar(&f.Timeout, "timeout", game.DefaultTimeout, "round time limit, 0 for none")
	fs.DurationVar(&f.Interval, "interval", game.DefaultInterval, "poll interval")
	return f
}

// Set reports whether the flag was given on the command line.
func (f *Flags) Set(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// Apply copies the flags given on the command line over c.
func (f *Flags) Apply(c *config.Config) {
	if f.Set("name") {
		c.Name = f.Name
	}
	if f.Set("port") {
		c.Comms.Port = f.Port
	}
	if f.Set("broadcast") {
		c.Comms.Broadcast = f.Broadcast
	}
	if f.Set("addr") {
		c.Status.Addr = f.Addr
	}
	if f.Set("timeout") {
		c.Loop.Timeout = f.Timeout
	}
	if f.Set("interval") {
		c.Loop.Interval = f.Interval
	}
	switch {
	case f.Once:
		c.Loop.Mode = game.Once
	case f.Local:
		c.Loop.Mode = game.Local
	}
}

// Load reads the config file over base, warning and keeping base when there
// is no file, then applies the command line.
func (f *Flags) Load(base *config.Config) (*config.Config, error) {
	c, err := config.Load(f.Config, base)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if f.Set("config") {
			return nil, err
		}
		log.Warn().Str("path", f.Config).Msg("no config file; using defaults")
		cp := *base
		c = &cp
	case err != nil:
		return nil, err
	}
	f.Apply(c)
	return c, c.Validate()
}

// SetupLogging writes human readable logs to stderr.
func SetupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
