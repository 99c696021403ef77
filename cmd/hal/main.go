// Command hal runs the HAL 9000 panel.
package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/hal"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/panel"
	"github.com/makerhqsac/wall-of-fortune/internal/status"
)

func main() {
	f := panel.Register(flag.CommandLine, "hal")
	hold := flag.Duration("hold", hal.DefaultHold, "how long both buttons must be held")
	flag.Parse()
	panel.SetupLogging(f.Debug)

	if err := run(f, *hold); err != nil {
		log.Fatal().Err(err).Msg("hal stopped")
	}
}

func run(f *panel.Flags, hold time.Duration) error {
	base := config.Default("hal")
	base.Strip.Pixels = hal.Pixels
	base.Hold = hal.DefaultHold
	cfg, err := f.Load(base)
	if err != nil {
		return err
	}
	if f.Set("hold") {
		cfg.Hold = hold
	}

	if err := hw.Init(); err != nil {
		return err
	}
	buttons, err := hw.InPins(cfg.PinList("button", hal.ButtonPins)...)
	if err != nil {
		return err
	}
	strip, err := hw.OpenStrip(cfg.Strip.SPI, cfg.Strip.Pixels)
	if err != nil {
		return err
	}
	defer strip.Halt()

	o := hal.DefaultOptions()
	o.Hold = cfg.Hold
	g, err := hal.New(buttons, strip, o)
	if err != nil {
		return err
	}

	p, err := panel.New(cfg)
	if err != nil {
		return err
	}
	if strip.Console {
		p.Diag(status.Diagnostic{Severity: status.Warn, Code: "STRIP.CONSOLE", Summary: "no SPI port, strip printed at the console"})
	}
	return p.Run(g)
}
