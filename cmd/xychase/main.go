// Command xychase runs the map panel: steer the magnet along the lit route
// before time runs out.
package main

import (
	"flag"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/panel"
	"github.com/makerhqsac/wall-of-fortune/internal/xychase"
)

func main() {
	f := panel.Register(flag.CommandLine, "xy_chase")
	flag.Parse()
	panel.SetupLogging(f.Debug)

	if err := run(f); err != nil {
		log.Fatal().Err(err).Msg("xy chase stopped")
	}
}

func run(f *panel.Flags) error {
	base := config.Default("xy_chase")
	base.Loop.Timeout = xychase.DefaultTimeout
	base.Volts = xychase.DefaultThreshold
	cfg, err := f.Load(base)
	if err != nil {
		return err
	}

	if err := hw.Init(); err != nil {
		return err
	}
	leds, err := hw.OutPins(cfg.PinList("led", xychase.LEDPins)...)
	if err != nil {
		return err
	}
	hall, err := hw.Pin(cfg.Pin("hall", xychase.HallPin))
	if err != nil {
		return err
	}
	port, err := spireg.Open(cfg.ADCPort)
	if err != nil {
		return err
	}
	defer port.Close()
	adc, err := hw.NewMCP3008(port)
	if err != nil {
		return err
	}

	o := xychase.DefaultOptions()
	o.Threshold = cfg.Volts
	g, err := xychase.New(xychase.Locations(leds), adc, o)
	if err != nil {
		return err
	}

	p, err := panel.New(cfg)
	if err != nil {
		return err
	}
	if err := p.Watch("hall", hall); err != nil {
		p.Close()
		return err
	}
	return p.Run(g)
}
