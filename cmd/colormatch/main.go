// Command colormatch runs the colour match panel: set the eight switches to
// the target colour to win a prize.
package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/colormatch"
	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/panel"
	"github.com/makerhqsac/wall-of-fortune/internal/status"
)

func main() {
	f := panel.Register(flag.CommandLine, "color_match")
	target := flag.String("target", "", "fixed target colour for testing: r,g,b or an 8 bit rrrgggbb value")
	clearOnExit := flag.Bool("clear", false, "clear the strip on exit")
	flag.Parse()
	panel.SetupLogging(f.Debug)

	if err := run(f, *target, *clearOnExit); err != nil {
		log.Fatal().Err(err).Msg("color match stopped")
	}
}

func run(f *panel.Flags, target string, clearOnExit bool) error {
	base := config.Default("color_match")
	base.Strip.Pixels = 2
	base.Items = 1
	cfg, err := f.Load(base)
	if err != nil {
		return err
	}

	o := colormatch.DefaultOptions()
	o.Items = cfg.Items
	o.ClearOnExit = clearOnExit
	if target != "" {
		c, err := colormatch.ParseColor(target)
		if err != nil {
			return err
		}
		o.Target = &c
		log.Info().Stringer("target", c).Msg("fixed target")
	}

	if err := hw.Init(); err != nil {
		return err
	}
	red, err := hw.InPins(cfg.PinList("red", colormatch.RedPins)...)
	if err != nil {
		return err
	}
	green, err := hw.InPins(cfg.PinList("green", colormatch.GreenPins)...)
	if err != nil {
		return err
	}
	blue, err := hw.InPins(cfg.PinList("blue", colormatch.BluePins)...)
	if err != nil {
		return err
	}
	motorPins, err := hw.OutPins(cfg.Pin("motor_dir", colormatch.MotorDirPin), cfg.Pin("motor_step", colormatch.MotorStepPin))
	if err != nil {
		return err
	}
	strip, err := hw.OpenStrip(cfg.Strip.SPI, cfg.Strip.Pixels)
	if err != nil {
		return err
	}
	defer strip.Halt()

	g, err := colormatch.New(colormatch.Switches{Red: red, Green: green, Blue: blue}, strip, hw.NewMotor(motorPins[0], motorPins[1]), o)
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
