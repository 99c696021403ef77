// Command zoltar runs the fortune teller.
package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/fortune"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/panel"
	"github.com/makerhqsac/wall-of-fortune/internal/status"
	"github.com/makerhqsac/wall-of-fortune/internal/zoltar"
)

func main() {
	f := panel.Register(flag.CommandLine, "zoltar")
	flag.Parse()
	panel.SetupLogging(f.Debug)

	if err := run(f); err != nil {
		log.Fatal().Err(err).Msg("zoltar stopped")
	}
}

func run(f *panel.Flags) error {
	base := config.Default("zoltar")
	base.StartOn = zoltar.Triggers
	base.Printer = config.Printer{Device: "/dev/serial0", Baud: 19200}
	cfg, err := f.Load(base)
	if err != nil {
		return err
	}

	if err := hw.Init(); err != nil {
		return err
	}
	eyes, err := hw.OutPins(cfg.PinList("eye", []string{zoltar.LeftEyePin, zoltar.RightEyePin})...)
	if err != nil {
		return err
	}
	servoPin, err := hw.Pin(cfg.Pin("servo", zoltar.ServoPin))
	if err != nil {
		return err
	}
	button, err := hw.Pin(cfg.Pin("button", zoltar.ButtonPin))
	if err != nil {
		return err
	}

	p, err := panel.New(cfg)
	if err != nil {
		return err
	}

	var printer *fortune.Printer
	if dev := cfg.Printer.Device; dev != "" {
		tty, err := fortune.OpenSerial(dev, cfg.Printer.Baud)
		if err != nil {
			p.Diag(status.Diagnostic{Severity: status.Warn, Code: "PRINTER.OPEN", Summary: "no printer, fortunes are only logged", Detail: err.Error()})
		} else {
			defer tty.Close()
			printer = fortune.NewPrinter(tty)
		}
	}

	g := zoltar.New(eyes, hw.NewServo(servoPin, zoltar.MinAngle, zoltar.MaxAngle), printer, zoltar.DefaultOptions())
	if err := p.Watch("button", button); err != nil {
		p.Close()
		return err
	}
	return p.Run(g)
}
