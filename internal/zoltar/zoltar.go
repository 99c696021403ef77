// Package zoltar is the fortune teller: the head sweeps and the eyes glow
// until the player hits the button, then Zoltar prints a fortune.
package zoltar

import (
	"fmt"
	"math/rand"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/fortune"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
	"github.com/makerhqsac/wall-of-fortune/internal/motion"
)

// Default wiring.
const (
	ServoPin    = "GPIO19"
	ButtonPin   = "GPIO5"
	LeftEyePin  = "GPIO17"
	RightEyePin = "GPIO27"
)

const (
	MinAngle     = 0
	MaxAngle     = 179
	InitialAngle = 179
)

// Triggers start a round on a reset or a coin from any panel.
var Triggers = []game.Trigger{{Body: comms.Reset}, {Body: comms.Coin}}

type Options struct {
	// Sweep drives the head while running, looped.
	Sweep       motion.Envelope
	BlinkTimes  int
	BlinkPeriod time.Duration
	Fortunes    []string
	Rand        *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		Sweep:       motion.Sweep(InitialAngle, MinAngle, 100, 0.5),
		BlinkTimes:  2,
		BlinkPeriod: time.Second,
		Fortunes:    fortune.All,
	}
}

type Game struct {
	eyes    []gpio.PinOut
	servo   *hw.Servo
	printer *fortune.Printer
	opts    Options
	rnd     *rand.Rand

	stopped bool
	last    string
}

// New wires the head. printer may be nil; the fortune is then only logged.
func New(eyes []gpio.PinOut, servo *hw.Servo, printer *fortune.Printer, o Options) *Game {
	rnd := o.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{eyes: eyes, servo: servo, printer: printer, opts: o, rnd: rnd}
}

func (g *Game) Name() string { return "zoltar" }

// Fortune is the last fortune told.
func (g *Game) Fortune() string { return g.last }

func (g *Game) Begin(r *game.Round) error {
	g.stopped = false
	r.Logger().Info().Msg("Finally, a Zoltar!")
	if err := hw.All(gpio.High, g.eyes...); err != nil {
		return err
	}
	return g.servo.SetAngle(InitialAngle)
}

func (g *Game) Poll(r *game.Round) (bool, error) {
	if g.stopped {
		return true, nil
	}
	return false, g.servo.SetAngle(g.opts.Sweep.Loop(r.Elapsed().Seconds()))
}

func (g *Game) HandleEvent(r *game.Round, ev input.Event) {
	if ev.Kind == input.Press && !g.stopped {
		r.Logger().Info().Float64("angle", g.servo.Angle()).Msg("button detected")
		g.stopped = true
	}
}

func (g *Game) End(r *game.Round, outcome game.State) error {
	if outcome != game.Won {
		return g.Clear()
	}
	if err := hw.All(gpio.Low, g.eyes...); err != nil {
		return err
	}
	if err := hw.Sleep(r.Context(), g.opts.BlinkPeriod); err != nil {
		return err
	}
	if err := hw.Blink(r.Context(), g.opts.BlinkTimes, g.opts.BlinkPeriod, g.eyes...); err != nil {
		return err
	}
	g.last = fortune.Pick(g.rnd, g.opts.Fortunes)
	r.Logger().Info().Str("fortune", g.last).Msg("fortune told")
	if g.printer != nil && g.last != "" {
		if err := g.printer.Fortune(g.last); err != nil {
			return fmt.Errorf("zoltar: %w", err)
		}
	}
	return g.Clear()
}

// Clear turns the eyes off and lets the head go limp.
func (g *Game) Clear() error {
	if err := hw.All(gpio.Low, g.eyes...); err != nil {
		return err
	}
	return g.servo.Halt()
}
