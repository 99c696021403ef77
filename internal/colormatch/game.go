// Package colormatch is the colour match panel: eight switches set a 3/3/2
// bit colour that has to equal a random target.
package colormatch

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
)

// Default wiring, most significant bit first.
var (
	RedPins   = []string{"GPIO22", "GPIO23", "GPIO27"}
	GreenPins = []string{"GPIO6", "GPIO5", "GPIO12"}
	BluePins  = []string{"GPIO13", "GPIO20"}
)

const (
	MotorDirPin  = "GPIO26"
	MotorStepPin = "GPIO19"
)

// Strip pixels.
const (
	PixelCurrent = 0
	PixelTarget  = 1
)

// Switches are the toggles for each channel, most significant bit first.
type Switches struct {
	Red   []gpio.PinIn
	Green []gpio.PinIn
	Blue  []gpio.PinIn
}

func (s Switches) all() []gpio.PinIn {
	out := append([]gpio.PinIn{}, s.Red...)
	out = append(out, s.Green...)
	return append(out, s.Blue...)
}

func readBits(pins []gpio.PinIn) uint8 {
	var v uint8
	for _, p := range pins {
		v <<= 1
		if input.Pressed(p.Read(), true) {
			v |= 1
		}
	}
	return v
}

// Read samples every switch; a closed switch is a 1.
func (s Switches) Read() Color {
	return NewColor(readBits(s.Red), readBits(s.Green), readBits(s.Blue))
}

type Options struct {
	// Target fixes the goal instead of rolling one.
	Target *Color
	// Items dispensed on a win.
	Items       int
	BlinkTimes  int
	BlinkPeriod time.Duration
	Rand        *rand.Rand
	// ClearOnExit blanks the strip on shutdown; otherwise it stays lit.
	ClearOnExit bool
}

func DefaultOptions() Options {
	return Options{
		Items:       1,
		BlinkTimes:  5,
		BlinkPeriod: 200 * time.Millisecond,
	}
}

type Game struct {
	switches Switches
	strip    *hw.Strip
	motor    *hw.Motor
	opts     Options
	rnd      *rand.Rand

	target  Color
	current Color
	shown   bool
}

// New wires the game. motor may be nil on panels without a dispenser.
func New(sw Switches, strip *hw.Strip, motor *hw.Motor, o Options) (*Game, error) {
	if n := len(sw.Red) + len(sw.Green) + len(sw.Blue); n != RedBits+GreenBits+BlueBits {
		return nil, fmt.Errorf("colormatch: want %d switches, got %d", RedBits+GreenBits+BlueBits, n)
	}
	if strip.Len() < 2 {
		return nil, fmt.Errorf("colormatch: strip needs 2 pixels, has %d", strip.Len())
	}
	if err := hw.Inputs(gpio.PullUp, sw.all()...); err != nil {
		return nil, err
	}
	rnd := o.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{switches: sw, strip: strip, motor: motor, opts: o, rnd: rnd}, nil
}

func (g *Game) Name() string { return "color_match" }

func (g *Game) Target() Color  { return g.target }
func (g *Game) Current() Color { return g.current }

// roll picks a target that differs from what the switches show right now.
func (g *Game) roll(current Color) Color {
	for {
		t := FromBits(uint8(g.rnd.Intn(256)))
		if t != current {
			return t
		}
	}
}

func (g *Game) Begin(r *game.Round) error {
	g.current = g.switches.Read()
	if g.opts.Target != nil {
		g.target = *g.opts.Target
	} else {
		g.target = g.roll(g.current)
	}
	r.Logger().Info().Stringer("target", g.target).Stringer("switches", g.current).Msg("new target")

	g.strip.Set(PixelTarget, g.target.NRGBA())
	g.strip.Set(PixelCurrent, g.current.NRGBA())
	g.shown = true
	return g.strip.Show()
}

func (g *Game) Poll(r *game.Round) (bool, error) {
	c := g.switches.Read()
	if c != g.current || !g.shown {
		g.current = c
		g.strip.Set(PixelCurrent, c.NRGBA())
		if err := g.strip.Show(); err != nil {
			return false, err
		}
		g.shown = true
		r.Logger().Debug().Stringer("switches", c).Msg("switches changed")
	}
	return g.current == g.target, nil
}

func (g *Game) End(r *game.Round, outcome game.State) error {
	g.shown = false
	if outcome != game.Won {
		r.Logger().Info().Stringer("target", g.target).Msg("out of time")
		return g.strip.Clear()
	}
	r.Logger().Info().Stringer("color", g.target).Msg("WINNER WINNER!")
	if err := g.blink(r); err != nil {
		return err
	}
	if g.motor != nil {
		if err := g.motor.Dispense(r.Context(), g.opts.Items); err != nil {
			return fmt.Errorf("colormatch: dispense: %w", err)
		}
	}
	return g.strip.Clear()
}

func (g *Game) blink(r *game.Round) error {
	on := g.target.NRGBA()
	off := color.NRGBA{A: 255}
	for i := 0; i < g.opts.BlinkTimes; i++ {
		for _, c := range []color.NRGBA{off, on} {
			g.strip.Fill(c)
			if err := g.strip.Show(); err != nil {
				return err
			}
			if err := hw.Sleep(r.Context(), g.opts.BlinkPeriod); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) Clear() error {
	if g.motor != nil {
		if err := g.motor.Stop(); err != nil {
			return err
		}
	}
	if !g.opts.ClearOnExit {
		return nil
	}
	return g.strip.Clear()
}
