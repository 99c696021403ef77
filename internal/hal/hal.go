// Package hal is the HAL 9000 panel: a red eye that dims as its two buttons
// are pressed. Holding both long enough shuts HAL down.
package hal

import (
	"fmt"
	"image/color"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
)

var ButtonPins = []string{"GPIO14", "GPIO15"}

const Pixels = 5

// Red levels of the eye by buttons pressed.
const (
	Bright = 250
	Dim    = 180
	Dimmer = 120
)

const DefaultHold = 3 * time.Second

type Options struct {
	Hold        time.Duration
	BlinkTimes  int
	BlinkPeriod time.Duration
}

func DefaultOptions() Options {
	return Options{Hold: DefaultHold, BlinkTimes: 3, BlinkPeriod: 300 * time.Millisecond}
}

type Game struct {
	buttons []gpio.PinIn
	strip   *hw.Strip
	opts    Options

	level     uint8
	holding   bool
	heldSince time.Duration
}

func New(buttons []gpio.PinIn, strip *hw.Strip, o Options) (*Game, error) {
	if len(buttons) != 2 {
		return nil, fmt.Errorf("hal: want 2 buttons, got %d", len(buttons))
	}
	if err := hw.Inputs(gpio.PullUp, buttons...); err != nil {
		return nil, err
	}
	return &Game{buttons: buttons, strip: strip, opts: o}, nil
}

func (g *Game) Name() string { return "hal" }

// Pressed counts the buttons held down.
func (g *Game) Pressed() int {
	n := 0
	for _, b := range g.buttons {
		if input.Pressed(b.Read(), true) {
			n++
		}
	}
	return n
}

// Level is the red brightness for n pressed buttons.
func Level(n int) uint8 {
	switch n {
	case 0:
		return Bright
	case 1:
		return Dim
	default:
		return Dimmer
	}
}

func (g *Game) show(level uint8) error {
	g.level = level
	g.strip.Fill(color.NRGBA{R: level, A: 255})
	return g.strip.Show()
}

func (g *Game) Begin(r *game.Round) error {
	g.holding = false
	return g.show(Level(g.Pressed()))
}

func (g *Game) Poll(r *game.Round) (bool, error) {
	n := g.Pressed()
	if l := Level(n); l != g.level {
		if err := g.show(l); err != nil {
			return false, err
		}
	}
	if n < len(g.buttons) {
		g.holding = false
		return false, nil
	}
	if !g.holding {
		g.holding = true
		g.heldSince = r.Elapsed()
		r.Logger().Debug().Msg("both buttons held")
	}
	return r.Elapsed()-g.heldSince >= g.opts.Hold, nil
}

func (g *Game) End(r *game.Round, outcome game.State) error {
	if outcome == game.Won {
		r.Logger().Info().Msg("I'm afraid. I'm afraid, Dave.")
		for i := 0; i < g.opts.BlinkTimes; i++ {
			if err := g.strip.Clear(); err != nil {
				return err
			}
			if err := hw.Sleep(r.Context(), g.opts.BlinkPeriod); err != nil {
				return err
			}
			if err := g.show(255); err != nil {
				return err
			}
			if err := hw.Sleep(r.Context(), g.opts.BlinkPeriod); err != nil {
				return err
			}
		}
	}
	return g.Clear()
}

func (g *Game) Clear() error {
	g.level = 0
	return g.strip.Clear()
}
