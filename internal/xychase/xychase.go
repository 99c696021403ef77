// Package xychase is the map panel: players steer a magnet under the board
// from port to port along a route, guided by one lit location at a time.
package xychase

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/hw"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
)

// Names of the ports on the board, in LED and ADC channel order.
var Names = []string{
	"NewAmsterdam",
	"Lima",
	"BuenosAires",
	"London",
	"Venice",
	"Capetown",
	"Ceylon",
}

// LEDPins are the default GPIOs for each location's lamp.
var LEDPins = []string{"GPIO25", "GPIO5", "GPIO6", "GPIO12", "GPIO13", "GPIO19", "GPIO26"}

// HallPin carries the hall sensor under the start port.
const HallPin = "GPIO17"

// Routes visit three neighbouring ports, one route per starting port.
var Routes = [][]int{
	{0, 1, 2},
	{1, 2, 3},
	{2, 3, 4},
	{3, 4, 5},
	{4, 5, 6},
	{5, 6, 0},
	{6, 0, 1},
}

const (
	DefaultThreshold = 3.0
	DefaultTimeout   = 60 * time.Second
)

// ADC samples the hall sensor voltage at a location.
type ADC interface {
	Volts(ch int) (float64, error)
}

type Location struct {
	Name    string
	LED     gpio.PinOut
	Channel int
}

// Locations pairs Names with leds; the ADC channel is the index.
func Locations(leds []gpio.PinOut) []Location {
	out := make([]Location, 0, len(leds))
	for i, l := range leds {
		name := fmt.Sprintf("location%d", i)
		if i < len(Names) {
			name = Names[i]
		}
		out = append(out, Location{Name: name, LED: l, Channel: i})
	}
	return out
}

type Options struct {
	// Threshold in volts; a reading above it means the magnet is there.
	Threshold   float64
	Routes      [][]int
	BlinkTimes  int
	BlinkPeriod time.Duration
}

func DefaultOptions() Options {
	return Options{
		Threshold:   DefaultThreshold,
		Routes:      Routes,
		BlinkTimes:  3,
		BlinkPeriod: 250 * time.Millisecond,
	}
}

type Game struct {
	locs []Location
	adc  ADC
	opts Options

	route int
	index int
	done  bool
}

func New(locs []Location, adc ADC, o Options) (*Game, error) {
	if len(o.Routes) == 0 {
		return nil, fmt.Errorf("xychase: no routes")
	}
	for i, r := range o.Routes {
		if len(r) == 0 {
			return nil, fmt.Errorf("xychase: route %d is empty", i)
		}
		for _, l := range r {
			if l < 0 || l >= len(locs) {
				return nil, fmt.Errorf("xychase: route %d visits location %d of %d", i, l, len(locs))
			}
		}
	}
	return &Game{locs: locs, adc: adc, opts: o}, nil
}

func (g *Game) Name() string { return "xy_chase" }

// Route is the index of the route being played or next up.
func (g *Game) Route() int { return g.route }

// Current is the location the magnet has to reach next.
func (g *Game) Current() Location {
	return g.locs[g.opts.Routes[g.route][g.index]]
}

func (g *Game) leds() []gpio.PinOut {
	out := make([]gpio.PinOut, len(g.locs))
	for i, l := range g.locs {
		out[i] = l.LED
	}
	return out
}

// light turns on only the current location.
func (g *Game) light() error {
	if err := hw.All(gpio.Low, g.leds()...); err != nil {
		return err
	}
	return g.Current().LED.Out(gpio.High)
}

func (g *Game) Begin(r *game.Round) error {
	g.index = 0
	g.done = false
	r.Logger().Info().Int("route", g.route).Str("from", g.Current().Name).Msg("new route")
	return g.light()
}

// advance moves along the route and reports whether it is complete.
func (g *Game) advance(r *game.Round) (bool, error) {
	if g.done {
		return true, nil
	}
	reached := g.Current().Name
	g.index++
	if g.index >= len(g.opts.Routes[g.route]) {
		g.index = len(g.opts.Routes[g.route]) - 1
		g.done = true
		r.Logger().Info().Str("location", reached).Msg("route complete")
		return true, nil
	}
	r.Logger().Info().Str("location", reached).Str("next", g.Current().Name).Msg("location reached")
	return false, g.light()
}

func (g *Game) Poll(r *game.Round) (bool, error) {
	if g.done {
		return true, nil
	}
	loc := g.Current()
	v, err := g.adc.Volts(loc.Channel)
	if err != nil {
		return false, fmt.Errorf("xychase: read %s: %w", loc.Name, err)
	}
	if v <= g.opts.Threshold {
		return false, nil
	}
	return g.advance(r)
}

// HandleEvent advances on a hall sensor press. The win is reported by the
// next Poll.
func (g *Game) HandleEvent(r *game.Round, ev input.Event) {
	if ev.Kind != input.Press {
		return
	}
	if _, err := g.advance(r); err != nil {
		r.Logger().Warn().Err(err).Msg("light location")
	}
}

// End moves to the next route whatever the outcome, wrapping after the last.
func (g *Game) End(r *game.Round, outcome game.State) error {
	g.route = (g.route + 1) % len(g.opts.Routes)
	g.index = 0
	g.done = false
	if outcome == game.Won {
		r.Logger().Info().Msg("winner!")
		if err := hw.Blink(r.Context(), g.opts.BlinkTimes, g.opts.BlinkPeriod, g.leds()...); err != nil {
			return err
		}
	} else {
		r.Logger().Info().Msg("loser!")
	}
	return g.Clear()
}

func (g *Game) Clear() error {
	return hw.All(gpio.Low, g.leds()...)
}
