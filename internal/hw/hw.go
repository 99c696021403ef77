// Package hw wraps the board-level devices the panels drive: GPIO pins, the
// WS281x strip, the head servo, the dispensing stepper and the MCP3008 ADC.
package hw

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Init loads the periph host drivers. Call once before looking up pins.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("hw: host init: %w", err)
	}
	return nil
}

// Pin looks up a GPIO by name, e.g. "GPIO22" or "22".
func Pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("hw: no such pin %q", name)
	}
	return p, nil
}

func Pins(names ...string) ([]gpio.PinIO, error) {
	out := make([]gpio.PinIO, 0, len(names))
	for _, n := range names {
		p, err := Pin(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// InPins looks up names as inputs.
func InPins(names ...string) ([]gpio.PinIn, error) {
	ps, err := Pins(names...)
	if err != nil {
		return nil, err
	}
	out := make([]gpio.PinIn, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out, nil
}

// OutPins looks up names as outputs.
func OutPins(names ...string) ([]gpio.PinOut, error) {
	ps, err := Pins(names...)
	if err != nil {
		return nil, err
	}
	out := make([]gpio.PinOut, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out, nil
}

// Inputs configures every pin as an input with the given pull and no edge
// detection; the caller polls Read.
func Inputs(pull gpio.Pull, pins ...gpio.PinIn) error {
	for _, p := range pins {
		if err := p.In(pull, gpio.NoEdge); err != nil {
			return fmt.Errorf("hw: %s as input: %w", p, err)
		}
	}
	return nil
}

// All drives every output to l.
func All(l gpio.Level, outs ...gpio.PinOut) error {
	for _, o := range outs {
		if err := o.Out(l); err != nil {
			return fmt.Errorf("hw: %s out: %w", o, err)
		}
	}
	return nil
}

// Blink flashes outs on and off times times, period for each half.
func Blink(ctx context.Context, times int, period time.Duration, outs ...gpio.PinOut) error {
	for i := 0; i < times; i++ {
		if err := All(gpio.High, outs...); err != nil {
			return err
		}
		if err := Sleep(ctx, period); err != nil {
			return err
		}
		if err := All(gpio.Low, outs...); err != nil {
			return err
		}
		if err := Sleep(ctx, period); err != nil {
			return err
		}
	}
	return nil
}

// Sleep waits d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
