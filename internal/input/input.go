// Package input turns edge-triggered GPIO inputs into queued events that the
// poll loop drains alongside broadcast messages.
package input

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/queue"
)

type Kind string

const (
	Press   Kind = "press"
	Release Kind = "release"
)

// DefaultDebounce drops edges arriving sooner than this after the last one.
const DefaultDebounce = 200 * time.Millisecond

// edgeWait bounds each wait so the watcher notices cancellation.
const edgeWait = 100 * time.Millisecond

type Event struct {
	Source string    `json:"source"`
	Kind   Kind      `json:"kind"`
	At     time.Time `json:"at"`
}

type Queue = queue.FIFO[Event]

func NewQueue() *Queue { return queue.New[Event]() }

type Options struct {
	Pull gpio.Pull
	// ActiveLow reports Low as a press (switch to ground with pull-up).
	ActiveLow bool
	Debounce  time.Duration
	Now       func() time.Time
}

// DefaultOptions matches a button wired to ground with the internal pull-up.
func DefaultOptions() Options {
	return Options{Pull: gpio.PullUp, ActiveLow: true, Debounce: DefaultDebounce}
}

// Pressed interprets a level according to the wiring.
func Pressed(l gpio.Level, activeLow bool) bool {
	if activeLow {
		return l == gpio.Low
	}
	return l == gpio.High
}

// Watch configures pin for both edges and pushes an Event into q for each
// debounced edge until ctx is done.
func Watch(ctx context.Context, source string, pin gpio.PinIn, q *Queue, o Options) error {
	if err := pin.In(o.Pull, gpio.BothEdges); err != nil {
		return fmt.Errorf("input %s: %w", source, err)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	go watch(ctx, source, pin, q, o)
	return nil
}

func watch(ctx context.Context, source string, pin gpio.PinIn, q *Queue, o Options) {
	var last time.Time
	for ctx.Err() == nil {
		if !pin.WaitForEdge(edgeWait) {
			continue
		}
		now := o.Now()
		if !last.IsZero() && now.Sub(last) < o.Debounce {
			continue
		}
		last = now
		kind := Release
		if Pressed(pin.Read(), o.ActiveLow) {
			kind = Press
		}
		q.Push(Event{Source: source, Kind: kind, At: now})
	}
}
