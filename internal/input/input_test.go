package input

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPressed(t *testing.T) {
	assert.True(t, Pressed(gpio.Low, true))
	assert.False(t, Pressed(gpio.High, true))
	assert.True(t, Pressed(gpio.High, false))
}

func edge(p *gpiotest.Pin, l gpio.Level) {
	_ = p.Out(l)
	p.EdgesChan <- l
}

func TestWatchQueuesEdges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := &gpiotest.Pin{N: "GPIO5", EdgesChan: make(chan gpio.Level, 4)}
	q := NewQueue()
	o := DefaultOptions()
	o.Debounce = 0
	require.NoError(t, Watch(ctx, "button", pin, q, o))

	edge(pin, gpio.Low)
	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	edge(pin, gpio.High)
	require.Eventually(t, func() bool { return q.Len() == 2 }, time.Second, 5*time.Millisecond)

	evs := q.Drain()
	assert.Equal(t, "button", evs[0].Source)
	assert.Equal(t, Press, evs[0].Kind)
	assert.Equal(t, Release, evs[1].Kind)
}

func TestWatchDebounces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := &gpiotest.Pin{N: "GPIO17", EdgesChan: make(chan gpio.Level, 4)}
	q := NewQueue()
	o := DefaultOptions()
	o.Debounce = time.Hour
	require.NoError(t, Watch(ctx, "hall", pin, q, o))

	edge(pin, gpio.Low)
	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	edge(pin, gpio.High)
	assert.Never(t, func() bool { return q.Len() > 1 }, 150*time.Millisecond, 10*time.Millisecond)
}
