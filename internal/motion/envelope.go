// Package motion evaluates keyframed curves, used to drive the servo head.
package motion

import "math"

// Keyframe is a value at time T (seconds). Ease shapes the segment that starts
// at this keyframe.
type Keyframe struct {
	T    float64 `yaml:"t"`
	V    float64 `yaml:"v"`
	Ease string  `yaml:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a list of keyframes sorted by T.
type Envelope struct {
	Keys []Keyframe `yaml:"keys"`
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func easeApply(kind string, x float64) float64 {
	switch kind {
	case "smooth":
		return x * x * (3 - 2*x)
	case "cubic":
		// 6x^5 - 15x^4 + 10x^3
		return x * x * x * (x*(x*6-15) + 10)
	default:
		return x
	}
}

// Duration is the time of the last keyframe.
func (e Envelope) Duration() float64 {
	if len(e.Keys) == 0 {
		return 0
	}
	return e.Keys[len(e.Keys)-1].T
}

// Eval returns the value at t, holding the first and last values outside the
// keyed range. An empty envelope is 0.
func (e Envelope) Eval(t float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a, b := e.Keys[i], e.Keys[i+1]
		if t < a.T || t > b.T {
			continue
		}
		den := b.T - a.T
		if den <= 0 {
			return b.V
		}
		u := easeApply(a.Ease, clamp01((t-a.T)/den))
		return a.V + (b.V-a.V)*u
	}
	return e.Keys[n-1].V
}

// Loop evaluates the envelope repeating every Duration seconds.
func (e Envelope) Loop(t float64) float64 {
	d := e.Duration()
	if d <= 0 {
		return e.Eval(0)
	}
	return e.Eval(math.Mod(t, d))
}

// Sweep goes from 'from' to 'to' at degPerSec, holds for hold seconds, then
// returns.
func Sweep(from, to, degPerSec, hold float64) Envelope {
	travel := math.Abs(to-from) / degPerSec
	return Envelope{Keys: []Keyframe{
		{T: 0, V: from},
		{T: travel, V: to},
		{T: travel + hold, V: to},
		{T: 2*travel + hold, V: from},
	}}
}
