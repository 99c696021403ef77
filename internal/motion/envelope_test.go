package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	assert.Equal(t, 0.0, env.Eval(-1), "holds first value before start")
	assert.Equal(t, 0.0, env.Eval(0))
	assert.Equal(t, 5.0, env.Eval(5))
	assert.Equal(t, 10.0, env.Eval(10))
	assert.Equal(t, 10.0, env.Eval(11), "holds last value after end")
	assert.Equal(t, 0.0, Envelope{}.Eval(3))
}

func TestEnvelopeEase(t *testing.T) {
	for _, ease := range []string{"smooth", "cubic"} {
		env := Envelope{Keys: []Keyframe{{T: 0, V: 0, Ease: ease}, {T: 1, V: 1}}}
		assert.InDelta(t, 0.5, env.Eval(0.5), 1e-9, ease)
		assert.Less(t, env.Eval(0.1), 0.1, ease)
	}
}

func TestSweepLoops(t *testing.T) {
	env := Sweep(179, 0, 100, 0.5)
	assert.InDelta(t, 1.79, env.Keys[1].T, 1e-9)
	assert.InDelta(t, 4.08, env.Duration(), 1e-9)

	assert.Equal(t, 179.0, env.Loop(0))
	assert.Equal(t, 0.0, env.Loop(2.0), "holding at the bottom")
	assert.InDelta(t, 179.0, env.Loop(4.079), 0.2)
	assert.InDelta(t, env.Loop(1.0), env.Loop(1.0+env.Duration()), 1e-9)
}
