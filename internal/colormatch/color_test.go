package colormatch

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBits(t *testing.T) {
	c := FromBits(0b101_011_10)
	assert.Equal(t, uint8(5), c.R())
	assert.Equal(t, uint8(3), c.G())
	assert.Equal(t, uint8(2), c.B())
	assert.Equal(t, Color(5<<16|3<<8|2), c)
	assert.Equal(t, uint8(0b101_011_10), c.Bits())
}

func TestBitsRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		assert.Equal(t, uint8(i), FromBits(uint8(i)).Bits())
	}
}

func TestNewColorMasks(t *testing.T) {
	assert.Equal(t, NewColor(7, 7, 3), NewColor(0xff, 0xff, 0xff))
}

func TestNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, NewColor(7, 7, 3).NRGBA())
	assert.Equal(t, color.NRGBA{A: 255}, NewColor(0, 0, 0).NRGBA())
	assert.Equal(t, color.NRGBA{R: 36, G: 0, B: 85, A: 255}, NewColor(1, 0, 1).NRGBA())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"7,0,3", NewColor(7, 0, 3)},
		{" 1, 2, 3 ", NewColor(1, 2, 3)},
		{"0b11100000", NewColor(7, 0, 0)},
		{"0x03", NewColor(0, 0, 3)},
		{"28", NewColor(0, 7, 0)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "8,0,0", "0,0,4", "256", "red", "1,2"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
