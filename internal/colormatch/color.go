package colormatch

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Bits per channel wired to switches.
const (
	RedBits   = 3
	GreenBits = 3
	BlueBits  = 2
)

const (
	redOffset   = 16
	greenOffset = 8
	blueOffset  = 0
)

// Color packs one channel per byte, r<<16 | g<<8 | b. Each channel only holds
// the bits its switches can set, so two colours match by plain equality.
type Color uint32

func NewColor(r, g, b uint8) Color {
	r &= 1<<RedBits - 1
	g &= 1<<GreenBits - 1
	b &= 1<<BlueBits - 1
	return Color(uint32(r)<<redOffset | uint32(g)<<greenOffset | uint32(b)<<blueOffset)
}

// FromBits spreads an 8 bit value rrrgggbb over the three channels.
func FromBits(bits uint8) Color {
	return NewColor(bits>>5, bits>>2, bits)
}

func channel(c Color, off uint8) uint8 {
	return uint8((uint32(c) >> off) & 0xFF)
}

func (c Color) R() uint8 { return channel(c, redOffset) }
func (c Color) G() uint8 { return channel(c, greenOffset) }
func (c Color) B() uint8 { return channel(c, blueOffset) }

// Bits is the inverse of FromBits.
func (c Color) Bits() uint8 {
	return c.R()<<5 | c.G()<<2 | c.B()
}

func scale(v uint8, bits uint) uint8 {
	max := uint16(1)<<bits - 1
	return uint8(uint16(v) * 255 / max)
}

// NRGBA stretches each channel to full 8 bit range for display.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: scale(c.R(), RedBits),
		G: scale(c.G(), GreenBits),
		B: scale(c.B(), BlueBits),
		A: 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R(), c.G(), c.B())
}

// ParseColor accepts "r,g,b" with channels in switch range, or a single
// 0..255 value (decimal, 0x or 0b prefixed) in rrrgggbb form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ","); len(parts) == 3 {
		limits := [3]uint64{1<<RedBits - 1, 1<<GreenBits - 1, 1<<BlueBits - 1}
		var v [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return 0, fmt.Errorf("colormatch: parse %q: %w", s, err)
			}
			if n > limits[i] {
				return 0, fmt.Errorf("colormatch: channel %d of %q above %d", i, s, limits[i])
			}
			v[i] = uint8(n)
		}
		return NewColor(v[0], v[1], v[2]), nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("colormatch: parse %q: %w", s, err)
	}
	return FromBits(uint8(n)), nil
}
