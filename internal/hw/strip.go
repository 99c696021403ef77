package hw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

// StripFreq is the SPI clock for nrzled: three SPI bits per LED bit at 800kHz
// plus a little headroom.
const StripFreq = (800*3 + 100) * physic.KiloHertz

// Strip is a row of addressable pixels. Set changes the frame in memory; Show
// pushes it out.
type Strip struct {
	drawer display.Drawer
	frame  *image.NRGBA
	// Console is true when no SPI port was found and the frame is printed.
	Console bool
}

func NewStrip(d display.Drawer, pixels int) *Strip {
	return &Strip{
		drawer: d,
		frame:  image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
	}
}

// OpenStrip drives pixels over the named SPI port ("" for the first one). With
// no SPI port it falls back to printing the strip at the console.
func OpenStrip(port string, pixels int) (*Strip, error) {
	p, err := spireg.Open(port)
	if err != nil {
		log.Warn().Err(err).Str("port", port).Msg("no SPI port; printing the strip at the console")
		s := NewStrip(screen.New(pixels), pixels)
		s.Console = true
		return s, nil
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: pixels, Channels: 3, Freq: StripFreq})
	if err != nil {
		return nil, fmt.Errorf("hw: nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("hw: nrzled halt: %w", err)
	}
	return NewStrip(d, pixels), nil
}

func (s *Strip) Len() int { return s.frame.Rect.Dx() }

// Set changes pixel i in the pending frame. Out of range indices are ignored.
func (s *Strip) Set(i int, c color.NRGBA) {
	if i < 0 || i >= s.Len() {
		return
	}
	s.frame.SetNRGBA(i, 0, c)
}

func (s *Strip) Pixel(i int) color.NRGBA {
	return s.frame.NRGBAAt(i, 0)
}

func (s *Strip) Fill(c color.NRGBA) {
	for i := 0; i < s.Len(); i++ {
		s.Set(i, c)
	}
}

func (s *Strip) Show() error {
	return s.drawer.Draw(s.drawer.Bounds(), s.frame, image.Point{})
}

// Clear blanks and shows the strip.
func (s *Strip) Clear() error {
	s.Fill(color.NRGBA{A: 255})
	return s.Show()
}

func (s *Strip) Halt() error {
	return s.drawer.Halt()
}
