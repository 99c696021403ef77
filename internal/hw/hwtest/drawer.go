// Package hwtest has in-memory stand-ins for display devices.
package hwtest

import (
	"image"
	"image/color"
	"image/draw"
)

// Drawer records every frame drawn to it, useful for headless tests.
type Drawer struct {
	W      int
	Frames int
	Last   *image.NRGBA
	Halted bool
}

func NewDrawer(pixels int) *Drawer { return &Drawer{W: pixels} }

func (d *Drawer) String() string { return "hwtest.Drawer" }
func (d *Drawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *Drawer) Bounds() image.Rectangle { return image.Rect(0, 0, d.W, 1) }
func (d *Drawer) Halt() error { d.Halted = true; return nil }

func (d *Drawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.Frames++
	d.Halted = false
	d.Last = image.NewNRGBA(d.Bounds())
	draw.Draw(d.Last, r, src, sp, draw.Src)
	return nil
}

// At returns pixel i of the last frame.
func (d *Drawer) At(i int) color.NRGBA {
	if d.Last == nil {
		return color.NRGBA{}
	}
	return d.Last.NRGBAAt(i, 0)
}
