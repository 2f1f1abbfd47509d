package display

import (
	"image/color"

	"regis3d/hal"
)

// FramebufferDisplayer adapts an RGB565 hal.Framebuffer to drivers.Displayer.
type FramebufferDisplayer struct {
	fb hal.Framebuffer
}

func NewFramebufferDisplayer(fb hal.Framebuffer) *FramebufferDisplayer {
	return &FramebufferDisplayer{fb: fb}
}

func (d *FramebufferDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FramebufferDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FramebufferDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil {
		return nil
	}
	if x == 0 && y == 0 && int(width) >= d.fb.Width() && int(height) >= d.fb.Height() {
		d.fb.ClearRGB(c.R, c.G, c.B)
		return nil
	}
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			d.SetPixel(px, py, c)
		}
	}
	return nil
}

func (d *FramebufferDisplayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}
