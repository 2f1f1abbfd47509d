package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Raster draws the vector stream into a pixel display.
//
// Display coordinates are scaled from the window size given to Open onto the displayer's
// own size, so a 480x480 scene fits a 320x320 panel.
type Raster struct {
	Background color.RGBA
	Caption    string
	CaptionFG  color.RGBA
	Font       tinyfont.Fonter

	d      drivers.Displayer
	width  int
	height int
	fg     color.RGBA
	penX   int16
	penY   int16
}

// NewRaster draws into d.
func NewRaster(d drivers.Displayer) *Raster {
	return &Raster{
		Background: color.RGBA{R: 0x05, G: 0x08, B: 0x12, A: 0xFF},
		CaptionFG:  color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF},
		Font:       &tinyfont.TomThumb,
		d:          d,
		fg:         White.RGBA(),
	}
}

func (r *Raster) Open(width, height int) error {
	if r.d == nil {
		return ErrSinkUnavailable
	}
	r.width, r.height = width, height
	r.penX, r.penY = 0, 0
	return nil
}

func (r *Raster) Clear() error {
	w, h := r.d.Size()
	if f, ok := r.d.(rectFiller); ok {
		return f.FillRectangle(0, 0, w, h, r.Background)
	}
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			r.d.SetPixel(x, y, r.Background)
		}
	}
	return nil
}

func (r *Raster) Close() error {
	if r.Caption != "" && r.Font != nil {
		_, h := r.d.Size()
		tinyfont.WriteLine(r.d, r.Font, 2, h-2, r.Caption, r.CaptionFG)
	}
	if err := r.d.Display(); err != nil {
		return fmt.Errorf("raster present: %w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

// Abort skips presenting, so an aborted frame never reaches a PNG snapshot or a panel
// that needs Display to update.
func (r *Raster) Abort() error { return nil }

func (r *Raster) SetIntensity(c Intensity) error {
	r.fg = c.RGBA()
	return nil
}

func (r *Raster) MoveTo(x, y uint16) error {
	r.penX, r.penY = r.scale(x, y)
	return nil
}

func (r *Raster) LineTo(x, y uint16) error {
	nx, ny := r.scale(x, y)
	r.drawLine(int(r.penX), int(r.penY), int(nx), int(ny))
	r.penX, r.penY = nx, ny
	return nil
}

func (r *Raster) scale(x, y uint16) (int16, int16) {
	dw, dh := r.d.Size()
	sx, sy := int(x), int(y)
	if r.width > 0 {
		sx = sx * int(dw) / r.width
	}
	if r.height > 0 {
		sy = sy * int(dh) / r.height
	}
	return int16(clampInt(sx, -1, int(dw))), int16(clampInt(sy, -1, int(dh)))
}

func (r *Raster) drawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		r.d.SetPixel(int16(x0), int16(y0), r.fg)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
