package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// ImageDisplayer is an in-memory drivers.Displayer.
type ImageDisplayer struct {
	Img *image.RGBA

	// OnDisplay, if set, runs every time a frame is presented.
	OnDisplay func(img *image.RGBA) error
}

func NewImageDisplayer(width, height int) *ImageDisplayer {
	return &ImageDisplayer{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (d *ImageDisplayer) Size() (x, y int16) {
	b := d.Img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *ImageDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}.In(d.Img.Bounds())) {
		return
	}
	d.Img.SetRGBA(int(x), int(y), c)
}

func (d *ImageDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(d.Img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			d.Img.SetRGBA(px, py, c)
		}
	}
	return nil
}

func (d *ImageDisplayer) Display() error {
	if d.OnDisplay == nil {
		return nil
	}
	return d.OnDisplay(d.Img)
}

// PNGWriter returns an OnDisplay hook that rewrites path with every frame.
func PNGWriter(path string) func(img *image.RGBA) error {
	return func(img *image.RGBA) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %q: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode %q: %w", path, err)
		}
		return f.Close()
	}
}
