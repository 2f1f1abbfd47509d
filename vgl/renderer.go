package vgl

import (
	"fmt"

	"github.com/chewxy/math32"

	"regis3d/display"
)

// ClipMode selects what the renderer does with points that fall off the display.
type ClipMode uint8

const (
	// ClipNone passes every point through, however extreme. Scenes are tuned for it.
	ClipNone ClipMode = iota
	// ClipViewport drops degenerate (w == 0) or off-surface points and restarts the
	// stroke at the next visible point.
	ClipViewport
)

// Renderer turns models into draw commands on a frame.
//
// Create it once and reuse it; Render does not allocate.
type Renderer struct {
	Viewport ViewportConfig
	Clip     ClipMode

	frame *display.Frame
}

// NewRenderer creates a renderer drawing into f.
func NewRenderer(vp ViewportConfig, f *display.Frame) *Renderer {
	return &Renderer{Viewport: vp, frame: f}
}

// Frame returns the frame the renderer draws into.
func (r *Renderer) Frame() *display.Frame { return r.frame }

// Project runs one model-space point through transform, the perspective divide and the
// viewport mapping.
func (r *Renderer) Project(v Vertex, transform Mat4) (x, y Scalar, w Scalar) {
	p := Mat4MulV4(transform, Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1})
	p = PerspectiveDivide(p)
	x, y = r.Viewport.Map(p)
	return x, y, p.W
}

// Render draws model under transform with intensity c.
//
// The frame is opened if it is idle. With flush set the frame is closed after the last
// vertex; scenes with several objects leave it open and close it themselves.
func (r *Renderer) Render(m Model, transform Mat4, c display.Intensity, flush bool) error {
	if err := r.frame.Ensure(); err != nil {
		return err
	}
	if err := r.frame.SetIntensity(c); err != nil {
		return err
	}

	cur := m.Base
	penUp := false
	for i := 0; i < m.Count; i++ {
		v, err := m.Source.ReadNext(&cur)
		if err != nil {
			return fmt.Errorf("model %s vertex %d: %w", m.Name, i, err)
		}

		x, y, w := r.Project(v, transform)

		if r.Clip == ClipViewport && !r.visible(x, y, w) {
			penUp = true
			continue
		}

		sx, sy := Coord(x), Coord(y)
		if v.StrokeStart || penUp {
			err = r.frame.MoveTo(sx, sy)
		} else {
			err = r.frame.LineTo(sx, sy)
		}
		if err != nil {
			return err
		}
		penUp = false
	}

	if flush {
		return r.frame.End()
	}
	return nil
}

func (r *Renderer) visible(x, y, w Scalar) bool {
	if w == 0 || math32.IsInf(x, 0) || math32.IsInf(y, 0) {
		return false
	}
	return r.Viewport.Contains(x, y)
}
