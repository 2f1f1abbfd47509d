package vgl

import "github.com/chewxy/math32"

// ViewportConfig describes the display surface and camera lens. It is read-only once a
// Renderer is built.
type ViewportConfig struct {
	Width      int
	Height     int
	FOVDegrees Scalar
	Near       Scalar
	Far        Scalar
	Projection ProjectionKind
}

// DefaultViewport matches the stock demo: a 480x480 ReGIS window, 3° lens,
// depth range -100..100.
func DefaultViewport() ViewportConfig {
	return ViewportConfig{
		Width:      480,
		Height:     480,
		FOVDegrees: 3,
		Near:       -100,
		Far:        100,
		Projection: ProjectionGL,
	}
}

func (vp ViewportConfig) HalfWidth() Scalar  { return Scalar(vp.Width) * 0.5 }
func (vp ViewportConfig) HalfHeight() Scalar { return Scalar(vp.Height) * 0.5 }

func (vp ViewportConfig) Aspect() Scalar {
	return Scalar(vp.Width) / Scalar(vp.Height)
}

// Map converts a point that already went through PerspectiveDivide into display space.
//
// x and y are divided by w once more here, so the effective falloff is 1/w².
func (vp ViewportConfig) Map(v Vec4) (x, y Scalar) {
	x = (v.X*Scalar(vp.Width))/(v.W*2) + vp.HalfWidth()
	y = (v.Y*Scalar(vp.Height))/(v.W*2) + vp.HalfHeight()
	return x, y
}

// Contains reports whether a mapped point lies on the surface.
func (vp ViewportConfig) Contains(x, y Scalar) bool {
	if math32.IsNaN(x) || math32.IsNaN(y) {
		return false
	}
	return x >= 0 && y >= 0 && x <= Scalar(vp.Width) && y <= Scalar(vp.Height)
}

// Coord truncates a display coordinate to the sink's unsigned range.
// Negative and NaN values become 0, large values saturate at 65535.
func Coord(v Scalar) uint16 {
	switch {
	case math32.IsNaN(v), v <= 0:
		return 0
	case v >= 65535:
		return 65535
	}
	return uint16(v)
}
