package vgl

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// ProjectionKind selects the perspective formula used by BuildProjection.
type ProjectionKind uint8

const (
	// ProjectionGL is the symmetric-frustum OpenGL matrix; clip w = -z.
	ProjectionGL ProjectionKind = iota
	// ProjectionAlt is the alternate derivation with clip w = +z.
	ProjectionAlt
)

func (k ProjectionKind) String() string {
	switch k {
	case ProjectionAlt:
		return "alt"
	default:
		return "opengl"
	}
}

// ParseProjectionKind accepts "opengl"/"gl" and "alt".
func ParseProjectionKind(s string) (ProjectionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opengl", "gl":
		return ProjectionGL, nil
	case "alt":
		return ProjectionAlt, nil
	}
	return ProjectionGL, fmt.Errorf("unknown projection %q", s)
}

// PerspectiveGL builds the OpenGL perspective matrix.
//
// Degenerate aspect or near == far are not guarded.
func PerspectiveGL(fovYRad, aspect, zNear, zFar Scalar) Mat4 {
	f := 1 / math32.Tan(fovYRad/2)
	nf := 1 / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, (2 * zFar * zNear) * nf, 0,
	}
}

// PerspectiveAlt builds a perspective matrix that looks down +z.
//
// Screen x/y after the double divide match PerspectiveGL exactly; only the sign of w and
// the depth term differ.
func PerspectiveAlt(fovYRad, aspect, zNear, zFar Scalar) Mat4 {
	cot := 1 / math32.Tan(fovYRad/2)
	fn := 1 / (zFar - zNear)
	return Mat4{
		cot / aspect, 0, 0, 0,
		0, cot, 0, 0,
		0, 0, (zFar + zNear) * fn, 1,
		0, 0, -(2 * zFar * zNear) * fn, 0,
	}
}

// BuildProjection builds the projection matrix for a viewport.
func BuildProjection(vp ViewportConfig) Mat4 {
	fov := Deg(vp.FOVDegrees)
	switch vp.Projection {
	case ProjectionAlt:
		return PerspectiveAlt(fov, vp.Aspect(), vp.Near, vp.Far)
	default:
		return PerspectiveGL(fov, vp.Aspect(), vp.Near, vp.Far)
	}
}
