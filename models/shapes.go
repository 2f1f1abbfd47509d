package models

import (
	"github.com/chewxy/math32"

	"regis3d/vgl"
)

func move(x, y, z float32) vgl.Vertex { return vgl.Vertex{X: x, Y: y, Z: z, StrokeStart: true} }
func line(x, y, z float32) vgl.Vertex { return vgl.Vertex{X: x, Y: y, Z: z} }

// CubeVertices returns a cube of half-size s: two face loops and the four side edges.
func CubeVertices(s float32) []vgl.Vertex {
	out := make([]vgl.Vertex, 0, 18)
	for _, z := range []float32{-s, s} {
		out = append(out,
			move(-s, -s, z),
			line(s, -s, z),
			line(s, s, z),
			line(-s, s, z),
			line(-s, -s, z),
		)
	}
	for _, c := range [][2]float32{{-s, -s}, {s, -s}, {s, s}, {-s, s}} {
		out = append(out, move(c[0], c[1], -s), line(c[0], c[1], s))
	}
	return out
}

// IcosVertices returns an icosahedron of circumradius r, one stroke per edge.
func IcosVertices(r float32) []vgl.Vertex {
	phi := (1 + math32.Sqrt(5)) / 2
	var pts []vgl.Vec3
	for _, a := range []float32{-1, 1} {
		for _, b := range []float32{-phi, phi} {
			pts = append(pts,
				vgl.V3(0, a, b),
				vgl.V3(a, b, 0),
				vgl.V3(b, 0, a),
			)
		}
	}

	// Unscaled edges have length 2.
	out := make([]vgl.Vertex, 0, 60)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if math32.Abs(vgl.Len(pts[i].Sub(pts[j]))-2) > 1e-3 {
				continue
			}
			a := vgl.Normalize(pts[i]).Mul(r)
			b := vgl.Normalize(pts[j]).Mul(r)
			out = append(out, move(a.X, a.Y, a.Z), line(b.X, b.Y, b.Z))
		}
	}
	return out
}

// GearSpec describes a glxgears-style gear.
type GearSpec struct {
	Inner      float32 // hole radius
	Outer      float32 // pitch radius
	Width      float32 // along z
	Teeth      int
	ToothDepth float32
}

// GearVertices outlines a gear: toothed rim and hole on both faces, plus the edges joining
// the tooth tips across the width.
func GearVertices(g GearSpec) []vgl.Vertex {
	if g.Teeth < 3 {
		g.Teeth = 3
	}
	r0 := g.Inner
	r1 := g.Outer - g.ToothDepth/2
	r2 := g.Outer + g.ToothDepth/2
	step := 2 * math32.Pi / float32(g.Teeth)
	da := step / 4
	half := g.Width / 2

	at := func(r, a, z float32, start bool) vgl.Vertex {
		s, c := math32.Sincos(a)
		return vgl.Vertex{X: r * c, Y: r * s, Z: z, StrokeStart: start}
	}

	out := make([]vgl.Vertex, 0, 2*(4*g.Teeth+1)+2*(g.Teeth+1)+4*g.Teeth)
	for _, z := range []float32{half, -half} {
		for i := 0; i < g.Teeth; i++ {
			a := float32(i) * step
			out = append(out,
				at(r1, a, z, i == 0),
				at(r2, a+da, z, false),
				at(r2, a+2*da, z, false),
				at(r1, a+3*da, z, false),
			)
		}
		out = append(out, at(r1, 0, z, false))

		for i := 0; i <= g.Teeth; i++ {
			out = append(out, at(r0, float32(i)*step, z, i == 0))
		}
	}

	for i := 0; i < g.Teeth; i++ {
		a := float32(i) * step
		for _, t := range []float32{a + da, a + 2*da} {
			out = append(out, at(r2, t, half, true), at(r2, t, -half, false))
		}
	}
	return out
}
