//go:build !tinygo

package models

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regis3d/vgl"
)

func TestFromDocument(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	lines := modeler.WriteIndices(doc, []uint16{0, 1, 1, 2})
	tris := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "wire",
		Primitives: []*gltf.Primitive{
			{Indices: gltf.Index(lines), Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitiveLines},
			{Indices: gltf.Index(tris), Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitiveTriangles},
			{Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitiveLineLoop},
			{Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitivePoints},
		},
	})

	m, err := FromDocument(doc, "wire")
	require.NoError(t, err)
	assert.Equal(t, "wire", m.Name)

	s := func(x, y float32) vgl.Vertex { return vgl.Vertex{X: x, Y: y, StrokeStart: true} }
	l := func(x, y float32) vgl.Vertex { return vgl.Vertex{X: x, Y: y} }
	want := []vgl.Vertex{
		s(0, 0), l(1, 0),
		s(1, 0), l(1, 1),
		s(0, 0), l(1, 0), l(1, 1), l(0, 0),
		s(0, 0), l(1, 0), l(1, 1), l(0, 0),
	}
	assert.Equal(t, want, m.Vertices)
}

func TestFromDocumentEmpty(t *testing.T) {
	_, err := FromDocument(gltf.NewDocument(), "empty")
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestFromDocumentMalformed(t *testing.T) {
	badIndex := func() *gltf.Document {
		doc := gltf.NewDocument()
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}})
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{
			{Indices: gltf.Index(7), Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitiveLines},
		}})
		return doc
	}
	noView := func() *gltf.Document {
		doc := gltf.NewDocument()
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			Count: 2, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat,
		})
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{"POSITION": 0}, Mode: gltf.PrimitiveLines},
		}})
		return doc
	}
	shortBuffer := func() *gltf.Document {
		doc := gltf.NewDocument()
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}})
		doc.Accessors[pos].Count = 100
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{"POSITION": pos}, Mode: gltf.PrimitiveLines},
		}})
		return doc
	}
	missingPosition := func() *gltf.Document {
		doc := gltf.NewDocument()
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{"POSITION": 3}, Mode: gltf.PrimitiveLines},
		}})
		return doc
	}

	for name, build := range map[string]func() *gltf.Document{
		"index accessor out of range": badIndex,
		"accessor without buffer view": noView,
		"accessor past buffer end":     shortBuffer,
		"position accessor missing":    missingPosition,
	} {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = FromDocument(build(), "broken") })
			assert.ErrorIs(t, err, ErrBadGLTF)
		})
	}
}
