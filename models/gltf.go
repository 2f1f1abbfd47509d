//go:build !tinygo

package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"regis3d/vgl"
)

// LoadGLTF imports the line and triangle geometry of a glTF file as a wireframe mesh.
// An empty name is replaced by the file's base name.
func LoadGLTF(path, name string) (Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("open %q: %w", path, err)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return FromDocument(doc, name)
}

// FromDocument flattens every mesh primitive of doc into strokes.
//
// LINES become one stroke per segment, LINE_STRIP and LINE_LOOP one stroke each, and each
// triangle becomes a closed three-edge stroke. Points and strips or fans of triangles
// are skipped.
func FromDocument(doc *gltf.Document, name string) (Mesh, error) {
	var out []vgl.Vertex
	for _, mesh := range doc.Meshes {
		for _, p := range mesh.Primitives {
			posIdx, ok := p.Attributes["POSITION"]
			if !ok {
				continue
			}
			posAcc, err := checkAccessor(doc, posIdx)
			if err != nil {
				return Mesh{}, fmt.Errorf("mesh %q positions: %w", mesh.Name, err)
			}
			pos, err := modeler.ReadPosition(doc, posAcc, nil)
			if err != nil {
				return Mesh{}, fmt.Errorf("mesh %q positions: %w", mesh.Name, err)
			}

			var idx []uint32
			if p.Indices != nil {
				idxAcc, err := checkAccessor(doc, *p.Indices)
				if err != nil {
					return Mesh{}, fmt.Errorf("mesh %q indices: %w", mesh.Name, err)
				}
				idx, err = modeler.ReadIndices(doc, idxAcc, nil)
				if err != nil {
					return Mesh{}, fmt.Errorf("mesh %q indices: %w", mesh.Name, err)
				}
			} else {
				idx = make([]uint32, len(pos))
				for i := range idx {
					idx[i] = uint32(i)
				}
			}

			out, err = appendPrimitive(out, p.Mode, pos, idx)
			if err != nil {
				return Mesh{}, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}
		}
	}
	if len(out) == 0 {
		return Mesh{}, fmt.Errorf("%s: %w", name, ErrNoGeometry)
	}
	return Mesh{Name: name, Vertices: out}, nil
}

// checkAccessor returns accessor i once its data is known to lie inside a loaded buffer.
// modeler indexes buffers without checking, so a bad file would otherwise panic.
func checkAccessor(doc *gltf.Document, i uint32) (*gltf.Accessor, error) {
	if int(i) >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrBadGLTF, i, len(doc.Accessors))
	}
	a := doc.Accessors[i]
	if a.BufferView == nil {
		return nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrBadGLTF, i)
	}
	if a.Sparse != nil {
		return nil, fmt.Errorf("%w: accessor %d is sparse", ErrBadGLTF, i)
	}
	vi := *a.BufferView
	if int(vi) >= len(doc.BufferViews) || doc.BufferViews[vi] == nil {
		return nil, fmt.Errorf("%w: buffer view %d of %d", ErrBadGLTF, vi, len(doc.BufferViews))
	}
	view := doc.BufferViews[vi]
	if int(view.Buffer) >= len(doc.Buffers) || doc.Buffers[view.Buffer] == nil {
		return nil, fmt.Errorf("%w: buffer %d of %d", ErrBadGLTF, view.Buffer, len(doc.Buffers))
	}
	if uint64(view.ByteOffset)+uint64(view.ByteLength) > uint64(len(doc.Buffers[view.Buffer].Data)) {
		return nil, fmt.Errorf("%w: buffer view %d overruns its buffer", ErrBadGLTF, vi)
	}
	if a.Count > 0 {
		elem := uint64(gltf.SizeOfElement(a.ComponentType, a.Type))
		stride := uint64(view.ByteStride)
		if stride == 0 {
			stride = elem
		}
		need := uint64(a.ByteOffset) + uint64(a.Count-1)*stride + elem
		if elem == 0 || need > uint64(view.ByteLength) {
			return nil, fmt.Errorf("%w: accessor %d overruns buffer view %d", ErrBadGLTF, i, vi)
		}
	}
	return a, nil
}

func appendPrimitive(out []vgl.Vertex, mode gltf.PrimitiveMode, pos [][3]float32, idx []uint32) ([]vgl.Vertex, error) {
	at := func(i uint32, start bool) (vgl.Vertex, error) {
		if int(i) >= len(pos) {
			return vgl.Vertex{}, fmt.Errorf("index %d out of %d positions", i, len(pos))
		}
		p := pos[i]
		return vgl.Vertex{X: p[0], Y: p[1], Z: p[2], StrokeStart: start}, nil
	}
	stroke := func(ids ...uint32) error {
		for k, i := range ids {
			v, err := at(i, k == 0)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	}

	var err error
	switch mode {
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(idx) && err == nil; i += 2 {
			err = stroke(idx[i], idx[i+1])
		}
	case gltf.PrimitiveLineStrip:
		if len(idx) >= 2 {
			err = stroke(idx...)
		}
	case gltf.PrimitiveLineLoop:
		if len(idx) >= 2 {
			err = stroke(append(append([]uint32(nil), idx...), idx[0])...)
		}
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx) && err == nil; i += 3 {
			err = stroke(idx[i], idx[i+1], idx[i+2], idx[i])
		}
	}
	return out, err
}
