// Package models holds the wireframe models the demos draw and the catalogs they are
// looked up in: RAM-backed built-ins or a flash image written by cmd/mkflash.
package models

import (
	"errors"
	"fmt"
	"sort"

	"regis3d/vgl"
)

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrNoGeometry   = errors.New("no line or triangle geometry")
	ErrBadGLTF      = errors.New("malformed glTF")
)

// Built-in model names.
const (
	Cube     = "cube"
	Icos     = "icos"
	Gear     = "gear"
	GLXGear1 = "glxgear1"
	GLXGear2 = "glxgear2"
	GLXGear3 = "glxgear3"
)

// Mesh is authored geometry: an ordered stroke list.
type Mesh struct {
	Name     string
	Vertices []vgl.Vertex
}

// Catalog resolves model names.
type Catalog interface {
	Lookup(name string) (vgl.Model, error)
	Names() []string
}

// Builtin returns the stock models in a fixed order.
func Builtin() []Mesh {
	return []Mesh{
		{Name: Cube, Vertices: CubeVertices(1)},
		{Name: Icos, Vertices: IcosVertices(1.2)},
		{Name: Gear, Vertices: GearVertices(GearSpec{Inner: 0.4, Outer: 1.3, Width: 0.5, Teeth: 12, ToothDepth: 0.4})},
		{Name: GLXGear1, Vertices: GearVertices(GearSpec{Inner: 1.0, Outer: 4.0, Width: 1.0, Teeth: 20, ToothDepth: 0.7})},
		{Name: GLXGear2, Vertices: GearVertices(GearSpec{Inner: 0.5, Outer: 2.0, Width: 2.0, Teeth: 10, ToothDepth: 0.7})},
		{Name: GLXGear3, Vertices: GearVertices(GearSpec{Inner: 1.3, Outer: 2.0, Width: 0.5, Teeth: 10, ToothDepth: 0.7})},
	}
}

// MemoryCatalog serves models from RAM.
type MemoryCatalog struct {
	models map[string]vgl.Model
}

// NewMemoryCatalog serializes meshes into memory sources.
func NewMemoryCatalog(meshes ...Mesh) *MemoryCatalog {
	c := &MemoryCatalog{models: make(map[string]vgl.Model, len(meshes))}
	for _, m := range meshes {
		c.Put(m)
	}
	return c
}

// Put adds or replaces a model.
func (c *MemoryCatalog) Put(m Mesh) {
	c.models[m.Name] = vgl.MemoryModel(m.Name, m.Vertices)
}

func (c *MemoryCatalog) Lookup(name string) (vgl.Model, error) {
	m, ok := c.models[name]
	if !ok {
		return vgl.Model{}, fmt.Errorf("%q: %w", name, ErrUnknownModel)
	}
	return m, nil
}

func (c *MemoryCatalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for n := range c.models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
