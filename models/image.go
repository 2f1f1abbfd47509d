package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"regis3d/vgl"
)

// Flash model image layout, all little-endian:
//
//	header  magic "R3DM", version u16, count u16
//	entry   name [12]byte (NUL padded), offset u32, vertex count u32
//	data    vertex records, VertexSize bytes each
//
// Offsets are absolute flash addresses.
const (
	imageMagic      = "R3DM"
	imageVersion    = 1
	imageHeaderSize = 8
	imageNameLen    = 12
	imageEntrySize  = imageNameLen + 8
	imageMaxModels  = 64
)

var ErrBadImage = errors.New("bad model image")

// EncodeImage lays meshes out as a flash image to be written at base.
func EncodeImage(meshes []Mesh, base uint32) ([]byte, error) {
	if len(meshes) == 0 || len(meshes) > imageMaxModels {
		return nil, fmt.Errorf("%w: %d models", ErrBadImage, len(meshes))
	}

	dataOff := imageHeaderSize + imageEntrySize*len(meshes)
	size := dataOff
	for _, m := range meshes {
		if len(m.Name) == 0 || len(m.Name) > imageNameLen {
			return nil, fmt.Errorf("%w: model name %q must be 1..%d bytes", ErrBadImage, m.Name, imageNameLen)
		}
		size += len(m.Vertices) * vgl.VertexSize
	}

	out := make([]byte, size)
	copy(out[0:4], imageMagic)
	binary.LittleEndian.PutUint16(out[4:6], imageVersion)
	binary.LittleEndian.PutUint16(out[6:8], uint16(len(meshes)))

	off := dataOff
	for i, m := range meshes {
		e := out[imageHeaderSize+i*imageEntrySize:]
		copy(e[:imageNameLen], m.Name)
		binary.LittleEndian.PutUint32(e[imageNameLen:], base+uint32(off))
		binary.LittleEndian.PutUint32(e[imageNameLen+4:], uint32(len(m.Vertices)))
		for _, v := range m.Vertices {
			vgl.PutVertex(out[off:], v)
			off += vgl.VertexSize
		}
	}
	return out, nil
}

type imageEntry struct {
	name   string
	offset uint32
	count  uint32
}

// ImageCatalog serves models straight out of a flash image. Vertices are read on demand
// while rendering and never copied to RAM.
type ImageCatalog struct {
	source  *vgl.FlashSource
	entries map[string]imageEntry
}

// OpenImage parses the image header at base.
func OpenImage(f vgl.FlashReader, base uint32) (*ImageCatalog, error) {
	var hdr [imageHeaderSize]byte
	if err := readFull(f, hdr[:], base); err != nil {
		return nil, err
	}
	if string(hdr[0:4]) != imageMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadImage, hdr[0:4])
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != imageVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadImage, v)
	}
	n := int(binary.LittleEndian.Uint16(hdr[6:8]))
	if n == 0 || n > imageMaxModels {
		return nil, fmt.Errorf("%w: %d models", ErrBadImage, n)
	}

	c := &ImageCatalog{source: vgl.NewFlashSource(f), entries: make(map[string]imageEntry, n)}
	var raw [imageEntrySize]byte
	for i := 0; i < n; i++ {
		if err := readFull(f, raw[:], base+imageHeaderSize+uint32(i*imageEntrySize)); err != nil {
			return nil, err
		}
		name := raw[:imageNameLen]
		for j, b := range name {
			if b == 0 {
				name = name[:j]
				break
			}
		}
		e := imageEntry{
			name:   string(name),
			offset: binary.LittleEndian.Uint32(raw[imageNameLen:]),
			count:  binary.LittleEndian.Uint32(raw[imageNameLen+4:]),
		}
		if e.name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrBadImage, i)
		}
		c.entries[e.name] = e
	}
	return c, nil
}

func (c *ImageCatalog) Lookup(name string) (vgl.Model, error) {
	e, ok := c.entries[name]
	if !ok {
		return vgl.Model{}, fmt.Errorf("%q: %w", name, ErrUnknownModel)
	}
	return vgl.Model{
		Name:   e.name,
		Count:  int(e.count),
		Source: c.source,
		Base:   vgl.Cursor(e.offset),
	}, nil
}

func (c *ImageCatalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func readFull(f vgl.FlashReader, p []byte, off uint32) error {
	n, err := f.ReadAt(p, off)
	if err != nil {
		return fmt.Errorf("read image at %d: %w", off, err)
	}
	if n != len(p) {
		return fmt.Errorf("read image at %d: %w", off, vgl.ErrShortRead)
	}
	return nil
}

// Fallback looks names up in Primary first and then in Secondary.
type Fallback struct {
	Primary   Catalog
	Secondary Catalog
}

func (f Fallback) Lookup(name string) (vgl.Model, error) {
	if f.Primary != nil {
		if m, err := f.Primary.Lookup(name); err == nil {
			return m, nil
		}
	}
	if f.Secondary == nil {
		return vgl.Model{}, fmt.Errorf("%q: %w", name, ErrUnknownModel)
	}
	return f.Secondary.Lookup(name)
}

func (f Fallback) Names() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range []Catalog{f.Primary, f.Secondary} {
		if c == nil {
			continue
		}
		for _, n := range c.Names() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
