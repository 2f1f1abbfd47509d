package vgl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// VertexSize is the serialized size of one Vertex: x, y, z as little-endian float32
// followed by one stroke byte.
const VertexSize = 13

var ErrShortRead = errors.New("short vertex read")

// Vertex is a model point. StrokeStart lifts the pen: the point starts a new stroke
// instead of extending the previous one.
type Vertex struct {
	X, Y, Z     Scalar
	StrokeStart bool
}

// Cursor is an opaque read position inside a VertexSource.
type Cursor uint32

// VertexSource hands out vertices in stored order.
type VertexSource interface {
	// ReadNext reads the vertex at c and advances c by one vertex.
	ReadNext(c *Cursor) (Vertex, error)
}

// FlashReader is raw addressable storage, typically hal.Flash.
type FlashReader interface {
	ReadAt(p []byte, off uint32) (int, error)
}

// Model is a read-only, named run of vertices inside a source.
type Model struct {
	Name   string
	Count  int
	Source VertexSource
	Base   Cursor
}

// PutVertex serializes v into b, which must hold VertexSize bytes.
func PutVertex(b []byte, v Vertex) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.Z))
	b[12] = 0
	if v.StrokeStart {
		b[12] = 1
	}
}

// DecodeVertex parses one record produced by PutVertex.
func DecodeVertex(b []byte) Vertex {
	return Vertex{
		X:           math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		Y:           math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		Z:           math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
		StrokeStart: b[12] != 0,
	}
}

// EncodeVertices serializes vs back to back.
func EncodeVertices(vs []Vertex) []byte {
	out := make([]byte, len(vs)*VertexSize)
	for i, v := range vs {
		PutVertex(out[i*VertexSize:], v)
	}
	return out
}

// MemorySource reads vertices from addressable memory.
type MemorySource struct {
	data []byte
}

func NewMemorySource(data []byte) *MemorySource { return &MemorySource{data: data} }

func (s *MemorySource) ReadNext(c *Cursor) (Vertex, error) {
	off := int(*c)
	if off < 0 || off+VertexSize > len(s.data) {
		return Vertex{}, fmt.Errorf("memory read at %d: %w", off, ErrShortRead)
	}
	v := DecodeVertex(s.data[off : off+VertexSize])
	*c += VertexSize
	return v, nil
}

// MemoryModel wraps vs as a Model backed by a MemorySource.
func MemoryModel(name string, vs []Vertex) Model {
	return Model{
		Name:   name,
		Count:  len(vs),
		Source: NewMemorySource(EncodeVertices(vs)),
	}
}

// FlashSource reads vertices straight from flash, one record per call.
type FlashSource struct {
	flash FlashReader
	buf   [VertexSize]byte
}

func NewFlashSource(f FlashReader) *FlashSource { return &FlashSource{flash: f} }

func (s *FlashSource) ReadNext(c *Cursor) (Vertex, error) {
	n, err := s.flash.ReadAt(s.buf[:], uint32(*c))
	if err != nil {
		return Vertex{}, fmt.Errorf("flash vertex at %d: %w", uint32(*c), err)
	}
	if n != VertexSize {
		return Vertex{}, fmt.Errorf("flash vertex at %d: %w", uint32(*c), ErrShortRead)
	}
	*c += VertexSize
	return DecodeVertex(s.buf[:]), nil
}
