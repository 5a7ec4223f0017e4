package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ElementType is the closed set of scalar types a vertex attribute may use.
type ElementType uint8

const (
	Float32 ElementType = iota
	UInt32
)

// elementTypes maps each ElementType to its byte width and driver type tag.
// Keeping the mapping in one table makes the supported set explicit.
var elementTypes = [...]struct {
	byteSize int32
	glType   uint32
}{
	Float32: {byteSize: 4, glType: gl.FLOAT},
	UInt32:  {byteSize: 4, glType: gl.UNSIGNED_INT},
}

// LayoutElement describes one attribute inside a vertex: scalar type,
// component count and whether integer data is normalized on fetch.
type LayoutElement struct {
	Type       ElementType
	Count      int32
	Normalized bool
}

// ByteSize is the total span of the element: component count times the
// scalar type's width.
func (e LayoutElement) ByteSize() int32 {
	return e.Count * elementTypes[e.Type].byteSize
}

// BufferLayout describes how the bytes of one vertex buffer slice into
// attributes. Built by sequential Push calls; stride accumulates as elements
// are appended. Pure value type, no GPU handle.
type BufferLayout struct {
	elements []LayoutElement
	stride   int32
}

// Push appends one attribute element. Returns ErrUnsupportedAttributeType
// for a scalar type outside the supported set.
func (l *BufferLayout) Push(t ElementType, count int32, normalized bool) error {
	if int(t) >= len(elementTypes) {
		return fmt.Errorf("%w: %d", ErrUnsupportedAttributeType, t)
	}

	l.elements = append(l.elements, LayoutElement{Type: t, Count: count, Normalized: normalized})
	l.stride += count * elementTypes[t].byteSize
	return nil
}

func (l *BufferLayout) Elements() []LayoutElement {
	return l.elements
}

// Stride is the byte span of one full vertex.
func (l *BufferLayout) Stride() int32 {
	return l.stride
}
