package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// noCopy makes `go vet -copylocks` flag value copies of the owning wrappers.
// A copied wrapper would hold the same GPU handle as the original and both
// would try to release it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// VertexBuffer owns one GPU buffer holding an immutable static upload of raw
// vertex bytes. The handle has exactly one owner; transfer it with Move,
// never by copying the struct.
type VertexBuffer struct {
	noCopy noCopy

	drv  Driver
	id   uint32
	size int
}

// NewVertexBuffer uploads data synchronously and returns the owning wrapper.
func NewVertexBuffer(drv Driver, data []byte) *VertexBuffer {
	id := drv.GenBuffer()
	drv.BindBuffer(gl.ARRAY_BUFFER, id)
	drv.BufferData(gl.ARRAY_BUFFER, len(data), bytePtr(data), gl.STATIC_DRAW)

	return &VertexBuffer{drv: drv, id: id, size: len(data)}
}

func (b *VertexBuffer) Bind() {
	b.drv.BindBuffer(gl.ARRAY_BUFFER, b.id)
}

func (b *VertexBuffer) Unbind() {
	b.drv.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Size returns the byte length of the uploaded data.
func (b *VertexBuffer) Size() int {
	return b.size
}

// Move transfers ownership of the GPU handle to a new wrapper. The source is
// left as an empty placeholder whose Release is a no-op.
func (b *VertexBuffer) Move() *VertexBuffer {
	moved := &VertexBuffer{drv: b.drv, id: b.id, size: b.size}
	b.id = 0
	b.size = 0
	return moved
}

// Release frees the GPU buffer. Safe to call more than once and on moved-from
// wrappers.
func (b *VertexBuffer) Release() {
	if b.id != 0 {
		b.drv.DeleteBuffer(b.id)
		b.id = 0
	}
}

// IndexBuffer owns one GPU buffer holding uint32 triangle indices.
//
// In a core profile the ELEMENT_ARRAY_BUFFER binding lives inside the current
// vertex array, so Bind only sticks while a vertex array is bound.
type IndexBuffer struct {
	noCopy noCopy

	drv   Driver
	id    uint32
	count int32
}

func NewIndexBuffer(drv Driver, indices []uint32) *IndexBuffer {
	id := drv.GenBuffer()
	drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	drv.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, uint32Ptr(indices), gl.STATIC_DRAW)

	return &IndexBuffer{drv: drv, id: id, count: int32(len(indices))}
}

func (b *IndexBuffer) Bind() {
	b.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
}

func (b *IndexBuffer) Unbind() {
	b.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// Count returns the number of indices; DrawElements is sized by it.
func (b *IndexBuffer) Count() int32 {
	return b.count
}

func (b *IndexBuffer) Move() *IndexBuffer {
	moved := &IndexBuffer{drv: b.drv, id: b.id, count: b.count}
	b.id = 0
	b.count = 0
	return moved
}

func (b *IndexBuffer) Release() {
	if b.id != 0 {
		b.drv.DeleteBuffer(b.id)
		b.id = 0
	}
}

func bytePtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func uint32Ptr(data []uint32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}
