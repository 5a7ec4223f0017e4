package opengl

// VertexArray owns a GPU vertex-array object recording attribute
// configuration for one or more vertex buffers. The recorded state lives in
// the driver; the wrapper additionally keeps Go references to the source
// buffers so they cannot be collected (and released) while the array still
// reads from them.
type VertexArray struct {
	noCopy noCopy

	drv       Driver
	id        uint32
	buffers   []*VertexBuffer
	nextIndex uint32
	bound     bool
}

func NewVertexArray(drv Driver) *VertexArray {
	return &VertexArray{drv: drv, id: drv.GenVertexArray()}
}

// Bind restores the full recorded attribute configuration in one call.
func (va *VertexArray) Bind() {
	va.drv.BindVertexArray(va.id)
	va.bound = true
}

func (va *VertexArray) Unbind() {
	va.drv.BindVertexArray(0)
	va.bound = false
}

// AddBuffer records vb's attributes into the array, one sequential attribute
// index per layout element in append order. Byte offsets accumulate by each
// prior element's actual byte width, so mixed float/uint layouts slice
// correctly.
//
// The array must be bound when this is called; the attribute-pointer calls
// configure whichever vertex array the driver has current, so a violation
// would corrupt unrelated state without any driver error.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, layout *BufferLayout) error {
	if !va.bound {
		return ErrVertexArrayNotBound
	}

	vb.Bind()
	offset := 0
	for _, e := range layout.Elements() {
		va.drv.EnableVertexAttribArray(va.nextIndex)
		va.drv.VertexAttribPointer(va.nextIndex, e.Count, elementTypes[e.Type].glType,
			e.Normalized, layout.Stride(), offset)
		va.nextIndex++
		offset += int(e.ByteSize())
	}

	va.buffers = append(va.buffers, vb)
	return nil
}

// Buffers returns the vertex buffers the array references (it does not own
// them; Release leaves them alive).
func (va *VertexArray) Buffers() []*VertexBuffer {
	return va.buffers
}

// Release frees the vertex-array object and drops the buffer references.
func (va *VertexArray) Release() {
	if va.id != 0 {
		va.drv.DeleteVertexArray(va.id)
		va.id = 0
	}
	va.buffers = nil
}
