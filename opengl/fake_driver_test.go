package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// fakeDriver records every call so tests can assert release counts, cache
// behavior and bind ordering without a live GL context.
type fakeDriver struct {
	calls  []string
	nextID uint32

	deletedBuffers      []uint32
	deletedVertexArrays []uint32
	deletedShaders      []uint32
	deletedPrograms     []uint32
	deletedTextures     []uint32

	// uniform name -> location; names not present resolve to -1
	uniformLocations map[string]int32
	uniformQueries   map[string]int

	shaderTypes  map[uint32]uint32
	failVertex   bool
	failFragment bool
	failLink     bool
	infoLog      string

	maxTextureUnits int32

	pendingErrors []uint32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		uniformLocations: make(map[string]int32),
		uniformQueries:   make(map[string]int),
		shaderTypes:      make(map[uint32]uint32),
		maxTextureUnits:  16,
		infoLog:          "fake diagnostic",
	}
}

func (f *fakeDriver) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) genID() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeDriver) GenBuffer() uint32 {
	id := f.genID()
	f.record("GenBuffer=%d", id)
	return id
}

func (f *fakeDriver) DeleteBuffer(id uint32) {
	f.record("DeleteBuffer(%d)", id)
	f.deletedBuffers = append(f.deletedBuffers, id)
}

func (f *fakeDriver) BindBuffer(target, id uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		f.record("BindBuffer(ARRAY,%d)", id)
	case gl.ELEMENT_ARRAY_BUFFER:
		f.record("BindBuffer(ELEMENT,%d)", id)
	default:
		f.record("BindBuffer(%d,%d)", target, id)
	}
}

func (f *fakeDriver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.record("BufferData(size=%d)", size)
}

func (f *fakeDriver) GenVertexArray() uint32 {
	id := f.genID()
	f.record("GenVertexArray=%d", id)
	return id
}

func (f *fakeDriver) DeleteVertexArray(id uint32) {
	f.record("DeleteVertexArray(%d)", id)
	f.deletedVertexArrays = append(f.deletedVertexArrays, id)
}

func (f *fakeDriver) BindVertexArray(id uint32) {
	f.record("BindVertexArray(%d)", id)
}

func (f *fakeDriver) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray(%d)", index)
}

func (f *fakeDriver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.record("VertexAttribPointer(index=%d,size=%d,stride=%d,offset=%d)", index, size, stride, offset)
}

func (f *fakeDriver) CreateShader(xtype uint32) uint32 {
	id := f.genID()
	f.shaderTypes[id] = xtype
	f.record("CreateShader=%d", id)
	return id
}

func (f *fakeDriver) ShaderSource(shader uint32, src string) {
	f.record("ShaderSource(%d)", shader)
}

func (f *fakeDriver) CompileShader(shader uint32) {
	f.record("CompileShader(%d)", shader)
}

func (f *fakeDriver) GetShaderParam(shader, pname uint32) int32 {
	if pname == gl.COMPILE_STATUS {
		if f.shaderTypes[shader] == gl.VERTEX_SHADER && f.failVertex {
			return gl.FALSE
		}
		if f.shaderTypes[shader] == gl.FRAGMENT_SHADER && f.failFragment {
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *fakeDriver) ShaderInfoLog(shader uint32) string {
	return f.infoLog
}

func (f *fakeDriver) DeleteShader(shader uint32) {
	f.record("DeleteShader(%d)", shader)
	f.deletedShaders = append(f.deletedShaders, shader)
}

func (f *fakeDriver) CreateProgram() uint32 {
	id := f.genID()
	f.record("CreateProgram=%d", id)
	return id
}

func (f *fakeDriver) AttachShader(program, shader uint32) {
	f.record("AttachShader(%d,%d)", program, shader)
}

func (f *fakeDriver) LinkProgram(program uint32) {
	f.record("LinkProgram(%d)", program)
}

func (f *fakeDriver) GetProgramParam(program, pname uint32) int32 {
	if pname == gl.LINK_STATUS {
		if f.failLink {
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *fakeDriver) ProgramInfoLog(program uint32) string {
	return f.infoLog
}

func (f *fakeDriver) DeleteProgram(program uint32) {
	f.record("DeleteProgram(%d)", program)
	f.deletedPrograms = append(f.deletedPrograms, program)
}

func (f *fakeDriver) UseProgram(program uint32) {
	f.record("UseProgram(%d)", program)
}

func (f *fakeDriver) GetUniformLocation(program uint32, name string) int32 {
	f.uniformQueries[name]++
	f.record("GetUniformLocation(%q)", name)
	if loc, ok := f.uniformLocations[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeDriver) Uniform1i(location, v int32) {
	f.record("Uniform1i(loc=%d,v=%d)", location, v)
}

func (f *fakeDriver) Uniform1f(location int32, v float32) {
	f.record("Uniform1f(loc=%d,v=%g)", location, v)
}

func (f *fakeDriver) Uniform3f(location int32, x, y, z float32) {
	f.record("Uniform3f(loc=%d)", location)
}

func (f *fakeDriver) Uniform4f(location int32, x, y, z, w float32) {
	f.record("Uniform4f(loc=%d)", location)
}

func (f *fakeDriver) UniformMatrix4fv(location int32, m *float32) {
	f.record("UniformMatrix4fv(loc=%d)", location)
}

func (f *fakeDriver) GenTexture() uint32 {
	id := f.genID()
	f.record("GenTexture=%d", id)
	return id
}

func (f *fakeDriver) DeleteTexture(id uint32) {
	f.record("DeleteTexture(%d)", id)
	f.deletedTextures = append(f.deletedTextures, id)
}

func (f *fakeDriver) ActiveTexture(unit uint32) {
	f.record("ActiveTexture(%d)", unit-gl.TEXTURE0)
}

func (f *fakeDriver) BindTexture(target, id uint32) {
	f.record("BindTexture(%d)", id)
}

func (f *fakeDriver) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri(%d,%d)", pname, param)
}

func (f *fakeDriver) TexImage2D(target uint32, width, height int32, pixels unsafe.Pointer) {
	f.record("TexImage2D(%dx%d)", width, height)
}

func (f *fakeDriver) GenerateMipmap(target uint32) {
	f.record("GenerateMipmap")
}

func (f *fakeDriver) GetInteger(pname uint32) int32 {
	if pname == gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS {
		return f.maxTextureUnits
	}
	return 0
}

func (f *fakeDriver) Viewport(x, y, width, height int32) {
	f.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

func (f *fakeDriver) ClearColor(r, g, b, a float32) {
	f.record("ClearColor(%g,%g,%g,%g)", r, g, b, a)
}

func (f *fakeDriver) Clear(mask uint32) {
	f.record("Clear(0x%x)", mask)
}

func (f *fakeDriver) Enable(capability uint32) {
	f.record("Enable(0x%x)", capability)
}

func (f *fakeDriver) DepthFunc(fn uint32) {
	f.record("DepthFunc(0x%x)", fn)
}

func (f *fakeDriver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	f.record("DrawElements(count=%d)", count)
}

func (f *fakeDriver) GetError() uint32 {
	if len(f.pendingErrors) == 0 {
		return gl.NO_ERROR
	}
	code := f.pendingErrors[0]
	f.pendingErrors = f.pendingErrors[1:]
	return code
}

// countCalls returns how many recorded calls start with prefix.
func (f *fakeDriver) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
