package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-core/core"
)

// Driver is the subset of the OpenGL API the resource wrappers touch. The
// engine is a structured client of this interface; production code uses the
// go-gl implementation returned by Init, tests substitute a recording fake.
type Driver interface {
	// Buffers
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	// Shaders and programs
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderParam(shader, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramParam(program, pname uint32) int32
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4fv(location int32, m *float32)

	// Textures
	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, id uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, width, height int32, pixels unsafe.Pointer)
	GenerateMipmap(target uint32)

	// Global state and draw submission
	GetInteger(pname uint32) int32
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	DepthFunc(fn uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	GetError() uint32
}

// Init loads the OpenGL function pointers and returns the native driver.
// Must be called after the window's context is made current.
func Init() (Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	core.LogInfo("OpenGL version: %s", version)

	return glDriver{}, nil
}

// glDriver forwards every call to go-gl.
type glDriver struct{}

func (glDriver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (glDriver) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (glDriver) BindBuffer(target, id uint32) {
	gl.BindBuffer(target, id)
}

func (glDriver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (glDriver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (glDriver) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (glDriver) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (glDriver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (glDriver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (glDriver) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (glDriver) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (glDriver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (glDriver) GetShaderParam(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (glDriver) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (glDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (glDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (glDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (glDriver) GetProgramParam(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (glDriver) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (glDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (glDriver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glDriver) Uniform1i(location, v int32) {
	gl.Uniform1i(location, v)
}

func (glDriver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (glDriver) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (glDriver) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (glDriver) UniformMatrix4fv(location int32, m *float32) {
	gl.UniformMatrix4fv(location, 1, false, m)
}

func (glDriver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (glDriver) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (glDriver) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (glDriver) BindTexture(target, id uint32) {
	gl.BindTexture(target, id)
}

func (glDriver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (glDriver) TexImage2D(target uint32, width, height int32, pixels unsafe.Pointer) {
	gl.TexImage2D(target, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
}

func (glDriver) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (glDriver) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (glDriver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (glDriver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (glDriver) Clear(mask uint32) {
	gl.Clear(mask)
}

func (glDriver) Enable(capability uint32) {
	gl.Enable(capability)
}

func (glDriver) DepthFunc(fn uint32) {
	gl.DepthFunc(fn)
}

func (glDriver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (glDriver) GetError() uint32 {
	return gl.GetError()
}

// DrainErrors empties the driver's error queue, reporting each code through
// the structured log. The 4.1 bindings have no DebugMessageCallback, so a
// debug context is serviced by polling instead. Returns the number of errors
// drained.
func DrainErrors(drv Driver) int {
	n := 0
	for {
		code := drv.GetError()
		if code == gl.NO_ERROR {
			return n
		}
		n++
		core.LogError("OpenGL error %s (0x%04x)", glErrorName(code), code)
	}
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}
