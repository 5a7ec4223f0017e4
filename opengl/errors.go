package opengl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAttributeType is returned by BufferLayout.Push for a
	// scalar type outside the supported set.
	ErrUnsupportedAttributeType = errors.New("unsupported attribute type")

	// ErrVertexArrayNotBound is returned by VertexArray.AddBuffer when the
	// array is not currently bound. Without the check the attribute pointers
	// would silently record into whatever vertex array the driver has
	// current.
	ErrVertexArrayNotBound = errors.New("vertex array must be bound before adding buffers")

	// ErrInvalidTextureUnit is returned by Texture.Bind for a unit at or
	// beyond the driver's combined texture unit limit.
	ErrInvalidTextureUnit = errors.New("texture unit out of range")

	// ErrTextureLoad wraps image decode failures. Recoverable: callers
	// typically substitute a placeholder texture.
	ErrTextureLoad = errors.New("texture load failed")
)

// CompileError reports a failed shader stage compilation together with the
// driver's diagnostic output.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError reports a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program link failed: %s", e.Log)
}
