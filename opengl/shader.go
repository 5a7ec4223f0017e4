package opengl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-core/core"
	"render-core/math"
)

// ShaderSource holds the two stage sources split out of a dual-stage file.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

const shaderMarker = "#shader"

// ParseShaderSource splits source text containing `#shader vertex` and
// `#shader fragment` marker lines into per-stage sources. Lines before the
// first marker are discarded; lines under an unknown stage keyword are
// discarded too. Text with no markers yields two empty strings.
func ParseShaderSource(src string) ShaderSource {
	var parsed ShaderSource
	var current *string

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), shaderMarker) {
			switch stage := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), shaderMarker)); stage {
			case "vertex":
				current = &parsed.Vertex
			case "fragment":
				current = &parsed.Fragment
			default:
				core.LogWarn("unknown shader stage %q, section discarded", stage)
				current = nil
			}
			continue
		}
		if current != nil {
			*current += line + "\n"
		}
	}

	return parsed
}

// ParseShaderFile reads and splits a dual-stage shader file.
func ParseShaderFile(path string) (ShaderSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("read shader %s: %w", path, err)
	}
	return ParseShaderSource(string(data)), nil
}

// Shader owns a compiled and linked GPU program plus a lazy cache of uniform
// locations.
type Shader struct {
	noCopy noCopy

	drv      Driver
	id       uint32
	uniforms map[string]uniformLocation
}

// uniformLocation memoizes one driver lookup. found=false records a name the
// driver reported absent (or optimized out), so known-missing uniforms are
// never re-queried.
type uniformLocation struct {
	location int32
	found    bool
}

// NewShader compiles both stages and links them into one program. Stage
// failures return *CompileError carrying the stage name and driver
// diagnostic; link failures return *LinkError.
func NewShader(drv Driver, source ShaderSource) (*Shader, error) {
	vert, err := compileStage(drv, "vertex", source.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frag, err := compileStage(drv, "fragment", source.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		drv.DeleteShader(vert)
		return nil, err
	}

	program := drv.CreateProgram()
	drv.AttachShader(program, vert)
	drv.AttachShader(program, frag)
	drv.LinkProgram(program)

	// Stage objects are no longer needed once linked
	drv.DeleteShader(vert)
	drv.DeleteShader(frag)

	if drv.GetProgramParam(program, gl.LINK_STATUS) == gl.FALSE {
		log := drv.ProgramInfoLog(program)
		drv.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}

	return &Shader{
		drv:      drv,
		id:       program,
		uniforms: make(map[string]uniformLocation),
	}, nil
}

// NewShaderFromFile parses a dual-stage shader file and compiles it.
func NewShaderFromFile(drv Driver, path string) (*Shader, error) {
	source, err := ParseShaderFile(path)
	if err != nil {
		return nil, err
	}
	return NewShader(drv, source)
}

func compileStage(drv Driver, stage, src string, xtype uint32) (uint32, error) {
	shader := drv.CreateShader(xtype)
	drv.ShaderSource(shader, src)
	drv.CompileShader(shader)

	if drv.GetShaderParam(shader, gl.COMPILE_STATUS) == gl.FALSE {
		log := drv.ShaderInfoLog(shader)
		drv.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// Bind activates the program. Uniform setters require the program to be
// bound; they do not bind it themselves, so a caller issuing many uniforms
// pays for one state change.
func (s *Shader) Bind() {
	s.drv.UseProgram(s.id)
}

// location resolves a uniform name through the cache, querying the driver
// only on the first lookup. Absent names are cached as -1 and logged once.
func (s *Shader) location(name string) int32 {
	if cached, ok := s.uniforms[name]; ok {
		if !cached.found {
			return -1
		}
		return cached.location
	}

	loc := s.drv.GetUniformLocation(s.id, name)
	s.uniforms[name] = uniformLocation{location: loc, found: loc >= 0}
	if loc < 0 {
		core.LogWarn("uniform %q not found (unused or optimized out)", name)
	}
	return loc
}

// SetUniform1i uploads an int uniform; silently skipped when the name did
// not resolve, matching driver tolerance for optimized-away uniforms.
func (s *Shader) SetUniform1i(name string, v int32) {
	if loc := s.location(name); loc >= 0 {
		s.drv.Uniform1i(loc, v)
	}
}

func (s *Shader) SetUniform1f(name string, v float32) {
	if loc := s.location(name); loc >= 0 {
		s.drv.Uniform1f(loc, v)
	}
}

func (s *Shader) SetUniform3f(name string, v math.Vec3) {
	if loc := s.location(name); loc >= 0 {
		s.drv.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (s *Shader) SetUniform4f(name string, v math.Vec4) {
	if loc := s.location(name); loc >= 0 {
		s.drv.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	}
}

func (s *Shader) SetUniformMat4(name string, m math.Mat4) {
	if loc := s.location(name); loc >= 0 {
		s.drv.UniformMatrix4fv(loc, &m[0][0])
	}
}

// Release frees the program. Safe to call more than once.
func (s *Shader) Release() {
	if s.id != 0 {
		s.drv.DeleteProgram(s.id)
		s.id = 0
	}
}
