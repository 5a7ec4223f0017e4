package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-core/core"
)

// Renderer is the stateless draw orchestrator: it binds the objects handed
// to a single call and submits the draw. It holds no references between
// calls.
type Renderer struct {
	drv Driver
}

func NewRenderer(drv Driver) *Renderer {
	drv.Enable(gl.DEPTH_TEST)
	drv.DepthFunc(gl.LESS)
	return &Renderer{drv: drv}
}

// SetViewport resizes the GPU viewport. Width and height are framebuffer
// pixels, not window units.
func (r *Renderer) SetViewport(width, height int) {
	r.drv.Viewport(0, 0, int32(width), int32(height))
}

// Clear sets the clear color and clears both the color and depth planes.
func (r *Renderer) Clear(c core.Color) {
	r.drv.ClearColor(c.R, c.G, c.B, c.A)
	r.drv.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw submits an indexed triangle-list draw. The bind order is fixed —
// program, then vertex array, then index buffer — because the index-buffer
// binding records into the currently bound vertex array; callers cannot
// introduce order bugs here.
func (r *Renderer) Draw(shader *Shader, va *VertexArray, ib *IndexBuffer) {
	shader.Bind()
	va.Bind()
	ib.Bind()
	r.drv.DrawElements(gl.TRIANGLES, ib.Count(), gl.UNSIGNED_INT, 0)
}
