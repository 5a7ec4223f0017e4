package main

import (
	"flag"
	"image/color"
	stdmath "math"
	"os"

	"render-core/assets"
	"render-core/camera"
	"render-core/core"
	"render-core/math"
	"render-core/opengl"
)

const (
	shaderPath  = "assets/basic.shader"
	texturePath = "assets/crate.png"
)

// fallbackShader keeps the demo running without its asset directory.
const fallbackShader = `#shader vertex
#version 410 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec2 a_TexCoord;
uniform mat4 u_MVP;
out vec2 v_TexCoord;
void main() {
    gl_Position = u_MVP * vec4(a_Position, 1.0);
    v_TexCoord = a_TexCoord;
}

#shader fragment
#version 410 core
in vec2 v_TexCoord;
uniform sampler2D u_Texture;
uniform vec4 u_Tint;
out vec4 o_Color;
void main() {
    o_Color = texture(u_Texture, v_TexCoord) * u_Tint;
}
`

// Unit cube, 24 vertices of position (vec3) + texcoord (vec2), one quad per
// face so the texture is not mirrored across shared corners.
var cubeVertices = []float32{
	// front
	-0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	// back
	0.5, -0.5, -0.5, 0, 0,
	-0.5, -0.5, -0.5, 1, 0,
	-0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, -0.5, 0, 1,
	// left
	-0.5, -0.5, -0.5, 0, 0,
	-0.5, -0.5, 0.5, 1, 0,
	-0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	// right
	0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 0, 1,
	// top
	-0.5, 0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	// bottom
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, -0.5, 0.5, 1, 1,
	-0.5, -0.5, 0.5, 0, 1,
}

var cubeIndices = []uint32{
	0, 1, 2, 2, 3, 0,
	4, 5, 6, 6, 7, 4,
	8, 9, 10, 10, 11, 8,
	12, 13, 14, 14, 15, 12,
	16, 17, 18, 18, 19, 16,
	20, 21, 22, 22, 23, 20,
}

func main() {
	configPath := flag.String("config", "engine.toml", "path to engine config")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("load config: %v", err)
	}

	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		core.LogFatal("create window: %v", err)
	}
	defer window.Destroy()

	drv, err := opengl.Init()
	if err != nil {
		core.LogFatal("init OpenGL: %v", err)
	}

	renderer := opengl.NewRenderer(drv)
	fbWidth, fbHeight := window.FramebufferSize()
	renderer.SetViewport(fbWidth, fbHeight)

	cam := camera.New(cfg.Camera.FOV, float32(fbWidth)/float32(fbHeight),
		cfg.Camera.Near, cfg.Camera.Far)
	cam.SetPosition(math.NewVec3(0, 0, 3))

	window.OnFramebufferResize(func(width, height int) {
		renderer.SetViewport(width, height)
		if height > 0 {
			cam.SetAspectRatio(float32(width) / float32(height))
		}
	})

	shader, watcher := loadShader(drv)
	defer shader.Release()
	if watcher != nil {
		defer watcher.Close()
	}

	texture := loadTexture(drv)
	defer texture.Release()

	vb := opengl.NewVertexBuffer(drv, floatBytes(cubeVertices))
	defer vb.Release()

	var layout opengl.BufferLayout
	if err := layout.Push(opengl.Float32, 3, false); err != nil {
		core.LogFatal("layout: %v", err)
	}
	if err := layout.Push(opengl.Float32, 2, false); err != nil {
		core.LogFatal("layout: %v", err)
	}

	va := opengl.NewVertexArray(drv)
	defer va.Release()
	va.Bind()
	if err := va.AddBuffer(vb, &layout); err != nil {
		core.LogFatal("vertex array: %v", err)
	}

	ib := opengl.NewIndexBuffer(drv, cubeIndices)
	defer ib.Release()
	va.Unbind()

	controller := newCameraController()
	window.SetCursorCaptured(true)

	lastTime := window.Time()
	for !window.ShouldClose() {
		now := window.Time()
		dt := float32(now - lastTime)
		lastTime = now

		window.PollEvents()
		controller.update(window, cam, dt)

		if watcher != nil {
			select {
			case <-watcher.Changed():
				if reloaded, err := opengl.NewShaderFromFile(drv, shaderPath); err != nil {
					core.LogError("shader reload failed, keeping previous: %v", err)
				} else {
					shader.Release()
					shader = reloaded
					core.LogInfo("shader reloaded")
				}
			default:
			}
		}

		renderer.Clear(core.Color{R: 0.08, G: 0.1, B: 0.12, A: 1})

		model := math.Mat4RotationY(float32(now) * 0.6)
		mvp := model.Mul(cam.ViewProjectionMatrix())

		if err := texture.Bind(0); err != nil {
			core.LogFatal("bind texture: %v", err)
		}

		shader.Bind()
		shader.SetUniformMat4("u_MVP", mvp)
		shader.SetUniform1i("u_Texture", 0)
		shader.SetUniform4f("u_Tint", math.NewVec4(1, 1, 1, 1))

		renderer.Draw(shader, va, ib)

		if cfg.Window.DebugContext {
			opengl.DrainErrors(drv)
		}

		window.SwapBuffers()
	}
}

// loadShader compiles the on-disk shader and watches it for edits, falling
// back to the embedded source when the file is absent.
func loadShader(drv opengl.Driver) (*opengl.Shader, *assets.Watcher) {
	if _, err := os.Stat(shaderPath); err != nil {
		core.LogInfo("no %s, using embedded shader", shaderPath)
		shader, err := opengl.NewShader(drv, opengl.ParseShaderSource(fallbackShader))
		if err != nil {
			core.LogFatal("embedded shader: %v", err)
		}
		return shader, nil
	}

	shader, err := opengl.NewShaderFromFile(drv, shaderPath)
	if err != nil {
		core.LogFatal("compile %s: %v", shaderPath, err)
	}

	watcher, err := assets.NewWatcher()
	if err != nil {
		core.LogWarn("shader hot reload unavailable: %v", err)
		return shader, nil
	}
	if err := watcher.Watch(shaderPath); err != nil {
		core.LogWarn("watch %s: %v", shaderPath, err)
		watcher.Close()
		return shader, nil
	}
	return shader, watcher
}

// loadTexture loads the demo texture, substituting a checkerboard when the
// file is missing or undecodable.
func loadTexture(drv opengl.Driver) *opengl.Texture {
	texture, err := opengl.NewTextureFromFile(drv, texturePath, opengl.DefaultTextureOptions())
	if err != nil {
		core.LogWarn("%v, using checkerboard", err)
		return opengl.NewCheckerTexture(drv, 64,
			color.RGBA{R: 230, G: 230, B: 230, A: 255},
			color.RGBA{R: 60, G: 60, B: 60, A: 255})
	}
	return texture
}

// cameraController applies WASD movement and mouse look. Pitch clamping
// happens here: the camera itself stores whatever it is given.
type cameraController struct {
	moveSpeed  float32
	lookSpeed  float32
	pitch      float32
	yaw        float32
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
}

func newCameraController() *cameraController {
	return &cameraController{
		moveSpeed:  2.5,
		lookSpeed:  0.002,
		firstMouse: true,
	}
}

const maxPitch = float32(stdmath.Pi/2) - 0.01

func (cc *cameraController) update(window *core.Window, cam *camera.Camera, dt float32) {
	x, y := window.CursorPos()
	if cc.firstMouse {
		cc.lastMouseX, cc.lastMouseY = x, y
		cc.firstMouse = false
	}
	dx := float32(x - cc.lastMouseX)
	dy := float32(y - cc.lastMouseY)
	cc.lastMouseX, cc.lastMouseY = x, y

	cc.yaw -= dx * cc.lookSpeed
	cc.pitch -= dy * cc.lookSpeed
	if cc.pitch > maxPitch {
		cc.pitch = maxPitch
	}
	if cc.pitch < -maxPitch {
		cc.pitch = -maxPitch
	}
	cam.SetRotation(cc.pitch, cc.yaw)

	step := cc.moveSpeed * dt
	if window.IsKeyPressed(core.KeyLeftShift) {
		step *= 3
	}
	if window.IsKeyPressed(core.KeyW) {
		cam.MoveForward(step)
	}
	if window.IsKeyPressed(core.KeyS) {
		cam.MoveForward(-step)
	}
	if window.IsKeyPressed(core.KeyD) {
		cam.MoveRight(step)
	}
	if window.IsKeyPressed(core.KeyA) {
		cam.MoveRight(-step)
	}
	if window.IsKeyPressed(core.KeySpace) {
		cam.MoveUp(step)
	}
	if window.IsKeyPressed(core.KeyLeftControl) {
		cam.MoveUp(-step)
	}
}

// floatBytes reinterprets a float32 slice as raw little-endian bytes for
// upload.
func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		bits := stdmath.Float32bits(f)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
