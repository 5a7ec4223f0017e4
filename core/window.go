package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

// Window owns the platform surface and its OpenGL context. Exactly one
// context is current per thread; every method must be called from the thread
// that created the window.
type Window struct {
	Handle *glfw.Window
	Title  string

	// Framebuffer size in pixels. On HiDPI displays this differs from the
	// window size in screen units; the GPU viewport must use pixels.
	fbWidth  int
	fbHeight int

	onResize  func(width, height int)
	destroyed bool
}

type WindowConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Title        string `toml:"title"`
	GLMajor      int    `toml:"gl_major"`
	GLMinor      int    `toml:"gl_minor"`
	CoreProfile  bool   `toml:"core_profile"`
	DebugContext bool   `toml:"debug_context"`
	Resizable    bool   `toml:"resizable"`
	VSync        bool   `toml:"vsync"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:       1280,
		Height:      720,
		Title:       "render-core",
		GLMajor:     4,
		GLMinor:     1,
		CoreProfile: true,
		Resizable:   true,
		VSync:       true,
	}
}

// NewWindow initializes the platform layer, creates the surface and makes its
// OpenGL context current. Failures are fatal to the caller: either the
// platform library would not start (ErrInitialization) or the requested
// version/profile is not available (ErrContextCreation). GLFW reports the
// underlying platform diagnostic in the returned error.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, config.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, config.GLMinor)
	if config.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		// Required for core contexts on macOS
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.OpenGLDebugContext, boolToInt(config.DebugContext))
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrContextCreation, err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle: handle,
		Title:  config.Title,
	}
	window.fbWidth, window.fbHeight = handle.GetFramebufferSize()

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.fbWidth = width
		window.fbHeight = height
		if window.onResize != nil {
			window.onResize(width, height)
		}
	})

	LogInfo("window created: %dx%d (framebuffer %dx%d), GL %d.%d",
		config.Width, config.Height, window.fbWidth, window.fbHeight,
		config.GLMajor, config.GLMinor)

	return window, nil
}

// OnFramebufferResize registers fn to run synchronously whenever the
// framebuffer size changes. The renderer hooks its viewport update here.
func (w *Window) OnFramebufferResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// PollEvents drains pending platform events, updating polled key state and
// firing registered callbacks. Escape requests window close.
func (w *Window) PollEvents() {
	glfw.PollEvents()
	if w.Handle.GetKey(glfw.KeyEscape) == glfw.Press {
		w.Handle.SetShouldClose(true)
	}
}

// SwapBuffers presents the back buffer. Blocks until the next refresh
// boundary when vsync is on.
func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.fbWidth, w.fbHeight
}

// Time returns seconds since platform initialization.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) CursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// SetCursorCaptured hides and grabs the cursor for mouse-look.
func (w *Window) SetCursorCaptured(captured bool) {
	if captured {
		w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// Destroy releases the context and surface together and shuts the platform
// library down. Must be called exactly once; the process cannot create
// another window afterwards.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeySpace        = int(glfw.KeySpace)
	Key0            = int(glfw.Key0)
	Key1            = int(glfw.Key1)
	Key2            = int(glfw.Key2)
	Key3            = int(glfw.Key3)
	Key4            = int(glfw.Key4)
	Key5            = int(glfw.Key5)
	Key6            = int(glfw.Key6)
	Key7            = int(glfw.Key7)
	Key8            = int(glfw.Key8)
	Key9            = int(glfw.Key9)
	KeyA            = int(glfw.KeyA)
	KeyB            = int(glfw.KeyB)
	KeyC            = int(glfw.KeyC)
	KeyD            = int(glfw.KeyD)
	KeyE            = int(glfw.KeyE)
	KeyF            = int(glfw.KeyF)
	KeyG            = int(glfw.KeyG)
	KeyH            = int(glfw.KeyH)
	KeyI            = int(glfw.KeyI)
	KeyJ            = int(glfw.KeyJ)
	KeyK            = int(glfw.KeyK)
	KeyL            = int(glfw.KeyL)
	KeyM            = int(glfw.KeyM)
	KeyN            = int(glfw.KeyN)
	KeyO            = int(glfw.KeyO)
	KeyP            = int(glfw.KeyP)
	KeyQ            = int(glfw.KeyQ)
	KeyR            = int(glfw.KeyR)
	KeyS            = int(glfw.KeyS)
	KeyT            = int(glfw.KeyT)
	KeyU            = int(glfw.KeyU)
	KeyV            = int(glfw.KeyV)
	KeyW            = int(glfw.KeyW)
	KeyX            = int(glfw.KeyX)
	KeyY            = int(glfw.KeyY)
	KeyZ            = int(glfw.KeyZ)
	KeyEscape       = int(glfw.KeyEscape)
	KeyEnter        = int(glfw.KeyEnter)
	KeyTab          = int(glfw.KeyTab)
	KeyBackspace    = int(glfw.KeyBackspace)
	KeyRight        = int(glfw.KeyRight)
	KeyLeft         = int(glfw.KeyLeft)
	KeyDown         = int(glfw.KeyDown)
	KeyUp           = int(glfw.KeyUp)
	KeyF1           = int(glfw.KeyF1)
	KeyF2           = int(glfw.KeyF2)
	KeyF3           = int(glfw.KeyF3)
	KeyF4           = int(glfw.KeyF4)
	KeyF5           = int(glfw.KeyF5)
	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyLeftControl  = int(glfw.KeyLeftControl)
	KeyLeftAlt      = int(glfw.KeyLeftAlt)
	KeyRightShift   = int(glfw.KeyRightShift)
	KeyRightControl = int(glfw.KeyRightControl)
)
