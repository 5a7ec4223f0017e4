package opengl

import (
	"strings"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-core/core"
)

func TestRendererClear(t *testing.T) {
	drv := newFakeDriver()
	r := NewRenderer(drv)

	r.Clear(core.Color{R: 0.1, G: 0.2, B: 0.3, A: 1})

	if drv.countCalls("ClearColor(0.1,0.2,0.3,1)") != 1 {
		t.Errorf("expected clear color to be set\ncalls: %v", drv.calls)
	}
	// Color and depth are always cleared together at this layer
	if drv.countCalls("Clear(0x") != 1 {
		t.Error("expected exactly one clear")
	}
}

func TestRendererEnablesDepthTest(t *testing.T) {
	drv := newFakeDriver()
	NewRenderer(drv)

	if drv.countCalls("Enable(0x") != 1 || drv.countCalls("DepthFunc(0x") != 1 {
		t.Errorf("expected depth test setup\ncalls: %v", drv.calls)
	}
}

func TestRendererDrawBindOrder(t *testing.T) {
	drv := newFakeDriver()
	r := NewRenderer(drv)

	shader, err := NewShader(drv, testSource())
	if err != nil {
		t.Fatal(err)
	}
	va := NewVertexArray(drv)
	ib := NewIndexBuffer(drv, []uint32{0, 1, 2, 2, 3, 0})

	start := len(drv.calls)
	r.Draw(shader, va, ib)
	calls := drv.calls[start:]

	// Program before vertex state before index buffer before submission
	var sequence []string
	for _, c := range calls {
		switch {
		case strings.HasPrefix(c, "UseProgram("):
			sequence = append(sequence, "program")
		case strings.HasPrefix(c, "BindVertexArray("):
			sequence = append(sequence, "vertexarray")
		case strings.HasPrefix(c, "BindBuffer(ELEMENT,"):
			sequence = append(sequence, "indexbuffer")
		case strings.HasPrefix(c, "DrawElements("):
			sequence = append(sequence, "draw")
		}
	}

	want := []string{"program", "vertexarray", "indexbuffer", "draw"}
	if len(sequence) != len(want) {
		t.Fatalf("expected sequence %v, got %v (calls %v)", want, sequence, calls)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("expected sequence %v, got %v", want, sequence)
		}
	}

	if drv.countCalls("DrawElements(count=6)") != 1 {
		t.Errorf("draw must be sized by the index count\ncalls: %v", calls)
	}
}

func TestRendererSetViewport(t *testing.T) {
	drv := newFakeDriver()
	r := NewRenderer(drv)

	r.SetViewport(1920, 1080)

	if drv.countCalls("Viewport(0,0,1920,1080)") != 1 {
		t.Errorf("expected full-size viewport\ncalls: %v", drv.calls)
	}
}

func TestDrainErrors(t *testing.T) {
	drv := newFakeDriver()
	drv.pendingErrors = []uint32{gl.INVALID_ENUM, gl.INVALID_OPERATION}

	if got := DrainErrors(drv); got != 2 {
		t.Errorf("expected 2 errors drained, got %d", got)
	}
	if got := DrainErrors(drv); got != 0 {
		t.Errorf("expected empty queue, got %d", got)
	}
}
