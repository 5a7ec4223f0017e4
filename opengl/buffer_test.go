package opengl

import "testing"

func TestVertexBufferUploadsOnConstruction(t *testing.T) {
	drv := newFakeDriver()
	data := make([]byte, 48)

	vb := NewVertexBuffer(drv, data)

	if vb.Size() != 48 {
		t.Errorf("expected size 48, got %d", vb.Size())
	}
	if got := drv.countCalls("BufferData(size=48)"); got != 1 {
		t.Errorf("expected one upload, got %d", got)
	}
}

func TestVertexBufferReleaseIdempotent(t *testing.T) {
	drv := newFakeDriver()
	vb := NewVertexBuffer(drv, make([]byte, 4))

	vb.Release()
	vb.Release()

	if len(drv.deletedBuffers) != 1 {
		t.Errorf("expected exactly one delete, got %d", len(drv.deletedBuffers))
	}
}

func TestVertexBufferMoveTransfersOwnership(t *testing.T) {
	drv := newFakeDriver()
	src := NewVertexBuffer(drv, make([]byte, 8))

	dst := src.Move()

	if src.Size() != 0 {
		t.Errorf("moved-from buffer should be empty, size %d", src.Size())
	}

	// Releasing source then destination must free the handle exactly once
	src.Release()
	if len(drv.deletedBuffers) != 0 {
		t.Fatalf("moved-from release freed the handle: %v", drv.deletedBuffers)
	}
	dst.Release()
	if len(drv.deletedBuffers) != 1 {
		t.Errorf("expected one delete after destination release, got %d", len(drv.deletedBuffers))
	}
}

func TestIndexBufferCountAndTarget(t *testing.T) {
	drv := newFakeDriver()
	ib := NewIndexBuffer(drv, []uint32{0, 1, 2, 2, 3, 0})

	if ib.Count() != 6 {
		t.Errorf("expected count 6, got %d", ib.Count())
	}
	if got := drv.countCalls("BindBuffer(ELEMENT,"); got != 1 {
		t.Errorf("expected one element-target bind during upload, got %d", got)
	}
	if got := drv.countCalls("BufferData(size=24)"); got != 1 {
		t.Errorf("expected 24-byte upload, got %d matching calls", got)
	}
}

func TestIndexBufferMoveThenDoubleRelease(t *testing.T) {
	drv := newFakeDriver()
	src := NewIndexBuffer(drv, []uint32{0, 1, 2})
	dst := src.Move()

	src.Release()
	dst.Release()
	dst.Release()

	if len(drv.deletedBuffers) != 1 {
		t.Errorf("expected exactly one delete, got %d", len(drv.deletedBuffers))
	}
	if src.Count() != 0 {
		t.Errorf("moved-from index buffer should report zero count, got %d", src.Count())
	}
}
