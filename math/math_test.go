package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got, want := v1.Add(v2), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), float32(32); got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}

	// Right x Up = Front in a right-handed system
	if got := Vec3Right.Cross(Vec3Up); got != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, got)
	}
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	if normalized != Vec3Right {
		t.Errorf("Normalize: expected %v, got %v", Vec3Right, normalized)
	}

	length := NewVec3(1, 2, 3).Normalize().Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}

	// Zero vector stays zero instead of dividing by zero
	if got := Vec3Zero.Normalize(); got != Vec3Zero {
		t.Errorf("Normalize: expected zero vector, got %v", got)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	if got := m.Mul(Mat4Identity()); got != m {
		t.Errorf("Mul: expected %v, got %v", m, got)
	}
	if got := Mat4Identity().Mul(m); got != m {
		t.Errorf("Mul: expected %v, got %v", m, got)
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Row-vector convention: a.Mul(b) applies a first, then b.
	scale := Mat4Scale(NewVec3(2, 2, 2))
	translate := Mat4Translation(NewVec3(1, 0, 0))

	p := NewVec3(1, 0, 0)
	got := scale.Mul(translate).MulVec3(p)
	want := NewVec3(3, 0, 0) // scaled to 2, then shifted by 1
	if got != want {
		t.Errorf("Mul order: expected %v, got %v", want, got)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	result := NewVec4(0, 0, 0, 1).MulMat(m)
	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestMat4RotationY(t *testing.T) {
	m := Mat4RotationY(float32(math.Pi / 2))
	got := m.MulVec3(Vec3Right)

	tolerance := float32(0.0001)
	if absf(got.X) > tolerance || absf(got.Y) > tolerance || absf(got.Z+1) > tolerance {
		t.Errorf("RotationY: expected approximately (0,0,-1), got %v", got)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	if got := m.Transpose().Transpose(); got != m {
		t.Errorf("Transpose: expected double transpose to round-trip, got %v", got)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The eye maps to the origin
	result := m.MulVec(eye.ToVec4(1))
	tolerance := float32(0.001)
	if absf(result.X) > tolerance || absf(result.Y) > tolerance || absf(result.Z) > tolerance {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}

	// The target lies in front of the camera, down -Z
	target := m.MulVec3(Vec3Zero)
	if absf(target.Z+5) > tolerance {
		t.Errorf("LookAt: expected target at z=-5, got %v", target.Z)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)

	if m[0][0] == 0 || m[1][1] == 0 {
		t.Error("Perspective: expected non-zero X/Y scale")
	}

	// A point in front of the camera projects with positive clip w
	clip := NewVec4(0, 0, -10, 1).MulMat(m)
	if clip.W <= 0 {
		t.Errorf("Perspective: expected positive w for point in front, got %v", clip.W)
	}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationY(0.3)
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
