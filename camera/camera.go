// Package camera derives view and projection matrices from position,
// orientation and lens parameters. Pure value math, no GPU state.
package camera

import (
	stdmath "math"

	"render-core/math"
)

// FOV is clamped to this range; values outside are silently brought back in.
const (
	MinFOV = 10
	MaxFOV = 120
)

// Camera is a perspective camera oriented by Euler angles.
//
// Pitch is NOT clamped internally. Callers driving pitch from input must keep
// it inside (-pi/2, pi/2) themselves or the orientation flips at the poles.
type Camera struct {
	position math.Vec3
	pitch    float32 // radians
	yaw      float32 // radians

	fov    float32 // degrees, kept within [MinFOV, MaxFOV]
	aspect float32
	near   float32
	far    float32

	view       math.Mat4
	projection math.Mat4
}

// New creates a camera at the origin with zero orientation.
func New(fovDegrees, aspect, near, far float32) *Camera {
	c := &Camera{
		fov:    clampFOV(fovDegrees),
		aspect: aspect,
		near:   near,
		far:    far,
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *Camera) SetPosition(pos math.Vec3) {
	c.position = pos
	c.updateView()
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

// SetRotation sets pitch and yaw in radians.
func (c *Camera) SetRotation(pitch, yaw float32) {
	c.pitch = pitch
	c.yaw = yaw
	c.updateView()
}

func (c *Camera) Rotation() (pitch, yaw float32) {
	return c.pitch, c.yaw
}

// SetFOV updates the field of view in degrees, silently clamped to
// [MinFOV, MaxFOV].
func (c *Camera) SetFOV(degrees float32) {
	c.fov = clampFOV(degrees)
	c.updateProjection()
}

func (c *Camera) FOV() float32 {
	return c.fov
}

func (c *Camera) SetAspectRatio(aspect float32) {
	c.aspect = aspect
	c.updateProjection()
}

func (c *Camera) SetClipPlanes(near, far float32) {
	c.near = near
	c.far = far
	c.updateProjection()
}

// Forward returns (cos(pitch)*sin(yaw), sin(pitch), cos(pitch)*cos(yaw)).
func (c *Camera) Forward() math.Vec3 {
	cosPitch := cosf(c.pitch)
	return math.Vec3{
		X: cosPitch * sinf(c.yaw),
		Y: sinf(c.pitch),
		Z: cosPitch * cosf(c.yaw),
	}
}

func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(math.Vec3Up).Normalize()
}

func (c *Camera) Up() math.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.position = c.position.Add(c.Forward().Mul(amount))
	c.updateView()
}

func (c *Camera) MoveRight(amount float32) {
	c.position = c.position.Add(c.Right().Mul(amount))
	c.updateView()
}

func (c *Camera) MoveUp(amount float32) {
	c.position = c.position.Add(c.Up().Mul(amount))
	c.updateView()
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return c.view
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewProjectionMatrix returns the combined transform: view first, then
// projection. With the row-vector Mat4 convention that is view.Mul(proj);
// in column-vector terms the projection pre-multiplies the view.
func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.view.Mul(c.projection)
}

func (c *Camera) updateView() {
	// Undo the camera transform: translate the world by -position, then
	// rotate by the inverse yaw and pitch. At zero orientation the camera
	// looks down -Z.
	c.view = math.Mat4Translation(c.position.Negate()).
		Mul(math.Mat4RotationY(-c.yaw)).
		Mul(math.Mat4RotationX(-c.pitch))
}

func (c *Camera) updateProjection() {
	fovRadians := c.fov * stdmath.Pi / 180
	c.projection = math.Mat4Perspective(fovRadians, c.aspect, c.near, c.far)
}

func clampFOV(degrees float32) float32 {
	if degrees < MinFOV {
		return MinFOV
	}
	if degrees > MaxFOV {
		return MaxFOV
	}
	return degrees
}

func cosf(v float32) float32 {
	return float32(stdmath.Cos(float64(v)))
}

func sinf(v float32) float32 {
	return float32(stdmath.Sin(float64(v)))
}
