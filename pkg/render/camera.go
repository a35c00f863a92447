package render

import (
	"github.com/quells/termrast/pkg/math3d"
)

// Camera holds the view and projection state for a session: an eye
// position looking at a target, plus perspective parameters. Matrices are
// cached and rebuilt lazily when their inputs change.
type Camera struct {
	Eye    math3d.Vec3
	Target math3d.Vec3
	Up     math3d.Vec3

	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Width / height
	Near   float64
	Far    float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a camera at (0, 0, -5) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Eye:       math3d.V3(0, 0, -5),
		Target:    math3d.Zero3(),
		Up:        math3d.Up(),
		FOV:       60,
		Aspect:    1,
		Near:      0.1,
		Far:       100,
		viewDirty: true,
		projDirty: true,
	}
}

// SetEye moves the camera eye position.
func (c *Camera) SetEye(eye math3d.Vec3) {
	c.Eye = eye
	c.viewDirty = true
}

// SetTarget changes the look-at target.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetUp changes the up reference vector.
func (c *Camera) SetUp(up math3d.Vec3) {
	c.Up = up
	c.viewDirty = true
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(deg float64) {
	c.FOV = deg
	c.projDirty = true
}

// SetAspect sets the projection aspect ratio (width / height).
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Eye, c.Target, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection × view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewDirty || c.projDirty {
		view := c.ViewMatrix()
		proj := c.ProjectionMatrix()
		c.viewProjMatrix = proj.Mul(view)
	}
	return c.viewProjMatrix
}
