// Package camera provides the arc-rotate camera used by the viewport.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/picking"
)

// Wheel deltas arrive in steps of 120 per notch; WheelPrecision is tuned against that.
const wheelDeltaPerNotch = 120

// Offsets below this are snapped to zero so the camera settles.
const inertiaEpsilon = 1e-4

// ArcRotate orbits a target point. Alpha is the longitudinal angle, Beta
// the latitudinal angle measured from +Y, both in radians.
type ArcRotate struct {
	Alpha  float32
	Beta   float32
	Radius float32
	Target mgl32.Vec3

	// Fraction of the movement offset kept each frame (0 = no inertia).
	Inertia float32
	// Wheel units per world unit of zoom. Higher is slower.
	WheelPrecision float32
	// Drag pixels per radian of rotation. Higher is slower.
	AngularSensibility float32

	LowerRadiusLimit float32
	UpperRadiusLimit float32
	LowerBetaLimit   float32
	UpperBetaLimit   float32

	FOV  float32 // Vertical field of view, radians
	MinZ float32
	MaxZ float32

	inertialAlpha  float32
	inertialBeta   float32
	inertialRadius float32
}

// NewArcRotate creates a camera at the given spherical coordinates around target.
func NewArcRotate(alpha, beta, radius float32, target mgl32.Vec3) *ArcRotate {
	return &ArcRotate{
		Alpha:              alpha,
		Beta:               beta,
		Radius:             radius,
		Target:             target,
		Inertia:            0.9,
		WheelPrecision:     3,
		AngularSensibility: 1000,
		LowerBetaLimit:     0.01,
		UpperBetaLimit:     math32.Pi - 0.01,
		FOV:                0.8,
		MinZ:               1,
		MaxZ:               10000,
	}
}

// Position returns the camera position in world space.
func (c *ArcRotate) Position() mgl32.Vec3 {
	sinBeta := math32.Sin(c.Beta)
	offset := mgl32.Vec3{
		c.Radius * math32.Cos(c.Alpha) * sinBeta,
		c.Radius * math32.Cos(c.Beta),
		c.Radius * math32.Sin(c.Alpha) * sinBeta,
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix. Left-handed scenes are mirrored on Z
// so they can share the right-handed OpenGL pipeline.
func (c *ArcRotate) ViewMatrix(rightHanded bool) mgl32.Mat4 {
	eye := c.Position()
	target := c.Target
	if rightHanded {
		return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	}
	flip := mgl32.Vec3{1, 1, -1}
	eye = mgl32.Vec3{eye[0] * flip[0], eye[1] * flip[1], eye[2] * flip[2]}
	target = mgl32.Vec3{target[0] * flip[0], target[1] * flip[1], target[2] * flip[2]}
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0}).Mul4(mgl32.Scale3D(1, 1, -1))
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *ArcRotate) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FOV, aspect, c.MinZ, c.MaxZ)
}

// Ray builds a world-space picking ray through the given surface pixel.
func (c *ArcRotate) Ray(x, y float32, width, height int, rightHanded bool) picking.Ray {
	w, h := float32(width), float32(height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	viewProj := c.ProjectionMatrix(w / h).Mul4(c.ViewMatrix(rightHanded))
	return picking.ScreenToRay(x, y, w, h, viewProj.Inv())
}

// HandleDrag queues rotation from a pointer drag delta in pixels.
func (c *ArcRotate) HandleDrag(deltaX, deltaY float32) {
	if c.AngularSensibility == 0 {
		return
	}
	c.inertialAlpha -= deltaX / c.AngularSensibility
	c.inertialBeta -= deltaY / c.AngularSensibility
}

// HandleWheel queues zoom from wheel notches (positive zooms in).
func (c *ArcRotate) HandleWheel(notches float32) {
	if c.WheelPrecision == 0 {
		return
	}
	c.inertialRadius += notches * wheelDeltaPerNotch / (c.WheelPrecision * 40)
}

// Update applies queued movement, decays it by Inertia and enforces limits.
// Call once per frame.
func (c *ArcRotate) Update() {
	c.Alpha += c.inertialAlpha
	c.Beta += c.inertialBeta
	c.Radius -= c.inertialRadius

	c.inertialAlpha = decay(c.inertialAlpha, c.Inertia)
	c.inertialBeta = decay(c.inertialBeta, c.Inertia)
	c.inertialRadius = decay(c.inertialRadius, c.Inertia)

	c.clamp()
}

// Moving reports whether queued movement remains.
func (c *ArcRotate) Moving() bool {
	return c.inertialAlpha != 0 || c.inertialBeta != 0 || c.inertialRadius != 0
}

func (c *ArcRotate) clamp() {
	if c.LowerBetaLimit != 0 || c.UpperBetaLimit != 0 {
		c.Beta = mgl32.Clamp(c.Beta, c.LowerBetaLimit, c.UpperBetaLimit)
	}
	if c.LowerRadiusLimit > 0 && c.Radius < c.LowerRadiusLimit {
		c.Radius = c.LowerRadiusLimit
		c.inertialRadius = 0
	}
	if c.UpperRadiusLimit > 0 && c.Radius > c.UpperRadiusLimit {
		c.Radius = c.UpperRadiusLimit
		c.inertialRadius = 0
	}
}

func decay(offset, inertia float32) float32 {
	offset *= inertia
	if math32.Abs(offset) < inertiaEpsilon {
		return 0
	}
	return offset
}
