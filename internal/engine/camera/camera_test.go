package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	c := NewArcRotate(0, math32.Pi/2, 10, mgl32.Vec3{})
	p := c.Position()
	assert.InDelta(t, 10, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, 0, p.Z(), 1e-4)

	c.Beta = 0.5
	c.Target = mgl32.Vec3{1, 2, 3}
	assert.InDelta(t, 10, c.Position().Sub(c.Target).Len(), 1e-4)
}

func TestRadiusLimits(t *testing.T) {
	c := NewArcRotate(-math32.Pi/4, math32.Pi/4, 20, mgl32.Vec3{})
	c.WheelPrecision = 50
	c.LowerRadiusLimit = 0.5
	c.UpperRadiusLimit = 100

	for i := 0; i < 500; i++ {
		c.HandleWheel(10)
		c.Update()
	}
	assert.Equal(t, float32(0.5), c.Radius)

	for i := 0; i < 500; i++ {
		c.HandleWheel(-10)
		c.Update()
	}
	assert.Equal(t, float32(100), c.Radius)
}

func TestInertiaSettles(t *testing.T) {
	c := NewArcRotate(0, 1, 20, mgl32.Vec3{})
	c.HandleDrag(100, 0)
	assert.True(t, c.Moving())

	for i := 0; i < 200; i++ {
		c.Update()
	}
	assert.False(t, c.Moving())
	// Total travel is the geometric series offset / (1 - inertia).
	assert.InDelta(t, -0.1/(1-0.9), c.Alpha, 1e-2)
}

func TestNoInertia(t *testing.T) {
	c := NewArcRotate(0, 1, 20, mgl32.Vec3{})
	c.Inertia = 0
	c.HandleDrag(0, 100)
	c.Update()
	assert.InDelta(t, 0.9, c.Beta, 1e-5)
	assert.False(t, c.Moving())
}

func TestBetaClamp(t *testing.T) {
	c := NewArcRotate(0, 1, 20, mgl32.Vec3{})
	c.Inertia = 0
	c.HandleDrag(0, 10000)
	c.Update()
	assert.InDelta(t, 0.01, c.Beta, 1e-6)
}

func TestViewMatrixHandedness(t *testing.T) {
	c := NewArcRotate(math32.Pi/2, math32.Pi/2, 10, mgl32.Vec3{})
	// Camera sits at +Z looking at the origin.
	point := mgl32.Vec3{1, 0, 0}

	rh := mgl32.TransformCoordinate(point, c.ViewMatrix(true))
	lh := mgl32.TransformCoordinate(point, c.ViewMatrix(false))

	assert.InDelta(t, 1, rh.X(), 1e-4)
	assert.InDelta(t, -1, lh.X(), 1e-4)
}

func TestRayThroughCenterHitsTarget(t *testing.T) {
	c := NewArcRotate(-math32.Pi/4, math32.Pi/4, 20, mgl32.Vec3{})
	for _, rightHanded := range []bool{true, false} {
		ray := c.Ray(400, 300, 800, 600, rightHanded)
		dist, _ := ray.DistanceToSegment(mgl32.Vec3{0, -0.01, 0}, mgl32.Vec3{0, 0.01, 0})
		assert.InDelta(t, 0, dist, 1e-2, "rightHanded=%v", rightHanded)
	}
}
