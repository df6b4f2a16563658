package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/spotlight/pkg/math"
)

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera(10)
	c.RotationX = 0
	c.RotationY = 0

	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 10, p.Z, 1e-5)
}

func TestOrbitCameraViewLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera(30)
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}

	view := c.ViewMatrix()
	center := view.TransformPoint(c.Center)
	// The center lies straight ahead on -Z in view space.
	assert.InDelta(t, 0, center.X, 1e-4)
	assert.InDelta(t, 0, center.Y, 1e-4)
	assert.InDelta(t, -30, center.Z, 1e-3)
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera(30)

	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.RotationX)
	c.HandleDrag(0, -100000)
	assert.Equal(t, c.MinPitch, c.RotationX)

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera(30)
	c.FitToBounds(math.Vec3{X: -5, Y: -5, Z: -5}, math.Vec3{X: 5, Y: 5, Z: 5}, math.Radians(45))

	assert.Equal(t, math.Vec3{}, c.Center)
	assert.Greater(t, c.Distance, float32(8.66))
}

func TestLensProjection(t *testing.T) {
	l := DefaultLens()
	p := l.Projection(1280, 720)
	assert.Equal(t, math.Perspective(l.FovY, 1280.0/720.0, l.Near, l.Far), p)

	// A zero height falls back to a square aspect instead of dividing by zero.
	assert.Equal(t, math.Perspective(l.FovY, 1, l.Near, l.Far), l.Projection(100, 0))
}
