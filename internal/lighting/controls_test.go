package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/pkg/math"
)

func newTestControls() *Controls {
	return NewControls(DefaultSpotlight(), DefaultLimits())
}

func TestDefaultSpotlight(t *testing.T) {
	l := DefaultSpotlight()

	assert.Equal(t, math.Vec3{Y: 10}, l.Position())
	assert.Equal(t, math.Vec3{Y: -1}, l.Direction())
	assert.Equal(t, math.RGBA(1, 1, 1, 1), l.DiffuseColor())
	assert.Equal(t, math.RGBA(0.2, 0.2, 0.3, 1), l.AmbientColor())
	assert.Equal(t, float32(15), l.InnerCone())
	assert.Equal(t, float32(25), l.OuterCone())
}

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		name string
		in   math.Vec3
		want math.Vec3
	}{
		{"scales down", math.Vec3{Y: -2}, math.Vec3{Y: -1}},
		{"scales up", math.Vec3{X: 0.5}, math.Vec3{X: 1}},
		{"zero untouched", math.Vec3{}, math.Vec3{}},
		{"below epsilon untouched", math.Vec3{X: 0.00005}, math.Vec3{X: 0.00005}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestControls()
			// Restore bypasses the [-1, 1] clamp so the scale-down case is reachable.
			s := c.Light().Snapshot()
			s.Direction = tt.in
			c.Light().Restore(s)

			c.NormalizeDirection()

			got := c.Light().Direction()
			assert.InDelta(t, tt.want.X, got.X, tolerance)
			assert.InDelta(t, tt.want.Y, got.Y, tolerance)
			assert.InDelta(t, tt.want.Z, got.Z, tolerance)
		})
	}
}

func TestNormalizeDirectionKeepsOrientation(t *testing.T) {
	c := newTestControls()
	in := math.Vec3{X: 0.3, Y: -0.9, Z: 0.6}
	c.SetDirection(in)

	c.NormalizeDirection()

	got := c.Light().Direction()
	assert.InDelta(t, 1, got.Length(), tolerance)
	assert.InDelta(t, 1, got.Dot(in.Normalize()), tolerance)
}

func TestSetDirectionNotNormalized(t *testing.T) {
	c := newTestControls()
	c.SetDirection(math.Vec3{X: 0.5, Y: -0.5, Z: 3})

	assert.Equal(t, math.Vec3{X: 0.5, Y: -0.5, Z: 1}, c.Light().Direction())
}

func TestPointDown(t *testing.T) {
	c := newTestControls()
	c.SetDirection(math.Vec3{X: 1, Z: 1})

	c.PointDown()

	assert.Equal(t, math.Vec3{Y: -1}, c.Light().Direction())
}

func TestSetPositionClamps(t *testing.T) {
	c := newTestControls()
	c.SetPosition(math.Vec3{X: -50, Y: -3, Z: 25})

	assert.Equal(t, math.Vec3{X: -20, Y: 0, Z: 20}, c.Light().Position())
}

func TestColorEditsClamped(t *testing.T) {
	c := newTestControls()
	edits := []math.Color{
		{R: 2, G: -1, B: 0.5, A: 1.5},
		{R: -0.1, G: 0.3, B: 9, A: -2},
	}

	for _, col := range edits {
		c.SetDiffuse(col)
		c.SetAmbient(col)
		for _, ch := range c.Light().DiffuseColor().Array() {
			assert.True(t, ch >= 0 && ch <= 1, "diffuse channel %v", ch)
		}
		for _, ch := range c.Light().AmbientColor().Array() {
			assert.True(t, ch >= 0 && ch <= 1, "ambient channel %v", ch)
		}
	}
}

func TestResetColors(t *testing.T) {
	c := newTestControls()
	c.SetDiffuse(math.RGBA(0.3, 0, 0, 1))
	c.SetAmbient(math.RGBA(0, 0.7, 0, 1))

	c.ResetDiffuse()
	c.ResetAmbient()

	assert.Equal(t, math.RGBA(1, 1, 1, 1), c.Light().DiffuseColor())
	assert.Equal(t, math.RGBA(0.1, 0.1, 0.2, 1), c.Light().AmbientColor())
}

func TestOuterConeBelowInner(t *testing.T) {
	c := newTestControls()
	c.SetInnerCone(30)
	require.Equal(t, float32(30), c.Light().InnerCone())

	c.SetOuterCone(12)

	assert.Equal(t, float32(30), c.Light().InnerCone())
	assert.Equal(t, float32(30)+ConeMargin, c.Light().OuterCone())
}

func TestOuterConeEqualToInnerAllowed(t *testing.T) {
	c := newTestControls()
	c.SetInnerCone(20)
	c.SetOuterCone(20)

	assert.Equal(t, float32(20), c.Light().OuterCone())
}

func TestInnerConeAboveOuter(t *testing.T) {
	c := newTestControls()
	require.Equal(t, float32(25), c.Light().OuterCone())

	c.SetInnerCone(40)

	assert.Equal(t, float32(40), c.Light().InnerCone())
	assert.Equal(t, float32(40)+ConeMargin, c.Light().OuterCone())
}

func TestConeRanges(t *testing.T) {
	c := newTestControls()

	c.SetInnerCone(1)
	assert.Equal(t, float32(5), c.Light().InnerCone())
	c.SetInnerCone(90)
	assert.Equal(t, float32(45), c.Light().InnerCone())
	assert.GreaterOrEqual(t, c.Light().OuterCone(), c.Light().InnerCone())

	c.SetOuterCone(100)
	assert.Equal(t, float32(60), c.Light().OuterCone())
}

func TestApplyKeepsConeOrder(t *testing.T) {
	c := newTestControls()
	c.Apply(Snapshot{
		Position:  math.Vec3{X: 1, Y: 2, Z: 3},
		Direction: math.Vec3{Z: -1},
		Diffuse:   math.RGBA(1, 0, 0, 1),
		Ambient:   math.RGBA(0, 0, 0, 1),
		InnerCone: 40,
		OuterCone: 20,
	})

	s := c.Light().Snapshot()
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, s.Position)
	assert.Equal(t, float32(40), s.InnerCone)
	assert.Equal(t, float32(45), s.OuterCone)
}

func TestNaNEditsStayInRange(t *testing.T) {
	nan := math32.NaN()
	c := newTestControls()

	c.SetInnerCone(nan)
	c.SetOuterCone(nan)
	c.SetDiffuse(math.RGBA(nan, 1, 1, 1))
	c.SetAmbient(math.RGBA(0, nan, 0, nan))
	c.SetPosition(math.Vec3{X: nan, Y: nan, Z: nan})

	s := c.Light().Snapshot()
	assert.Equal(t, float32(5), s.InnerCone)
	assert.Equal(t, float32(10), s.OuterCone)
	assert.GreaterOrEqual(t, s.OuterCone, s.InnerCone)
	assert.Equal(t, math.RGBA(0, 1, 1, 1), s.Diffuse)
	assert.Equal(t, math.RGBA(0, 0, 0, 0), s.Ambient)
	assert.Equal(t, math.Vec3{X: -20, Y: 0, Z: -20}, s.Position)
}

func TestApplyNaNSnapshot(t *testing.T) {
	nan := math32.NaN()
	c := newTestControls()
	c.Apply(Snapshot{
		Position:  math.Vec3{Y: 5},
		Direction: math.Vec3{X: nan, Y: -1},
		Diffuse:   math.RGBA(nan, nan, nan, nan),
		Ambient:   DefaultAmbient,
		InnerCone: nan,
		OuterCone: nan,
	})

	s := c.Light().Snapshot()
	for _, ch := range s.Diffuse.Array() {
		assert.False(t, math32.IsNaN(ch))
		assert.True(t, ch >= 0 && ch <= 1)
	}
	assert.False(t, math32.IsNaN(s.Direction.X))
	assert.False(t, math32.IsNaN(s.InnerCone))
	assert.GreaterOrEqual(t, s.OuterCone, s.InnerCone)
}

func TestToggleWireframe(t *testing.T) {
	c := newTestControls()
	assert.False(t, c.Wireframe())
	c.ToggleWireframe()
	assert.True(t, c.Wireframe())
	c.ToggleWireframe()
	assert.False(t, c.Wireframe())
}
