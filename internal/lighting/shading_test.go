package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/spotlight/pkg/math"
)

const tolerance = 1e-5

func TestConeAttenuation(t *testing.T) {
	tests := []struct {
		name         string
		theta        float32
		inner, outer float32
		want         float32
	}{
		{"on axis", 0, 15, 25, 1},
		{"inside inner", 14.9, 15, 25, 1},
		{"at inner", 15, 15, 25, 1},
		{"midway", 20, 15, 25, 0.5},
		{"at outer", 25, 15, 25, 0},
		{"beyond outer", 90, 15, 25, 0},
		{"hard edge inside", 20, 20, 20, 1},
		{"hard edge outside", 20.001, 20, 20, 0},
		{"inverted cones never divide", 18, 20, 15, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConeAttenuation(tt.theta, tt.inner, tt.outer)
			assert.InDelta(t, tt.want, got, tolerance)
			assert.False(t, math32.IsNaN(got))
		})
	}
}

func TestConeAttenuationMonotonic(t *testing.T) {
	const inner, outer = 10, 40
	prev := ConeAttenuation(0, inner, outer)
	for theta := float32(0); theta <= 90; theta += 0.25 {
		a := ConeAttenuation(theta, inner, outer)
		assert.LessOrEqual(t, a, prev, "theta=%v", theta)
		assert.GreaterOrEqual(t, a, float32(0))
		assert.LessOrEqual(t, a, float32(1))
		prev = a
	}
}

func TestSpotAngle(t *testing.T) {
	down := math.Vec3{Y: -1}
	up := math.Vec3{Y: 1} // fragment below the light

	assert.InDelta(t, 0, SpotAngle(up, down), 1e-3)
	assert.InDelta(t, 90, SpotAngle(up, math.Vec3{X: 1}), 1e-3)
	assert.InDelta(t, 180, SpotAngle(up, math.Vec3{Y: 1}), 1e-3)

	// Non-unit directions give the same angle.
	assert.InDelta(t, 0, SpotAngle(up, math.Vec3{Y: -7}), 1e-3)

	// Degenerate direction does not produce NaN.
	assert.InDelta(t, 90, SpotAngle(up, math.Vec3{}), 1e-3)
}

func TestDiffuseFacingAway(t *testing.T) {
	toLight := math.Vec3{Y: 1}
	white := math.RGBA(1, 1, 1, 1)

	tests := []struct {
		name   string
		normal math.Vec3
	}{
		{"opposite", math.Vec3{Y: -1}},
		{"perpendicular", math.Vec3{X: 1}},
		{"slightly away", math.Vec3{X: 1, Y: -0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, a := range []float32{0, 0.5, 1} {
				assert.Equal(t, math.Color{}, Diffuse(tt.normal, toLight, white, a))
			}
		})
	}
}

func TestDiffuseScalesWithAngle(t *testing.T) {
	toLight := math.Vec3{Y: 1}
	normal := math.Vec3{X: 1, Y: 1} // 45 degrees, unnormalized on purpose
	got := Diffuse(normal, toLight, math.RGBA(1, 0.5, 0, 1), 1)

	cos45 := float32(0.70710677)
	assert.InDelta(t, cos45, got.R, tolerance)
	assert.InDelta(t, cos45*0.5, got.G, tolerance)
	assert.InDelta(t, 0, got.B, tolerance)
}

func TestShadeDirectlyBelowDefaultLight(t *testing.T) {
	light := DefaultSnapshot()
	frag := Fragment{
		Position: math.Vec3{},
		Normal:   math.Vec3{Y: 1},
		TexColor: math.RGBA(0.5, 0.5, 0.5, 1),
	}

	got := Shade(frag, light)

	// (ambient + full white diffuse) * texture
	want := light.Ambient.Add(light.Diffuse).Mul(frag.TexColor).Clamp01()
	assert.InDelta(t, want.R, got.R, tolerance)
	assert.InDelta(t, want.G, got.G, tolerance)
	assert.InDelta(t, want.B, got.B, tolerance)
	assert.InDelta(t, 1, got.A, tolerance)
	assert.InDelta(t, 0.6, got.R, tolerance)
	assert.InDelta(t, 0.65, got.B, tolerance)
}

func TestShadeHorizontalLightIsAmbientOnly(t *testing.T) {
	light := DefaultSnapshot()
	light.Direction = math.Vec3{X: 1}
	frag := Fragment{
		Normal:   math.Vec3{Y: 1},
		TexColor: math.RGBA(1, 1, 1, 1),
	}

	got := Shade(frag, light)

	assert.InDelta(t, light.Ambient.R, got.R, tolerance)
	assert.InDelta(t, light.Ambient.G, got.G, tolerance)
	assert.InDelta(t, light.Ambient.B, got.B, tolerance)
}

func TestShadeClampsChannels(t *testing.T) {
	light := DefaultSnapshot()
	frag := Fragment{Normal: math.Vec3{Y: 1}, TexColor: math.RGBA(1, 1, 1, 1)}

	got := Shade(frag, light)

	for _, ch := range got.Array() {
		assert.GreaterOrEqual(t, ch, float32(0))
		assert.LessOrEqual(t, ch, float32(1))
	}
	assert.Equal(t, math.RGBA(1, 1, 1, 1), got)
}

func TestShadeFragmentAtLightPosition(t *testing.T) {
	light := DefaultSnapshot()
	frag := Fragment{Position: light.Position, Normal: math.Vec3{Y: 1}, TexColor: math.RGBA(1, 1, 1, 1)}

	got := Shade(frag, light)

	for _, ch := range got.Array() {
		assert.False(t, math32.IsNaN(ch))
	}
	assert.InDelta(t, light.Ambient.R, got.R, tolerance)
}
