package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Fragment is the per-pixel input to Shade.
type Fragment struct {
	Position math.Vec3  // world space
	Normal   math.Vec3  // world space, need not be unit length
	TexColor math.Color // sampled texture color at the fragment's UV
}

// ConeAttenuation returns the spotlight falloff for a fragment at angle theta
// (degrees) from the aim axis: 1 inside the inner cone, 0 outside the outer
// cone, smoothstep in between. inner == outer is a hard-edged cone.
func ConeAttenuation(theta, inner, outer float32) float32 {
	if theta <= inner {
		return 1
	}
	if theta >= outer {
		return 0
	}
	// inner < theta < outer here, so outer-inner > 0.
	t := (outer - theta) / (outer - inner)
	return t * t * (3 - 2*t)
}

// SpotAngle returns the angle in degrees between the light's aim axis and the
// ray from the light to the fragment. toLight must be normalized.
// A zero direction yields 90 degrees.
func SpotAngle(toLight, direction math.Vec3) float32 {
	cosTheta := toLight.Neg().Normalize().Dot(direction.Normalize())
	cosTheta = math.Clamp(cosTheta, -1, 1)
	return math.Degrees(math32.Acos(cosTheta))
}

// Diffuse returns the Lambert term max(dot(N, L), 0) * color * attenuation.
// It is exactly zero when the surface faces away from the light.
func Diffuse(normal, toLight math.Vec3, color math.Color, attenuation float32) math.Color {
	nDotL := normal.Normalize().Dot(toLight)
	if nDotL <= 0 {
		return math.Color{}
	}
	return color.Scale(nDotL * attenuation)
}

// Shade computes the final color of one fragment: ambient plus the attenuated
// diffuse spotlight term, modulated by the texture and clamped to [0, 1].
// It is a pure function of its arguments and safe to call from any goroutine.
func Shade(f Fragment, light Snapshot) math.Color {
	toLight := light.Position.Sub(f.Position).Normalize()
	theta := SpotAngle(toLight, light.Direction)
	a := ConeAttenuation(theta, light.InnerCone, light.OuterCone)
	lit := light.Ambient.Add(Diffuse(f.Normal, toLight, light.Diffuse, a))
	return lit.Mul(f.TexColor).Clamp01()
}
