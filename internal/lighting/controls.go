package lighting

import (
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

const (
	// ConeMargin is the gap restored between the cones when an edit leaves the
	// outer cone narrower than the inner one.
	ConeMargin = float32(5)

	// NormalizeEpsilon is the shortest direction NormalizeDirection will rescale.
	NormalizeEpsilon = float32(0.0001)
)

// Colors written by the reset actions.
var (
	WhiteLight  = math.RGBA(1, 1, 1, 1)
	BlueAmbient = math.RGBA(0.1, 0.1, 0.2, 1)
)

// Range is a closed interval.
type Range struct {
	Min, Max float32
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	return math.Clamp(v, r.Min, r.Max)
}

// Limits holds the legal range of every editable field.
type Limits struct {
	PositionMin math.Vec3
	PositionMax math.Vec3
	Inner       Range
	Outer       Range
}

// DefaultLimits returns the editing ranges of the control panel.
func DefaultLimits() Limits {
	return Limits{
		PositionMin: math.Vec3{X: -20, Y: 0, Z: -20},
		PositionMax: math.Vec3{X: 20, Y: 30, Z: 20},
		Inner:       Range{Min: 5, Max: 45},
		Outer:       Range{Min: 10, Max: 60},
	}
}

var (
	directionMin = math.Vec3{X: -1, Y: -1, Z: -1}
	directionMax = math.Vec3{X: 1, Y: 1, Z: 1}
)

// Controls is the editing surface over a Spotlight. Every control source (debug
// panel, keyboard, remote, presets, animation) goes through it, so the ranges
// and the cone ordering hold after every edit.
type Controls struct {
	light     *Spotlight
	limits    Limits
	wireframe bool
}

// NewControls wraps light with the given limits.
func NewControls(light *Spotlight, limits Limits) *Controls {
	return &Controls{light: light, limits: limits}
}

// Light returns the edited spotlight.
func (c *Controls) Light() *Spotlight { return c.light }

// Limits returns the editing ranges.
func (c *Controls) Limits() Limits { return c.limits }

// SetPosition sets the position, clamping each axis to its range.
func (c *Controls) SetPosition(p math.Vec3) {
	c.light.SetPosition(p.Clamp(c.limits.PositionMin, c.limits.PositionMax))
}

// SetDirection sets the direction, clamping each component to [-1, 1].
// The result is deliberately left un-normalized.
func (c *Controls) SetDirection(d math.Vec3) {
	c.light.SetDirection(d.Clamp(directionMin, directionMax))
}

// SetDiffuse sets the spotlight color, clamping each channel to [0, 1].
func (c *Controls) SetDiffuse(col math.Color) {
	c.light.SetDiffuseColor(col.Clamp01())
}

// SetAmbient sets the ambient color, clamping each channel to [0, 1].
func (c *Controls) SetAmbient(col math.Color) {
	c.light.SetAmbientColor(col.Clamp01())
}

// SetInnerCone sets the inner cone angle and restores the cone ordering.
func (c *Controls) SetInnerCone(deg float32) {
	c.light.SetInnerCone(c.limits.Inner.Clamp(deg))
	c.enforceConeOrder()
}

// SetOuterCone sets the outer cone angle and restores the cone ordering.
func (c *Controls) SetOuterCone(deg float32) {
	c.light.SetOuterCone(c.limits.Outer.Clamp(deg))
	c.enforceConeOrder()
}

// enforceConeOrder pushes the outer cone out when it is narrower than the
// inner cone. The inner cone is never moved.
func (c *Controls) enforceConeOrder() {
	inner, outer := c.light.InnerCone(), c.light.OuterCone()
	if outer < inner {
		c.light.SetOuterCone(inner + ConeMargin)
		logger.Debug("outer cone pushed past inner cone",
			zap.Float32("inner", inner),
			zap.Float32("outer", inner+ConeMargin),
		)
	}
}

// NormalizeDirection rescales the direction to unit length. Directions at or
// below NormalizeEpsilon are left untouched.
func (c *Controls) NormalizeDirection() {
	d := c.light.Direction()
	l := d.Length()
	if l <= NormalizeEpsilon {
		logger.Debug("direction too short to normalize", zap.Float32("length", l))
		return
	}
	c.light.SetDirection(d.Scale(1 / l))
}

// PointDown aims the light straight down.
func (c *Controls) PointDown() {
	c.light.SetDirection(DownDirection)
}

// ResetDiffuse sets the spotlight color to white.
func (c *Controls) ResetDiffuse() {
	c.light.SetDiffuseColor(WhiteLight)
}

// ResetAmbient sets the ambient color to dim blue.
func (c *Controls) ResetAmbient() {
	c.light.SetAmbientColor(BlueAmbient)
}

// Apply sets every field from s through the editing policy.
func (c *Controls) Apply(s Snapshot) {
	c.SetPosition(s.Position)
	c.SetDirection(s.Direction)
	c.SetDiffuse(s.Diffuse)
	c.SetAmbient(s.Ambient)
	// Outer first so a preset with inner > current outer is judged against its own outer.
	c.light.SetOuterCone(c.limits.Outer.Clamp(s.OuterCone))
	c.SetInnerCone(s.InnerCone)
}

// Wireframe reports whether the mesh is drawn as wireframe.
func (c *Controls) Wireframe() bool { return c.wireframe }

// SetWireframe sets the wireframe flag.
func (c *Controls) SetWireframe(on bool) { c.wireframe = on }

// ToggleWireframe flips the wireframe flag.
func (c *Controls) ToggleWireframe() { c.wireframe = !c.wireframe }
