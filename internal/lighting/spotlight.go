// Package lighting implements the spotlight model: its state, the editing
// policy applied by every control surface, and the per-fragment shading math.
//
// Ownership: the application owns one Spotlight for the process lifetime. The
// pipeline reads it once per frame through Snapshot and control surfaces edit it
// through Controls. Both run on the frame thread, so the state carries no locks;
// goroutine-backed sources hand their edits over through an EditQueue.
package lighting

import "github.com/Faultbox/spotlight/pkg/math"

// Default spotlight configuration: hovering above the scene center, aimed
// straight down.
var (
	DefaultPosition  = math.Vec3{X: 0, Y: 10, Z: 0}
	DownDirection    = math.Vec3{X: 0, Y: -1, Z: 0}
	DefaultDiffuse   = math.RGBA(1, 1, 1, 1)
	DefaultAmbient   = math.RGBA(0.2, 0.2, 0.3, 1)
	DefaultInnerCone = float32(15)
	DefaultOuterCone = float32(25)
)

// Spotlight is the mutable light state.
// It performs no validation; Controls enforces the editing policy.
type Spotlight struct {
	position  math.Vec3
	direction math.Vec3
	diffuse   math.Color
	ambient   math.Color
	innerCone float32 // degrees
	outerCone float32 // degrees
}

// Snapshot is an immutable copy of a Spotlight taken at one point in time.
type Snapshot struct {
	Position  math.Vec3  `yaml:"position"`
	Direction math.Vec3  `yaml:"direction"`
	Diffuse   math.Color `yaml:"diffuse"`
	Ambient   math.Color `yaml:"ambient"`
	InnerCone float32    `yaml:"inner_cone"`
	OuterCone float32    `yaml:"outer_cone"`
}

// DefaultSnapshot returns the startup light configuration.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Position:  DefaultPosition,
		Direction: DownDirection,
		Diffuse:   DefaultDiffuse,
		Ambient:   DefaultAmbient,
		InnerCone: DefaultInnerCone,
		OuterCone: DefaultOuterCone,
	}
}

// NewSpotlight creates a spotlight holding the given state verbatim.
func NewSpotlight(s Snapshot) *Spotlight {
	l := &Spotlight{}
	l.Restore(s)
	return l
}

// DefaultSpotlight creates a spotlight with the startup defaults.
func DefaultSpotlight() *Spotlight {
	return NewSpotlight(DefaultSnapshot())
}

// Snapshot copies the current state.
func (l *Spotlight) Snapshot() Snapshot {
	return Snapshot{
		Position:  l.position,
		Direction: l.direction,
		Diffuse:   l.diffuse,
		Ambient:   l.ambient,
		InnerCone: l.innerCone,
		OuterCone: l.outerCone,
	}
}

// Restore overwrites every field from s without applying any policy.
func (l *Spotlight) Restore(s Snapshot) {
	l.position = s.Position
	l.direction = s.Direction
	l.diffuse = s.Diffuse
	l.ambient = s.Ambient
	l.innerCone = s.InnerCone
	l.outerCone = s.OuterCone
}

// Position returns the world-space position.
func (l *Spotlight) Position() math.Vec3 { return l.position }

// SetPosition sets the world-space position.
func (l *Spotlight) SetPosition(p math.Vec3) { l.position = p }

// Direction returns the aim direction. It is not guaranteed to be unit length.
func (l *Spotlight) Direction() math.Vec3 { return l.direction }

// SetDirection sets the aim direction without normalizing it.
func (l *Spotlight) SetDirection(d math.Vec3) { l.direction = d }

// DiffuseColor returns the spotlight color.
func (l *Spotlight) DiffuseColor() math.Color { return l.diffuse }

// SetDiffuseColor sets the spotlight color.
func (l *Spotlight) SetDiffuseColor(c math.Color) { l.diffuse = c }

// AmbientColor returns the ambient color.
func (l *Spotlight) AmbientColor() math.Color { return l.ambient }

// SetAmbientColor sets the ambient color.
func (l *Spotlight) SetAmbientColor(c math.Color) { l.ambient = c }

// InnerCone returns the full-intensity cone angle in degrees.
func (l *Spotlight) InnerCone() float32 { return l.innerCone }

// SetInnerCone sets the full-intensity cone angle in degrees.
func (l *Spotlight) SetInnerCone(deg float32) { l.innerCone = deg }

// OuterCone returns the cut-off cone angle in degrees.
func (l *Spotlight) OuterCone() float32 { return l.outerCone }

// SetOuterCone sets the cut-off cone angle in degrees.
func (l *Spotlight) SetOuterCone(deg float32) { l.outerCone = deg }
