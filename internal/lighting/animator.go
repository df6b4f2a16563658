package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spotlight/pkg/math"
)

// AnimationMode selects the scripted motion.
type AnimationMode string

const (
	// AnimateOrbit circles the light around the Y axis while it keeps aiming
	// at the scene center.
	AnimateOrbit AnimationMode = "orbit"
	// AnimateSweep keeps the light in place and swings its aim along X.
	AnimateSweep AnimationMode = "sweep"
)

// Animator drives the light from a script instead of a control surface.
type Animator struct {
	Mode   AnimationMode
	Radius float32 // orbit radius, or sweep amplitude in direction units
	Speed  float32 // radians per second

	phase float32
}

// NewAnimator validates the mode and returns an animator.
func NewAnimator(mode AnimationMode, radius, speed float32) (*Animator, error) {
	switch mode {
	case AnimateOrbit, AnimateSweep:
	default:
		return nil, fmt.Errorf("unknown animation mode %q", mode)
	}
	return &Animator{Mode: mode, Radius: radius, Speed: speed}, nil
}

// Step advances the script by dt seconds and writes the result through c.
func (a *Animator) Step(dt float64, c *Controls) {
	a.phase += a.Speed * float32(dt)
	if a.phase > 2*math32.Pi {
		a.phase -= 2 * math32.Pi
	}

	switch a.Mode {
	case AnimateOrbit:
		pos := c.Light().Position()
		pos.X = a.Radius * math32.Cos(a.phase)
		pos.Z = a.Radius * math32.Sin(a.phase)
		c.SetPosition(pos)
		// Aim at the origin.
		c.SetDirection(pos.Neg().Normalize())
	case AnimateSweep:
		c.SetDirection(math.Vec3{X: a.Radius * math32.Sin(a.phase), Y: -1, Z: 0})
		c.NormalizeDirection()
	}
}

// Phase returns the current script phase in radians.
func (a *Animator) Phase() float32 { return a.phase }
