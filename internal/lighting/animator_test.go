package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnimatorRejectsUnknownMode(t *testing.T) {
	_, err := NewAnimator("spin", 1, 1)
	assert.Error(t, err)
}

func TestAnimatorOrbit(t *testing.T) {
	a, err := NewAnimator(AnimateOrbit, 8, math32.Pi/2)
	require.NoError(t, err)
	c := newTestControls()

	a.Step(1, c) // quarter turn

	pos := c.Light().Position()
	assert.InDelta(t, 0, pos.X, 1e-4)
	assert.InDelta(t, 8, pos.Z, 1e-4)
	assert.Equal(t, float32(10), pos.Y)

	// Still aimed at the origin.
	dir := c.Light().Direction()
	assert.InDelta(t, 1, dir.Length(), 1e-4)
	assert.InDelta(t, 1, dir.Dot(pos.Neg().Normalize()), 1e-4)
}

func TestAnimatorSweepKeepsUnitDirection(t *testing.T) {
	a, err := NewAnimator(AnimateSweep, 0.5, 1)
	require.NoError(t, err)
	c := newTestControls()

	for i := 0; i < 20; i++ {
		a.Step(0.1, c)
		assert.InDelta(t, 1, c.Light().Direction().Length(), 1e-4)
		assert.Less(t, c.Light().Direction().Y, float32(0))
	}
	assert.Equal(t, float32(10), c.Light().Position().Y)
}
