package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/spotlight/internal/lighting"
)

func TestFrameTimer(t *testing.T) {
	var timer FrameTimer
	assert.Zero(t, timer.FPS())

	// 30 frames of 20 ms is 0.6 s: one averaging window closes at 25 frames.
	for i := 0; i < 30; i++ {
		timer.Update(20)
	}
	assert.InDelta(t, 50, timer.FPS(), 0.01)
	assert.InDelta(t, 20, timer.FrameTime(), 1e-9)
	assert.Equal(t, uint64(30), timer.Frames())
}

func TestConeReadout(t *testing.T) {
	assert.Equal(t, "Inner: 15.0 deg, Outer: 25.0 deg", ConeReadout(15, 25))
	assert.Equal(t, "Inner: 12.3 deg, Outer: 45.7 deg", ConeReadout(12.34, 45.66))
}

func TestNewPanel(t *testing.T) {
	controls := lighting.NewControls(lighting.DefaultSpotlight(), lighting.DefaultLimits())
	p := NewPanel(controls, &FrameTimer{})
	assert.Nil(t, p.scene)
	p.SetSceneView(NewSceneView(func() uint32 { return 7 }, nil))
	assert.Equal(t, uint32(7), p.scene.texture())
}
