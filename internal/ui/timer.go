// Package ui implements the spotlight debug panel.
package ui

// FrameTimer averages the frame rate over half-second windows.
type FrameTimer struct {
	fps        float64
	frameTime  float64 // ms
	elapsed    float64 // seconds in the current window
	frameAccum int
	frames     uint64
}

// Update records one frame that took deltaMs milliseconds.
func (t *FrameTimer) Update(deltaMs float64) {
	t.frames++
	t.frameTime = deltaMs
	t.frameAccum++
	t.elapsed += deltaMs / 1000.0

	if t.elapsed >= 0.5 {
		t.fps = float64(t.frameAccum) / t.elapsed
		t.frameAccum = 0
		t.elapsed = 0
	}
}

// FPS returns the last averaged frame rate.
func (t *FrameTimer) FPS() float64 { return t.fps }

// FrameTime returns the duration of the last frame in milliseconds.
func (t *FrameTimer) FrameTime() float64 { return t.frameTime }

// Frames returns the number of recorded frames.
func (t *FrameTimer) Frames() uint64 { return t.frames }
