// Package raster is a CPU implementation of the lighting pipeline's device:
// a renderer, a mesh binding and a shading stage that evaluates the
// spotlight model per pixel. It renders headless frames and backs the
// end-to-end tests.
package raster

import (
	"image"
	stdmath "math"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Framebuffer holds a color target and a depth buffer.
type Framebuffer struct {
	Width  int
	Height int
	color  *image.RGBA
	depth  []float32
}

// NewFramebuffer allocates a width x height target.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		color:  image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float32, width*height),
	}
}

// Clear fills the color target with c and resets depth to the far plane.
func (fb *Framebuffer) Clear(c math.Color) {
	r, g, b, a := c.RGBA8()
	pix := fb.color.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = r, g, b, a
	// Copy-doubling fill.
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}

	inf := float32(stdmath.Inf(1))
	fb.depth[0] = inf
	for i := 1; i < len(fb.depth); i *= 2 {
		copy(fb.depth[i:], fb.depth[:i])
	}
}

// depthTest stores z when it is closer than the current depth at (x, y).
func (fb *Framebuffer) depthTest(x, y int, z float32) bool {
	i := y*fb.Width + x
	if z >= fb.depth[i] {
		return false
	}
	fb.depth[i] = z
	return true
}

// Set writes a pixel.
func (fb *Framebuffer) Set(x, y int, c math.Color) {
	i := fb.color.PixOffset(x, y)
	fb.color.Pix[i], fb.color.Pix[i+1], fb.color.Pix[i+2], fb.color.Pix[i+3] = c.RGBA8()
}

// At reads a pixel back as a color.
func (fb *Framebuffer) At(x, y int) math.Color {
	i := fb.color.PixOffset(x, y)
	p := fb.color.Pix[i : i+4]
	return math.RGBA(float32(p[0])/255, float32(p[1])/255, float32(p[2])/255, float32(p[3])/255)
}

// Image returns the color target. It is reused across frames.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.color
}
