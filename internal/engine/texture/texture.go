// Package texture loads, caches and samples the scene textures.
package texture

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Texture is a decoded RGBA image, optionally uploaded to the GPU.
// It satisfies pipeline.Texture; the GL shading stage uses GLID and the
// software rasterizer uses Sample.
type Texture struct {
	key string
	img *image.RGBA
	id  uint32
}

// Key returns the cache key the texture was registered under.
func (t *Texture) Key() string {
	return t.key
}

// GLID returns the GL texture name, 0 when the texture lives on the CPU only.
func (t *Texture) GLID() uint32 {
	return t.id
}

// Image returns the decoded pixels.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Loaded reports whether the texture still holds pixel data.
func (t *Texture) Loaded() bool {
	return t != nil && t.img != nil
}

// Sample returns the texel at (u, v) with repeat wrapping and nearest
// filtering. v = 0 is the first image row, matching the GL upload.
func (t *Texture) Sample(u, v float32) math.Color {
	w, h := t.Size()
	x := wrap(u, w)
	y := wrap(v, h)
	i := t.img.PixOffset(t.img.Rect.Min.X+x, t.img.Rect.Min.Y+y)
	p := t.img.Pix[i : i+4]
	return math.RGBA(
		float32(p[0])/255,
		float32(p[1])/255,
		float32(p[2])/255,
		float32(p[3])/255,
	)
}

func wrap(c float32, size int) int {
	i := int(math32.Floor(c * float32(size)))
	i %= size
	if i < 0 {
		i += size
	}
	return i
}
