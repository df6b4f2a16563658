package texture

import (
	"image"
	"image/color"
)

// Brick layout in pixels.
const (
	brickWidth  = 64
	brickHeight = 32
	mortarWidth = 4
)

var (
	brickColor  = color.RGBA{R: 168, G: 74, B: 52, A: 255}
	mortarColor = color.RGBA{R: 196, G: 190, B: 176, A: 255}
)

// Brick generates a running-bond brick pattern. It tiles seamlessly when
// the size is a multiple of 64x64.
func Brick(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := y / brickHeight
		offset := 0
		if row%2 == 1 {
			offset = brickWidth / 2
		}
		for x := 0; x < width; x++ {
			bx := (x + offset) % brickWidth
			by := y % brickHeight
			if bx < mortarWidth || by < mortarWidth {
				img.SetRGBA(x, y, mortarColor)
				continue
			}
			img.SetRGBA(x, y, shade(brickColor, brickNoise((x+offset)/brickWidth, row)))
		}
	}
	return img
}

// brickNoise gives each brick a stable brightness offset in [-12, 12].
func brickNoise(col, row int) int {
	h := uint32(col)*73856093 ^ uint32(row)*19349663
	return int(h%25) - 12
}

func shade(c color.RGBA, d int) color.RGBA {
	adj := func(v uint8) uint8 {
		return uint8(min(max(int(v)+d, 0), 255))
	}
	return color.RGBA{R: adj(c.R), G: adj(c.G), B: adj(c.B), A: c.A}
}
