package math

// Vec4 is a homogeneous 4-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Point returns the homogeneous point (p, 1).
func Point(p Vec3) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Color is an RGBA color with float channels, nominally in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGBA builds a Color.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Add returns the per-channel sum.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Mul returns the per-channel product (modulation).
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Clamp01 limits every channel to [0, 1].
func (c Color) Clamp01() Color {
	return Color{
		Clamp(c.R, 0, 1),
		Clamp(c.G, 0, 1),
		Clamp(c.B, 0, 1),
		Clamp(c.A, 0, 1),
	}
}

// Array returns the channels as an array, the layout GL uniforms and ImGui expect.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// ColorFromArray is the inverse of Array.
func ColorFromArray(a [4]float32) Color {
	return Color{a[0], a[1], a[2], a[3]}
}

// RGBA8 converts the color to 8-bit channels after clamping.
func (c Color) RGBA8() (r, g, b, a uint8) {
	c = c.Clamp01()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5), uint8(c.A*255 + 0.5)
}
