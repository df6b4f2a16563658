package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height int, bpp byte, descriptor byte) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, stored bottom row first, BGR order.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGARLETopDown(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 10, 20, 30, 128, // run of two
		0x00, 1, 2, 3, 4, // one raw pixel
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 30, G: 20, B: 10, A: 128}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 30, G: 20, B: 10, A: 128}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 3, G: 2, B: 1, A: 4}, img.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"empty", tgaHeader(TGATypeUncompressed, 0, 4, 24, 0)},
		{"truncated", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", tgaHeader(TGATypeRLE, 2, 2, 24, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

type fakeUploader struct {
	next    uint32
	deleted []uint32
}

func (f *fakeUploader) Upload(*image.RGBA) (uint32, error) {
	f.next++
	return f.next, nil
}

func (f *fakeUploader) Delete(id uint32) {
	f.deleted = append(f.deleted, id)
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestManagerAddAndLookup(t *testing.T) {
	up := &fakeUploader{}
	m := NewManager(up)

	tex, err := m.Add("brick", Brick(64, 64))
	require.NoError(t, err)
	assert.Equal(t, "brick", tex.Key())
	assert.Equal(t, uint32(1), tex.GLID())
	assert.True(t, tex.Loaded())

	h, ok := m.Texture("brick")
	require.True(t, ok)
	assert.Equal(t, "brick", h.Key())

	_, ok = m.Texture("stone")
	assert.False(t, ok)
}

func TestManagerReplaceReleasesOld(t *testing.T) {
	up := &fakeUploader{}
	m := NewManager(up)

	first, err := m.Add("brick", solid(4, 4, color.RGBA{A: 255}))
	require.NoError(t, err)
	_, err = m.Add("brick", solid(4, 4, color.RGBA{R: 255, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, []uint32{1}, up.deleted)
	assert.False(t, first.Loaded())
	assert.Len(t, m.Keys(), 1)
}

func TestManagerRelease(t *testing.T) {
	up := &fakeUploader{}
	m := NewManager(up)
	tex, err := m.Add("brick", solid(2, 2, color.RGBA{A: 255}))
	require.NoError(t, err)

	m.Release("brick")
	assert.False(t, tex.Loaded())
	_, ok := m.Texture("brick")
	assert.False(t, ok)

	// Unknown keys are ignored.
	m.Release("brick")
	assert.Equal(t, []uint32{1}, up.deleted)
}

func TestManagerLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(8, 4, color.RGBA{R: 255, G: 128, A: 255})))
	require.NoError(t, f.Close())

	m := NewManager(nil)
	tex, err := m.Load("wall", path)
	require.NoError(t, err)

	w, h := tex.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
	assert.Zero(t, tex.GLID())
	c := tex.Sample(0.5, 0.5)
	assert.InDelta(t, 1, c.R, 1e-6)
	assert.InDelta(t, 128.0/255, c.G, 1e-6)
}

func TestManagerLoadErrors(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Load("missing", filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = m.Load("bad", bad)
	assert.Error(t, err)
	assert.Empty(t, m.Keys())
}

func TestManagerScalesLargeImages(t *testing.T) {
	m := NewManager(nil)
	m.SetMaxSize(16)

	tex, err := m.Add("big", solid(64, 32, color.RGBA{G: 255, A: 255}))
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)
}

func TestManagerNormalizesOffsetImages(t *testing.T) {
	m := NewManager(nil)
	src := solid(10, 10, color.RGBA{B: 255, A: 255}).SubImage(image.Rect(2, 2, 6, 6))

	tex, err := m.Add("sub", src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), tex.Image().Rect)
}

func TestSampleWraps(t *testing.T) {
	img := solid(2, 1, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	m := NewManager(nil)
	tex, err := m.Add("checker", img)
	require.NoError(t, err)

	assert.InDelta(t, 0, tex.Sample(0.25, 0).R, 1e-6)
	assert.InDelta(t, 1, tex.Sample(0.75, 0).R, 1e-6)
	assert.InDelta(t, 0, tex.Sample(1.25, 0).R, 1e-6)
	assert.InDelta(t, 1, tex.Sample(-0.25, 0).R, 1e-6)
}

func TestBrickMortarLines(t *testing.T) {
	img := Brick(128, 128)

	assert.Equal(t, mortarColor, img.RGBAAt(0, 0))
	assert.Equal(t, mortarColor, img.RGBAAt(64, 10))  // vertical joint, even row
	assert.Equal(t, mortarColor, img.RGBAAt(32, 40))  // joint shifted by half a brick
	assert.Equal(t, mortarColor, img.RGBAAt(100, 33)) // bed joint
	assert.NotEqual(t, mortarColor, img.RGBAAt(20, 20))
	assert.NotEqual(t, mortarColor, img.RGBAAt(64, 40))
}
