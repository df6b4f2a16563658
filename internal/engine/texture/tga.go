package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// tgaReader walks the pixel stream of a true-color TGA.
type tgaReader struct {
	data          []byte
	pos           int
	bytesPerPixel int
}

func (r *tgaReader) pixel() (color.RGBA, error) {
	if r.pos+r.bytesPerPixel > len(r.data) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.data[r.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytesPerPixel == 4 {
		c.A = p[3]
	}
	r.pos += r.bytesPerPixel
	return c, nil
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// data with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r := &tgaReader{data: data[offset:], bytesPerPixel: bpp / 8}

	// TGA rows are stored bottom-up unless the descriptor says otherwise.
	put := func(i int, c color.RGBA) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	total := width * height
	if imageType == TGATypeUncompressed {
		for i := 0; i < total; i++ {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			put(i, c)
		}
		return img, nil
	}

	for i := 0; i < total; {
		if r.pos >= len(r.data) {
			return nil, errTGATruncated
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			for n := 0; n < count && i < total; n++ {
				put(i, c)
				i++
			}
			continue
		}
		for n := 0; n < count && i < total; n++ {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			put(i, c)
			i++
		}
	}
	return img, nil
}
