package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by decodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderLen = 18

var errTGATruncated = errors.New("tga: data truncated")

// decodeTGA decodes uncompressed and RLE true-color TGA files with 24 or
// 32 bits per pixel. TGA has no magic number, so callers pick it by
// file extension.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderLen {
		return nil, errTGATruncated
	}

	idLen := int(data[0])
	mapped := data[1] != 0
	kind := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	switch {
	case mapped:
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	case kind != tgaTrueColor && kind != tgaTrueColorRLE:
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported depth %d", bpp)
	case width == 0 || height == 0:
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	start := tgaHeaderLen + idLen
	if start > len(data) {
		return nil, errTGATruncated
	}
	r := &tgaReader{
		src:     data[start:],
		bpp:     bpp / 8,
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		topDown: topDown,
	}

	var err error
	if kind == tgaTrueColor {
		err = r.raw(width * height)
	} else {
		err = r.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	src     []byte
	pos     int
	bpp     int
	img     *image.RGBA
	topDown bool
	n       int // Pixels written
}

// pixel reads one BGR(A) pixel.
func (r *tgaReader) pixel() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put writes the next pixel in file order. Bottom-up files are flipped.
func (r *tgaReader) put(c color.RGBA) {
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()
	x, y := r.n%w, r.n/w
	if !r.topDown {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

func (r *tgaReader) raw(total int) error {
	for r.n < total {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) rle(total int) error {
	for r.n < total {
		if r.pos >= len(r.src) {
			return errTGATruncated
		}
		header := r.src[r.pos]
		r.pos++
		count := min(int(header&0x7f)+1, total-r.n)

		if header&0x80 != 0 {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count; i++ {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			r.put(c)
		}
	}
	return nil
}

// isColorKey reports whether a pixel is the magenta transparency key used
// by paletted sprite sheets. The tolerance absorbs BMP rounding.
func isColorKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// applyColorKey converts img to RGBA and makes color-key pixels
// transparent black, so filtering never bleeds magenta.
func applyColorKey(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			if isColorKey(c.R, c.G, c.B) {
				c = color.RGBA{}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out
}
