package sprite

import (
	"image"
	"image/color"
)

// PlaceholderSheet draws a one-row sheet of simple humanoid figures, used
// when a sprite sheet is missing. Odd frames bob one pixel up.
func PlaceholderSheet(tileWidth, tileHeight, frames int, body color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tileWidth*frames, tileHeight))
	head := shade(body, 1.3)
	legs := shade(body, 0.7)

	for f := 0; f < frames; f++ {
		bob := f % 2
		x0 := f * tileWidth
		cx := tileWidth / 2
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				dx := x - cx
				if dx < 0 {
					dx = -dx
				}
				ty := y + bob // Sample the figure shifted down to bob up
				var c color.RGBA
				switch {
				case ty < tileHeight/4 && dx < tileWidth/8:
					c = head
				case ty >= tileHeight/4 && ty < tileHeight*3/4 && dx < tileWidth/6:
					c = body
				case ty >= tileHeight*3/4 && ty < tileHeight && dx < tileWidth/8:
					c = legs
				default:
					continue
				}
				img.SetRGBA(x0+x, y, c)
			}
		}
	}
	return img
}

// ShadowBlob draws a size x size soft black disc whose alpha falls off
// from maxOpacity at the center to 0 at the edge.
func ShadowBlob(size int, maxOpacity float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float32(size) / 2
	radius := center - 1
	if radius <= 0 {
		return img
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - center) / radius
			dy := (float32(y) + 0.5 - center) / radius
			d := dx*dx + dy*dy
			if d > 1 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{A: uint8((1 - d) * maxOpacity * 255)})
		}
	}
	return img
}

func shade(c color.RGBA, k float32) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(min(float32(v)*k, 255))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
