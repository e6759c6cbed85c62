package lighting

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// ShadeImage runs the compositing pass on the CPU over an unlit scene.
// Fragment coordinates are pixel centers with the origin at the bottom-left,
// as gl_FragCoord reports them. Dims in u should match the image size.
func ShadeImage(scene image.Image, u *Uniforms) *image.RGBA {
	b := scene.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	h := b.Dy()

	for y := 0; y < h; y++ {
		fy := float32(h-1-y) + 0.5
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := scene.At(b.Min.X+x, b.Min.Y+y).RGBA()
			base := mgl32.Vec3{float32(r) / 0xffff, float32(g) / 0xffff, float32(bl) / 0xffff}
			c := u.Shade(mgl32.Vec2{float32(x) + 0.5, fy}, base)
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X()),
				G: toByte(c.Y()),
				B: toByte(c.Z()),
				A: toByte(c.W()),
			})
		}
	}
	return out
}

// toByte clamps like a UNORM8 render target.
func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
