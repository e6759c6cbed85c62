package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

// Raster is a CPU Painter and Target drawing into an RGBA image. A pixel
// is covered when its center is inside the shape. Textured draws sample
// the image registered for the texture in Sheets, nearest neighbour.
type Raster struct {
	Sheets map[*texture.Texture]image.Image

	img *image.RGBA
	cam camera.Camera2D
}

// NewRaster creates a width x height raster.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Sheets: make(map[*texture.Texture]image.Image),
		img:    image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))),
	}
}

// Image returns the drawn image, top row first.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// BindWithViewport implements Target.
func (r *Raster) BindWithViewport() func() { return func() {} }

// ColorTexture implements Target. The raster has no GL texture.
func (r *Raster) ColorTexture() uint32 { return 0 }

// Clear fills the whole image.
func (r *Raster) Clear(red, g, b, a float32) {
	c := color.RGBA{unorm(red), unorm(g), unorm(b), unorm(a)}
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Begin implements Painter.
func (r *Raster) Begin(cam camera.Camera2D) { r.cam = cam }

// End implements Painter.
func (r *Raster) End() {}

// Rect implements Painter.
func (r *Raster) Rect(x, y, w, h float32, c mgl32.Vec4) {
	r.fill(mgl32.Vec2{x, y}, mgl32.Vec2{x + w, y + h}, func(mgl32.Vec2) (mgl32.Vec4, bool) {
		return c, true
	})
}

// Circle implements Painter.
func (r *Raster) Circle(cx, cy, radius float32, c mgl32.Vec4) {
	center := mgl32.Vec2{cx, cy}
	ext := mgl32.Vec2{radius, radius}
	r.fill(center.Sub(ext), center.Add(ext), func(p mgl32.Vec2) (mgl32.Vec4, bool) {
		return c, p.Sub(center).Len() <= radius
	})
}

// Line implements Painter.
func (r *Raster) Line(x1, y1, x2, y2, thickness float32, c mgl32.Vec4) {
	a, b := mgl32.Vec2{x1, y1}, mgl32.Vec2{x2, y2}
	half := thickness / 2
	lo := mgl32.Vec2{min(x1, x2) - half, min(y1, y2) - half}
	hi := mgl32.Vec2{max(x1, x2) + half, max(y1, y2) + half}
	r.fill(lo, hi, func(p mgl32.Vec2) (mgl32.Vec4, bool) {
		return c, segmentDistance(p, a, b) <= half
	})
}

// Texture implements Painter.
func (r *Raster) Texture(tex *texture.Texture, x, y, w, h float32, p sprite.DrawParams) {
	src, ok := r.Sheets[tex]
	if !ok || w == 0 || h == 0 {
		return
	}
	rect := p.Source
	if rect.Empty() {
		rect = src.Bounds()
	}
	r.fill(mgl32.Vec2{x, y}, mgl32.Vec2{x + w, y + h}, func(pt mgl32.Vec2) (mgl32.Vec4, bool) {
		u := (pt.X() - x) / w
		v := 1 - (pt.Y()-y)/h // Sheet rows are top-down
		if p.FlipX {
			u = 1 - u
		}
		sx := rect.Min.X + min(int(u*float32(rect.Dx())), rect.Dx()-1)
		sy := rect.Min.Y + min(int(v*float32(rect.Dy())), rect.Dy()-1)
		cr, cg, cb, ca := src.At(sx, sy).RGBA()
		if ca == 0 {
			return mgl32.Vec4{}, false
		}
		// Un-premultiply, then tint.
		a := float32(ca) / 0xffff
		sc := mgl32.Vec4{
			float32(cr) / 0xffff / a,
			float32(cg) / 0xffff / a,
			float32(cb) / 0xffff / a,
			a,
		}
		return mgl32.Vec4{sc[0] * p.Tint[0], sc[1] * p.Tint[1], sc[2] * p.Tint[2], sc[3] * p.Tint[3]}, true
	})
}

// fill visits the pixels whose centers fall in the world box lo..hi and
// blends shade's color over those it accepts.
func (r *Raster) fill(lo, hi mgl32.Vec2, shade func(mgl32.Vec2) (mgl32.Vec4, bool)) {
	b := r.img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	s0 := r.cam.WorldToScreen(lo)
	s1 := r.cam.WorldToScreen(hi)
	x0 := clampInt(int(math.Floor(float64(min(s0.X(), s1.X())*w))), 0, b.Dx())
	x1 := clampInt(int(math.Ceil(float64(max(s0.X(), s1.X())*w))), 0, b.Dx())
	y0 := clampInt(int(math.Floor(float64((1-max(s0.Y(), s1.Y()))*h))), 0, b.Dy())
	y1 := clampInt(int(math.Ceil(float64((1-min(s0.Y(), s1.Y()))*h))), 0, b.Dy())

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			p := r.cam.ScreenToWorld(mgl32.Vec2{(float32(px) + 0.5) / w, 1 - (float32(py)+0.5)/h})
			if p.X() < lo.X() || p.X() > hi.X() || p.Y() < lo.Y() || p.Y() > hi.Y() {
				continue
			}
			c, ok := shade(p)
			if !ok {
				continue
			}
			r.blend(px, py, c)
		}
	}
}

// blend composites c over the pixel with straight alpha, like
// SRC_ALPHA, ONE_MINUS_SRC_ALPHA.
func (r *Raster) blend(x, y int, c mgl32.Vec4) {
	i := r.img.PixOffset(x, y)
	pix := r.img.Pix[i : i+4 : i+4]
	a := clamp01(c.W())
	for k := 0; k < 3; k++ {
		dst := float32(pix[k]) / 255
		pix[k] = unorm(c[k]*a + dst*(1-a))
	}
	dstA := float32(pix[3]) / 255
	pix[3] = unorm(a + dstA*(1-a))
}

func segmentDistance(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := clamp01(p.Sub(a).Dot(ab) / l2)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

func clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func unorm(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
