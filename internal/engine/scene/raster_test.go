package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

// newSquare returns a 4x4 raster viewing world [-1,1] on both axes.
func newSquare() *Raster {
	r := NewRaster(4, 4)
	r.Clear(1, 0, 0, 1)
	r.Begin(camera.ForViewport(4, 4))
	return r
}

func TestRasterRect(t *testing.T) {
	r := newSquare()
	r.Rect(-1, -1, 1, 1, mgl32.Vec4{0, 1, 0, 1})

	img := r.Image()
	assert.Equal(t, green, img.RGBAAt(0, 3), "bottom-left")
	assert.Equal(t, green, img.RGBAAt(1, 2))
	assert.Equal(t, red, img.RGBAAt(2, 2))
	assert.Equal(t, red, img.RGBAAt(0, 0), "top-left")
}

func TestRasterCircleCoversCentersOnly(t *testing.T) {
	r := newSquare()
	r.Circle(0, 0, 0.1, mgl32.Vec4{0, 1, 0, 1})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, red, r.Image().RGBAAt(x, y))
		}
	}

	r.Circle(0, 0, 0.4, mgl32.Vec4{0, 1, 0, 1})
	assert.Equal(t, green, r.Image().RGBAAt(1, 1))
	assert.Equal(t, green, r.Image().RGBAAt(2, 2))
	assert.Equal(t, red, r.Image().RGBAAt(0, 0))
}

func TestRasterLine(t *testing.T) {
	r := newSquare()
	r.Line(-1, -0.75, 1, -0.75, 0.1, mgl32.Vec4{0, 0, 1, 1})
	for x := 0; x < 4; x++ {
		assert.Equal(t, blue, r.Image().RGBAAt(x, 3))
		assert.Equal(t, red, r.Image().RGBAAt(x, 2))
	}
}

func TestRasterBlendsAlpha(t *testing.T) {
	r := newSquare()
	r.Rect(-1, -1, 2, 2, mgl32.Vec4{0, 0, 1, 0.5})
	assert.Equal(t, color.RGBA{128, 0, 128, 255}, r.Image().RGBAAt(0, 0))
}

func TestRasterTexture(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 2, 1))
	sheet.SetRGBA(0, 0, green)
	sheet.SetRGBA(1, 0, blue)
	tex := &texture.Texture{ID: 3, Width: 2, Height: 1}

	r := newSquare()
	r.Sheets[tex] = sheet
	r.Texture(tex, -1, -1, 2, 2, sprite.DrawParams{Tint: mgl32.Vec4{1, 1, 1, 1}})
	assert.Equal(t, green, r.Image().RGBAAt(0, 0))
	assert.Equal(t, blue, r.Image().RGBAAt(3, 0))

	r.Texture(tex, -1, -1, 2, 2, sprite.DrawParams{FlipX: true, Tint: mgl32.Vec4{1, 1, 1, 1}})
	assert.Equal(t, blue, r.Image().RGBAAt(0, 0))
	assert.Equal(t, green, r.Image().RGBAAt(3, 0))

	// Unregistered textures draw nothing.
	r2 := newSquare()
	r2.Texture(&texture.Texture{ID: 9}, -1, -1, 2, 2, sprite.DrawParams{Tint: mgl32.Vec4{1, 1, 1, 1}})
	assert.Equal(t, red, r2.Image().RGBAAt(0, 0))
}

func TestRasterRendersScene(t *testing.T) {
	r := NewRaster(4, 4)
	s := &Scene{
		Background:  mgl32.Vec3{1, 0, 0},
		GroundY:     -0.5,
		GroundColor: mgl32.Vec3{0, 1, 0},
	}
	tex := NewRenderer(r, s).Render(r, camera.ForViewport(4, 4))

	assert.Zero(t, tex)
	assert.Equal(t, green, r.Image().RGBAAt(1, 3))
	assert.Equal(t, red, r.Image().RGBAAt(1, 2))
}
