package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

type call struct {
	op   string
	args []float32
}

type fakePainter struct {
	calls []call
}

func (f *fakePainter) Begin(camera.Camera2D) { f.calls = append(f.calls, call{op: "begin"}) }
func (f *fakePainter) End()                  { f.calls = append(f.calls, call{op: "end"}) }
func (f *fakePainter) Rect(x, y, w, h float32, _ mgl32.Vec4) {
	f.calls = append(f.calls, call{"rect", []float32{x, y, w, h}})
}
func (f *fakePainter) Circle(cx, cy, r float32, _ mgl32.Vec4) {
	f.calls = append(f.calls, call{"circle", []float32{cx, cy, r}})
}
func (f *fakePainter) Line(x1, y1, x2, y2, th float32, _ mgl32.Vec4) {
	f.calls = append(f.calls, call{"line", []float32{x1, y1, x2, y2, th}})
}
func (f *fakePainter) Texture(_ *texture.Texture, x, y, w, h float32, _ sprite.DrawParams) {
	f.calls = append(f.calls, call{"texture", []float32{x, y, w, h}})
}

func (f *fakePainter) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

type fakeTarget struct {
	bound, restored bool
	clear           [4]float32
}

func (t *fakeTarget) BindWithViewport() func() {
	t.bound = true
	return func() { t.restored = true }
}
func (t *fakeTarget) Clear(r, g, b, a float32) { t.clear = [4]float32{r, g, b, a} }
func (t *fakeTarget) ColorTexture() uint32     { return 7 }

type drawFunc func(Painter)

func (f drawFunc) Draw(p Painter) { f(p) }

func TestRenderOrder(t *testing.T) {
	p := &fakePainter{}
	s := &Scene{
		Background:  mgl32.Vec3{0.85, 0.2, 0.2},
		GroundY:     -0.4,
		GroundColor: mgl32.Vec3{0.3, 0.3, 0.3},
		Props: []Prop{
			{Shape: ShapeRect, Position: mgl32.Vec2{0.2, -0.4}, Size: mgl32.Vec2{0.1, 0.2}},
			{Shape: ShapeCircle, Position: mgl32.Vec2{-0.3, 0.1}, Size: mgl32.Vec2{0.05, 0}},
			{Shape: ShapeLine, Position: mgl32.Vec2{-0.4, 0.4}, Size: mgl32.Vec2{-0.8, 0.9}, Thickness: 0.05},
		},
	}
	r := NewRenderer(p, s)
	target := &fakeTarget{}
	player := drawFunc(func(p Painter) { p.Texture(nil, 0, 0, 0.2, 0.2, sprite.DrawParams{}) })

	tex := r.Render(target, camera.ForViewport(1024, 576), player)

	assert.Equal(t, uint32(7), tex)
	assert.True(t, target.bound)
	assert.True(t, target.restored)
	assert.Equal(t, [4]float32{0.85, 0.2, 0.2, 1}, target.clear)
	assert.Equal(t, []string{"begin", "rect", "rect", "circle", "line", "texture", "end"}, p.ops())
	assert.Equal(t, []float32{-0.3, 0.1, 0.05}, p.calls[3].args)
	assert.Equal(t, []float32{-0.4, 0.4, -0.8, 0.9, 0.05}, p.calls[4].args)
}

func TestGroundRectSpansView(t *testing.T) {
	cam := camera.ForViewport(1000, 500) // zoom (1, 2): view is [-1,1] x [-0.5,0.5]
	s := &Scene{GroundY: -0.25}

	x, y, w, h := s.GroundRect(cam)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, -0.5, y, 1e-6)
	assert.InDelta(t, 2, w, 1e-6)
	assert.InDelta(t, 0.25, h, 1e-6)
}

func TestGroundBelowViewIsSkipped(t *testing.T) {
	p := &fakePainter{}
	r := NewRenderer(p, &Scene{GroundY: -5})
	r.Render(&fakeTarget{}, camera.ForViewport(800, 600))
	assert.Equal(t, []string{"begin", "end"}, p.ops())
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]Shape{"": ShapeRect, "rect": ShapeRect, "circle": ShapeCircle, "line": ShapeLine} {
		got, ok := ParseShape(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
	}
	_, ok := ParseShape("star")
	assert.False(t, ok)
}
