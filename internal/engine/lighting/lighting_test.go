package lighting

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lantern/internal/engine/camera"
)

const eps = 1e-5

var (
	white = mgl32.Vec3{1, 1, 1}
	red   = mgl32.Vec3{1, 0, 0}
	blue  = mgl32.Vec3{0, 0, 1}
	black = mgl32.Vec4{0, 0, 0, 1}
)

func assertColor(t *testing.T, want, got mgl32.Vec4) {
	t.Helper()
	for i := 0; i < 4; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d: want %v, got %v", i, want, got)
	}
}

func uniformsWith(slots map[int][2]mgl32.Vec3) *Uniforms {
	u := &Uniforms{Dims: mgl32.Vec2{100, 100}}
	for i, s := range slots {
		u.PosRad[i] = s[0]
		u.Color[i] = s[1]
	}
	return u
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name         string
		dist, radius float32
		want         float32
	}{
		{"center", 0, 0.3, 1},
		{"edge", 0.3, 0.3, 0},
		{"halfway", 0.25, 0.5, 0.5},
		{"zero radius", 0, 0, 0},
		{"negative radius", 0, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Intensity(tt.dist, tt.radius), eps)
		})
	}
}

func TestShadeCenterIsFullIntensity(t *testing.T) {
	u := uniformsWith(map[int][2]mgl32.Vec3{0: {{0.5, 0.5, 0.2}, white}})
	base := mgl32.Vec3{0.4, 0.6, 0.8}

	got := u.ShadeAt(mgl32.Vec2{0.5, 0.5}, base)
	assertColor(t, base.Vec4(1), got)
}

func TestShadeEdgeIsZeroIntensity(t *testing.T) {
	u := uniformsWith(map[int][2]mgl32.Vec3{0: {{0, 0, 0.5}, white}})

	got := u.ShadeAt(mgl32.Vec2{0.5, 0}, white)
	assertColor(t, black, got)
}

func TestShadeOutsideIsOpaqueBlack(t *testing.T) {
	u := uniformsWith(map[int][2]mgl32.Vec3{
		0: {{0.1, 0.1, 0.05}, white},
		2: {{0.9, 0.9, 0.05}, red},
	})
	for _, base := range []mgl32.Vec3{white, {0.2, 0.9, 0.4}, {}} {
		assertColor(t, black, u.ShadeAt(mgl32.Vec2{0.5, 0.5}, base))
	}
}

func TestShadeSingleLightIgnoresSlot(t *testing.T) {
	light := [2]mgl32.Vec3{{0.5, 0.5, 0.4}, {0.9, 0.5, 0.25}}
	base := mgl32.Vec3{0.8, 0.6, 1}
	p := mgl32.Vec2{0.6, 0.5}

	intensity := Intensity(0.1, 0.4)
	want := mgl32.Vec4{
		base.X() * light[1].X() * intensity,
		base.Y() * light[1].Y() * intensity,
		base.Z() * light[1].Z() * intensity,
		1,
	}

	for slot := 0; slot < MaxLights; slot++ {
		u := uniformsWith(map[int][2]mgl32.Vec3{slot: light})
		assertColor(t, want, u.ShadeAt(p, base))
	}
}

func TestShadeSecondLightMixesInOrder(t *testing.T) {
	p := mgl32.Vec2{0.5, 0.5}
	a := [2]mgl32.Vec3{{0.5, 0.5, 0.4}, red}  // intensity 1 at p
	b := [2]mgl32.Vec3{{0.5, 0.7, 0.4}, blue} // intensity 0.5 at p

	ab := uniformsWith(map[int][2]mgl32.Vec3{0: a, 1: b}).ShadeAt(p, white)
	ba := uniformsWith(map[int][2]mgl32.Vec3{0: b, 1: a}).ShadeAt(p, white)

	// a multiplies white to red, then b mixes halfway to blue.
	assertColor(t, mgl32.Vec4{0.5, 0, 0.5, 1}, ab)
	// b multiplies white to half blue, then a mixes fully to red.
	assertColor(t, mgl32.Vec4{1, 0, 0, 1}, ba)

	assert.NotEqual(t, ab, ba)
}

func TestShadeGapsBetweenSlotsKeepOrder(t *testing.T) {
	p := mgl32.Vec2{0.5, 0.5}
	a := [2]mgl32.Vec3{{0.5, 0.5, 0.4}, red}
	b := [2]mgl32.Vec3{{0.5, 0.5, 0.4}, blue}

	got := uniformsWith(map[int][2]mgl32.Vec3{1: a, 3: b}).ShadeAt(p, white)
	assertColor(t, mgl32.Vec4{0, 0, 1, 1}, got)
}

func TestShadeZeroRadiusNeverContributes(t *testing.T) {
	points := []mgl32.Vec2{{0, 0}, {0.5, 0.5}, {0.3, 0.1}, {1, 0.5625}}
	for _, radius := range []float32{0, -0.2} {
		for _, p := range points {
			u := uniformsWith(map[int][2]mgl32.Vec3{
				0: {{p.X(), p.Y(), radius}, white},
			})
			assertColor(t, black, u.ShadeAt(p, white))
		}
	}
}

func TestShadeZeroRadiusDoesNotCountAsFirstHit(t *testing.T) {
	p := mgl32.Vec2{0.5, 0.5}
	u := uniformsWith(map[int][2]mgl32.Vec3{
		0: {{0.5, 0.5, 0}, blue},
		1: {{0.5, 0.5, 0.3}, red},
	})
	// Slot 1 is the first hit, so it multiplies instead of mixing.
	assertColor(t, mgl32.Vec4{0.5, 0, 0, 1}, u.ShadeAt(p, mgl32.Vec3{0.5, 0.5, 0.5}))
}

func TestShaderPosAspect(t *testing.T) {
	u := &Uniforms{Dims: mgl32.Vec2{1024, 576}}
	p := u.ShaderPos(mgl32.Vec2{1024, 576})
	assert.InDelta(t, 1.0, p.X(), eps)
	assert.InDelta(t, 576.0/1024.0, p.Y(), eps)
}

func TestAspectRoundTrip(t *testing.T) {
	ratios := []float32{1, 16.0 / 9.0, 4.0 / 3.0, 0.5, 2.37}
	ys := []float32{0, 0.1, -0.7, 0.5625, 12.5}
	for _, r := range ratios {
		for _, y := range ys {
			p := mgl32.Vec3{0.3, y, 0.2}
			got := AspectRestore(AspectCorrect(p, r), r)
			assert.InDelta(t, y, got.Y(), eps)
			assert.Equal(t, p.X(), got.X())
			assert.Equal(t, p.Z(), got.Z())
		}
	}
}

func TestAspectCorrectIgnoresDegenerateRatio(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, p, AspectCorrect(p, 0))
	assert.Equal(t, p, AspectRestore(p, -1))
}

func TestTransformKeepsLightsCircular(t *testing.T) {
	xf := NewTransform(camera.ForViewport(1024, 576), 1024, 576)
	l := Light{Position: mgl32.Vec2{0.1, -0.2}, Radius: 0.3, Color: white}

	center := xf.ToShader(l)
	right := xf.ToShader(Light{Position: l.Position.Add(mgl32.Vec2{l.Radius, 0})})
	up := xf.ToShader(Light{Position: l.Position.Add(mgl32.Vec2{0, l.Radius})})

	dx := right.X() - center.X()
	dy := up.Y() - center.Y()
	assert.InDelta(t, center.Z(), dx, eps)
	assert.InDelta(t, center.Z(), dy, eps)
}

func TestTransformRoundTrip(t *testing.T) {
	xf := NewTransform(camera.Camera2D{
		Target: mgl32.Vec2{0.4, 0.1},
		Zoom:   mgl32.Vec2{1.2, 1.2 * 4 / 3},
	}, 800, 600)
	l := Light{Position: mgl32.Vec2{-0.35, 0.6}, Radius: 0.25}

	got := xf.ToWorld(xf.ToShader(l))
	assert.InDelta(t, l.Position.X(), got.Position.X(), eps)
	assert.InDelta(t, l.Position.Y(), got.Position.Y(), eps)
	assert.InDelta(t, l.Radius, got.Radius, eps)
}

func TestViewportScenario(t *testing.T) {
	const w, h = 1024, 576
	reg := NewRegistry()
	require.True(t, reg.Add(Light{Radius: 0.2, Color: white}))

	xf := NewTransform(camera.ForViewport(w, h), w, h)
	u := BuildUniforms(reg, xf, w, h)
	assert.InDelta(t, 1024.0/576.0, xf.Ratio, eps)

	base := mgl32.Vec3{0.3, 0.6, 0.9}
	center := u.Shade(mgl32.Vec2{w / 2, h / 2}, base)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, base[i], center[i], 1e-4)
	}
	assert.Equal(t, float32(1), center.W())

	offset := u.ShaderPos(mgl32.Vec2{w / 2, h / 2}).Add(mgl32.Vec2{0, 0.3})
	assertColor(t, black, u.ShadeAt(offset, base))
}

func TestBuildUniformsUploadsEverySlot(t *testing.T) {
	reg := NewRegistry()
	reg.Add(Light{Position: mgl32.Vec2{0.2, 0.1}, Radius: 0.5, Color: red})
	xf := NewTransform(camera.ForViewport(800, 600), 800, 600)

	u := BuildUniforms(reg, xf, 800, 600)
	assert.Equal(t, mgl32.Vec2{800, 600}, u.Dims)
	assert.Equal(t, xf.ToShader(*reg.At(0)), u.PosRad[0])
	assert.Equal(t, red, u.Color[0])
	for i := 1; i < MaxLights; i++ {
		assert.Zero(t, u.PosRad[i].Z(), "slot %d radius", i)
		assert.Equal(t, mgl32.Vec3{}, u.Color[i], "slot %d color", i)
	}
}

func TestShadeImage(t *testing.T) {
	scene := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			scene.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	u := &Uniforms{Dims: mgl32.Vec2{10, 10}}
	u.PosRad[0] = mgl32.Vec3{0.5, 0.5, 0.2}
	u.Color[0] = white

	out := ShadeImage(scene, u)
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(9, 9))

	lit := out.RGBAAt(5, 4)
	assert.Greater(t, lit.R, uint8(0))
	assert.Less(t, lit.R, uint8(200))
	assert.Equal(t, uint8(255), lit.A)
}
