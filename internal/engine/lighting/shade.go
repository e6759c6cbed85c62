package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the per-frame input of the compositing shader.
// The GPU path uploads it and Shade evaluates it on the CPU.
type Uniforms struct {
	Dims   mgl32.Vec2 // Viewport size in pixels
	PosRad [MaxLights]mgl32.Vec3
	Color  [MaxLights]mgl32.Vec3
}

// BuildUniforms fills every slot from the registry, inactive ones included.
func BuildUniforms(reg *Registry, xf Transform, width, height int) Uniforms {
	u := Uniforms{Dims: mgl32.Vec2{float32(width), float32(height)}}
	for i, l := range reg.Slots() {
		u.PosRad[i] = xf.ToShader(l)
		u.Color[i] = l.Color
	}
	return u
}

// ShaderPos maps a fragment coordinate (pixels, bottom-left origin) into
// the aspect-corrected normalized space the lights live in.
func (u *Uniforms) ShaderPos(fragCoord mgl32.Vec2) mgl32.Vec2 {
	p := mgl32.Vec2{fragCoord.X() / u.Dims.X(), fragCoord.Y() / u.Dims.Y()}
	p[1] *= u.Dims.Y() / u.Dims.X()
	return p
}

// Shade returns the lit color of one fragment whose unlit scene color is base.
func (u *Uniforms) Shade(fragCoord mgl32.Vec2, base mgl32.Vec3) mgl32.Vec4 {
	return u.ShadeAt(u.ShaderPos(fragCoord), base)
}

// ShadeAt is Shade for a point already in shader space.
//
// The first light covering the point multiplies the base color by the
// light color and its intensity. Each later light mixes the result toward
// its own color by its intensity, so the outcome depends on slot order.
// Points no light covers are opaque black.
func (u *Uniforms) ShadeAt(p mgl32.Vec2, base mgl32.Vec3) mgl32.Vec4 {
	var out mgl32.Vec3
	hit := false
	for i := 0; i < MaxLights; i++ {
		pr := u.PosRad[i]
		radius := pr.Z()
		if radius <= 0 {
			continue
		}
		d := distance(p, mgl32.Vec2{pr.X(), pr.Y()})
		if d > radius {
			continue
		}
		intensity := Intensity(d, radius)
		c := u.Color[i]
		if !hit {
			out = mgl32.Vec3{
				base.X() * c.X() * intensity,
				base.Y() * c.Y() * intensity,
				base.Z() * c.Z() * intensity,
			}
			hit = true
			continue
		}
		out = mix(out, c, intensity)
	}
	if !hit {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	return out.Vec4(1)
}

// Intensity is the linear falloff: 1 at the center, 0 at the radius.
// Non-positive radii yield 0.
func Intensity(dist, radius float32) float32 {
	if radius <= 0 {
		return 0
	}
	return (radius - dist) / radius
}

func distance(a, b mgl32.Vec2) float32 {
	dx := float64(a.X() - b.X())
	dy := float64(a.Y() - b.Y())
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// mix matches GLSL mix: a*(1-t) + b*t.
func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
