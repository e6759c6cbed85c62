package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/camera"
)

// AspectCorrect divides the y component by ratio (width/height).
//
// The fragment program scales its normalized y by height/width, so light
// positions must be brought into the same space for radii to read as
// circles. A non-positive ratio leaves p unchanged.
func AspectCorrect(p mgl32.Vec3, ratio float32) mgl32.Vec3 {
	if ratio <= 0 {
		return p
	}
	return mgl32.Vec3{p.X(), p.Y() / ratio, p.Z()}
}

// AspectRestore undoes AspectCorrect.
func AspectRestore(p mgl32.Vec3, ratio float32) mgl32.Vec3 {
	if ratio <= 0 {
		return p
	}
	return mgl32.Vec3{p.X(), p.Y() * ratio, p.Z()}
}

// Transform converts world-space lights into the fragment program's space.
// Build a new one whenever the camera or the viewport size changes.
type Transform struct {
	Camera camera.Camera2D
	Ratio  float32
}

// NewTransform creates a transform for a width x height viewport.
func NewTransform(cam camera.Camera2D, width, height int) Transform {
	return Transform{
		Camera: cam,
		Ratio:  camera.AspectRatio(width, height),
	}
}

// ToShader returns the light's (x, y, radius) in shader space: x in
// fractions of the viewport width, y aspect-corrected, radius in
// fractions of the viewport width.
func (t Transform) ToShader(l Light) mgl32.Vec3 {
	s := t.Camera.WorldToScreen(l.Position)
	radius := l.Radius * t.Camera.Zoom.X() / 2
	return AspectCorrect(mgl32.Vec3{s.X(), s.Y(), radius}, t.Ratio)
}

// ToWorld is the inverse of ToShader.
func (t Transform) ToWorld(p mgl32.Vec3) Light {
	s := AspectRestore(p, t.Ratio)
	var radius float32
	if t.Camera.Zoom.X() != 0 {
		radius = s.Z() * 2 / t.Camera.Zoom.X()
	}
	return Light{
		Position: t.Camera.ScreenToWorld(mgl32.Vec2{s.X(), s.Y()}),
		Radius:   radius,
	}
}
