// Package camera provides cameras for 2D rendering.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera2D maps world space to normalized device coordinates.
//
// Zoom scales world units into NDC: with Zoom.X = 1 the visible world spans
// [-1, 1] horizontally around Target. A Zoom.Y equal to the viewport aspect
// ratio (width/height) keeps world units square on screen.
type Camera2D struct {
	Target mgl32.Vec2
	Zoom   mgl32.Vec2
}

// ForViewport returns the world camera used for the scene: centered on the
// origin, one world unit per half screen width, aspect-corrected on Y.
func ForViewport(width, height int) Camera2D {
	return Camera2D{
		Zoom: mgl32.Vec2{1, AspectRatio(width, height)},
	}
}

// AspectRatio returns width/height, or 1 for a degenerate viewport.
func AspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Projection returns the world to NDC matrix.
func (c Camera2D) Projection() mgl32.Mat4 {
	scale := mgl32.Scale3D(c.Zoom.X(), c.Zoom.Y(), 1)
	return scale.Mul4(mgl32.Translate3D(-c.Target.X(), -c.Target.Y(), 0))
}

// WorldToNDC converts a world point into normalized device coordinates.
func (c Camera2D) WorldToNDC(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X() - c.Target.X()) * c.Zoom.X(),
		(p.Y() - c.Target.Y()) * c.Zoom.Y(),
	}
}

// WorldToScreen converts a world point into normalized screen space,
// [0,1] on both axes with the origin at the bottom-left corner.
func (c Camera2D) WorldToScreen(p mgl32.Vec2) mgl32.Vec2 {
	ndc := c.WorldToNDC(p)
	return mgl32.Vec2{(ndc.X() + 1) / 2, (ndc.Y() + 1) / 2}
}

// ScreenToWorld is the inverse of WorldToScreen.
// A zero zoom component leaves that axis at the target.
func (c Camera2D) ScreenToWorld(s mgl32.Vec2) mgl32.Vec2 {
	w := c.Target
	if c.Zoom.X() != 0 {
		w[0] += (s.X()*2 - 1) / c.Zoom.X()
	}
	if c.Zoom.Y() != 0 {
		w[1] += (s.Y()*2 - 1) / c.Zoom.Y()
	}
	return w
}

// Screen returns a camera whose world units are pixels of a width x height
// viewport with the origin at the bottom-left corner. It is used for
// overlays drawn after the lighting pass.
func Screen(width, height int) Camera2D {
	w, h := float32(width), float32(height)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Camera2D{
		Target: mgl32.Vec2{w / 2, h / 2},
		Zoom:   mgl32.Vec2{2 / w, 2 / h},
	}
}
