package debug

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/lighting"
)

// Segment is a line from (X1, Y1) to (X2, Y2) in pixels, origin bottom-left.
type Segment struct {
	X1, Y1, X2, Y2 float32
}

// LineDrawer is the subset of sprite.Renderer the overlay needs.
type LineDrawer interface {
	Begin(cam camera.Camera2D)
	Line(x1, y1, x2, y2, thickness float32, c mgl32.Vec4)
	End()
}

var (
	crosshairColor = mgl32.Vec4{1, 1, 1, 0.8}
	outlineAlpha   = float32(0.9)
)

const (
	crosshairSize   = 12
	lineThickness   = 1.5
	outlineSegments = 48
)

// Overlay draws debug helpers on top of the lit frame: a crosshair at the
// screen center and the outline of every active light's radius.
type Overlay struct {
	Crosshair bool
	Lights    bool
}

// Toggle flips both helpers on or off together.
func (o *Overlay) Toggle() {
	on := !(o.Crosshair || o.Lights)
	o.Crosshair = on
	o.Lights = on
}

// Enabled reports whether anything would be drawn.
func (o *Overlay) Enabled() bool {
	return o.Crosshair || o.Lights
}

// Draw renders the enabled helpers for a width x height viewport.
func (o *Overlay) Draw(r LineDrawer, reg *lighting.Registry, cam camera.Camera2D, width, height int) {
	if !o.Enabled() {
		return
	}

	r.Begin(camera.Screen(width, height))
	if o.Crosshair {
		for _, s := range CrosshairSegments(width, height, crosshairSize) {
			r.Line(s.X1, s.Y1, s.X2, s.Y2, lineThickness, crosshairColor)
		}
	}
	if o.Lights && reg != nil {
		for i := 0; i < reg.Cap(); i++ {
			l := reg.At(i)
			if !l.Active() {
				continue
			}
			c := l.Color.Vec4(outlineAlpha)
			for _, s := range LightOutline(*l, cam, width, height, outlineSegments) {
				r.Line(s.X1, s.Y1, s.X2, s.Y2, lineThickness, c)
			}
		}
	}
	r.End()
}

// CrosshairSegments returns a horizontal and a vertical segment crossing at
// the viewport center.
func CrosshairSegments(width, height int, size float32) []Segment {
	cx, cy := float32(width)/2, float32(height)/2
	return []Segment{
		{cx - size, cy, cx + size, cy},
		{cx, cy - size, cx, cy + size},
	}
}

// LightOutline returns a closed polygon approximating the circle a light
// covers, in pixels. Inactive lights have no outline.
func LightOutline(l lighting.Light, cam camera.Camera2D, width, height, segments int) []Segment {
	if !l.Active() || segments < 3 {
		return nil
	}

	s := cam.WorldToScreen(l.Position)
	cx, cy := s.X()*float32(width), s.Y()*float32(height)
	// World units are square on screen, so the X scale applies to both axes.
	r := l.Radius * cam.Zoom.X() * float32(width) / 2

	out := make([]Segment, segments)
	step := 2 * math.Pi / float64(segments)
	for i := range out {
		a0 := float64(i) * step
		a1 := float64(i+1) * step
		out[i] = Segment{
			cx + r*float32(math.Cos(a0)), cy + r*float32(math.Sin(a0)),
			cx + r*float32(math.Cos(a1)), cy + r*float32(math.Sin(a1)),
		}
	}
	return out
}
