// Package scene draws the unlit 2D world into an off-screen target.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

// Painter is the drawing surface handed to drawables. sprite.Renderer
// implements it.
type Painter interface {
	Begin(cam camera.Camera2D)
	Rect(x, y, w, h float32, c mgl32.Vec4)
	Circle(cx, cy, radius float32, c mgl32.Vec4)
	Line(x1, y1, x2, y2, thickness float32, c mgl32.Vec4)
	Texture(tex *texture.Texture, x, y, w, h float32, p sprite.DrawParams)
	End()
}

// Drawable is anything the renderer draws after the ground and props.
type Drawable interface {
	Draw(p Painter)
}

// Target is the render target the scene is drawn into.
// framebuffer.Framebuffer implements it.
type Target interface {
	BindWithViewport() func()
	Clear(r, g, b, a float32)
	ColorTexture() uint32
}

// Shape of a prop.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeLine
)

// ParseShape maps a config name to a Shape.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "", "rect":
		return ShapeRect, true
	case "circle":
		return ShapeCircle, true
	case "line":
		return ShapeLine, true
	}
	return ShapeRect, false
}

// Prop is a static colored shape in world units. Rects are anchored at
// their bottom-left corner, circles at their center with Size.X as radius.
// Lines run from Position to Size.
type Prop struct {
	Shape     Shape
	Position  mgl32.Vec2
	Size      mgl32.Vec2
	Thickness float32
	Color     mgl32.Vec3
}

// Draw implements Drawable.
func (p Prop) Draw(dst Painter) {
	c := p.Color.Vec4(1)
	switch p.Shape {
	case ShapeCircle:
		dst.Circle(p.Position.X(), p.Position.Y(), p.Size.X(), c)
	case ShapeLine:
		dst.Line(p.Position.X(), p.Position.Y(), p.Size.X(), p.Size.Y(), p.Thickness, c)
	default:
		dst.Rect(p.Position.X(), p.Position.Y(), p.Size.X(), p.Size.Y(), c)
	}
}

// Scene holds the static world: background, ground plane and props.
type Scene struct {
	Background  mgl32.Vec3
	GroundY     float32
	GroundColor mgl32.Vec3
	Props       []Prop
}

// GroundRect returns the ground plane as a rect spanning the whole view
// horizontally, from the bottom of the view up to GroundY.
func (s *Scene) GroundRect(cam camera.Camera2D) (x, y, w, h float32) {
	bottomLeft := cam.ScreenToWorld(mgl32.Vec2{0, 0})
	topRight := cam.ScreenToWorld(mgl32.Vec2{1, 1})
	x, y = bottomLeft.X(), bottomLeft.Y()
	w = topRight.X() - x
	h = s.GroundY - y
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// Renderer draws a Scene through a Painter.
type Renderer struct {
	painter Painter
	scene   *Scene
}

// NewRenderer creates a scene renderer.
func NewRenderer(p Painter, s *Scene) *Renderer {
	return &Renderer{painter: p, scene: s}
}

// Scene returns the scene being drawn.
func (r *Renderer) Scene() *Scene {
	return r.scene
}

// Render binds target, clears it to the background, then draws the ground,
// the props and each drawable in order. It returns the target texture.
func (r *Renderer) Render(target Target, cam camera.Camera2D, drawables ...Drawable) uint32 {
	restore := target.BindWithViewport()
	defer restore()

	bg := r.scene.Background
	target.Clear(bg.X(), bg.Y(), bg.Z(), 1)

	r.painter.Begin(cam)
	if x, y, w, h := r.scene.GroundRect(cam); h > 0 {
		r.painter.Rect(x, y, w, h, r.scene.GroundColor.Vec4(1))
	}
	for _, p := range r.scene.Props {
		p.Draw(r.painter)
	}
	for _, d := range drawables {
		d.Draw(r.painter)
	}
	r.painter.End()

	return target.ColorTexture()
}
