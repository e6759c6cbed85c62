// Package player implements the controllable character.
package player

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/scene"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

// Sprite sheet layout shared by the idle and walking sheets.
const (
	TileSize  = 64
	SheetFPS  = 6
	SheetCols = 3
)

// Animation names.
const (
	AnimIdle    = "idle"
	AnimWalking = "walking"
)

// Animations returns the player's sheet animations. Each sheet is a single
// row, so both animations read row 0 of their own texture.
func Animations() []sprite.Animation {
	return []sprite.Animation{
		{Name: AnimIdle, Row: 0, Frames: SheetCols, FPS: SheetFPS},
		{Name: AnimWalking, Row: 0, Frames: SheetCols, FPS: SheetFPS},
	}
}

// Player is a sprite moved by a velocity in world units per second.
// Pos is the sprite center.
type Player struct {
	Pos    mgl32.Vec2
	Dims   mgl32.Vec2
	Offset mgl32.Vec2 // Added to Pos when drawing
	Vel    mgl32.Vec2
	Dir    mgl32.Vec2 // X is the facing: -1 left, 1 right

	Idle    *texture.Texture
	Walking *texture.Texture
	Shadow  *texture.Texture // Optional blob under the feet
	Anim    *sprite.AnimatedSprite
}

// New creates a player facing right.
func New(pos, dims, offset mgl32.Vec2, idle, walking *texture.Texture) *Player {
	return &Player{
		Pos:     pos,
		Dims:    dims,
		Offset:  offset,
		Dir:     mgl32.Vec2{1, 0},
		Idle:    idle,
		Walking: walking,
		Anim:    sprite.NewAnimatedSprite(TileSize, TileSize, Animations(), true),
	}
}

// SetVel sets the velocity and updates the facing from its X component.
// Purely vertical motion keeps the current facing.
func (p *Player) SetVel(vel mgl32.Vec2) {
	p.Vel = vel
	switch {
	case vel.X() < 0:
		p.Dir[0] = -1
	case vel.X() > 0:
		p.Dir[0] = 1
	}
}

// Moving reports whether the player has a non-zero velocity.
func (p *Player) Moving() bool {
	return p.Vel != (mgl32.Vec2{})
}

// Update moves the player by dt seconds and advances the animation.
func (p *Player) Update(dt float32) {
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	if p.Moving() {
		p.Anim.SetAnimationByName(AnimWalking)
	} else {
		p.Anim.SetAnimationByName(AnimIdle)
	}
	p.Anim.Update(dt)
}

// Sheet returns the texture for the current state.
func (p *Player) Sheet() *texture.Texture {
	if p.Moving() {
		return p.Walking
	}
	return p.Idle
}

// Bounds returns the bottom-left corner and size of the drawn sprite.
func (p *Player) Bounds() (x, y, w, h float32) {
	c := p.Pos.Add(p.Offset)
	return c.X() - p.Dims.X()/2, c.Y() - p.Dims.Y()/2, p.Dims.X(), p.Dims.Y()
}

// ShadowBounds returns the rect of the shadow blob, centered on the
// bottom edge of the sprite.
func (p *Player) ShadowBounds() (x, y, w, h float32) {
	sx, sy, sw, sh := p.Bounds()
	w, h = sw*shadowScale[0], sh*shadowScale[1]
	return sx + (sw-w)/2, sy - h/2, w, h
}

var shadowScale = [2]float32{0.8, 0.2}

// Draw implements scene.Drawable.
func (p *Player) Draw(dst scene.Painter) {
	tex := p.Sheet()
	if tex == nil {
		return
	}
	if p.Shadow != nil {
		x, y, w, h := p.ShadowBounds()
		dst.Texture(p.Shadow, x, y, w, h, sprite.DrawParams{Tint: mgl32.Vec4{1, 1, 1, 1}})
	}
	x, y, w, h := p.Bounds()
	dst.Texture(tex, x, y, w, h, sprite.DrawParams{
		Source: p.Anim.Frame().SourceRect,
		FlipX:  p.Dir.X() < 0,
		Tint:   mgl32.Vec4{1, 1, 1, 1},
	})
}
