package sprite

import "image"

// Animation is one row of a sprite sheet played at a fixed rate.
type Animation struct {
	Name   string
	Row    int
	Frames int
	FPS    int
}

// Frame is the current cell of an animated sprite.
type Frame struct {
	Index      int
	SourceRect image.Rectangle // Pixel rect in the sheet, top-left origin
}

// AnimatedSprite steps through sprite-sheet animations laid out as rows of
// equally sized tiles.
type AnimatedSprite struct {
	TileWidth  int
	TileHeight int
	Playing    bool
	Loop       bool

	animations []Animation
	current    int
	frame      int
	elapsed    float32 // Seconds since the current frame started
}

// NewAnimatedSprite creates a looping animated sprite on the first animation.
func NewAnimatedSprite(tileWidth, tileHeight int, animations []Animation, playing bool) *AnimatedSprite {
	return &AnimatedSprite{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Playing:    playing,
		Loop:       true,
		animations: append([]Animation(nil), animations...),
	}
}

// SetAnimation switches to animation i, restarting it if it changed.
// Out of range indices are ignored.
func (s *AnimatedSprite) SetAnimation(i int) {
	if i < 0 || i >= len(s.animations) || i == s.current {
		return
	}
	s.current = i
	s.frame = 0
	s.elapsed = 0
}

// SetAnimationByName is SetAnimation by animation name.
func (s *AnimatedSprite) SetAnimationByName(name string) {
	for i, a := range s.animations {
		if a.Name == name {
			s.SetAnimation(i)
			return
		}
	}
}

// Current returns the active animation index.
func (s *AnimatedSprite) Current() int {
	return s.current
}

// Update advances the animation by dt seconds.
func (s *AnimatedSprite) Update(dt float32) {
	if !s.Playing || len(s.animations) == 0 || dt <= 0 {
		return
	}
	anim := s.animations[s.current]
	if anim.FPS <= 0 || anim.Frames <= 1 {
		return
	}

	interval := 1 / float32(anim.FPS)
	s.elapsed += dt
	for s.elapsed >= interval {
		s.elapsed -= interval
		s.frame++
		if s.frame >= anim.Frames {
			if !s.Loop {
				s.frame = anim.Frames - 1
				s.elapsed = 0
				return
			}
			s.frame = 0
		}
	}
}

// Frame returns the current frame and its rect in the sheet.
func (s *AnimatedSprite) Frame() Frame {
	row := 0
	if len(s.animations) > 0 {
		row = s.animations[s.current].Row
	}
	x := s.frame * s.TileWidth
	y := row * s.TileHeight
	return Frame{
		Index:      s.frame,
		SourceRect: image.Rect(x, y, x+s.TileWidth, y+s.TileHeight),
	}
}
