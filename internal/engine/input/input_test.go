package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func press(in *Input, keys ...sdl.Scancode) {
	for _, k := range keys {
		in.Handle(Event{Type: EventKeyDown, Key: k})
	}
}

func TestMoveIntent(t *testing.T) {
	tests := []struct {
		name string
		keys []sdl.Scancode
		want mgl32.Vec2
	}{
		{"none", nil, mgl32.Vec2{0, 0}},
		{"w", []sdl.Scancode{sdl.SCANCODE_W}, mgl32.Vec2{0, 1}},
		{"down arrow", []sdl.Scancode{sdl.SCANCODE_DOWN}, mgl32.Vec2{0, -1}},
		{"a", []sdl.Scancode{sdl.SCANCODE_A}, mgl32.Vec2{-1, 0}},
		{"right arrow", []sdl.Scancode{sdl.SCANCODE_RIGHT}, mgl32.Vec2{1, 0}},
		{"diagonal", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_D}, mgl32.Vec2{1, 1}},
		{"opposites cancel", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_RIGHT}, mgl32.Vec2{0, 0}},
		{"letter and arrow same axis", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP}, mgl32.Vec2{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			press(in, tt.keys...)
			assert.Equal(t, tt.want, in.MoveIntent())
		})
	}
}

func TestKeyReleaseStopsMovement(t *testing.T) {
	in := New()
	press(in, sdl.SCANCODE_D)
	assert.Equal(t, mgl32.Vec2{1, 0}, in.MoveIntent())

	in.Handle(Event{Type: EventKeyUp, Key: sdl.SCANCODE_D})
	assert.Equal(t, mgl32.Vec2{0, 0}, in.MoveIntent())
	assert.False(t, in.IsKeyHeld(sdl.SCANCODE_D))
}

func TestQuit(t *testing.T) {
	in := New()
	assert.False(t, in.QuitRequested())
	press(in, KeyQuit)
	assert.True(t, in.QuitRequested())

	in = New()
	in.Handle(Event{Type: EventQuit})
	assert.True(t, in.QuitRequested())
}

func TestIsKeyPressedIgnoresRepeat(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventKeyDown, Key: KeyScreenshot, Repeat: true})
	assert.False(t, in.IsKeyPressed(KeyScreenshot))
	assert.True(t, in.IsKeyHeld(KeyScreenshot))

	in.Handle(Event{Type: EventKeyDown, Key: KeyScreenshot})
	assert.True(t, in.IsKeyPressed(KeyScreenshot))
}

func TestResized(t *testing.T) {
	in := New()
	_, _, ok := in.Resized()
	assert.False(t, ok)

	in.Handle(Event{Type: EventWindowResize, Width: 800, Height: 600})
	in.Handle(Event{Type: EventWindowResize, Width: 1280, Height: 720})
	w, h, ok := in.Resized()
	assert.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}
