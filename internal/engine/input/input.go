// Package input handles SDL2 input events.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
}

// Direction key bindings. Each axis has a letter key and an arrow key.
var (
	KeysUp    = []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP}
	KeysDown  = []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN}
	KeysLeft  = []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_LEFT}
	KeysRight = []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_RIGHT}
)

const (
	KeyQuit            = sdl.SCANCODE_ESCAPE
	KeyScreenshot      = sdl.SCANCODE_F12
	KeyToggleCrosshair = sdl.SCANCODE_F1
)

// Input handles all input processing and tracks which keys are held.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.Handle(Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.Handle(Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.Handle(ev)
		}
	}

	return i.quit
}

// Handle records one event. Update feeds it from SDL; tests call it directly.
func (i *Input) Handle(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		i.held[e.Key] = true
		if e.Key == KeyQuit {
			i.quit = true
		}
	case EventKeyUp:
		delete(i.held, e.Key)
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether a quit event or the quit key was seen.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// IsKeyPressed checks if a specific key went down this frame. Key repeats
// do not count.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Resized returns the last drawable size change seen this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

// MoveIntent returns the movement direction from the held direction keys.
func (i *Input) MoveIntent() mgl32.Vec2 {
	return MoveIntent(i.IsKeyHeld)
}

// MoveIntent maps held direction keys to a direction with unit axes.
// Opposite keys cancel out. Diagonals are not normalized.
func MoveIntent(held func(sdl.Scancode) bool) mgl32.Vec2 {
	anyHeld := func(keys []sdl.Scancode) bool {
		for _, k := range keys {
			if held(k) {
				return true
			}
		}
		return false
	}

	var dir mgl32.Vec2
	if anyHeld(KeysUp) {
		dir[1]++
	}
	if anyHeld(KeysDown) {
		dir[1]--
	}
	if anyHeld(KeysLeft) {
		dir[0]--
	}
	if anyHeld(KeysRight) {
		dir[0]++
	}
	return dir
}
