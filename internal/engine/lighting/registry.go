// Package lighting provides the point lights used by the compositing pass.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of light slots in the compositing shader.
// The fragment program's light array is sized from this constant.
const MaxLights = 4

// Light is a radial point light in world space.
//
// A light with Radius <= 0 is inactive and contributes to no fragment.
// Values are not validated; negative or out-of-range colors reach the
// shader unchanged.
type Light struct {
	Position mgl32.Vec2 // World position
	Radius   float32    // Falloff distance in world units
	Color    mgl32.Vec3 // RGB, nominally 0-1
}

// PosRad returns the (x, y, radius) triple.
func (l Light) PosRad() mgl32.Vec3 {
	return mgl32.Vec3{l.Position.X(), l.Position.Y(), l.Radius}
}

// Active reports whether the light can contribute to any fragment.
func (l Light) Active() bool {
	return l.Radius > 0
}

// Registry holds a fixed number of light slots.
// Slots beyond Len are zero and are uploaded like any other slot.
type Registry struct {
	slots [MaxLights]Light
	count int
}

// NewRegistry creates a registry with every slot zeroed.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of slots in use.
func (r *Registry) Len() int {
	return r.count
}

// Cap returns the fixed slot capacity.
func (r *Registry) Cap() int {
	return MaxLights
}

// At returns a pointer to slot i for in-place mutation.
// It panics if i is outside [0, MaxLights).
func (r *Registry) At(i int) *Light {
	return &r.slots[i]
}

// Set overwrites slot i and extends the used count to cover it.
// Returns false if i is outside [0, MaxLights).
func (r *Registry) Set(i int, l Light) bool {
	if i < 0 || i >= MaxLights {
		return false
	}
	r.slots[i] = l
	if i >= r.count {
		r.count = i + 1
	}
	return true
}

// Add places a light in the first unused slot.
// Returns false if the registry is full.
func (r *Registry) Add(l Light) bool {
	return r.Set(r.count, l)
}

// Slots returns every slot, used or not.
func (r *Registry) Slots() *[MaxLights]Light {
	return &r.slots
}

// Reset zeroes every slot.
func (r *Registry) Reset() {
	r.slots = [MaxLights]Light{}
	r.count = 0
}
