package game

import (
	"time"

	"github.com/Faultbox/lantern/internal/config"
)

// Asset paths relative to the asset directory.
const (
	lightingVertPath = "shaders/lighting.vert"
	lightingFragPath = "shaders/lighting.frag"
	spriteVertPath   = "shaders/sprite.vert"
	spriteFragPath   = "shaders/sprite.frag"
)

// FrameBudget returns the minimum frame time for an FPS limit. Zero means
// no limit. VSync already paces frames, so the limit only applies without it.
func FrameBudget(g config.GraphicsConfig) time.Duration {
	if g.VSync || g.FPSLimit <= 0 {
		return 0
	}
	return time.Second / time.Duration(g.FPSLimit)
}
