// Package world holds the simulated state: the static scene, the light
// registry and the player.
package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/config"
	"github.com/Faultbox/lantern/internal/engine/lighting"
	"github.com/Faultbox/lantern/internal/engine/scene"
	"github.com/Faultbox/lantern/internal/engine/texture"
	"github.com/Faultbox/lantern/internal/game/player"
)

// World is everything that changes or is drawn each frame.
type World struct {
	Scene  *scene.Scene
	Lights *lighting.Registry
	Player *player.Player

	speed       mgl32.Vec2
	followLight bool
}

// Sheets are the player's textures. Any of them may be nil: without idle
// and walking sheets the player is simulated but not drawn.
type Sheets struct {
	Idle    *texture.Texture
	Walking *texture.Texture
	Shadow  *texture.Texture
}

// New builds the world from cfg.
func New(cfg *config.Config, sheets Sheets) (*World, error) {
	lights, err := LightsFromConfig(cfg.Lights)
	if err != nil {
		return nil, err
	}
	s, err := SceneFromConfig(cfg.Scene)
	if err != nil {
		return nil, err
	}

	w := &World{
		Scene:  s,
		Lights: lights,
		Player: player.New(
			mgl32.Vec2(cfg.Game.PlayerStart),
			mgl32.Vec2(cfg.Game.PlayerSize),
			mgl32.Vec2{},
			sheets.Idle,
			sheets.Walking,
		),
		speed:       mgl32.Vec2{cfg.Game.PlayerSpeedX, cfg.Game.PlayerSpeedY},
		followLight: cfg.Game.LightFollowsPlayer,
	}
	w.Player.Shadow = sheets.Shadow
	w.followPlayer()
	return w, nil
}

// Update applies a move intent and advances the world by dt seconds.
func (w *World) Update(dt float32, intent mgl32.Vec2) {
	w.Player.SetVel(Velocity(intent, w.speed))
	w.Player.Update(dt)
	w.followPlayer()
}

// Drawables returns what is drawn on top of the static scene.
func (w *World) Drawables() []scene.Drawable {
	return []scene.Drawable{w.Player}
}

// followPlayer moves light 0 onto the player when configured.
func (w *World) followPlayer() {
	if !w.followLight || w.Lights.Len() == 0 {
		return
	}
	w.Lights.At(0).Position = w.Player.Pos
}

// Velocity scales a move intent by per-axis speeds.
func Velocity(intent, speed mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{intent.X() * speed.X(), intent.Y() * speed.Y()}
}

// LightsFromConfig fills a registry with the configured lights in order.
// Radius and color are taken as is.
func LightsFromConfig(lights []config.LightConfig) (*lighting.Registry, error) {
	if len(lights) > lighting.MaxLights {
		return nil, fmt.Errorf("%w: %d lights configured, at most %d supported",
			config.ErrInvalid, len(lights), lighting.MaxLights)
	}
	reg := lighting.NewRegistry()
	for _, l := range lights {
		reg.Add(lighting.Light{
			Position: mgl32.Vec2(l.Position),
			Radius:   l.Radius,
			Color:    mgl32.Vec3(l.Color),
		})
	}
	return reg, nil
}

// SceneFromConfig builds the static scene.
func SceneFromConfig(cfg config.SceneConfig) (*scene.Scene, error) {
	s := &scene.Scene{
		Background:  mgl32.Vec3(cfg.Background),
		GroundY:     cfg.GroundY,
		GroundColor: mgl32.Vec3(cfg.GroundColor),
		Props:       make([]scene.Prop, 0, len(cfg.Props)),
	}
	for i, p := range cfg.Props {
		shape, ok := scene.ParseShape(p.Shape)
		if !ok {
			return nil, fmt.Errorf("%w: prop %d has unknown shape %q", config.ErrInvalid, i, p.Shape)
		}
		s.Props = append(s.Props, scene.Prop{
			Shape:     shape,
			Position:  mgl32.Vec2(p.Position),
			Size:      mgl32.Vec2(p.Size),
			Thickness: p.Thickness,
			Color:     mgl32.Vec3(p.Color),
		})
	}
	return s, nil
}
