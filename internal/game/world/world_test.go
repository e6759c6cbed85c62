package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lantern/internal/config"
	"github.com/Faultbox/lantern/internal/engine/lighting"
	"github.com/Faultbox/lantern/internal/engine/scene"
)

func TestLightsFromConfig(t *testing.T) {
	reg, err := LightsFromConfig(config.Default().Lights)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, float32(0.5), reg.At(0).Radius)
	assert.False(t, reg.At(3).Active(), "unused slot stays zero")
}

func TestLightsFromConfigKeepsOddValues(t *testing.T) {
	reg, err := LightsFromConfig([]config.LightConfig{
		{Position: [2]float32{9, -9}, Radius: -1, Color: [3]float32{2, -1, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, lighting.Light{
		Position: mgl32.Vec2{9, -9},
		Radius:   -1,
		Color:    mgl32.Vec3{2, -1, 0},
	}, *reg.At(0))
}

func TestLightsFromConfigTooMany(t *testing.T) {
	lights := make([]config.LightConfig, lighting.MaxLights+1)
	_, err := LightsFromConfig(lights)
	assert.ErrorIs(t, err, config.ErrInvalid)

	reg, err := LightsFromConfig(lights[:lighting.MaxLights])
	require.NoError(t, err)
	assert.Equal(t, lighting.MaxLights, reg.Len())
}

func TestSceneFromConfig(t *testing.T) {
	s, err := SceneFromConfig(config.Default().Scene)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.85, 0.2, 0.2}, s.Background)
	require.Len(t, s.Props, 3)
	assert.Equal(t, scene.ShapeLine, s.Props[0].Shape)
	assert.Equal(t, float32(0.05), s.Props[0].Thickness)
	assert.Equal(t, scene.ShapeRect, s.Props[1].Shape)
	assert.Equal(t, scene.ShapeCircle, s.Props[2].Shape)

	_, err = SceneFromConfig(config.SceneConfig{Props: []config.PropConfig{{Shape: "hexagon"}}})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestVelocity(t *testing.T) {
	speed := mgl32.Vec2{2, 0.5}
	assert.Equal(t, mgl32.Vec2{-2, 0.5}, Velocity(mgl32.Vec2{-1, 1}, speed))
	assert.Equal(t, mgl32.Vec2{0, 0}, Velocity(mgl32.Vec2{}, speed))
}

func TestNewPlacesFollowLight(t *testing.T) {
	cfg := config.Default()
	w, err := New(cfg, Sheets{})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{0, -0.3}, w.Lights.At(0).Position)
	assert.Len(t, w.Drawables(), 1)
}

func TestUpdateMovesPlayerAndLight(t *testing.T) {
	cfg := config.Default()
	cfg.Game.PlayerSpeedX = 1
	w, err := New(cfg, Sheets{})
	require.NoError(t, err)

	w.Update(0.5, mgl32.Vec2{1, 0})
	assert.InDelta(t, 0.5, w.Player.Pos.X(), 1e-6)
	assert.Equal(t, w.Player.Pos, w.Lights.At(0).Position)
	assert.Equal(t, mgl32.Vec2{0.6, 0.1}, w.Lights.At(2).Position, "other lights stay put")
}

func TestUpdateWithoutFollow(t *testing.T) {
	cfg := config.Default()
	cfg.Game.LightFollowsPlayer = false
	w, err := New(cfg, Sheets{})
	require.NoError(t, err)

	w.Update(1, mgl32.Vec2{0, 1})
	assert.Equal(t, mgl32.Vec2{}, w.Lights.At(0).Position)
}

func TestNoLightsToFollow(t *testing.T) {
	cfg := config.Default()
	cfg.Lights = nil
	w, err := New(cfg, Sheets{})
	require.NoError(t, err)

	w.Update(1, mgl32.Vec2{1, 1})
	assert.Equal(t, 0, w.Lights.Len())
}
