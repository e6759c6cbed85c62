// Package game implements the main game loop.
package game

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/lantern/internal/assets"
	"github.com/Faultbox/lantern/internal/config"
	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/compositor"
	"github.com/Faultbox/lantern/internal/engine/debug"
	"github.com/Faultbox/lantern/internal/engine/framebuffer"
	"github.com/Faultbox/lantern/internal/engine/input"
	"github.com/Faultbox/lantern/internal/engine/lighting"
	"github.com/Faultbox/lantern/internal/engine/scene"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/engine/texture"
	"github.com/Faultbox/lantern/internal/engine/window"
	"github.com/Faultbox/lantern/internal/game/world"
	"github.com/Faultbox/lantern/internal/logger"
)

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window *window.Window
	input  *input.Input
	assets *assets.Manager

	sprites    *sprite.Renderer
	compositor *compositor.Compositor
	target     *framebuffer.Framebuffer
	scene      *scene.Renderer
	overlay    debug.Overlay
	screenshot *debug.ScreenshotCapture

	idleSheet    *texture.Texture
	walkingSheet *texture.Texture
	shadow       *texture.Texture
	world        *world.World

	width, height int
	cam           camera.Camera2D
	xf            lighting.Transform
}

// New creates the window, GL resources and world from cfg.
// On error everything acquired so far is released.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game").With(zap.String("session", uuid.NewString())),
		input:  input.New(),
		overlay: debug.Overlay{
			Crosshair: cfg.Debug.Crosshair,
			Lights:    cfg.Debug.Crosshair,
		},
		screenshot: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "lantern"),
	}

	g.log.Info("initializing game",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	if err := g.init(); err != nil {
		g.Close()
		return nil, err
	}

	g.log.Info("game initialized successfully")
	return g, nil
}

func (g *Game) init() error {
	cfg := g.config

	// Validate the world before opening a window.
	if _, err := world.New(cfg, world.Sheets{}); err != nil {
		return err
	}

	dir, err := assets.ResolveDir(cfg.Assets.Dir)
	if err != nil {
		return err
	}
	g.assets = assets.NewManager(dir)
	g.log.Info("using assets", zap.String("dir", dir))

	g.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	// GL function pointers need a current context.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	g.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	spriteVert, spriteFrag, err := g.loadPair(spriteVertPath, spriteFragPath)
	if err != nil {
		return err
	}
	g.sprites, err = sprite.NewRenderer(spriteVert, spriteFrag)
	if err != nil {
		return err
	}

	lightVert, lightFrag, err := g.loadPair(lightingVertPath, lightingFragPath)
	if err != nil {
		return err
	}
	g.compositor, err = compositor.New(lightVert, lightFrag)
	if err != nil {
		return err
	}

	if err := g.loadSheets(); err != nil {
		return err
	}

	g.width, g.height = g.window.DrawableSize()
	g.target, err = framebuffer.New(int32(g.width), int32(g.height))
	if err != nil {
		return err
	}
	g.world, err = world.New(cfg, world.Sheets{
		Idle:    g.idleSheet,
		Walking: g.walkingSheet,
		Shadow:  g.shadow,
	})
	if err != nil {
		return err
	}
	g.scene = scene.NewRenderer(g.sprites, g.world.Scene)

	g.applySize(g.width, g.height)
	return nil
}

func (g *Game) loadPair(vertPath, fragPath string) (string, string, error) {
	vert, err := g.assets.LoadText(vertPath)
	if err != nil {
		return "", "", err
	}
	frag, err := g.assets.LoadText(fragPath)
	if err != nil {
		return "", "", err
	}
	return vert, frag, nil
}

func (g *Game) loadSheets() error {
	imgs, err := world.LoadSheetImages(g.assets)
	if err != nil {
		return err
	}
	for _, path := range imgs.Missing {
		g.log.Warn("sprite sheet missing, using placeholder", zap.String("path", path))
	}

	if g.idleSheet, err = upload("idle sheet", imgs.Idle); err != nil {
		return err
	}
	if g.walkingSheet, err = upload("walking sheet", imgs.Walking); err != nil {
		return err
	}
	g.shadow, err = upload("shadow", imgs.Shadow)
	return err
}

func upload(name string, img image.Image) (*texture.Texture, error) {
	tex, err := texture.Upload(img)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", name, err)
	}
	return tex, nil
}

// applySize recomputes everything derived from the drawable size.
func (g *Game) applySize(width, height int) {
	g.width, g.height = max(width, 1), max(height, 1)
	g.target.Resize(int32(g.width), int32(g.height))
	g.compositor.SetDims(g.width, g.height)
	g.cam = camera.ForViewport(g.width, g.height)
	g.xf = lighting.NewTransform(g.cam, g.width, g.height)
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	budget := FrameBudget(g.config.Graphics)

	g.log.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		if _, _, ok := g.input.Resized(); ok {
			// Resize events carry window coordinates; the target needs pixels.
			w, h := g.window.DrawableSize()
			g.applySize(w, h)
			g.log.Debug("resized", zap.Int("width", w), zap.Int("height", h))
		}
		if g.input.IsKeyPressed(input.KeyToggleCrosshair) {
			g.overlay.Toggle()
		}

		// 2. Update game state
		g.update(dt)

		// 3. Render
		g.render()

		if g.input.IsKeyPressed(input.KeyScreenshot) {
			g.captureScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		if budget > 0 {
			if rest := budget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// update moves the player and the lights attached to it.
func (g *Game) update(dt float32) {
	g.world.Update(dt, g.input.MoveIntent())
}

// render draws the scene off-screen, lights it onto the window, then
// draws the debug overlay unlit on top.
func (g *Game) render() {
	tex := g.scene.Render(g.target, g.cam, g.world.Drawables()...)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(g.width), int32(g.height))
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	g.compositor.DrawLights(tex, g.world.Lights, g.xf)
	g.overlay.Draw(g.sprites, g.world.Lights, g.cam, g.width, g.height)
}

func (g *Game) captureScreenshot() {
	pixels := framebuffer.ReadScreen(int32(g.width), int32(g.height))
	path, err := g.screenshot.CaptureFromPixels(pixels, g.width, g.height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse order of creation.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.target != nil {
		g.target.Destroy()
	}
	if g.shadow != nil {
		g.shadow.Destroy()
	}
	if g.walkingSheet != nil {
		g.walkingSheet.Destroy()
	}
	if g.idleSheet != nil {
		g.idleSheet.Destroy()
	}
	if g.compositor != nil {
		g.compositor.Destroy()
	}
	if g.sprites != nil {
		g.sprites.Destroy()
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	if g.assets != nil {
		g.assets.Close()
	}
}
