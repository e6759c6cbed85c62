// Command lightpreview renders one lit frame of the configured scene on the
// CPU and saves it as a PNG. It needs no window or GPU.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lantern/internal/assets"
	"github.com/Faultbox/lantern/internal/config"
	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/debug"
	"github.com/Faultbox/lantern/internal/engine/lighting"
	"github.com/Faultbox/lantern/internal/engine/scene"
	"github.com/Faultbox/lantern/internal/engine/texture"
	"github.com/Faultbox/lantern/internal/game/world"
	"github.com/Faultbox/lantern/internal/logger"
)

var (
	flagOut      = flag.String("out", "", "Output directory (default: debug.screenshot_dir)")
	flagUnlit    = flag.Bool("unlit", false, "Also save the scene before lighting")
	flagNoPlayer = flag.Bool("no-player", false, "Leave the player out of the frame")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("preview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	width, height := cfg.Graphics.Width, cfg.Graphics.Height
	raster := scene.NewRaster(width, height)

	var sheets world.Sheets
	if !*flagNoPlayer {
		var err error
		sheets, err = loadSheets(cfg, raster)
		if err != nil {
			// The frame is still useful without the sprite.
			logger.Warn("player sprites unavailable", zap.Error(err))
		}
	}

	w, err := world.New(cfg, sheets)
	if err != nil {
		return err
	}

	cam := camera.ForViewport(width, height)
	scene.NewRenderer(raster, w.Scene).Render(raster, cam, w.Drawables()...)

	u := lighting.BuildUniforms(w.Lights, lighting.NewTransform(cam, width, height), width, height)
	lit := lighting.ShadeImage(raster.Image(), &u)

	dir := *flagOut
	if dir == "" {
		dir = cfg.Debug.ScreenshotDir
	}
	if *flagUnlit {
		if err := save(dir, "unlit", raster.Image()); err != nil {
			return err
		}
	}
	return save(dir, "lightpreview", lit)
}

func loadSheets(cfg *config.Config, raster *scene.Raster) (world.Sheets, error) {
	dir, err := assets.ResolveDir(cfg.Assets.Dir)
	if err != nil {
		return world.Sheets{}, err
	}
	m := assets.NewManager(dir)
	defer m.Close()

	imgs, err := world.LoadSheetImages(m)
	if err != nil {
		return world.Sheets{}, err
	}
	for _, path := range imgs.Missing {
		logger.Warn("sprite sheet missing, using placeholder", zap.String("path", path))
	}
	return world.Sheets{
		Idle:    register(raster, imgs.Idle),
		Walking: register(raster, imgs.Walking),
		Shadow:  register(raster, imgs.Shadow),
	}, nil
}

// register hands a decoded image to the raster under a texture handle
// that never reaches the GPU.
func register(raster *scene.Raster, img image.Image) *texture.Texture {
	b := img.Bounds()
	tex := &texture.Texture{Width: b.Dx(), Height: b.Dy()}
	raster.Sheets[tex] = img
	return tex
}

func save(dir, prefix string, img image.Image) error {
	path, err := debug.NewScreenshotCapture(dir, prefix).CaptureFromImage(img)
	if err != nil {
		return fmt.Errorf("saving %s: %w", prefix, err)
	}
	logger.Info("preview saved", zap.String("path", path))
	return nil
}
