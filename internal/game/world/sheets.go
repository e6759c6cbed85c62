package world

import (
	"errors"
	"image"
	"image/color"

	"github.com/Faultbox/lantern/internal/assets"
	"github.com/Faultbox/lantern/internal/engine/sprite"
	"github.com/Faultbox/lantern/internal/game/player"
)

// Player sheet paths relative to the asset directory.
const (
	IdleSheetPath    = "sprites/idle.png"
	WalkingSheetPath = "sprites/walking.png"
)

const (
	shadowSize    = 32
	shadowOpacity = 0.5
)

// placeholderBody is the figure color of generated sheets.
var placeholderBody = color.RGBA{R: 200, G: 120, B: 60, A: 255}

// ImageLoader decodes images by asset path. *assets.Manager implements it.
type ImageLoader interface {
	LoadImage(name string) (image.Image, error)
}

// SheetImages are the decoded player images, before upload.
type SheetImages struct {
	Idle    image.Image
	Walking image.Image
	Shadow  image.Image

	// Missing lists sheets replaced by a placeholder.
	Missing []string
}

// LoadSheetImages loads the idle and walking sheets and generates the
// shadow blob. A sheet that does not exist is replaced by a generated
// placeholder; any other load error is returned.
func LoadSheetImages(l ImageLoader) (SheetImages, error) {
	var s SheetImages
	var err error
	if s.Idle, err = s.load(l, IdleSheetPath); err != nil {
		return SheetImages{}, err
	}
	if s.Walking, err = s.load(l, WalkingSheetPath); err != nil {
		return SheetImages{}, err
	}
	s.Shadow = sprite.ShadowBlob(shadowSize, shadowOpacity)
	return s, nil
}

func (s *SheetImages) load(l ImageLoader, path string) (image.Image, error) {
	img, err := l.LoadImage(path)
	if errors.Is(err, assets.ErrNotFound) {
		s.Missing = append(s.Missing, path)
		return sprite.PlaceholderSheet(player.TileSize, player.TileSize, player.SheetCols, placeholderBody), nil
	}
	return img, err
}
