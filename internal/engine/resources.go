package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bugtap/internal/core"
)

var (
	// ErrUnknownResource is returned when looking up an unregistered id.
	ErrUnknownResource = errors.New("engine: unknown resource")
	// ErrDuplicateResource is returned when registering an id twice.
	ErrDuplicateResource = errors.New("engine: duplicate resource")
)

// Image is the terminal rendition of an image handle: a strip of glyphs laid
// out horizontally, one per frame, each FrameWidth pixels wide.
type Image struct {
	ID         string
	Glyphs     []rune
	Color      core.Color
	FrameWidth float64
	Height     float64
}

// Width returns the full strip width in pixels.
func (img Image) Width() float64 {
	return img.FrameWidth * float64(len(img.Glyphs))
}

// GlyphAt returns the glyph of the frame containing source x coordinate sx.
func (img Image) GlyphAt(sx float64) rune {
	if len(img.Glyphs) == 0 {
		return '?'
	}
	i := 0
	if img.FrameWidth > 0 {
		i = int(sx / img.FrameWidth)
	}
	i = core.Clamp(i, 0, len(img.Glyphs)-1)
	return img.Glyphs[i]
}

// Sprite is an image split into equally wide frames.
type Sprite struct {
	Image      Image
	FrameCount int
	FrameWidth float64
}

// Frame returns the source region of frame i.
func (s Sprite) Frame(i int) core.BoundingBox {
	if s.FrameCount > 0 {
		i = ((i % s.FrameCount) + s.FrameCount) % s.FrameCount
	}
	return core.NewBoundingBox(float64(i)*s.FrameWidth, 0, s.FrameWidth, s.Image.Height)
}

// Resources is an explicitly owned registry of images and sprites.
// Each game builds its own; nothing here is process-wide.
type Resources struct {
	images  map[string]Image
	sprites map[string]Sprite
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{
		images:  make(map[string]Image),
		sprites: make(map[string]Sprite),
	}
}

// RegisterImage adds an image under id.
func (r *Resources) RegisterImage(id string, img Image) error {
	if _, exists := r.images[id]; exists {
		return fmt.Errorf("%w: image %q", ErrDuplicateResource, id)
	}
	img.ID = id
	r.images[id] = img
	return nil
}

// RegisterSprite adds a sprite under id. The sprite's image is registered
// under the same id if it is not yet known.
func (r *Resources) RegisterSprite(id string, s Sprite) error {
	if _, exists := r.sprites[id]; exists {
		return fmt.Errorf("%w: sprite %q", ErrDuplicateResource, id)
	}
	if s.FrameCount < 1 {
		s.FrameCount = len(s.Image.Glyphs)
	}
	if s.FrameWidth <= 0 {
		s.FrameWidth = s.Image.FrameWidth
	}
	if _, known := r.images[id]; !known {
		if err := r.RegisterImage(id, s.Image); err != nil {
			return err
		}
	}
	s.Image.ID = id
	r.sprites[id] = s
	return nil
}

// Image looks up an image by id.
func (r *Resources) Image(id string) (Image, error) {
	img, ok := r.images[id]
	if !ok {
		return Image{}, fmt.Errorf("%w: image %q", ErrUnknownResource, id)
	}
	return img, nil
}

// Sprite looks up a sprite by id.
func (r *Resources) Sprite(id string) (Sprite, error) {
	s, ok := r.sprites[id]
	if !ok {
		return Sprite{}, fmt.Errorf("%w: sprite %q", ErrUnknownResource, id)
	}
	return s, nil
}

// MustSprite is Sprite for ids that were validated up front. Panics otherwise.
func (r *Resources) MustSprite(id string) Sprite {
	s, err := r.Sprite(id)
	if err != nil {
		panic(err)
	}
	return s
}
