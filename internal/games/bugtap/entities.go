// Package bugtap implements Bug Tap: bugs crawl in from the edges of the
// playfield towards the food, and the player taps them before everything is
// eaten.
package bugtap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/engine"
)

// Draw priorities, bottom to top.
const (
	PriorityBackground = iota
	PriorityFood
	PriorityBug
	PriorityPointText
	PriorityCursor
)

var (
	// ErrInvalidSurface is returned when the render surface cannot host a game.
	ErrInvalidSurface = errors.New("bugtap: invalid render surface")
	// ErrFoodPlacement is returned when food cannot be placed without overlap.
	ErrFoodPlacement = errors.New("bugtap: cannot place food")
)

// loadResources registers every configured sprite in a fresh registry.
func loadResources(cfg config.BugTapConfig) (*engine.Resources, error) {
	ids := make([]string, 0, len(cfg.Sprites))
	for id := range cfg.Sprites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := engine.NewResources()
	for _, id := range ids {
		sc := cfg.Sprites[id]
		color, ok := core.ParseColor(sc.Color)
		if !ok {
			return nil, fmt.Errorf("bugtap: sprite %q: unknown color %q", id, sc.Color)
		}
		img := engine.Image{
			Glyphs:     []rune(sc.Glyphs),
			Color:      color,
			FrameWidth: sc.FrameWidth,
			Height:     sc.Height,
		}
		if err := res.RegisterSprite(id, engine.Sprite{Image: img}); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// mustColor resolves a color name that config validation already accepted.
func mustColor(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

// Background paints the ground pattern under everything else.
type Background struct {
	engine.Base
	fill engine.Fill
}

// NewBackground creates the ground layer.
func NewBackground(cfg config.BackgroundConfig) *Background {
	return &Background{
		Base: engine.NewBase(PriorityBackground),
		fill: engine.Fill{Pattern: []rune(cfg.Pattern), Color: mustColor(cfg.Color)},
	}
}

// Update does nothing; the ground is static.
func (b *Background) Update() {}

// Render fills the whole surface.
func (b *Background) Render(dst engine.Surface) {
	w, h := dst.Size()
	dst.FillRect(core.NewBoundingBox(0, 0, w, h), b.fill)
}
