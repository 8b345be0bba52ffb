package bugtap

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/engine"
)

// maxPlacementAttempts bounds rejection sampling per food item.
const maxPlacementAttempts = 500

// FoodState is the lifecycle of a food item.
type FoodState int

const (
	FoodActive FoodState = iota
	FoodEaten
)

// Food is a stationary item bugs walk to and eat.
type Food struct {
	engine.Base
	box    core.BoundingBox
	state  FoodState
	sprite engine.Sprite
	frame  int
	fade   *engine.Fade
}

// Update fades an eaten item out and deletes it once invisible.
func (f *Food) Update() {
	if f.state != FoodEaten {
		return
	}
	if f.fade.Step() {
		f.Delete()
	}
}

// Render draws the item's frame.
func (f *Food) Render(dst engine.Surface) {
	dst.DrawImageRegion(f.sprite.Image, f.sprite.Frame(f.frame), f.box, engine.Transform{Transparency: 1 - f.fade.Opacity()})
}

// Eat marks the item as eaten. Only the first call has an effect.
func (f *Food) Eat() bool {
	if f.state != FoodActive {
		return false
	}
	f.state = FoodEaten
	return true
}

// Box returns the item's bounding box.
func (f *Food) Box() core.BoundingBox { return f.box }

// State returns the lifecycle state.
func (f *Food) State() FoodState { return f.state }

// Frame returns the sprite frame index.
func (f *Food) Frame() int { return f.frame }

// Opacity returns the current fade opacity.
func (f *Food) Opacity() float64 { return f.fade.Opacity() }

// FoodManager places food and answers the bugs' queries about it.
type FoodManager struct {
	factory *engine.Factory
	cfg     config.FoodConfig
	sprite  engine.Sprite
	bag     []int
	foods   []*Food
}

// NewFoodManager creates the food spawner.
func NewFoodManager(f *engine.Factory, cfg config.FoodConfig) *FoodManager {
	return &FoodManager{
		factory: f,
		cfg:     cfg,
		sprite:  f.Resources().MustSprite(cfg.Sprite),
	}
}

// Generate places n items inside area by rejection sampling. A candidate
// inflated by the configured spread must not intersect any placed item.
func (m *FoodManager) Generate(n int, area core.BoundingBox) error {
	w, h := m.cfg.Width, m.cfg.Height
	if area.W < w || area.H < h {
		return fmt.Errorf("%w: area %.0fx%.0f cannot hold a %.0fx%.0f item", ErrFoodPlacement, area.W, area.H, w, h)
	}

	rng := m.factory.RNG()
	placed := make([]core.BoundingBox, 0, n)
	for _, f := range m.foods {
		placed = append(placed, f.box)
	}

	for i := 0; i < n; i++ {
		box, ok := m.sample(rng, area, placed)
		if !ok {
			return fmt.Errorf("%w: placed %d of %d after %d attempts", ErrFoodPlacement, i, n, maxPlacementAttempts)
		}
		placed = append(placed, box)
		m.spawn(box)
	}
	return nil
}

// sample draws whole-pixel candidates until one fits.
func (m *FoodManager) sample(rng *core.RNG, area core.BoundingBox, placed []core.BoundingBox) (core.BoundingBox, bool) {
	minX, maxX := int(math.Ceil(area.X)), int(math.Floor(area.Right()-m.cfg.Width))
	minY, maxY := int(math.Ceil(area.Y)), int(math.Floor(area.Bottom()-m.cfg.Height))
	if maxX < minX || maxY < minY {
		return core.BoundingBox{}, false
	}

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		x := float64(rng.IntRange(minX, maxX))
		y := float64(rng.IntRange(minY, maxY))
		candidate := core.NewBoundingBox(x, y, m.cfg.Width, m.cfg.Height)
		grown := candidate.Inflate(m.cfg.Spread)

		fits := true
		for _, p := range placed {
			if grown.IsIntersecting(p) {
				fits = false
				break
			}
		}
		if fits {
			return candidate, true
		}
	}
	return core.BoundingBox{}, false
}

func (m *FoodManager) spawn(box core.BoundingBox) *Food {
	f := &Food{
		Base:   engine.NewBase(PriorityFood),
		box:    box,
		sprite: m.sprite,
		frame:  m.nextFrame(),
		fade:   engine.NewFade(m.cfg.FadeSeconds, m.factory.FPS()),
	}
	m.foods = append(m.foods, f)
	return engine.Spawn(m.factory, f)
}

// nextFrame draws frames without replacement and refills the bag with a
// fresh shuffle of every frame once it runs dry.
func (m *FoodManager) nextFrame() int {
	if len(m.bag) == 0 {
		all := make([]int, m.sprite.FrameCount)
		for i := range all {
			all[i] = i
		}
		m.bag = core.Shuffle(m.factory.RNG(), all)
	}
	frame := m.bag[0]
	m.bag = m.bag[1:]
	return frame
}

// prune forgets items the loop has swept.
func (m *FoodManager) prune() {
	live := m.foods[:0]
	for _, f := range m.foods {
		if !f.Deleted() {
			live = append(live, f)
		}
	}
	for i := len(live); i < len(m.foods); i++ {
		m.foods[i] = nil
	}
	m.foods = live
}

// Nearest returns the active item whose center is closest to (x, y).
func (m *FoodManager) Nearest(x, y float64) (*Food, bool) {
	var best *Food
	bestDist := math.Inf(1)
	for _, f := range m.foods {
		if f.state != FoodActive {
			continue
		}
		cx, cy := f.box.Center()
		dx, dy := cx-x, cy-y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, best != nil
}

// EatIntersecting eats every active item intersecting box and returns how
// many were eaten.
func (m *FoodManager) EatIntersecting(box core.BoundingBox) int {
	eaten := 0
	for _, f := range m.foods {
		if f.state == FoodActive && box.IsIntersecting(f.box) && f.Eat() {
			eaten++
		}
	}
	return eaten
}

// Remaining counts items that are still active.
func (m *FoodManager) Remaining() int {
	n := 0
	for _, f := range m.foods {
		if f.state == FoodActive {
			n++
		}
	}
	return n
}

// Foods returns the items that have not been swept yet.
func (m *FoodManager) Foods() []*Food {
	m.prune()
	return append([]*Food(nil), m.foods...)
}
