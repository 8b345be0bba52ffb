package bugtap

import (
	"math"
	"time"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/engine"
)

// stepFactor converts a catalog speed to pixels per tick.
const stepFactor = 0.3

// BugState is the lifecycle of a bug.
type BugState int

const (
	BugAlive BugState = iota
	BugDead
)

// Edge identifies the canvas side a bug enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Bug walks to the nearest food and eats whatever it touches.
type Bug struct {
	engine.Base
	x, y      float64
	box       core.BoundingBox
	angle     float64
	speed     float64
	state     BugState
	archetype config.BugArchetype
	sprite    engine.Sprite
	anim      *engine.Animation
	fade      *engine.Fade
	foods     *FoodManager
	eaten     int
}

// Update moves a live bug one step towards its target and eats on contact.
// A dead bug fades out and is deleted once invisible.
func (b *Bug) Update() {
	if b.state == BugDead {
		if b.fade.Step() {
			b.Delete()
		}
		return
	}

	b.anim.Update()

	cx, cy := b.box.Center()
	if target, ok := b.foods.Nearest(cx, cy); ok {
		tx, ty := target.box.Center()
		b.stepTowards(tx-cx, ty-cy)
	}

	b.eaten += b.foods.EatIntersecting(b.box)
}

// stepTowards moves by at most one step along (dx, dy) without overshooting.
func (b *Bug) stepTowards(dx, dy float64) {
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	nx, ny := dx/dist, dy/dist
	b.angle = math.Atan2(ny, nx)

	step := stepFactor * b.speed
	if step > dist {
		step = dist
	}
	b.x += nx * step
	b.y += ny * step
	b.box.Update(b.x, b.y)
}

// Render draws the current animation frame rotated towards the heading.
func (b *Bug) Render(dst engine.Surface) {
	cx, cy := b.box.Center()
	dst.DrawImageRegion(b.sprite.Image, b.sprite.Frame(b.anim.DrawFrame()), b.box, engine.Transform{
		Rotate:       true,
		Angle:        b.angle,
		PivotX:       cx,
		PivotY:       cy,
		Transparency: 1 - b.fade.Opacity(),
	})
}

// Kill marks the bug dead. Only the first call has an effect.
func (b *Bug) Kill() bool {
	if b.state != BugAlive {
		return false
	}
	b.state = BugDead
	return true
}

// Contains reports whether the point lies strictly inside the bug's box.
func (b *Bug) Contains(x, y float64) bool {
	return b.box.IsOverlappingPoint(x, y)
}

// Position returns the top-left corner.
func (b *Bug) Position() (float64, float64) { return b.x, b.y }

// Box returns the bug's bounding box.
func (b *Bug) Box() core.BoundingBox { return b.box }

// Angle returns the heading in radians.
func (b *Bug) Angle() float64 { return b.angle }

// Speed returns the catalog speed after difficulty scaling.
func (b *Bug) Speed() float64 { return b.speed }

// State returns the lifecycle state.
func (b *Bug) State() BugState { return b.state }

// Points returns the score awarded for killing the bug.
func (b *Bug) Points() int { return b.archetype.Points }

// Kind returns the archetype id.
func (b *Bug) Kind() string { return b.archetype.ID }

// Eaten returns how many food items the bug has eaten.
func (b *Bug) Eaten() int { return b.eaten }

// Opacity returns the current fade opacity.
func (b *Bug) Opacity() float64 { return b.fade.Opacity() }

// Progress reports the score and tick count difficulty scales with.
type Progress func() (score int, ticks int)

// BugManager owns spawn policy: which bugs appear, where and when.
type BugManager struct {
	factory     *engine.Factory
	catalog     []config.BugArchetype
	totalWeight int
	spawn       config.SpawnConfig
	fadeSeconds float64
	foods       *FoodManager
	difficulty  *config.DifficultyManager
	progress    Progress
	bounds      core.BoundingBox
	bugs        []*Bug
	timer       engine.TimerID
	armed       bool
	spawned     int
}

// NewBugManager creates the bug spawner for a playfield of the given bounds.
func NewBugManager(f *engine.Factory, cfg config.BugTapConfig, foods *FoodManager, difficulty *config.DifficultyManager, bounds core.BoundingBox) *BugManager {
	total := 0
	for _, a := range cfg.Bugs {
		total += a.Weight
	}
	return &BugManager{
		factory:     f,
		catalog:     cfg.Bugs,
		totalWeight: total,
		spawn:       cfg.Spawn,
		fadeSeconds: cfg.Effects.BugFadeSeconds,
		foods:       foods,
		difficulty:  difficulty,
		progress:    func() (int, int) { return 0, 0 },
		bounds:      bounds,
	}
}

// SetProgress sets the source difficulty scaling reads from.
func (m *BugManager) SetProgress(p Progress) {
	if p != nil {
		m.progress = p
	}
}

// Arm schedules the first batch after the configured initial delay.
func (m *BugManager) Arm() {
	m.armAfter(engine.TicksFor(time.Duration(m.spawn.FirstDelayMS)*time.Millisecond, m.factory.FPS()))
}

func (m *BugManager) armAfter(ticks int) {
	m.timer = m.factory.Scheduler().After(ticks, m.spawnBatch)
	m.armed = true
}

// Disarm cancels the pending batch.
func (m *BugManager) Disarm() {
	if m.armed {
		m.factory.Scheduler().Cancel(m.timer)
		m.armed = false
	}
}

// nextInterval draws the delay to the next batch in ticks.
func (m *BugManager) nextInterval() int {
	score, ticks := m.progress()
	ms := m.factory.RNG().IntRange(m.spawn.MinIntervalMS, m.spawn.MaxIntervalMS)
	ms = m.difficulty.Interval(ms, score, ticks)
	return engine.TicksFor(time.Duration(ms)*time.Millisecond, m.factory.FPS())
}

// spawnBatch spawns a random number of bugs and re-arms itself. With no
// food left nothing spawns this cycle.
func (m *BugManager) spawnBatch() {
	m.armed = false
	if m.foods.Remaining() > 0 {
		score, ticks := m.progress()
		n := m.factory.RNG().IntRange(m.spawn.BatchMin, m.spawn.BatchMax)
		n = m.difficulty.Batch(n, score, ticks)
		for i := 0; i < n; i++ {
			m.Spawn(m.pick())
		}
	}
	m.armAfter(m.nextInterval())
}

// pick chooses an archetype by weight.
func (m *BugManager) pick() config.BugArchetype {
	if m.totalWeight <= 0 {
		return core.Choice(m.factory.RNG(), m.catalog)
	}
	r := m.factory.RNG().Intn(m.totalWeight)
	for _, a := range m.catalog {
		if r < a.Weight {
			return a
		}
		r -= a.Weight
	}
	return m.catalog[len(m.catalog)-1]
}

// Spawn places a bug of the given archetype just outside a random edge.
func (m *BugManager) Spawn(a config.BugArchetype) *Bug {
	rng := m.factory.RNG()
	edge := Edge(rng.Intn(4))
	x, y := m.entryPoint(edge, a.Width, a.Height, rng.Float64())
	return m.SpawnAt(a, x, y)
}

// entryPoint positions a w×h box one pixel clear of the given edge; t in
// [0, 1) selects the spot along it.
func (m *BugManager) entryPoint(edge Edge, w, h, t float64) (float64, float64) {
	b := m.bounds
	along := func(span, size float64) float64 {
		return math.Max(0, span-size) * t
	}
	switch edge {
	case EdgeTop:
		return b.X + along(b.W, w), b.Y - h - 1
	case EdgeRight:
		return b.Right() + 1, b.Y + along(b.H, h)
	case EdgeBottom:
		return b.X + along(b.W, w), b.Bottom() + 1
	default:
		return b.X - w - 1, b.Y + along(b.H, h)
	}
}

// SpawnAt places a bug with its top-left corner at (x, y).
func (m *BugManager) SpawnAt(a config.BugArchetype, x, y float64) *Bug {
	score, ticks := m.progress()
	fps := m.factory.FPS()
	sprite := m.factory.Resources().MustSprite(a.Sprite)
	b := &Bug{
		Base:      engine.NewBase(PriorityBug),
		x:         x,
		y:         y,
		box:       core.NewBoundingBox(x, y, a.Width, a.Height),
		speed:     m.difficulty.Speed(a.Speed, score, ticks),
		archetype: a,
		sprite:    sprite,
		anim:      engine.NewAnimation(sprite.FrameCount, a.FramesPerSecond, fps),
		fade:      engine.NewFade(m.fadeSeconds, fps),
		foods:     m.foods,
	}
	m.prune()
	m.bugs = append(m.bugs, b)
	m.spawned++
	return engine.Spawn(m.factory, b)
}

// Tap kills every live bug whose box strictly contains (x, y) and returns
// them in spawn order.
func (m *BugManager) Tap(x, y float64) []*Bug {
	var killed []*Bug
	for _, b := range m.bugs {
		if b.Deleted() || !b.Contains(x, y) {
			continue
		}
		if b.Kill() {
			killed = append(killed, b)
		}
	}
	return killed
}

// Alive counts live bugs.
func (m *BugManager) Alive() int {
	n := 0
	for _, b := range m.bugs {
		if b.state == BugAlive && !b.Deleted() {
			n++
		}
	}
	return n
}

// Bugs returns the bugs that have not been swept yet.
func (m *BugManager) Bugs() []*Bug {
	m.prune()
	return append([]*Bug(nil), m.bugs...)
}

// Spawned returns the total number of bugs spawned.
func (m *BugManager) Spawned() int { return m.spawned }

// Armed reports whether a batch is scheduled.
func (m *BugManager) Armed() bool { return m.armed }

func (m *BugManager) prune() {
	live := m.bugs[:0]
	for _, b := range m.bugs {
		if !b.Deleted() {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(m.bugs); i++ {
		m.bugs[i] = nil
	}
	m.bugs = live
}
