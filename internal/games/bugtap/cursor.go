package bugtap

import (
	"fmt"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/engine"
)

// pressTicks is how long the cursor keeps the pressed glyph after release.
const pressTicks = 6

const pressedGlyph = '×'

// Cursor draws the pointer. It keeps updating while the game is paused.
type Cursor struct {
	engine.Base
	x, y    float64
	visible bool
	glyph   rune
	color   core.Color
	held    bool
	pressed int
}

// Update counts down the pressed feedback once the button is released.
func (c *Cursor) Update() {
	if !c.held && c.pressed > 0 {
		c.pressed--
	}
}

// Render draws the cursor glyph at the pointer position.
func (c *Cursor) Render(dst engine.Surface) {
	if !c.visible {
		return
	}
	glyph := c.glyph
	if c.Pressed() {
		glyph = pressedGlyph
	}
	dst.FillRect(core.NewBoundingBox(c.x, c.y, 0, 0), engine.Fill{Pattern: []rune{glyph}, Color: c.color})
}

// MoveTo tracks the pointer.
func (c *Cursor) MoveTo(x, y float64) {
	c.x, c.y = x, y
	c.visible = true
}

// Press shows the pressed glyph until the button is released.
func (c *Cursor) Press() {
	c.held = true
	c.pressed = pressTicks
}

// Release lets the pressed glyph run out over the next few ticks.
func (c *Cursor) Release() {
	c.held = false
}

// Pressed reports whether the cursor shows the pressed glyph.
func (c *Cursor) Pressed() bool {
	return c.held || c.pressed > 0
}

// Position returns the last pointer position.
func (c *Cursor) Position() (float64, float64) { return c.x, c.y }

// PointText is the floating "+N" left behind by a kill.
type PointText struct {
	engine.Base
	x, y  float64
	drift float64
	text  string
	style engine.TextStyle
	fade  *engine.Fade
}

// Update drifts the text upward and deletes it once faded.
func (p *PointText) Update() {
	p.y -= p.drift
	if p.fade.Step() {
		p.Delete()
	}
}

// Render draws the text at its current position.
func (p *PointText) Render(dst engine.Surface) {
	style := p.style
	style.Transparency = 1 - p.fade.Opacity()
	dst.FillText(p.x, p.y, p.text, style)
}

// Text returns the rendered label.
func (p *PointText) Text() string { return p.text }

// Position returns the anchor point.
func (p *PointText) Position() (float64, float64) { return p.x, p.y }

// CursorManager owns the single cursor and spawns point labels.
type CursorManager struct {
	factory *engine.Factory
	cfg     config.EffectsConfig
	cursor  *Cursor
}

// NewCursorManager creates the cursor spawner.
func NewCursorManager(f *engine.Factory, cfg config.EffectsConfig) *CursorManager {
	return &CursorManager{factory: f, cfg: cfg}
}

// Cursor returns the cursor, creating it on first use.
func (m *CursorManager) Cursor() *Cursor {
	if m.cursor != nil {
		return m.cursor
	}
	glyph := '+'
	if r := []rune(m.cfg.CursorGlyph); len(r) > 0 {
		glyph = r[0]
	}
	c := &Cursor{
		Base:  engine.NewBase(PriorityCursor),
		glyph: glyph,
		color: mustColor(m.cfg.CursorColor),
	}
	c.SetPausable(false)
	m.cursor = engine.Spawn(m.factory, c)
	return m.cursor
}

// SpawnPoints leaves a "+points" label anchored at (x, y).
func (m *CursorManager) SpawnPoints(x, y float64, points int) *PointText {
	p := &PointText{
		Base:  engine.NewBase(PriorityPointText),
		x:     x,
		y:     y,
		drift: m.cfg.PointDrift,
		text:  fmt.Sprintf("+%d", points),
		style: engine.TextStyle{
			Color:   mustColor(m.cfg.PointColor),
			Outline: mustColor(m.cfg.PointOutline),
		},
		fade: engine.NewFade(m.cfg.PointFadeSeconds, m.factory.FPS()),
	}
	return engine.Spawn(m.factory, p)
}
