package engine

import (
	"math"

	"github.com/vovakirdan/bugtap/internal/core"
)

// Fade is a linear opacity decay from 1 to 0 over a fixed number of ticks.
type Fade struct {
	opacity float64
	step    float64
	ticks   int
	elapsed int
}

// NewFade creates a fade lasting the given seconds at fps ticks per second.
// It expires after exactly ceil(fps × seconds) steps (at least one).
func NewFade(seconds float64, fps int) *Fade {
	span := float64(fps) * seconds
	// Guard against float noise such as 30*0.7 = 21.000000000000004.
	ticks := int(math.Ceil(span - 1e-9))
	if ticks < 1 {
		ticks = 1
		span = 1
	}
	return &Fade{
		opacity: 1,
		step:    1 / span,
		ticks:   ticks,
	}
}

// Step lowers the opacity by one tick's worth and reports whether the fade
// has run out, i.e. the raw opacity reached zero or below.
func (f *Fade) Step() bool {
	if f.elapsed < f.ticks {
		f.elapsed++
	}
	if f.Expired() {
		f.opacity = 0
		return true
	}
	f.SetOpacity(1 - float64(f.elapsed)*f.step)
	return false
}

// Expired reports whether the fade has completed.
func (f *Fade) Expired() bool {
	return f.elapsed >= f.ticks
}

// Opacity returns the current opacity in [0, 1].
func (f *Fade) Opacity() float64 {
	return f.opacity
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (f *Fade) SetOpacity(v float64) {
	f.opacity = core.ClampF(v, 0, 1)
}

// Ticks returns the total length of the fade in ticks.
func (f *Fade) Ticks() int {
	return f.ticks
}
