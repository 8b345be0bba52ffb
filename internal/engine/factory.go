package engine

import "github.com/vovakirdan/bugtap/internal/core"

// Factory gives entity constructors the shared collaborators they need and
// hands finished entities to the loop. Entity code never reaches for the loop
// or the render surface directly.
type Factory struct {
	loop      *Loop
	resources *Resources
	rng       *core.RNG
}

// NewFactory creates a factory bound to a loop.
func NewFactory(loop *Loop, resources *Resources, rng *core.RNG) *Factory {
	return &Factory{loop: loop, resources: resources, rng: rng}
}

// Spawn adds e to the loop and returns it.
func Spawn[E Entity](f *Factory, e E) E {
	f.loop.Add(e)
	return e
}

// FPS returns the tick rate of the bound loop.
func (f *Factory) FPS() int {
	return f.loop.FPS()
}

// Resources returns the resource registry.
func (f *Factory) Resources() *Resources {
	return f.resources
}

// RNG returns the shared random source.
func (f *Factory) RNG() *core.RNG {
	return f.rng
}

// Scheduler returns the loop-owned scheduler.
func (f *Factory) Scheduler() *Scheduler {
	return f.loop.Scheduler()
}

// Loop returns the bound loop.
func (f *Factory) Loop() *Loop {
	return f.loop
}
