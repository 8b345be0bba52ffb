// Package engine is the game-object lifecycle and update/render loop shared by
// arcade games: entities, the loop that owns them, a tick scheduler, sprite
// animation, fades, resource lookup and the render surface abstraction.
package engine

// Entity is a lifecycle-managed simulation unit owned by a Loop.
//
// Update is called once per active tick until the entity flags itself (or is
// flagged) for deletion. Render draws the entity onto the surface; lower draw
// priorities render first. A deleted entity is swept at the end of the tick it
// was flagged in and is never updated or rendered again.
type Entity interface {
	Update()
	Render(dst Surface)
	DrawPriority() int
	Pausable() bool
	Deleted() bool
}

// Base carries the bookkeeping common to all entities.
// Concrete kinds embed it and supply Update and Render.
type Base struct {
	priority   int
	unpausable bool
	deleted    bool
	owner      *Loop
}

// NewBase creates entity bookkeeping with the given draw priority.
// Entities are pausable unless SetPausable(false) is called.
func NewBase(priority int) Base {
	return Base{priority: priority}
}

// DrawPriority returns the render layer; lower draws underneath.
func (b *Base) DrawPriority() int {
	return b.priority
}

// Pausable reports whether the entity freezes while the loop is paused.
func (b *Base) Pausable() bool {
	return !b.unpausable
}

// SetPausable controls whether the entity freezes while the loop is paused.
func (b *Base) SetPausable(p bool) {
	b.unpausable = !p
}

// Deleted reports whether the entity requested deletion.
func (b *Base) Deleted() bool {
	return b.deleted
}

// Delete flags the entity for removal at the next delete-sweep.
// There is no way back.
func (b *Base) Delete() {
	b.deleted = true
}

func (b *Base) base() *Base {
	return b
}

// owned is implemented by every entity embedding Base; the loop uses it to
// enforce single ownership.
type owned interface {
	base() *Base
}
