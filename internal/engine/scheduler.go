package engine

import (
	"time"

	"github.com/kamstrup/intmap"
)

// TimerID identifies an armed timer.
type TimerID uint32

type timer struct {
	id  TimerID
	due uint64
	fn  func()
}

// Scheduler runs one-shot callbacks after a number of ticks.
// It has no clock of its own: the owning Loop advances it only while running,
// so pausing or stopping the loop freezes or drops every timer at once.
type Scheduler struct {
	now    uint64
	nextID TimerID
	timers *intmap.Map[TimerID, *timer]
	order  []TimerID // arming order, may hold cancelled ids
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: intmap.New[TimerID, *timer](16),
	}
}

// After arms fn to run once after the given number of ticks (minimum 1).
func (s *Scheduler) After(ticks int, fn func()) TimerID {
	if ticks < 1 {
		ticks = 1
	}
	s.nextID++
	t := &timer{id: s.nextID, due: s.now + uint64(ticks), fn: fn}
	s.timers.Put(t.id, t)
	s.order = append(s.order, t.id)
	return t.id
}

// Cancel disarms a timer. Returns false if it already fired or was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	if _, ok := s.timers.Get(id); !ok {
		return false
	}
	s.timers.Del(id)
	return true
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	return s.timers.Len()
}

// Now returns the number of ticks the scheduler has advanced.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Reset disarms every timer and rewinds the scheduler clock.
func (s *Scheduler) Reset() {
	s.timers.Clear()
	s.order = s.order[:0]
	s.now = 0
}

// Advance moves the clock one tick and fires due timers in arming order.
// Timers armed by a callback never fire within the same Advance.
func (s *Scheduler) Advance() {
	s.now++

	pending := s.order
	s.order = make([]TimerID, 0, len(pending))

	var due []*timer
	for _, id := range pending {
		t, ok := s.timers.Get(id)
		if !ok {
			continue
		}
		if t.due <= s.now {
			due = append(due, t)
			continue
		}
		s.order = append(s.order, id)
	}

	for _, t := range due {
		// A callback earlier in this batch may have cancelled it.
		if _, ok := s.timers.Get(t.id); !ok {
			continue
		}
		s.timers.Del(t.id)
		t.fn()
	}
}

// TicksFor converts a duration to whole ticks at the given rate (minimum 1).
func TicksFor(d time.Duration, fps int) int {
	if fps <= 0 {
		fps = 60
	}
	ticks := int((d*time.Duration(fps) + time.Second/2) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
