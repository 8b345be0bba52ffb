package bugtap

import "math"

// Snapshot contains the game state for replay and determinism checks.
// Uses primitive types only for stable serialization; positions are in
// hundredths of a pixel.
type Snapshot struct {
	Tick      uint64
	Score     int
	Kills     int
	Elapsed   int
	GameOver  bool
	Won       bool
	FoodLeft  int
	BugsAlive int
	Spawned   int

	// Each food is 4 ints: X, Y, Frame, State
	FoodData []int

	// Each bug is 4 ints: X, Y, Points, State
	BugData []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Score:    g.score,
		Kills:    g.kills,
		Elapsed:  g.elapsed,
		GameOver: g.gameOver,
		Won:      g.won,
	}
	if g.loop == nil {
		return snap
	}

	snap.Tick = g.loop.Ticks()
	snap.FoodLeft = g.foods.Remaining()
	snap.BugsAlive = g.bugs.Alive()
	snap.Spawned = g.bugs.Spawned()

	for _, f := range g.foods.Foods() {
		snap.FoodData = append(snap.FoodData, fixed(f.box.X), fixed(f.box.Y), f.frame, int(f.state))
	}
	for _, b := range g.bugs.Bugs() {
		snap.BugData = append(snap.BugData, fixed(b.x), fixed(b.y), b.Points(), int(b.state))
	}
	return snap
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Elapsed)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FoodLeft)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BugsAlive) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spawned)   //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}
	if snap.Won {
		h = h*31 + 2
	}

	for _, v := range snap.FoodData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BugData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
