package core

import "math/rand"

// RNG is the random source shared by a game's managers.
// It is seeded explicitly so that a seed plus an input sequence replays exactly.
// Not cryptographic.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a random source with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [min, max]. Arguments may be given in
// either order.
func (g *RNG) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + g.r.Intn(max-min+1)
}

// Intn returns a uniform integer in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// Float64 returns a uniform float in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// FloatRange returns a uniform float in [min, max).
func (g *RNG) FloatRange(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

// Choice returns a uniformly chosen element. Panics on an empty sequence.
func Choice[T any](g *RNG, seq []T) T {
	if len(seq) == 0 {
		panic("core: Choice on empty sequence")
	}
	return seq[g.r.Intn(len(seq))]
}

// Shuffle returns a shuffled copy of seq.
func Shuffle[T any](g *RNG, seq []T) []T {
	out := append([]T(nil), seq...)
	g.r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
