package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationReturnsToZero(t *testing.T) {
	cases := []struct {
		frames, fps, rate int
	}{
		{4, 60, 10},
		{3, 60, 60},
		{1, 60, 5},
		{5, 30, 7},
	}

	for _, tc := range cases {
		a := NewAnimation(tc.frames, tc.rate, tc.fps)
		require.Equal(t, -1, a.Frame())

		period := a.NumFrames() * a.CyclesPerFrame()
		for i := 0; i < period; i++ {
			a.Update()
		}
		assert.Equal(t, 0, a.Frame(), "frames=%d cycles=%d", tc.frames, a.CyclesPerFrame())
	}
}

func TestAnimationPeriodic(t *testing.T) {
	a := NewAnimation(3, 20, 60) // 3 ticks per frame
	require.Equal(t, 3, a.CyclesPerFrame())

	var seq []int
	for i := 0; i < 18; i++ {
		a.Update()
		seq = append(seq, a.Frame())
	}
	period := a.NumFrames() * a.CyclesPerFrame()
	for i := period; i < len(seq); i++ {
		assert.Equal(t, seq[i-period], seq[i], "sequence must repeat every %d updates", period)
	}
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2}, seq[:6])
}

func TestAnimationReset(t *testing.T) {
	a := NewAnimation(2, 60, 60)
	a.Update()
	a.Reset()
	assert.Equal(t, -1, a.Frame())
	assert.Equal(t, 0, a.DrawFrame())
}

func TestFadeTickCount(t *testing.T) {
	cases := []struct {
		seconds float64
		fps     int
		ticks   int
	}{
		{0.5, 60, 30},
		{1, 60, 60},
		{0.7, 30, 21},
		{0.25, 30, 8},
		{0.01, 60, 1},
	}

	for _, tc := range cases {
		f := NewFade(tc.seconds, tc.fps)
		steps := 0
		for !f.Step() {
			steps++
			require.Less(t, steps, 10000)
			assert.Greater(t, f.Opacity(), 0.0)
		}
		steps++
		assert.Equal(t, tc.ticks, steps, "seconds=%v fps=%d", tc.seconds, tc.fps)
		assert.Equal(t, 0.0, f.Opacity())
	}
}

func TestFadeOpacityClamped(t *testing.T) {
	f := NewFade(1, 10)
	f.SetOpacity(1.7)
	assert.Equal(t, 1.0, f.Opacity())
	f.SetOpacity(-0.2)
	assert.Equal(t, 0.0, f.Opacity())

	for i := 0; i < 50; i++ {
		f.Step()
	}
	assert.True(t, f.Expired())
	assert.Equal(t, 0.0, f.Opacity())
}
