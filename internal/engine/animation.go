package engine

// Animation cycles a sprite's frame index at a fixed rate measured in ticks.
// It is independent of entity lifecycle: a dead bug keeps the frame it had.
type Animation struct {
	frameIndex     int // -1 until the first Update
	numFrames      int
	cyclesPerFrame int
	counter        int
}

// NewAnimation creates an animation showing framesPerSecond frames per second
// on a loop ticking at fps. The frame advances every fps/framesPerSecond ticks
// (at least every tick).
func NewAnimation(numFrames, framesPerSecond, fps int) *Animation {
	if numFrames < 1 {
		numFrames = 1
	}
	cycles := 1
	if framesPerSecond > 0 && fps > framesPerSecond {
		cycles = fps / framesPerSecond
	}
	return &Animation{
		frameIndex:     -1,
		numFrames:      numFrames,
		cyclesPerFrame: cycles,
	}
}

// Update advances the cycle counter and, once it reaches the threshold, the
// frame index modulo the frame count.
func (a *Animation) Update() {
	if a.frameIndex < 0 {
		a.frameIndex = 0
	}
	a.counter++
	if a.counter >= a.cyclesPerFrame {
		a.counter = 0
		a.frameIndex = (a.frameIndex + 1) % a.numFrames
	}
}

// Frame returns the current frame index, or -1 before the first Update.
func (a *Animation) Frame() int {
	return a.frameIndex
}

// DrawFrame returns a frame index safe for drawing (0 before the first Update).
func (a *Animation) DrawFrame() int {
	if a.frameIndex < 0 {
		return 0
	}
	return a.frameIndex
}

// CyclesPerFrame returns the number of updates each frame is held.
func (a *Animation) CyclesPerFrame() int {
	return a.cyclesPerFrame
}

// NumFrames returns the frame count.
func (a *Animation) NumFrames() int {
	return a.numFrames
}

// Reset rewinds to the not-started state.
func (a *Animation) Reset() {
	a.frameIndex = -1
	a.counter = 0
}
