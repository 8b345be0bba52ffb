package core

// BoundingBox is an axis-aligned rectangle in canvas pixel space.
// Origin is top-left and y grows downward. Position is mutable through
// Update; extents are fixed at construction and never negative.
type BoundingBox struct {
	X, Y float64
	W, H float64
}

// NewBoundingBox creates a box. Negative extents are clamped to zero.
func NewBoundingBox(x, y, w, h float64) BoundingBox {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return BoundingBox{X: x, Y: y, W: w, H: h}
}

// Update moves the box so its top-left corner is at (x, y).
func (b *BoundingBox) Update(x, y float64) {
	b.X = x
	b.Y = y
}

// Right returns the x-coordinate of the right edge.
func (b BoundingBox) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b BoundingBox) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// IsOverlapping reports whether b fully contains other (edges inclusive).
func (b BoundingBox) IsOverlapping(other BoundingBox) bool {
	return b.X <= other.X &&
		b.Y <= other.Y &&
		b.Right() >= other.Right() &&
		b.Bottom() >= other.Bottom()
}

// IsIntersecting reports whether the two boxes overlap.
// Boxes that merely touch along an edge still intersect; only a box lying
// strictly to one side of the other does not.
func (b BoundingBox) IsIntersecting(other BoundingBox) bool {
	return !(other.X > b.Right() ||
		other.Right() < b.X ||
		other.Y > b.Bottom() ||
		other.Bottom() < b.Y)
}

// IsOverlappingPoint reports whether (px, py) lies strictly inside the box.
// A point on any edge is outside. Tap hit testing depends on this.
func (b BoundingBox) IsOverlappingPoint(px, py float64) bool {
	return px > b.X && px < b.Right() && py > b.Y && py < b.Bottom()
}

// Inflate returns a copy grown by d on every side.
func (b BoundingBox) Inflate(d float64) BoundingBox {
	return NewBoundingBox(b.X-d, b.Y-d, b.W+2*d, b.H+2*d)
}
