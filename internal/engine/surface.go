package engine

import "github.com/vovakirdan/bugtap/internal/core"

// Fill describes how FillRect paints an area.
// Pattern repeats across the area; a single rune is a solid fill.
type Fill struct {
	Pattern []rune
	Color   core.Color
}

// Transform is applied to a single draw call. Passing it by value gives each
// call its own save/restore scope.
type Transform struct {
	Rotate         bool    // apply Angle around the pivot
	Angle          float64 // radians, 0 = facing +x
	PivotX, PivotY float64 // rotation pivot in surface pixels
	Transparency   float64 // 0 is fully opaque, 1 is invisible
}

// Opacity returns 1 - Transparency clamped to [0, 1].
func (t Transform) Opacity() float64 {
	return core.ClampF(1-t.Transparency, 0, 1)
}

// TextStyle controls FillText.
type TextStyle struct {
	Color   core.Color
	Outline core.Color // drawn as brackets around the text when set
	// Transparency is 0 for fully opaque text and 1 for invisible text.
	Transparency float64
}

// Opacity returns 1 - Transparency clamped to [0, 1].
func (s TextStyle) Opacity() float64 {
	return core.ClampF(1-s.Transparency, 0, 1)
}

// Surface is the 2D drawing target entities render onto.
// Coordinates are surface pixels, top-left origin.
type Surface interface {
	Size() (w, h float64)
	ClearRect(b core.BoundingBox)
	FillRect(b core.BoundingBox, fill Fill)
	DrawImageRegion(img Image, src, dst core.BoundingBox, t Transform)
	FillText(x, y float64, text string, style TextStyle)
}
