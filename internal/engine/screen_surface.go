package engine

import (
	"math"

	"github.com/vovakirdan/bugtap/internal/core"
)

// Opacity thresholds below which ScreenSurface dims cells.
const (
	dimAlpha   = 0.55
	ghostAlpha = 0.2
	ghostGlyph = '·'
)

var headingGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// ScreenSurface draws onto a terminal Screen. Each cell covers CellW×CellH
// surface pixels; the first TopRows rows of the screen are left to the HUD.
type ScreenSurface struct {
	screen  *core.Screen
	cellW   float64
	cellH   float64
	topRows int
}

// NewScreenSurface wraps a screen with the given cell scale.
func NewScreenSurface(screen *core.Screen, cellW, cellH float64, topRows int) *ScreenSurface {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	return &ScreenSurface{screen: screen, cellW: cellW, cellH: cellH, topRows: topRows}
}

// Screen returns the underlying screen.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}

// Size returns the drawable area in surface pixels.
func (s *ScreenSurface) Size() (float64, float64) {
	return SurfaceSize(s.screen.Width(), s.screen.Height(), s.cellW, s.cellH, s.topRows)
}

// SurfaceSize computes the pixel size of a screen of the given cell
// dimensions, excluding the HUD rows.
func SurfaceSize(cols, rows int, cellW, cellH float64, topRows int) (float64, float64) {
	rows -= topRows
	if rows < 0 {
		rows = 0
	}
	return float64(cols) * cellW, float64(rows) * cellH
}

// CellToPixel converts a screen cell to the surface pixel at its center.
// ok is false for cells in the HUD rows.
func (s *ScreenSurface) CellToPixel(cx, cy int) (x, y float64, ok bool) {
	return CellToPixel(cx, cy, s.cellW, s.cellH, s.topRows)
}

// CellToPixel converts a screen cell to the surface pixel at its center.
func CellToPixel(cx, cy int, cellW, cellH float64, topRows int) (x, y float64, ok bool) {
	row := cy - topRows
	if row < 0 {
		return 0, 0, false
	}
	return (float64(cx) + 0.5) * cellW, (float64(row) + 0.5) * cellH, true
}

// cellSpan maps a pixel box to the cell rectangle it covers (at least one cell).
func (s *ScreenSurface) cellSpan(b core.BoundingBox) core.Rect {
	x0 := int(math.Floor(b.X / s.cellW))
	y0 := int(math.Floor(b.Y / s.cellH))
	x1 := int(math.Ceil(b.Right()/s.cellW)) - 1
	y1 := int(math.Ceil(b.Bottom()/s.cellH)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return core.NewRect(x0, y0+s.topRows, x1-x0+1, y1-y0+1)
}

func (s *ScreenSurface) set(x, y int, r rune, c core.Color) {
	if y < s.topRows {
		return
	}
	s.screen.SetColored(x, y, r, c)
}

// ClearRect blanks the cells covered by b.
func (s *ScreenSurface) ClearRect(b core.BoundingBox) {
	s.FillRect(b, Fill{Pattern: []rune{' '}})
}

// FillRect paints the cells covered by b, tiling the fill pattern.
func (s *ScreenSurface) FillRect(b core.BoundingBox, fill Fill) {
	pattern := fill.Pattern
	if len(pattern) == 0 {
		pattern = []rune{' '}
	}
	n := len(pattern)
	r := s.cellSpan(b)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			// Boxes may start off-canvas, so the index must stay non-negative.
			s.set(x, y, pattern[((x+y)%n+n)%n], fill.Color)
		}
	}
}

// DrawImageRegion fills the cells covered by dst with the glyph of the source
// frame. Low opacity dims the color, then fades to a ghost glyph; a fully
// transparent draw leaves the cells untouched. A rotated draw marks the
// heading edge with an arrow.
func (s *ScreenSurface) DrawImageRegion(img Image, src, dst core.BoundingBox, t Transform) {
	alpha := t.Opacity()
	if alpha <= 0 {
		return
	}
	glyph := img.GlyphAt(src.X)
	color := img.Color
	if alpha < dimAlpha {
		color = color.Dim()
	}
	if alpha < ghostAlpha {
		glyph = ghostGlyph
	}

	r := s.cellSpan(dst)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.set(x, y, glyph, color)
		}
	}

	if !t.Rotate || alpha < ghostAlpha {
		return
	}
	// Arrow at the edge of the box the sprite is facing.
	hx := t.PivotX + math.Cos(t.Angle)*dst.W/2
	hy := t.PivotY + math.Sin(t.Angle)*dst.H/2
	cx := core.Clamp(int(math.Floor(hx/s.cellW)), r.X, r.Right()-1)
	cy := core.Clamp(int(math.Floor(hy/s.cellH))+s.topRows, r.Y, r.Bottom()-1)
	s.set(cx, cy, HeadingGlyph(t.Angle), color)
}

// HeadingGlyph returns the arrow closest to the given angle (y-down).
func HeadingGlyph(angle float64) rune {
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// FillText writes text with its left edge at surface pixel (x, y).
// An outline color wraps the text in brackets of that color.
func (s *ScreenSurface) FillText(x, y float64, text string, style TextStyle) {
	cx := int(math.Floor(x / s.cellW))
	cy := int(math.Floor(y/s.cellH)) + s.topRows
	alpha := style.Opacity()
	if alpha <= 0 {
		return
	}
	color := style.Color
	if alpha < dimAlpha {
		color = color.Dim()
	}
	if style.Outline != core.ColorDefault {
		s.set(cx-1, cy, '[', style.Outline)
	}
	i := 0
	for _, r := range text {
		s.set(cx+i, cy, r, color)
		i++
	}
	if style.Outline != core.ColorDefault {
		s.set(cx+i, cy, ']', style.Outline)
	}
}
