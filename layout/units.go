package layout

import "deckforge/models"

// scale maps reference inches onto canvas units
type scale struct {
	sx, sy float64
	w, h   float64
}

func newScale(canvasW, canvasH float64) scale {
	return scale{sx: canvasW / refWidth, sy: canvasH / refHeight, w: canvasW, h: canvasH}
}

func (s scale) rect(x, y, w, h float64) models.Rect {
	return models.Rect{X: x * s.sx, Y: y * s.sy, W: w * s.sx, H: h * s.sy}
}

func (s scale) full() models.Rect {
	return models.Rect{W: s.w, H: s.h}
}

// column is one slot of an evenly split horizontal band, in reference inches
type column struct {
	x, w float64
}

// columns splits a band of totalW starting at startX into n equal slots
// separated by spacing.
func columns(n int, startX, totalW, spacing float64) []column {
	if n <= 0 {
		return nil
	}
	w := (totalW - spacing*float64(n-1)) / float64(n)
	out := make([]column, n)
	for i := range out {
		out[i] = column{x: startX + (w+spacing)*float64(i), w: w}
	}
	return out
}

// ToAbsolute maps a percentage rectangle onto a canvas
func ToAbsolute(e models.Element, canvasW, canvasH float64) models.Rect {
	return models.Rect{
		X: e.X / 100 * canvasW,
		Y: e.Y / 100 * canvasH,
		W: e.W / 100 * canvasW,
		H: e.H / 100 * canvasH,
	}
}

// ToPercent is the inverse of ToAbsolute
func ToPercent(r models.Rect, canvasW, canvasH float64) (x, y, w, h float64) {
	return r.X / canvasW * 100, r.Y / canvasH * 100, r.W / canvasW * 100, r.H / canvasH * 100
}
