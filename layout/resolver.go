package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"deckforge/models"
)

// Region is a rectangle holding a labeled run of text lines
type Region struct {
	Rect  models.Rect
	Label string
	Lines []string
}

// Cell is one grid slot; Blank cells have no item
type Cell struct {
	Rect  models.Rect
	Item  models.GridItem
	Blank bool
}

// PlacedElement is a vision element mapped onto the canvas
type PlacedElement struct {
	// Index is the position of the element in the slide's elements list
	Index   int
	Element models.Element
	Rect    models.Rect
}

// Geometry is the resolved, renderer-neutral geometry of one slide
type Geometry struct {
	SlideID string
	Layout  models.Layout
	Canvas  models.Size

	Header Region
	Accent models.Rect

	Body       *Region
	Rule       *models.Rect
	Image      *models.Rect
	Cells      []Cell
	Blocks     []Region
	Connectors []models.Rect
	Elements   []PlacedElement
	Center     *Region
}

// TitleOnly reports whether the slide resolved to its header alone
func (g Geometry) TitleOnly() bool {
	return g.Body == nil && len(g.Cells) == 0 && len(g.Blocks) == 0 &&
		len(g.Elements) == 0 && g.Center == nil
}

// ResolveSlide computes the geometry of one slide on a canvas of the given
// size. It is pure: the same input always yields the same geometry.
func ResolveSlide(slide models.Slide, canvasW, canvasH float64, opts Options) (Geometry, error) {
	opts = opts.withDefaults()
	sc := newScale(canvasW, canvasH)

	g := Geometry{
		SlideID: slide.ID,
		Layout:  slide.Layout,
		Canvas:  models.Size{W: canvasW, H: canvasH},
		Header:  Region{Rect: sc.rect(0.5, 0.4, 8.5, 0.6), Lines: []string{slide.Title}},
		Accent:  sc.rect(0.5, 1.1, 0.1, 0.1),
	}

	switch {
	case slide.Layout == models.LayoutTitle || slide.Layout == models.LayoutBullets:
		resolveBullets(&g, slide, sc)
	case slide.Layout.IsGrid():
		n, err := GridArity(slide.Layout, opts)
		if err != nil {
			return g, &models.LayoutError{SlideID: slide.ID, Layout: slide.Layout, Err: err}
		}
		resolveGrid(&g, slide, n, sc)
	case slide.Layout == models.LayoutCenter:
		if len(slide.Content) > 0 {
			g.Center = &Region{Rect: sc.rect(1, 2, 8, 2), Lines: []string{slide.Content[0]}}
		}
	case slide.Layout == models.LayoutVision:
		g.Elements = placeElements(slide.Elements, canvasW, canvasH)
	case slide.Layout == models.LayoutComparison:
		resolveComparison(&g, slide, sc)
	case slide.Layout == models.LayoutFlow:
		resolveFlow(&g, slide, sc)
	default:
		return g, &models.LayoutError{SlideID: slide.ID, Layout: slide.Layout, Err: models.ErrUnsupportedLayout}
	}

	return g, nil
}

// GridArity parses N out of a grid_N tag
func GridArity(l models.Layout, opts Options) (int, error) {
	opts = opts.withDefaults()
	raw := strings.TrimPrefix(string(l), models.GridPrefix)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrUnsupportedGridArity, raw)
	}
	if n < opts.MinGridColumns || n > opts.MaxGridColumns {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", models.ErrUnsupportedGridArity, n, opts.MinGridColumns, opts.MaxGridColumns)
	}
	return n, nil
}

// Fallback is the geometry used for a slide whose layout failed: its content
// as a plain bullets body.
func Fallback(slide models.Slide, canvasW, canvasH float64) Geometry {
	sc := newScale(canvasW, canvasH)
	g := Geometry{
		SlideID: slide.ID,
		Layout:  slide.Layout,
		Canvas:  models.Size{W: canvasW, H: canvasH},
		Header:  Region{Rect: sc.rect(0.5, 0.4, 8.5, 0.6), Lines: []string{slide.Title}},
		Accent:  sc.rect(0.5, 1.1, 0.1, 0.1),
	}
	lines := append([]string(nil), slide.Content...)
	for _, item := range slide.GridItems {
		lines = append(lines, strings.TrimSpace(item.Title+" "+item.Content))
	}
	if len(lines) > 0 {
		g.Body = &Region{Rect: sc.rect(0.8, 1.6, 8.5, 3.6), Lines: lines}
	}
	return g
}

func resolveBullets(g *Geometry, slide models.Slide, sc scale) {
	imageSlot(g, slide, sc)
	if len(slide.Content) == 0 {
		return
	}
	w := 8.5
	if g.Image != nil {
		w = 6.0
	}
	rule := sc.rect(0.5, 1.6, 0.05, 3.5)
	g.Rule = &rule
	g.Body = &Region{Rect: sc.rect(0.8, 1.6, w, 3.6), Lines: append([]string(nil), slide.Content...)}
}

func resolveGrid(g *Geometry, slide models.Slide, n int, sc scale) {
	g.Cells = make([]Cell, n)
	for i, col := range columns(n, 0.5, 9, 0.3) {
		c := Cell{Rect: sc.rect(col.x, 1.6, col.w, 3.5), Blank: true}
		if i < len(slide.GridItems) {
			c.Item = slide.GridItems[i]
			c.Blank = false
		}
		g.Cells[i] = c
	}
}

func placeElements(elements []models.Element, canvasW, canvasH float64) []PlacedElement {
	if len(elements) == 0 {
		return nil
	}
	out := make([]PlacedElement, len(elements))
	for i, e := range elements {
		out[i] = PlacedElement{Index: i, Element: e, Rect: ToAbsolute(e, canvasW, canvasH)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Element.Z() < out[j].Element.Z()
	})
	return out
}

// CarriesImage reports whether a layout has a slot for the slide illustration
func CarriesImage(l models.Layout) bool {
	switch l {
	case models.LayoutTitle, models.LayoutBullets, models.LayoutComparison, models.LayoutFlow:
		return true
	}
	return false
}

// imageSlot places the slide illustration and returns the width left for
// the body columns starting at x 0.5
func imageSlot(g *Geometry, slide models.Slide, sc scale) float64 {
	if slide.Image == "" {
		return 9
	}
	img := sc.rect(7, 1.6, 2.5, 2.5)
	g.Image = &img
	return 6.2
}

func resolveComparison(g *Geometry, slide models.Slide, sc scale) {
	width := imageSlot(g, slide, sc)
	if len(slide.Content) == 0 {
		return
	}
	mid := (len(slide.Content) + 1) / 2
	halves := [][]string{slide.Content[:mid], slide.Content[mid:]}
	for i, col := range columns(2, 0.5, width, 0.3) {
		label, lines := splitLabel(halves[i])
		g.Blocks = append(g.Blocks, Region{Rect: sc.rect(col.x, 1.6, col.w, 3.5), Label: label, Lines: lines})
	}
}

func resolveFlow(g *Geometry, slide models.Slide, sc scale) {
	width := imageSlot(g, slide, sc)
	n := len(slide.Content)
	if n == 0 {
		return
	}
	cols := columns(n, 0.5, width, 0.3)
	for i, col := range cols {
		g.Blocks = append(g.Blocks, Region{
			Rect:  sc.rect(col.x, 2.0, col.w, 2.2),
			Label: fmt.Sprintf("%02d", i+1),
			Lines: []string{slide.Content[i]},
		})
		if i < n-1 {
			g.Connectors = append(g.Connectors, sc.rect(col.x+col.w+0.05, 3.0, 0.2, 0.2))
		}
	}
}

// splitLabel takes a leading "Label: text" off the first line
func splitLabel(lines []string) (string, []string) {
	if len(lines) == 0 {
		return "", nil
	}
	out := append([]string(nil), lines...)
	label, rest, ok := strings.Cut(out[0], ":")
	label = strings.TrimSpace(label)
	if !ok || label == "" || len(label) > 40 {
		return "", out
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return label, out[1:]
	}
	out[0] = rest
	return label, out
}
