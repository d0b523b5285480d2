package layout

import (
	"errors"
	"fmt"

	"deckforge/models"
)

// BuildPlan turns a deck into the page sequence both renderers draw: a title
// page, an agenda when the deck is long enough, one page per slide and a
// closing page. Slides whose layout fails degrade to a fallback block and
// are reported in the returned statuses; the plan itself never fails.
func BuildPlan(deck *models.Deck, th models.Theme, assets models.Assets, opts Options) (models.Plan, []models.SlideStatus) {
	opts = opts.withDefaults()
	sc := newScale(opts.CanvasWidth, opts.CanvasHeight)

	plan := models.Plan{
		Canvas:  models.Size{W: opts.CanvasWidth, H: opts.CanvasHeight},
		Title:   deck.Title,
		ThemeID: th.ID,
		Theme:   th,
	}
	if plan.Title == "" {
		plan.Title = opts.UntitledTitle
	}

	plan.Pages = append(plan.Pages, titlePage(deck, th, assets, sc, opts))
	if len(deck.Slides) > opts.AgendaThreshold {
		plan.Pages = append(plan.Pages, agendaPage(deck, th, sc, opts))
	}

	statuses := make([]models.SlideStatus, len(deck.Slides))
	total := len(deck.Slides)
	for i, s := range deck.Slides {
		page, status := ContentPage(s, i, total, th, assets, opts)
		plan.Pages = append(plan.Pages, page)
		statuses[i] = status
	}

	plan.Pages = append(plan.Pages, closingPage(th, sc, opts))
	return plan, statuses
}

// ContentPage lays out the slide at index i of a deck of total slides
func ContentPage(s models.Slide, i, total int, th models.Theme, assets models.Assets, opts Options) (models.Page, models.SlideStatus) {
	opts = opts.withDefaults()
	sc := newScale(opts.CanvasWidth, opts.CanvasHeight)
	status := models.SlideStatus{SlideID: s.ID, Index: i, Layout: s.Layout}

	page := models.Page{
		Kind:       models.PageContent,
		SlideID:    s.ID,
		SlideIndex: i,
		Background: white,
		Notes:      s.SpeakerNotes,
		Number:     i + 1,
		Total:      total,
		Progress:   Progress(i, total),
	}

	g, err := ResolveSlide(s, opts.CanvasWidth, opts.CanvasHeight, opts)
	degraded := err != nil
	if degraded {
		status.Degraded = true
		status.Error = err.Error()
		g = Fallback(s, opts.CanvasWidth, opts.CanvasHeight)
	}

	if g.Center != nil {
		page.Primitives = append(page.Primitives, centerBody(g, th, sc)...)
	} else {
		page.Primitives = append(page.Primitives, header(g, th)...)
		page.Primitives = append(page.Primitives, body(g, i, th, assets, sc)...)
	}
	if degraded {
		page.Primitives = append(page.Primitives, text(models.RoleErrorMarker, sc.rect(0.8, 4.9, 8.5, 0.3),
			models.TextStyle{Font: th.Fonts.Main, Size: 10, Color: errorColor, VAlign: models.VAlignMiddle},
			errorMarker(err)))
	}
	page.Primitives = append(page.Primitives, footer(th, sc, opts, i+1, total)...)
	return page, status
}

func errorMarker(err error) string {
	switch {
	case errors.Is(err, models.ErrUnsupportedGridArity):
		return "Layout unavailable: unsupported grid arity"
	case errors.Is(err, models.ErrUnsupportedLayout):
		return "Layout unavailable: unsupported layout"
	}
	return fmt.Sprintf("Layout unavailable: %v", err)
}

func header(g Geometry, th models.Theme) []models.Primitive {
	return []models.Primitive{
		text(models.RoleTitle, g.Header.Rect, models.TextStyle{
			Font: th.Fonts.Heading, Size: 32, Bold: true, Color: th.Colors.Primary, VAlign: models.VAlignMiddle,
		}, g.Header.Lines...),
		shape(models.RoleAccent, g.Accent, models.ShapeEllipse, solid(th.Colors.Accent), nil),
	}
}

func centerBody(g Geometry, th models.Theme, sc scale) []models.Primitive {
	return []models.Primitive{
		shape(models.RoleBackground, sc.full(), models.ShapeRect, solid(th.Colors.Primary), nil),
		shape(models.RoleDecor, sc.rect(2, -2, 6, 6), models.ShapeEllipse, translucent(th.Colors.Secondary, 60), nil),
		text(models.RoleCenterText, g.Center.Rect, models.TextStyle{
			Font: th.Fonts.Heading, Size: 40, Bold: true, Color: white,
			Align: models.AlignCenter, VAlign: models.VAlignMiddle,
		}, g.Center.Lines...),
	}
}

func body(g Geometry, slideIndex int, th models.Theme, assets models.Assets, sc scale) []models.Primitive {
	var out []models.Primitive
	c := th.Colors

	if g.Rule != nil {
		out = append(out, shape(models.RoleRule, *g.Rule, models.ShapeRect, solid(cardBorder), nil))
	}
	if g.Body != nil {
		out = append(out, bullets(models.RoleBody, g.Body.Rect, models.TextStyle{
			Font: th.Fonts.Main, Size: 22, Color: c.TextMain, VAlign: models.VAlignTop, BulletColor: c.Secondary,
		}, g.Body.Lines))
	}
	if g.Image != nil && assets.Has(SlideImageKey(slideIndex)) {
		out = append(out, picture(models.RoleIllustration, *g.Image, SlideImageKey(slideIndex)))
	}

	for _, cell := range g.Cells {
		card := shape(models.RoleGridCell, cell.Rect, models.ShapeRect, solid(white), stroke(cardBorder, 0.5))
		card.Shadow = true
		out = append(out, card,
			shape(models.RoleGridBar, sc.inset(cell.Rect, 0, 0, 0.1), models.ShapeRect, solid(c.Secondary), nil))
		if cell.Blank {
			continue
		}
		if cell.Item.Title != "" {
			out = append(out, text(models.RoleGridTitle, sc.inset(cell.Rect, 0.2, 0.3, 0.5), models.TextStyle{
				Font: th.Fonts.Heading, Size: 18, Bold: true, Color: c.Primary, VAlign: models.VAlignMiddle,
			}, cell.Item.Title))
		}
		out = append(out, text(models.RoleGridText, sc.inset(cell.Rect, 0.2, 0.9, 2.2), models.TextStyle{
			Font: th.Fonts.Main, Size: 15, Color: c.TextMain, VAlign: models.VAlignTop,
		}, cell.Item.Content))
	}

	flow := g.Layout == models.LayoutFlow
	for _, b := range g.Blocks {
		out = append(out, blockPrimitives(b, flow, th, sc)...)
	}
	for _, r := range g.Connectors {
		out = append(out, shape(models.RoleConnector, r, models.ShapeRightArrow, solid(c.Accent), nil))
	}

	for _, pe := range g.Elements {
		if prim, ok := elementPrimitive(pe, slideIndex, th, assets); ok {
			out = append(out, prim)
		}
	}
	return out
}

func blockPrimitives(b Region, flow bool, th models.Theme, sc scale) []models.Primitive {
	c := th.Colors
	if flow {
		return []models.Primitive{
			shape(models.RoleBlock, b.Rect, models.ShapeRect, solid(c.ShapeFill), stroke(c.Secondary, 1)),
			text(models.RoleBlockText, sc.inset(b.Rect, 0.15, 0.15, 0.5), models.TextStyle{
				Font: th.Fonts.Heading, Size: 20, Bold: true, Color: c.Accent, VAlign: models.VAlignMiddle,
			}, b.Label),
			text(models.RoleBlockText, sc.inset(b.Rect, 0.15, 0.75, 1.3), models.TextStyle{
				Font: th.Fonts.Main, Size: 14, Color: c.TextMain, VAlign: models.VAlignTop,
			}, b.Lines...),
		}
	}

	card := shape(models.RoleBlock, b.Rect, models.ShapeRect, solid(white), stroke(cardBorder, 0.5))
	card.Shadow = true
	out := []models.Primitive{
		card,
		shape(models.RoleGridBar, sc.inset(b.Rect, 0, 0, 0.1), models.ShapeRect, solid(c.Accent), nil),
	}
	top := 0.3
	if b.Label != "" {
		out = append(out, text(models.RoleBlockText, sc.inset(b.Rect, 0.2, 0.3, 0.5), models.TextStyle{
			Font: th.Fonts.Heading, Size: 20, Bold: true, Color: c.Primary, VAlign: models.VAlignMiddle,
		}, b.Label))
		top = 0.9
	}
	if len(b.Lines) > 0 {
		out = append(out, bullets(models.RoleBlockText, sc.inset(b.Rect, 0.2, top, 3.3-top), models.TextStyle{
			Font: th.Fonts.Main, Size: 16, Color: c.TextMain, VAlign: models.VAlignTop, BulletColor: c.Secondary,
		}, b.Lines))
	}
	return out
}

func elementPrimitive(pe PlacedElement, slideIndex int, th models.Theme, assets models.Assets) (models.Primitive, bool) {
	e := pe.Element
	c := th.Colors
	switch e.Type {
	case models.ElementText:
		size := e.FontSize
		if size <= 0 {
			size = 18
		}
		color := e.Color
		if color == "" {
			color = c.TextMain
		}
		return text(models.RoleElement, pe.Rect, models.TextStyle{
			Font: th.Fonts.Main, Size: size, Color: color, VAlign: models.VAlignTop,
		}, e.Content), true
	case models.ElementShape:
		fill := e.Color
		if fill == "" {
			fill = c.ShapeFill
		}
		prim := shape(models.RoleElement, pe.Rect, models.ShapeRect, solid(fill), stroke(c.Secondary, 1))
		if e.Content != "" {
			prim.Text = &models.TextBlock{
				Paragraphs: []models.Paragraph{{Text: e.Content}},
				Style: models.TextStyle{
					Font: th.Fonts.Main, Size: 14, Color: c.Primary,
					Align: models.AlignCenter, VAlign: models.VAlignMiddle,
				},
			}
		}
		return prim, true
	case models.ElementImage:
		key := ElementKey(slideIndex, pe.Index)
		if !assets.Has(key) {
			return models.Primitive{}, false
		}
		return picture(models.RoleElement, pe.Rect, key), true
	}
	return models.Primitive{}, false
}
