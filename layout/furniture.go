package layout

import (
	"fmt"
	"strings"

	"deckforge/models"
)

func titlePage(deck *models.Deck, th models.Theme, assets models.Assets, sc scale, opts Options) models.Page {
	page := models.Page{Kind: models.PageTitle, SlideIndex: -1, Background: th.Colors.BackgroundAlt}

	if assets.Has(BackgroundKey) {
		page.Primitives = append(page.Primitives,
			picture(models.RoleBackground, sc.full(), BackgroundKey),
			shape(models.RoleOverlay, sc.full(), models.ShapeRect, translucent(white, 20), nil),
		)
	} else {
		page.Primitives = append(page.Primitives,
			shape(models.RoleBackground, sc.full(), models.ShapeRect, solid(th.Colors.BackgroundAlt), nil))
	}

	page.Primitives = append(page.Primitives, decor(th, sc)...)

	title := strings.TrimSpace(deck.Title)
	if title == "" {
		title = opts.UntitledTitle
	}
	page.Primitives = append(page.Primitives, text(models.RoleTitle, sc.rect(1, 2, 8, 2), models.TextStyle{
		Font: th.Fonts.Heading, Size: 54, Bold: true, Color: th.Colors.Primary,
		Align: models.AlignLeft, VAlign: models.VAlignMiddle,
	}, title))

	if goal := strings.TrimSpace(deck.MainGoal); goal != "" {
		page.Primitives = append(page.Primitives,
			shape(models.RoleAccent, sc.rect(1, 4.1, 1, 0), models.ShapeLine, nil, stroke(th.Colors.Accent, 3)),
			text(models.RoleSubtitle, sc.rect(1, 4.2, 7, 1), models.TextStyle{
				Font: th.Fonts.Main, Size: 24, Color: th.Colors.Secondary,
				Align: models.AlignLeft, VAlign: models.VAlignTop,
			}, goal),
		)
	}
	return page
}

// decor returns the motif primitives of the theme's title page
func decor(th models.Theme, sc scale) []models.Primitive {
	c := th.Colors
	switch th.Decor {
	case models.DecorModern:
		return []models.Primitive{
			shape(models.RoleDecor, sc.rect(7.5, 3.5, 4, 4), models.ShapeEllipse, translucent(c.Accent, 90), nil),
			shape(models.RoleDecor, sc.rect(-1, -1, 3, 3), models.ShapeEllipse, translucent(c.Secondary, 85), nil),
		}
	case models.DecorOrganic:
		return []models.Primitive{
			shape(models.RoleDecor, sc.rect(8, 0, 5, 5), models.ShapeEllipse, solid(c.ShapeFill), nil),
			shape(models.RoleDecor, sc.rect(0, 5, refWidth, 1), models.ShapeRect, solid(c.Secondary), nil),
		}
	case models.DecorBold:
		tri := shape(models.RoleDecor, sc.rect(8, -1, 3, 3), models.ShapeTriangle, solid(c.Accent), nil)
		tri.Rotate = 45
		return []models.Primitive{
			tri,
			shape(models.RoleDecor, sc.rect(0.5, 0.5, 9, 4.5), models.ShapeRect, nil, stroke(c.Secondary, 4)),
		}
	}
	return nil
}

func agendaPage(deck *models.Deck, th models.Theme, sc scale, opts Options) models.Page {
	page := models.Page{Kind: models.PageAgenda, SlideIndex: -1, Background: th.Colors.BackgroundAlt}
	page.Primitives = append(page.Primitives,
		shape(models.RoleBackground, sc.full(), models.ShapeRect, solid(th.Colors.BackgroundAlt), nil),
		text(models.RoleTitle, sc.rect(0.5, 0.4, 9, 1), models.TextStyle{
			Font: th.Fonts.Heading, Size: 40, Bold: true, Color: th.Colors.Primary, VAlign: models.VAlignMiddle,
		}, "Agenda"),
	)

	items := make([]string, len(deck.Slides))
	for i, s := range deck.Slides {
		items[i] = fmt.Sprintf("%d. %s", i+1, s.Title)
	}

	style := models.TextStyle{Font: th.Fonts.Main, Size: 18, Color: th.Colors.TextMain, VAlign: models.VAlignTop}
	if len(items) > opts.AgendaColumnSplit {
		mid := (len(items) + 1) / 2
		page.Primitives = append(page.Primitives,
			text(models.RoleAgendaItems, sc.rect(1, 1.5, 4, 4), style, items[:mid]...),
			text(models.RoleAgendaItems, sc.rect(5.5, 1.5, 4, 4), style, items[mid:]...),
		)
	} else {
		page.Primitives = append(page.Primitives, text(models.RoleAgendaItems, sc.rect(1, 1.5, 8, 4), style, items...))
	}
	return page
}

// footer draws the date, the confidentiality label, the page counter and
// the progress bar of a content page.
func footer(th models.Theme, sc scale, opts Options, number, total int) []models.Primitive {
	style := models.TextStyle{Font: th.Fonts.Main, Size: 10, Color: th.Colors.TextLight, VAlign: models.VAlignMiddle}
	label := style
	label.Align = models.AlignCenter
	label.Bold = true
	counter := style
	counter.Align = models.AlignRight

	progress := Progress(number-1, total)
	return []models.Primitive{
		text(models.RoleFooterDate, sc.rect(0.5, 5.35, 2, 0.25), style, opts.Date.Format(opts.DateFormat)),
		text(models.RoleFooterLabel, sc.rect(4, 5.35, 2, 0.25), label, opts.ConfidentialLabel),
		text(models.RoleFooterPage, sc.rect(9, 5.35, 1, 0.25), counter, fmt.Sprintf("%d / %d", number, total)),
		shape(models.RoleProgressTrack, sc.rect(0, 5.55, refWidth, 0.08), models.ShapeRect, solid(cardBorder), nil),
		shape(models.RoleProgressFill, sc.rect(0, 5.55, refWidth*progress, 0.08), models.ShapeRect, solid(th.Colors.Accent), nil),
	}
}

// Progress is the fraction of the deck reached at content slide index i
func Progress(i, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(i+1) / float64(total)
}

func closingPage(th models.Theme, sc scale, opts Options) models.Page {
	return models.Page{
		Kind:       models.PageClosing,
		SlideIndex: -1,
		Background: th.Colors.Primary,
		Primitives: []models.Primitive{
			shape(models.RoleBackground, sc.full(), models.ShapeRect, solid(th.Colors.Primary), nil),
			text(models.RoleTitle, sc.rect(0, 2, refWidth, 1), models.TextStyle{
				Font: th.Fonts.Heading, Size: 50, Bold: true, Color: white,
				Align: models.AlignCenter, VAlign: models.VAlignMiddle,
			}, opts.ClosingTitle),
			text(models.RoleSubtitle, sc.rect(0, 3.2, refWidth, 1), models.TextStyle{
				Font: th.Fonts.Main, Size: 32, Color: th.Colors.Accent,
				Align: models.AlignCenter, VAlign: models.VAlignMiddle,
			}, opts.ClosingSubtitle),
		},
	}
}
