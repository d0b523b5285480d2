package layout

import "deckforge/models"

const (
	white      = "FFFFFF"
	cardBorder = "E2E8F0"
	errorColor = "B91C1C"
)

func shape(role string, r models.Rect, kind models.ShapeKind, fill *models.Fill, line *models.Stroke) models.Primitive {
	return models.Primitive{Kind: models.PrimitiveShape, Role: role, Rect: r, Shape: kind, Fill: fill, Line: line}
}

func text(role string, r models.Rect, style models.TextStyle, lines ...string) models.Primitive {
	paras := make([]models.Paragraph, len(lines))
	for i, l := range lines {
		paras[i] = models.Paragraph{Text: l}
	}
	return models.Primitive{Kind: models.PrimitiveText, Role: role, Rect: r, Text: &models.TextBlock{Paragraphs: paras, Style: style}}
}

func bullets(role string, r models.Rect, style models.TextStyle, lines []string) models.Primitive {
	p := text(role, r, style, lines...)
	for i := range p.Text.Paragraphs {
		p.Text.Paragraphs[i].Bullet = true
	}
	return p
}

func picture(role string, r models.Rect, key string) models.Primitive {
	return models.Primitive{Kind: models.PrimitiveImage, Role: role, Rect: r, ImageKey: key}
}

func solid(color string) *models.Fill {
	return &models.Fill{Color: color}
}

func translucent(color string, transparency int) *models.Fill {
	return &models.Fill{Color: color, Transparency: transparency}
}

func stroke(color string, width float64) *models.Stroke {
	return &models.Stroke{Color: color, Width: width}
}

// inset returns a band of r padded by padX on both sides, starting top
// below r's top edge and h high. Amounts are in reference inches.
func (s scale) inset(r models.Rect, padX, top, h float64) models.Rect {
	return models.Rect{X: r.X + padX*s.sx, Y: r.Y + top*s.sy, W: r.W - 2*padX*s.sx, H: h * s.sy}
}
