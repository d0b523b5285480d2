package models

// Size is a canvas size in logical units
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an absolute rectangle in logical canvas units
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PageKind classifies a page of the rendered artifact
type PageKind string

const (
	PageTitle   PageKind = "title"
	PageAgenda  PageKind = "agenda"
	PageContent PageKind = "content"
	PageClosing PageKind = "closing"
)

// PrimitiveKind is the drawing kind of a positioned primitive
type PrimitiveKind string

const (
	PrimitiveShape PrimitiveKind = "shape"
	PrimitiveText  PrimitiveKind = "text"
	PrimitiveImage PrimitiveKind = "image"
)

// ShapeKind is the preset geometry of a shape primitive
type ShapeKind string

const (
	ShapeRect       ShapeKind = "rect"
	ShapeEllipse    ShapeKind = "ellipse"
	ShapeTriangle   ShapeKind = "triangle"
	ShapeLine       ShapeKind = "line"
	ShapeRightArrow ShapeKind = "rightArrow"
)

// Align is horizontal text alignment
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is vertical text anchoring
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Roles tag primitives so that both renderers and tests can tell them apart.
const (
	RoleBackground    = "background"
	RoleOverlay       = "overlay"
	RoleDecor         = "decor"
	RoleTitle         = "title"
	RoleSubtitle      = "subtitle"
	RoleAccent        = "accent"
	RoleBody          = "body"
	RoleRule          = "rule"
	RoleIllustration  = "illustration"
	RoleGridCell      = "grid-cell"
	RoleGridBar       = "grid-bar"
	RoleGridTitle     = "grid-title"
	RoleGridText      = "grid-text"
	RoleBlock         = "block"
	RoleBlockText     = "block-text"
	RoleConnector     = "connector"
	RoleElement       = "element"
	RoleCenterText    = "center-text"
	RoleAgendaItems   = "agenda-items"
	RoleFooterDate    = "footer-date"
	RoleFooterLabel   = "footer-label"
	RoleFooterPage    = "footer-page"
	RoleProgressTrack = "progress-track"
	RoleProgressFill  = "progress-fill"
	RoleErrorMarker   = "error-marker"
)

// Fill is a solid fill with optional transparency in percent
type Fill struct {
	Color        string `json:"color"`
	Transparency int    `json:"transparency,omitempty"`
}

// Stroke is an outline; Width is in points
type Stroke struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Paragraph is one line of a text block
type Paragraph struct {
	Text   string `json:"text"`
	Bullet bool   `json:"bullet,omitempty"`
}

// TextStyle describes how the paragraphs of a text block are drawn. Size is in points.
type TextStyle struct {
	Font        string  `json:"font"`
	Size        float64 `json:"size"`
	Bold        bool    `json:"bold,omitempty"`
	Color       string  `json:"color"`
	Align       Align   `json:"align,omitempty"`
	VAlign      VAlign  `json:"valign,omitempty"`
	BulletColor string  `json:"bulletColor,omitempty"`
}

// TextBlock is a styled run of paragraphs
type TextBlock struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Style      TextStyle   `json:"style"`
}

// Primitive is one positioned drawing instruction. Shapes may carry text.
type Primitive struct {
	Kind     PrimitiveKind `json:"kind"`
	Role     string        `json:"role"`
	Rect     Rect          `json:"rect"`
	Shape    ShapeKind     `json:"shape,omitempty"`
	Fill     *Fill         `json:"fill,omitempty"`
	Line     *Stroke       `json:"line,omitempty"`
	Rotate   float64       `json:"rotate,omitempty"`
	Shadow   bool          `json:"shadow,omitempty"`
	Text     *TextBlock    `json:"text,omitempty"`
	ImageKey string        `json:"imageKey,omitempty"`
}

// Page is one page of an artifact; primitives are in paint order
type Page struct {
	Kind       PageKind    `json:"kind"`
	SlideID    string      `json:"slideId,omitempty"`
	SlideIndex int         `json:"slideIndex"`
	Background string      `json:"background"`
	Primitives []Primitive `json:"primitives"`
	Notes      string      `json:"notes,omitempty"`
	Number     int         `json:"number,omitempty"`
	Total      int         `json:"total,omitempty"`
	Progress   float64     `json:"progress,omitempty"`
}

// Plan is the renderer-neutral projection of a deck. Both renderers draw
// exactly these pages and primitives.
type Plan struct {
	Canvas  Size   `json:"canvas"`
	Title   string `json:"title"`
	ThemeID string `json:"themeId"`
	Theme   Theme  `json:"theme"`
	Pages   []Page `json:"pages"`
}

// ByRole returns the primitives of the page carrying the given role
func (p Page) ByRole(role string) []Primitive {
	var out []Primitive
	for _, prim := range p.Primitives {
		if prim.Role == role {
			out = append(out, prim)
		}
	}
	return out
}

// ContentPages returns the pages generated from deck slides
func (p Plan) ContentPages() []Page {
	var out []Page
	for _, page := range p.Pages {
		if page.Kind == PageContent {
			out = append(out, page)
		}
	}
	return out
}
