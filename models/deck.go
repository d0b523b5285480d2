package models

import "strings"

// Layout is the closed set of slide layout tags
type Layout string

const (
	LayoutTitle      Layout = "title"
	LayoutBullets    Layout = "bullets"
	LayoutGrid2      Layout = "grid_2"
	LayoutGrid3      Layout = "grid_3"
	LayoutGrid4      Layout = "grid_4"
	LayoutComparison Layout = "comparison"
	LayoutFlow       Layout = "flow"
	LayoutCenter     Layout = "center"
	LayoutVision     Layout = "vision_layout"
)

// GridPrefix prefixes every grid layout tag
const GridPrefix = "grid_"

// IsGrid reports whether the layout tag names a grid
func (l Layout) IsGrid() bool {
	return strings.HasPrefix(string(l), GridPrefix)
}

// ElementType is the kind of a free-form vision element
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementShape ElementType = "shape"
	ElementImage ElementType = "image"
)

// ImageSource tells where an image element gets its pixels from
type ImageSource string

const (
	SourceGenerated ImageSource = "generated"
	SourceCrop      ImageSource = "crop"
)

// Deck is the whole presentation as produced by the generation step
type Deck struct {
	Title         string  `json:"title" yaml:"title"`
	MainGoal      string  `json:"mainGoal,omitempty" yaml:"mainGoal,omitempty"`
	ThemeID       string  `json:"themeId,omitempty" yaml:"themeId,omitempty"`
	OriginalImage string  `json:"originalImage,omitempty" yaml:"originalImage,omitempty"`
	Slides        []Slide `json:"slides" yaml:"slides" validate:"dive"`
}

// Slide is one page of the deck in presentation order
type Slide struct {
	ID           string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string     `json:"title" yaml:"title"`
	Layout       Layout     `json:"layout" yaml:"layout" validate:"required,oneof=title bullets grid_2 grid_3 grid_4 comparison flow center vision_layout"`
	Content      []string   `json:"content" yaml:"content"`
	GridItems    []GridItem `json:"gridItems,omitempty" yaml:"gridItems,omitempty"`
	Elements     []Element  `json:"elements,omitempty" yaml:"elements,omitempty" validate:"dive"`
	SpeakerNotes string     `json:"speakerNotes,omitempty" yaml:"speakerNotes,omitempty"`
	Image        string     `json:"image,omitempty" yaml:"image,omitempty"`
}

// GridItem is one card of a grid layout
type GridItem struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Element is a free-form item placed by percentage coordinates on the canvas
type Element struct {
	Type     ElementType `json:"type" yaml:"type" validate:"required,oneof=text shape image"`
	X        float64     `json:"x" yaml:"x"`
	Y        float64     `json:"y" yaml:"y"`
	W        float64     `json:"w" yaml:"w"`
	H        float64     `json:"h" yaml:"h"`
	ZIndex   *float64    `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
	Content  string      `json:"content,omitempty" yaml:"content,omitempty"`
	Source   ImageSource `json:"source,omitempty" yaml:"source,omitempty" validate:"omitempty,oneof=generated crop"`
	Color    string      `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,hexcolor6"`
	FontSize float64     `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
}

// Z returns the stacking order of the element, missing means 0
func (e Element) Z() float64 {
	if e.ZIndex == nil {
		return 0
	}
	return *e.ZIndex
}

// Clone returns a deep copy of the deck. Exports work on the copy so that
// concurrent edits of the original never leak into a running export.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s.Clone()
	}
	return &out
}

// Clone returns a deep copy of the slide
func (s Slide) Clone() Slide {
	out := s
	if s.Content != nil {
		out.Content = append([]string(nil), s.Content...)
	}
	if s.GridItems != nil {
		out.GridItems = append([]GridItem(nil), s.GridItems...)
	}
	if s.Elements != nil {
		out.Elements = make([]Element, len(s.Elements))
		for i, e := range s.Elements {
			if e.ZIndex != nil {
				z := *e.ZIndex
				e.ZIndex = &z
			}
			out.Elements[i] = e
		}
	}
	return out
}
