package models

// Decor is the decorative motif drawn on the title page
type Decor string

const (
	DecorModern  Decor = "modern"
	DecorOrganic Decor = "organic"
	DecorBold    Decor = "bold"
	DecorNone    Decor = "none"
)

// ThemeColors holds the eight color roles as 6-digit hex without '#'
type ThemeColors struct {
	Primary       string `json:"primary" yaml:"primary" validate:"omitempty,hexcolor6"`
	Secondary     string `json:"secondary" yaml:"secondary" validate:"omitempty,hexcolor6"`
	Accent        string `json:"accent" yaml:"accent" validate:"omitempty,hexcolor6"`
	Background    string `json:"bg" yaml:"bg" validate:"omitempty,hexcolor6"`
	BackgroundAlt string `json:"bgAlt" yaml:"bgAlt" validate:"omitempty,hexcolor6"`
	TextMain      string `json:"textMain" yaml:"textMain" validate:"omitempty,hexcolor6"`
	TextLight     string `json:"textLight" yaml:"textLight" validate:"omitempty,hexcolor6"`
	ShapeFill     string `json:"shapeFill" yaml:"shapeFill" validate:"omitempty,hexcolor6"`
}

// ThemeFonts holds the body and heading font families
type ThemeFonts struct {
	Main    string `json:"main" yaml:"main"`
	Heading string `json:"heading" yaml:"heading"`
}

// Theme is a named visual style applied to the whole deck
type Theme struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	Colors         ThemeColors `json:"colors" yaml:"colors"`
	Fonts          ThemeFonts  `json:"fonts" yaml:"fonts"`
	Decor          Decor       `json:"decor" yaml:"decor" validate:"omitempty,oneof=modern organic bold none"`
	BackgroundFile string      `json:"bgFile,omitempty" yaml:"bgFile,omitempty"`
}

// ThemeSummary is the listing form of a theme
type ThemeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Decor Decor  `json:"decor"`
}
