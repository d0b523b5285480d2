package layout

import "time"

// Reference slide size in inches. Fixed geometry is authored against it and
// scaled per axis onto the logical canvas.
const (
	refWidth  = 10.0
	refHeight = 5.625
)

// Default logical canvas, 96 units per reference inch
const (
	DefaultCanvasWidth  = 960.0
	DefaultCanvasHeight = 540.0
)

// Options tunes the resolver and the planner
type Options struct {
	CanvasWidth  float64
	CanvasHeight float64

	// Grid arity bounds; tags outside [MinGridColumns, MaxGridColumns] are rejected
	MinGridColumns int
	MaxGridColumns int

	// An agenda page is added when the deck has more slides than
	// AgendaThreshold. Zero adds it to every non-empty deck; negative means
	// the default.
	AgendaThreshold int
	// Agenda entries are split in two columns above AgendaColumnSplit
	AgendaColumnSplit int

	ConfidentialLabel string
	DateFormat        string
	Date              time.Time
	UntitledTitle     string
	ClosingTitle      string
	ClosingSubtitle   string

	// StockVariants is the number of stock background variants per theme
	StockVariants int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		CanvasWidth:       DefaultCanvasWidth,
		CanvasHeight:      DefaultCanvasHeight,
		MinGridColumns:    2,
		MaxGridColumns:    4,
		AgendaThreshold:   2,
		AgendaColumnSplit: 6,
		ConfidentialLabel: "CONFIDENTIAL",
		DateFormat:        "Jan 2, 2006",
		UntitledTitle:     "Presentation",
		ClosingTitle:      "Thank You",
		ClosingSubtitle:   "Q & A",
		StockVariants:     5,
	}
}

// withDefaults fills unset fields from DefaultOptions
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = def.CanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = def.CanvasHeight
	}
	if o.MinGridColumns <= 0 {
		o.MinGridColumns = def.MinGridColumns
	}
	if o.MaxGridColumns <= 0 {
		o.MaxGridColumns = def.MaxGridColumns
	}
	if o.MaxGridColumns < o.MinGridColumns {
		o.MaxGridColumns = o.MinGridColumns
	}
	if o.AgendaThreshold < 0 {
		o.AgendaThreshold = def.AgendaThreshold
	}
	if o.AgendaColumnSplit <= 0 {
		o.AgendaColumnSplit = def.AgendaColumnSplit
	}
	if o.ConfidentialLabel == "" {
		o.ConfidentialLabel = def.ConfidentialLabel
	}
	if o.DateFormat == "" {
		o.DateFormat = def.DateFormat
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.UntitledTitle == "" {
		o.UntitledTitle = def.UntitledTitle
	}
	if o.ClosingTitle == "" {
		o.ClosingTitle = def.ClosingTitle
	}
	if o.ClosingSubtitle == "" {
		o.ClosingSubtitle = def.ClosingSubtitle
	}
	if o.StockVariants <= 0 {
		o.StockVariants = def.StockVariants
	}
	return o
}
