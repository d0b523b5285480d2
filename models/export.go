package models

import "time"

// Format is an export artifact format
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/html; charset=utf-8"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatPPTX, FormatPDF, FormatHTML:
		return Format(s), true
	}
	return "", false
}

// SlideStatus reports how one slide was laid out
type SlideStatus struct {
	SlideID  string `json:"slideId,omitempty"`
	Index    int    `json:"index"`
	Layout   Layout `json:"layout"`
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ExportReport is the per-slide and per-asset outcome of an export
type ExportReport struct {
	Slides []SlideStatus `json:"slides"`
	Assets []AssetStatus `json:"assets"`
}

// DegradedSlides counts slides rendered with a fallback block
func (r ExportReport) DegradedSlides() int {
	n := 0
	for _, s := range r.Slides {
		if s.Degraded {
			n++
		}
	}
	return n
}

// FailedAssets counts assets that did not resolve
func (r ExportReport) FailedAssets() int {
	n := 0
	for _, a := range r.Assets {
		if a.State != AssetOK {
			n++
		}
	}
	return n
}

// ExportRecord is a persisted export event
type ExportRecord struct {
	ID             string       `json:"id"`
	DeckID         string       `json:"deckId"`
	Format         Format       `json:"format"`
	ThemeID        string       `json:"themeId"`
	Bytes          int          `json:"bytes"`
	DegradedSlides int          `json:"degradedSlides"`
	FailedAssets   int          `json:"failedAssets"`
	Report         ExportReport `json:"report"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// StoredDeck is a persisted deck snapshot
type StoredDeck struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ThemeID   string    `json:"themeId"`
	Deck      Deck      `json:"deck"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoredDeckSummary is the listing form of a stored deck
type StoredDeckSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ThemeID    string    `json:"themeId"`
	SlideCount int       `json:"slideCount"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
