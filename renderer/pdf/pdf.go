package pdf

import (
	"context"
	"errors"

	"deckforge/models"
)

// ErrNoPrinter is returned when PDF output is requested without a browser
var ErrNoPrinter = errors.New("no PDF printer configured")

// Renderer prints the page document of a plan to PDF
type Renderer struct {
	printer Printer
}

// NewRenderer returns a PDF renderer using printer
func NewRenderer(printer Printer) *Renderer {
	return &Renderer{printer: printer}
}

// Format implements the export renderer contract
func (r *Renderer) Format() models.Format {
	return models.FormatPDF
}

// Render builds the page document and prints it. Speaker notes are not
// part of the printed output.
func (r *Renderer) Render(ctx context.Context, plan models.Plan, assets models.Assets) ([]byte, error) {
	if r.printer == nil {
		return nil, ErrNoPrinter
	}
	doc, err := Document(ctx, plan, assets)
	if err != nil {
		return nil, err
	}
	return r.printer.PrintPDF(ctx, doc, PaperFor(plan.Canvas))
}

// Screenshots renders one PNG per plan page
func (r *Renderer) Screenshots(ctx context.Context, plan models.Plan, assets models.Assets) ([][]byte, error) {
	if r.printer == nil {
		return nil, ErrNoPrinter
	}
	doc, err := Document(ctx, plan, assets)
	if err != nil {
		return nil, err
	}
	return r.printer.Screenshots(ctx, doc, PaperFor(plan.Canvas), len(plan.Pages))
}

// HTMLRenderer returns the page document itself, used as the preview
type HTMLRenderer struct{}

// NewHTMLRenderer returns the preview renderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Format implements the export renderer contract
func (HTMLRenderer) Format() models.Format {
	return models.FormatHTML
}

// Render returns the page document as UTF-8 bytes
func (HTMLRenderer) Render(ctx context.Context, plan models.Plan, assets models.Assets) ([]byte, error) {
	doc, err := Document(ctx, plan, assets)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
