package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"deckforge/logger"
	"deckforge/models"
	"deckforge/service"
)

// Exporter runs the export pipeline
type Exporter interface {
	Supports(format models.Format) bool
	Prepare(ctx context.Context, req service.ExportRequest) (*service.ExportResult, error)
	Export(ctx context.Context, req service.ExportRequest) (*service.ExportResult, error)
}

// PageCapturer renders page images of a prepared plan
type PageCapturer interface {
	Screenshots(ctx context.Context, plan models.Plan, assets models.Assets) ([][]byte, error)
}

var _ Exporter = (*service.ExportService)(nil)

// exportPayload is the wrapped form of an export body. A bare deck is
// accepted as well.
type exportPayload struct {
	Deck    *models.Deck  `json:"deck"`
	ThemeID string        `json:"themeId,omitempty"`
	Theme   *models.Theme `json:"theme,omitempty"`
}

// planResponse is the body of POST /export/plan
type planResponse struct {
	Title  string              `json:"title"`
	Theme  models.Theme        `json:"theme"`
	Plan   models.Plan         `json:"plan"`
	Report models.ExportReport `json:"report"`
}

// ExportController handles HTTP requests for stateless exports
type ExportController struct {
	exporter Exporter
	pages    PageCapturer
	log      *logger.Logger
}

// NewExportController creates a new ExportController. pages may be nil,
// in which case page images are not served.
func NewExportController(exporter Exporter, pages PageCapturer, log *logger.Logger) *ExportController {
	return &ExportController{exporter: exporter, pages: pages, log: log}
}

// Export handles POST /export?format=pptx|pdf|html&theme=id
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	format, err := parseFormat(r)
	if err != nil {
		writeError(w, c.log, "export", err)
		return
	}
	if !c.exporter.Supports(format) {
		writeError(w, c.log, "export", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, format))
		return
	}

	req, err := c.decodeRequest(r)
	if err != nil {
		writeError(w, c.log, "export", err)
		return
	}
	req.Formats = []models.Format{format}

	c.log.Infof("📥 Export request received: %q (%d slides, %s)", req.Deck.Title, len(req.Deck.Slides), format)
	result, err := c.exporter.Export(r.Context(), req)
	if err != nil {
		writeError(w, c.log, "export", err)
		return
	}

	writeArtifact(w, c.log, result, format)
	c.log.Infof("✅ Export completed: %s (%d degraded slides, %d failed assets)",
		result.Artifacts[format].FileName, result.Report.DegradedSlides(), result.Report.FailedAssets())
}

// Plan handles POST /export/plan. It returns the laid out pages and the
// report without rendering any artifact.
func (c *ExportController) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	req, err := c.decodeRequest(r)
	if err != nil {
		writeError(w, c.log, "plan", err)
		return
	}

	result, err := c.exporter.Prepare(r.Context(), req)
	if err != nil {
		writeError(w, c.log, "plan", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, planResponse{
		Title:  result.Title,
		Theme:  result.Theme,
		Plan:   result.Plan,
		Report: result.Report,
	})
}

// Page handles POST /export/png?page=N and returns page N (1-based) as a PNG
func (c *ExportController) Page(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if c.pages == nil {
		writeError(w, c.log, "page", fmt.Errorf("%w: png", service.ErrUnsupportedFormat))
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, c.log, "page", &models.ValidationError{Field: "page", Message: fmt.Sprintf("invalid page %q", raw)})
			return
		}
		page = n
	}

	req, err := c.decodeRequest(r)
	if err != nil {
		writeError(w, c.log, "page", err)
		return
	}
	result, err := c.exporter.Prepare(r.Context(), req)
	if err != nil {
		writeError(w, c.log, "page", err)
		return
	}
	if page > len(result.Plan.Pages) {
		writeError(w, c.log, "page", fmt.Errorf("page %d of %d: %w", page, len(result.Plan.Pages), models.ErrNotFound))
		return
	}

	shots, err := c.pages.Screenshots(r.Context(), result.Plan, result.Assets)
	if err != nil {
		writeError(w, c.log, "page", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"page-%02d.png\"", page))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(shots[page-1]); err != nil {
		c.log.Error(err, "❌ Failed to write page image")
	}
}

func (c *ExportController) decodeRequest(r *http.Request) (service.ExportRequest, error) {
	data, err := readBody(r)
	if err != nil {
		return service.ExportRequest{}, err
	}

	var payload exportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return service.ExportRequest{}, &models.ParseError{Err: err}
	}
	if payload.Deck == nil {
		deck, err := models.ParseDeck(data)
		if err != nil {
			return service.ExportRequest{}, err
		}
		payload = exportPayload{Deck: deck}
	}

	if err := models.ValidateDeck(payload.Deck); err != nil {
		return service.ExportRequest{}, err
	}
	models.NormalizeDeck(payload.Deck)
	if payload.Theme != nil {
		if err := models.ValidateTheme(payload.Theme); err != nil {
			return service.ExportRequest{}, err
		}
	}

	req := service.ExportRequest{Deck: payload.Deck, ThemeID: payload.ThemeID, Theme: payload.Theme}
	if id := strings.TrimSpace(r.URL.Query().Get("theme")); id != "" {
		req.ThemeID = id
	}
	return req, nil
}
