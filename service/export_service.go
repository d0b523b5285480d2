package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"deckforge/layout"
	"deckforge/logger"
	"deckforge/metrics"
	"deckforge/models"
	"deckforge/theme"
	"deckforge/utils"
)

// Renderer turns a plan and its resolved assets into one artifact format
type Renderer interface {
	Format() models.Format
	Render(ctx context.Context, plan models.Plan, assets models.Assets) ([]byte, error)
}

// AssetSource resolves the asset requests of a deck
type AssetSource interface {
	Resolve(ctx context.Context, deck *models.Deck, reqs []models.AssetRequest) (models.Assets, []models.AssetStatus, error)
}

var _ AssetSource = (*AssetResolver)(nil)

// ErrUnsupportedFormat is returned when no renderer is registered for a format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportRequest describes one export run
type ExportRequest struct {
	Deck *models.Deck
	// ThemeID overrides the deck's theme when set
	ThemeID string
	// Theme is an inline theme taking precedence over any id
	Theme   *models.Theme
	Formats []models.Format
	// Date is printed in slide footers; zero means now
	Date time.Time
}

// Artifact is one rendered output file
type Artifact struct {
	Format      models.Format
	FileName    string
	ContentType string
	Data        []byte
}

// ExportResult holds the artifacts of a run and its per-slide and per-asset report
type ExportResult struct {
	Title     string
	Theme     models.Theme
	Plan      models.Plan
	Assets    models.Assets
	Artifacts map[models.Format]*Artifact
	Report    models.ExportReport
}

// ExportService runs the export pipeline: snapshot, theme, assets, plan, renderers
type ExportService struct {
	themes    *theme.Registry
	assets    AssetSource
	renderers map[models.Format]Renderer
	opts      layout.Options
	log       *logger.Logger
}

// NewExportService creates a new ExportService instance. assets may be nil,
// in which case every image is reported unavailable.
func NewExportService(themes *theme.Registry, assets AssetSource, opts layout.Options, log *logger.Logger, renderers ...Renderer) *ExportService {
	if themes == nil {
		themes = theme.Default()
	}
	s := &ExportService{
		themes:    themes,
		assets:    assets,
		renderers: make(map[models.Format]Renderer, len(renderers)),
		opts:      opts,
		log:       log,
	}
	for _, r := range renderers {
		s.renderers[r.Format()] = r
	}
	return s
}

// Supports reports whether a renderer is registered for format
func (s *ExportService) Supports(format models.Format) bool {
	_, ok := s.renderers[format]
	return ok
}

// Prepare resolves the theme and assets of req and builds the plan without
// rendering anything.
func (s *ExportService) Prepare(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if req.Deck == nil {
		return nil, &models.ValidationError{Field: "deck", Message: "deck is required"}
	}
	deck := req.Deck.Clone()

	themeID := req.ThemeID
	if themeID == "" {
		themeID = deck.ThemeID
	}
	th := s.themes.Select(themeID, req.Theme)

	opts := s.opts
	if !req.Date.IsZero() {
		opts.Date = req.Date
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	reqs := layout.AssetRequests(deck, th, opts)
	assets, statuses, err := s.resolve(ctx, deck, reqs)
	if err != nil {
		return nil, err
	}
	statuses = append(statuses, layout.UnplacedImages(deck)...)

	plan, slides := layout.BuildPlan(deck, th, assets, opts)
	result := &ExportResult{
		Title:     plan.Title,
		Theme:     th,
		Plan:      plan,
		Assets:    assets,
		Artifacts: map[models.Format]*Artifact{},
		Report:    models.ExportReport{Slides: slides, Assets: statuses},
	}
	if n := result.Report.DegradedSlides(); n > 0 {
		metrics.DegradedSlidesTotal.Add(float64(n))
		s.log.WithFields(map[string]any{"deck": plan.Title, "degraded": n}).Warn("slides rendered with fallback layout")
	}
	return result, nil
}

func (s *ExportService) resolve(ctx context.Context, deck *models.Deck, reqs []models.AssetRequest) (models.Assets, []models.AssetStatus, error) {
	if s.assets != nil {
		return s.assets.Resolve(ctx, deck, reqs)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	statuses := make([]models.AssetStatus, len(reqs))
	for i, r := range reqs {
		statuses[i] = models.AssetStatus{
			Key: r.Key, Kind: r.Kind, SlideID: r.SlideID,
			State: models.AssetImageUnavailable, Error: "no asset source configured",
		}
	}
	return models.Assets{}, statuses, nil
}

// Export prepares req and runs every requested renderer concurrently. Any
// renderer failure or cancellation discards all output.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	formats := req.Formats
	if len(formats) == 0 {
		formats = []models.Format{models.FormatPPTX}
	}
	for _, f := range formats {
		if !s.Supports(f) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
		}
	}

	result, err := s.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	artifacts := make([]*Artifact, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		renderer := s.renderers[format]
		g.Go(func() error {
			started := time.Now()
			data, err := renderer.Render(gctx, result.Plan, result.Assets)
			if err == nil {
				err = gctx.Err()
			}
			if err != nil {
				metrics.ObserveExport(string(format), "error", started)
				return fmt.Errorf("render %s: %w", format, err)
			}
			metrics.ObserveExport(string(format), "ok", started)
			artifacts[i] = &Artifact{
				Format:      format,
				FileName:    utils.ExportFileName(result.Title, string(format)),
				ContentType: format.ContentType(),
				Data:        data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, a := range artifacts {
		result.Artifacts[a.Format] = a
	}
	s.log.WithFields(map[string]any{
		"deck":           result.Title,
		"theme":          result.Theme.ID,
		"formats":        formats,
		"degradedSlides": result.Report.DegradedSlides(),
		"failedAssets":   result.Report.FailedAssets(),
	}).Info("export completed")
	return result, nil
}
