package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckforge/layout"
	"deckforge/logger"
	"deckforge/models"
	"deckforge/renderer/pdf"
	"deckforge/renderer/pptx"
	"deckforge/theme"
)

type recordingRenderer struct {
	format models.Format
	err    error

	mu    sync.Mutex
	plans []models.Plan
}

func (r *recordingRenderer) Format() models.Format { return r.format }

func (r *recordingRenderer) Render(_ context.Context, plan models.Plan, _ models.Assets) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, plan)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(fmt.Sprintf("%s:%d", r.format, len(plan.Pages))), nil
}

type stubPrinter struct{}

func (stubPrinter) PrintPDF(_ context.Context, document string, _ pdf.Paper) ([]byte, error) {
	return []byte("%PDF " + fmt.Sprint(strings.Count(document, `<section class="page"`))), nil
}

func (stubPrinter) Screenshots(_ context.Context, _ string, _ pdf.Paper, pages int) ([][]byte, error) {
	return make([][]byte, pages), nil
}

func q1Deck() *models.Deck {
	return &models.Deck{
		Title:   "Q1 Review",
		ThemeID: "premium",
		Slides: []models.Slide{
			{ID: "s1", Title: "Highlights", Layout: models.LayoutBullets, Content: []string{"A", "B"}},
			{ID: "s2", Title: "Metrics", Layout: models.LayoutGrid4, GridItems: []models.GridItem{{Title: "Rev", Content: "+12%"}}},
		},
	}
}

var exportDate = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

func TestExportQ1ReviewEndToEnd(t *testing.T) {
	t.Parallel()

	svc := NewExportService(theme.Default(), nil, layout.DefaultOptions(), logger.Nop(),
		pptx.NewRenderer("deckforge"), pdf.NewRenderer(stubPrinter{}), pdf.NewHTMLRenderer())

	res, err := svc.Export(context.Background(), ExportRequest{
		Deck:    q1Deck(),
		Formats: []models.Format{models.FormatPPTX, models.FormatPDF, models.FormatHTML},
		Date:    exportDate,
	})
	require.NoError(t, err)

	require.Len(t, res.Artifacts, 3)
	deckFile := res.Artifacts[models.FormatPPTX]
	assert.Equal(t, "Q1_Review.pptx", deckFile.FileName)
	assert.Equal(t, models.FormatPPTX.ContentType(), deckFile.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(deckFile.Data), int64(len(deckFile.Data)))
	require.NoError(t, err)
	slides := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides++
		}
	}
	assert.Equal(t, 4, slides)

	assert.Equal(t, "%PDF 4", string(res.Artifacts[models.FormatPDF].Data))
	assert.Equal(t, "Q1_Review.pdf", res.Artifacts[models.FormatPDF].FileName)
	assert.Contains(t, string(res.Artifacts[models.FormatHTML].Data), "Mar 31, 2026")

	assert.Equal(t, "premium", res.Theme.ID)
	assert.Len(t, res.Report.Slides, 2)
	assert.Zero(t, res.Report.DegradedSlides())
	// no asset source: the title background is reported, the deck still renders
	require.Len(t, res.Report.Assets, 1)
	assert.Equal(t, models.AssetImageUnavailable, res.Report.Assets[0].State)
}

var (
	slideShapeWidth = regexp.MustCompile(`(?s)name="([a-z-]+) \d+"/>.*?<a:ext cx="(\d+)"`)
	pageItemWidth   = regexp.MustCompile(`data-role="([a-z-]+)" style="left:[^;]*;top:[^;]*;width:([0-9.]+)px`)
)

// slideShapes returns, per slide part, the shape widths in canvas units keyed by role
func slideShapes(t *testing.T, data []byte) []map[string][]float64 {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := map[string]*zip.File{}
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	var out []map[string][]float64
	for n := 1; ; n++ {
		f, ok := parts[fmt.Sprintf("ppt/slides/slide%d.xml", n)]
		if !ok {
			return out
		}
		rc, err := f.Open()
		require.NoError(t, err)
		xml, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)

		roles := map[string][]float64{}
		for _, m := range slideShapeWidth.FindAllStringSubmatch(string(xml), -1) {
			cx, err := strconv.ParseInt(m[2], 10, 64)
			require.NoError(t, err)
			roles[m[1]] = append(roles[m[1]], float64(cx)/9525)
		}
		out = append(out, roles)
	}
}

// pageItems returns, per HTML page, the item widths in px keyed by role
func pageItems(t *testing.T, document string) []map[string][]float64 {
	t.Helper()
	sections := strings.Split(document, `<section class="page"`)[1:]
	out := make([]map[string][]float64, len(sections))
	for i, section := range sections {
		roles := map[string][]float64{}
		for _, m := range pageItemWidth.FindAllStringSubmatch(section, -1) {
			w, err := strconv.ParseFloat(m[2], 64)
			require.NoError(t, err)
			roles[m[1]] = append(roles[m[1]], w)
		}
		out[i] = roles
	}
	return out
}

func TestExportFormatsAgreeOnProgressAndGrid(t *testing.T) {
	t.Parallel()

	svc := NewExportService(theme.Default(), nil, layout.DefaultOptions(), logger.Nop(),
		pptx.NewRenderer("deckforge"), pdf.NewHTMLRenderer())
	res, err := svc.Export(context.Background(), ExportRequest{
		Deck:    q1Deck(),
		Formats: []models.Format{models.FormatPPTX, models.FormatHTML},
		Date:    exportDate,
	})
	require.NoError(t, err)

	slides := slideShapes(t, res.Artifacts[models.FormatPPTX].Data)
	pages := pageItems(t, string(res.Artifacts[models.FormatHTML].Data))
	// title, two content pages, closing
	require.Len(t, slides, 4)
	require.Len(t, pages, 4)

	const total = 2
	for i := 0; i < total; i++ {
		slide, page := slides[i+1], pages[i+1]
		want := float64(i+1) / total

		require.Len(t, slide[models.RoleProgressFill], 1, "slide %d", i)
		require.Len(t, slide[models.RoleProgressTrack], 1, "slide %d", i)
		require.Len(t, page[models.RoleProgressFill], 1, "page %d", i)
		require.Len(t, page[models.RoleProgressTrack], 1, "page %d", i)

		assert.InDelta(t, want, slide[models.RoleProgressFill][0]/slide[models.RoleProgressTrack][0], 1e-6)
		assert.InDelta(t, want, page[models.RoleProgressFill][0]/page[models.RoleProgressTrack][0], 1e-6)
		assert.InDelta(t, slide[models.RoleProgressFill][0], page[models.RoleProgressFill][0], 0.01)
	}

	// the grid_4 page: one filled cell, three blank ones
	for name, roles := range map[string]map[string][]float64{"pptx": slides[2], "html": pages[2]} {
		assert.Len(t, roles[models.RoleGridCell], 4, name)
		assert.Len(t, roles[models.RoleGridText], 1, name)
		assert.Len(t, roles[models.RoleGridTitle], 1, name)
	}
}

func TestExportReportsImagesWithoutSlot(t *testing.T) {
	t.Parallel()

	deck := q1Deck()
	deck.Slides[1].Image = "https://cdn.test/chart.png"
	svc := NewExportService(theme.Default(), nil, layout.DefaultOptions(), logger.Nop(), pptx.NewRenderer("deckforge"))

	res, err := svc.Prepare(context.Background(), ExportRequest{Deck: deck, Date: exportDate})
	require.NoError(t, err)

	var found bool
	for _, st := range res.Report.Assets {
		if st.Key == layout.SlideImageKey(1) {
			found = true
			assert.Equal(t, "s2", st.SlideID)
			assert.Equal(t, models.AssetImageUnavailable, st.State)
			assert.Contains(t, st.Error, "no image slot")
		}
	}
	assert.True(t, found, "grid illustration is reported")
	assert.Equal(t, 2, res.Report.FailedAssets())
}

func TestExportDefaultsToPPTX(t *testing.T) {
	t.Parallel()

	r := &recordingRenderer{format: models.FormatPPTX}
	svc := NewExportService(nil, nil, layout.DefaultOptions(), nil, r)

	res, err := svc.Export(context.Background(), ExportRequest{Deck: q1Deck(), Date: exportDate})
	require.NoError(t, err)
	require.Contains(t, res.Artifacts, models.FormatPPTX)
	assert.Equal(t, "pptx:4", string(res.Artifacts[models.FormatPPTX].Data))
}

func TestExportThemeSelection(t *testing.T) {
	t.Parallel()

	r := &recordingRenderer{format: models.FormatPPTX}
	svc := NewExportService(theme.Default(), nil, layout.DefaultOptions(), nil, r)

	res, err := svc.Export(context.Background(), ExportRequest{Deck: q1Deck(), ThemeID: "cyber"})
	require.NoError(t, err)
	assert.Equal(t, "cyber", res.Theme.ID)
	assert.Equal(t, "cyber", res.Plan.ThemeID)

	inline := &models.Theme{ID: "brand", Colors: models.ThemeColors{Primary: "112233"}}
	res, err = svc.Export(context.Background(), ExportRequest{Deck: q1Deck(), ThemeID: "cyber", Theme: inline})
	require.NoError(t, err)
	assert.Equal(t, "112233", res.Theme.Colors.Primary)
	assert.NotEmpty(t, res.Theme.Colors.Accent, "missing roles are completed")

	res, err = svc.Export(context.Background(), ExportRequest{Deck: &models.Deck{Title: "x", ThemeID: "does-not-exist"}})
	require.NoError(t, err)
	assert.Equal(t, "premium", res.Theme.ID)
}

func TestExportDegradesBadSlides(t *testing.T) {
	t.Parallel()

	deck := q1Deck()
	deck.Slides = append(deck.Slides, models.Slide{ID: "bad", Title: "Broken", Layout: "grid_9", Content: []string{"keep me"}})

	r := &recordingRenderer{format: models.FormatPPTX}
	res, err := NewExportService(nil, nil, layout.DefaultOptions(), nil, r).Export(context.Background(), ExportRequest{Deck: deck})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Report.DegradedSlides())
	bad := res.Report.Slides[2]
	assert.Equal(t, "bad", bad.SlideID)
	assert.True(t, bad.Degraded)
	assert.NotEmpty(t, bad.Error)
	assert.Len(t, res.Plan.ContentPages(), 3)
}

func TestExportDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	deck := q1Deck()
	before := deck.Clone()
	r := &recordingRenderer{format: models.FormatPPTX}
	_, err := NewExportService(nil, nil, layout.DefaultOptions(), nil, r).Export(context.Background(), ExportRequest{Deck: deck})
	require.NoError(t, err)
	assert.Equal(t, before, deck)
}

func TestExportErrors(t *testing.T) {
	t.Parallel()

	ok := &recordingRenderer{format: models.FormatPPTX}
	failing := &recordingRenderer{format: models.FormatPDF, err: errors.New("chrome crashed")}
	svc := NewExportService(nil, nil, layout.DefaultOptions(), nil, ok, failing)

	_, err := svc.Export(context.Background(), ExportRequest{Deck: q1Deck(), Formats: []models.Format{models.FormatHTML}})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	res, err := svc.Export(context.Background(), ExportRequest{Deck: q1Deck(), Formats: []models.Format{models.FormatPPTX, models.FormatPDF}})
	require.ErrorContains(t, err, "chrome crashed")
	assert.Nil(t, res, "partial output is discarded")

	_, err = svc.Export(context.Background(), ExportRequest{})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestExportCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recordingRenderer{format: models.FormatPPTX}
	svc := NewExportService(nil, newTestResolver(newMapFetcher(nil), ""), layout.DefaultOptions(), nil, r)
	res, err := svc.Export(ctx, ExportRequest{Deck: q1Deck()})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Empty(t, r.plans)
}
