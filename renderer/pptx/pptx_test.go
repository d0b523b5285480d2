package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckforge/layout"
	"deckforge/models"
	"deckforge/theme"
)

func fixedRenderer() *Renderer {
	r := NewRenderer("deckforge")
	r.Now = func() time.Time { return time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC) }
	return r
}

func buildPlan(t *testing.T, deck *models.Deck, assets models.Assets) models.Plan {
	t.Helper()
	opts := layout.DefaultOptions()
	opts.Date = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	plan, _ := layout.BuildPlan(deck, theme.Resolve(deck.ThemeID), assets, opts)
	return plan
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

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = string(b)
	}
	return parts
}

func wellFormed(t *testing.T, name, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, name)
	}
}

func countPrefix(parts map[string]string, prefix, suffix string) int {
	n := 0
	for name := range parts {
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			n++
		}
	}
	return n
}

func TestRenderQ1Review(t *testing.T) {
	t.Parallel()

	plan := buildPlan(t, q1Deck(), nil)
	data, err := fixedRenderer().Render(context.Background(), plan, nil)
	require.NoError(t, err)

	parts := unzip(t, data)
	for name, doc := range parts {
		if strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".rels") {
			wellFormed(t, name, doc)
		}
	}

	assert.Equal(t, 4, countPrefix(parts, "ppt/slides/slide", ".xml"))
	assert.Equal(t, 4, strings.Count(parts["ppt/presentation.xml"], "<p:sldId "))
	assert.Contains(t, parts["ppt/presentation.xml"], `<p:sldSz cx="9144000" cy="5143500"/>`)
	assert.Contains(t, parts["docProps/core.xml"], "<dc:title>Q1 Review</dc:title>")
	assert.Contains(t, parts["docProps/core.xml"], "2026-03-31T09:00:00Z")

	assert.Contains(t, parts["ppt/slides/slide1.xml"], "<a:t>Q1 Review</a:t>")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "<a:t>Highlights</a:t>")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], `<a:buChar char="&#8226;"/>`)
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "<a:t>1 / 2</a:t>")
	assert.Contains(t, parts["ppt/slides/slide3.xml"], "<a:t>Rev</a:t>")
	assert.Contains(t, parts["ppt/slides/slide4.xml"], "<a:t>Thank You</a:t>")

	th := theme.Resolve("premium")
	assert.Contains(t, parts["ppt/theme/theme1.xml"], th.Colors.Accent)
	assert.NotContains(t, parts, "ppt/notesMasters/notesMaster1.xml")
	assert.Zero(t, countPrefix(parts, "ppt/media/", ""))
}

func TestRenderEmbedsAssetsOnce(t *testing.T) {
	t.Parallel()

	deck := q1Deck()
	deck.Slides[0].Image = "https://example.com/a.png"
	pic := tinyPNG(t)
	assets := models.Assets{
		layout.BackgroundKey:    {Key: layout.BackgroundKey, MIME: "image/png", Data: pic, Width: 4, Height: 4},
		layout.SlideImageKey(0): {Key: layout.SlideImageKey(0), MIME: "image/jpeg", Data: pic, Width: 4, Height: 4},
	}
	plan := buildPlan(t, deck, assets)

	data, err := fixedRenderer().Render(context.Background(), plan, assets)
	require.NoError(t, err)
	parts := unzip(t, data)

	assert.Equal(t, string(pic), parts["ppt/media/image1.png"])
	assert.Contains(t, parts, "ppt/media/image2.jpeg")
	assert.Equal(t, 2, countPrefix(parts, "ppt/media/", ""))
	assert.Contains(t, parts["ppt/slides/_rels/slide1.xml.rels"], "../media/image1.png")
	assert.Contains(t, parts["ppt/slides/_rels/slide2.xml.rels"], "../media/image2.jpeg")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "<p:pic>")
}

func TestRenderSkipsMissingImages(t *testing.T) {
	t.Parallel()

	plan := models.Plan{
		Canvas: models.Size{W: 960, H: 540},
		Title:  "x",
		Pages: []models.Page{{
			Kind:       models.PageContent,
			Background: "FFFFFF",
			Primitives: []models.Primitive{{Kind: models.PrimitiveImage, Role: models.RoleIllustration, ImageKey: "nope", Rect: models.Rect{W: 10, H: 10}}},
		}},
	}
	data, err := fixedRenderer().Render(context.Background(), plan, nil)
	require.NoError(t, err)
	parts := unzip(t, data)
	assert.NotContains(t, parts["ppt/slides/slide1.xml"], "<p:pic>")
}

func TestRenderSpeakerNotes(t *testing.T) {
	t.Parallel()

	deck := q1Deck()
	deck.Slides[1].SpeakerNotes = "Mention R&D <growth>"
	plan := buildPlan(t, deck, nil)

	data, err := fixedRenderer().Render(context.Background(), plan, nil)
	require.NoError(t, err)
	parts := unzip(t, data)

	notes, ok := parts["ppt/notesSlides/notesSlide3.xml"]
	require.True(t, ok)
	wellFormed(t, "notes", notes)
	assert.Contains(t, notes, "Mention R&amp;D &lt;growth&gt;")
	assert.Contains(t, parts, "ppt/notesMasters/notesMaster1.xml")
	assert.Contains(t, parts, "ppt/theme/theme2.xml")
	assert.Contains(t, parts["ppt/slides/_rels/slide3.xml.rels"], "../notesSlides/notesSlide3.xml")
	assert.Contains(t, parts["[Content_Types].xml"], "/ppt/notesSlides/notesSlide3.xml")
	assert.Contains(t, parts["ppt/presentation.xml"], "<p:notesMasterIdLst>")
}

func TestRenderEscapesText(t *testing.T) {
	t.Parallel()

	deck := &models.Deck{Title: "R&D <2026>", Slides: []models.Slide{
		{Title: `Quotes "and" 'apostrophes'`, Layout: models.LayoutBullets, Content: []string{"a < b & c"}},
	}}
	data, err := fixedRenderer().Render(context.Background(), buildPlan(t, deck, nil), nil)
	require.NoError(t, err)
	parts := unzip(t, data)

	wellFormed(t, "slide1", parts["ppt/slides/slide1.xml"])
	wellFormed(t, "slide2", parts["ppt/slides/slide2.xml"])
	wellFormed(t, "core", parts["docProps/core.xml"])
	assert.Contains(t, parts["ppt/slides/slide1.xml"], "R&amp;D &lt;2026&gt;")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "a &lt; b &amp; c")
}

func TestRenderCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fixedRenderer().Render(ctx, buildPlan(t, q1Deck(), nil), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnits(t *testing.T) {
	t.Parallel()

	u := newUnits(models.Size{W: 960, H: 540})
	x, y, cx, cy := u.rect(models.Rect{X: 96, Y: 54, W: 960, H: 540})
	assert.Equal(t, int64(914400), x)
	assert.Equal(t, int64(514350), y)
	assert.Equal(t, int64(SlideWidthEMU), cx)
	assert.Equal(t, int64(SlideHeightEMU), cy)

	half := newUnits(models.Size{W: 480, H: 270})
	x, _, _, _ = half.rect(models.Rect{X: 48})
	assert.Equal(t, int64(914400), x)
}

func TestShapeAttributes(t *testing.T) {
	t.Parallel()

	w := &slideWriter{u: newUnits(models.Size{W: 960, H: 540}), nextID: 1}
	w.primitive(models.Primitive{
		Kind: models.PrimitiveShape, Role: models.RoleDecor, Shape: models.ShapeEllipse,
		Rect: models.Rect{W: 96, H: 96}, Rotate: 45, Shadow: true,
		Fill: &models.Fill{Color: "#4f46e5", Transparency: 60},
		Line: &models.Stroke{Color: "CBD5E1", Width: 1},
	})
	out := w.b.String()
	assert.Contains(t, out, `prst="ellipse"`)
	assert.Contains(t, out, `rot="2700000"`)
	assert.Contains(t, out, `<a:srgbClr val="4F46E5"><a:alpha val="40000"/></a:srgbClr>`)
	assert.Contains(t, out, `<a:ln w="12700">`)
	assert.Contains(t, out, "<a:outerShdw")
	assert.Contains(t, out, `<p:cNvPr id="2" name="decor 2"/>`)
}
