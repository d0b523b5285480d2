package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeckClone(t *testing.T) {
	t.Parallel()

	z := 3.0
	orig := &Deck{
		Title: "Q1 Review",
		Slides: []Slide{{
			ID:        "s1",
			Layout:    LayoutVision,
			Content:   []string{"a"},
			GridItems: []GridItem{{Title: "x"}},
			Elements:  []Element{{Type: ElementText, ZIndex: &z}},
		}},
	}

	snap := orig.Clone()
	orig.Title = "changed"
	orig.Slides[0].Content[0] = "changed"
	orig.Slides[0].GridItems[0].Title = "changed"
	*orig.Slides[0].Elements[0].ZIndex = 9
	orig.Slides = append(orig.Slides, Slide{ID: "s2"})

	require.Equal(t, "Q1 Review", snap.Title)
	require.Len(t, snap.Slides, 1)
	require.Equal(t, "a", snap.Slides[0].Content[0])
	require.Equal(t, "x", snap.Slides[0].GridItems[0].Title)
	require.Equal(t, 3.0, snap.Slides[0].Elements[0].Z())
}

func TestElementZ(t *testing.T) {
	t.Parallel()

	z := -1.5
	require.Equal(t, 0.0, Element{}.Z())
	require.Equal(t, -1.5, Element{ZIndex: &z}.Z())
}

func TestLayoutIsGrid(t *testing.T) {
	t.Parallel()

	require.True(t, LayoutGrid3.IsGrid())
	require.True(t, Layout("grid_7").IsGrid())
	require.False(t, LayoutFlow.IsGrid())
}

func TestExportReportCounts(t *testing.T) {
	t.Parallel()

	r := ExportReport{
		Slides: []SlideStatus{{Degraded: true}, {}, {Degraded: true}},
		Assets: []AssetStatus{{State: AssetOK}, {State: AssetMissingSourceImage}},
	}
	require.Equal(t, 2, r.DegradedSlides())
	require.Equal(t, 1, r.FailedAssets())
}
