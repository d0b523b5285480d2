package layout

import (
	"fmt"
	"hash/fnv"
	"strings"

	"deckforge/models"
)

// BackgroundKey is the asset key of the title page background
const BackgroundKey = "background:title"

// DefaultIllustrationPrompt is used for generated elements without content
const DefaultIllustrationPrompt = "illustration"

// SlideImageKey is the asset key of a slide's illustration
func SlideImageKey(slideIndex int) string {
	return fmt.Sprintf("slide:%d:image", slideIndex)
}

// ElementKey is the asset key of a vision image element
func ElementKey(slideIndex, elementIndex int) string {
	return fmt.Sprintf("slide:%d:element:%d", slideIndex, elementIndex)
}

// BackgroundVariant picks the stock background variant for a deck. The choice
// depends only on the title so that re-exports look the same.
func BackgroundVariant(title string, variants int) int {
	if variants <= 0 {
		return 1
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return int(h.Sum32()%uint32(variants)) + 1
}

// BackgroundCandidates lists the background references to try, in order
func BackgroundCandidates(deck *models.Deck, th models.Theme, opts Options) []string {
	opts = opts.withDefaults()
	out := []string{fmt.Sprintf("stock/%s_%d.jpg", th.ID, BackgroundVariant(deck.Title, opts.StockVariants))}
	if th.BackgroundFile != "" {
		out = append(out, "themes/"+th.BackgroundFile)
	}
	return out
}

// AssetRequests enumerates every image the plan of deck may draw
func AssetRequests(deck *models.Deck, th models.Theme, opts Options) []models.AssetRequest {
	reqs := []models.AssetRequest{{
		Key:        BackgroundKey,
		Kind:       models.AssetBackground,
		SlideIndex: -1,
		Candidates: BackgroundCandidates(deck, th, opts),
	}}

	for i, s := range deck.Slides {
		if s.Image != "" && CarriesImage(s.Layout) {
			reqs = append(reqs, models.AssetRequest{
				Key:        SlideImageKey(i),
				Kind:       models.AssetSlideImage,
				SlideID:    s.ID,
				SlideIndex: i,
				Reference:  s.Image,
			})
		}
		if s.Layout == models.LayoutVision {
			for j := range s.Elements {
				e := s.Elements[j]
				if e.Type != models.ElementImage {
					continue
				}
				req := models.AssetRequest{
					Key:        ElementKey(i, j),
					SlideID:    s.ID,
					SlideIndex: i,
					Element:    &e,
				}
				if e.Source == models.SourceCrop {
					req.Kind = models.AssetCrop
				} else {
					req.Kind = models.AssetGenerated
					req.Reference = strings.TrimSpace(e.Content)
					if req.Reference == "" {
						req.Reference = DefaultIllustrationPrompt
					}
				}
				reqs = append(reqs, req)
			}
		}
	}
	return reqs
}

// UnplacedImages reports the slide illustrations that the slide's layout has
// no slot for. They are never fetched.
func UnplacedImages(deck *models.Deck) []models.AssetStatus {
	var out []models.AssetStatus
	for i, s := range deck.Slides {
		if s.Image == "" || CarriesImage(s.Layout) {
			continue
		}
		out = append(out, models.AssetStatus{
			Key:     SlideImageKey(i),
			Kind:    models.AssetSlideImage,
			SlideID: s.ID,
			State:   models.AssetImageUnavailable,
			Error:   fmt.Sprintf("layout %q has no image slot", s.Layout),
		})
	}
	return out
}
