package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"

	"deckforge/models"
)

// IllustrationRequest describes one generated image
type IllustrationRequest struct {
	Prompt      string
	StyleSuffix string
	Width       int
	Height      int
	Seed        uint32
}

// IllustrationProvider turns a request into a fetchable image reference
type IllustrationProvider interface {
	Reference(req IllustrationRequest) string
}

// PollinationsProvider builds prompt URLs for a pollinations-style endpoint:
// <base><url-encoded prompt+suffix>?width=W&height=H&nologo=true&seed=S
type PollinationsProvider struct {
	BaseURL string
}

// Ensure PollinationsProvider implements IllustrationProvider
var _ IllustrationProvider = PollinationsProvider{}

// Reference implements IllustrationProvider
func (p PollinationsProvider) Reference(req IllustrationRequest) string {
	base := p.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	q := url.Values{}
	q.Set("width", fmt.Sprint(req.Width))
	q.Set("height", fmt.Sprint(req.Height))
	q.Set("nologo", "true")
	if req.Seed != 0 {
		q.Set("seed", fmt.Sprint(req.Seed))
	}
	return base + url.PathEscape(req.Prompt+req.StyleSuffix) + "?" + q.Encode()
}

// IllustrationConfig sizes and styles the three kinds of generated images
type IllustrationConfig struct {
	StyleSuffix string
	Width       int
	Height      int
	SlideSuffix string
	SlideSize   int
	StockSuffix string
	StockWidth  int
	StockHeight int
}

// IllustrationService builds and fetches generated illustrations
type IllustrationService struct {
	provider IllustrationProvider
	fetcher  Fetcher
	cfg      IllustrationConfig
}

// NewIllustrationService creates a new IllustrationService instance
func NewIllustrationService(provider IllustrationProvider, fetcher Fetcher, cfg IllustrationConfig) *IllustrationService {
	return &IllustrationService{provider: provider, fetcher: fetcher, cfg: cfg}
}

// ElementRequest is the request for a vision image element
func (s *IllustrationService) ElementRequest(prompt string) IllustrationRequest {
	return IllustrationRequest{
		Prompt:      prompt,
		StyleSuffix: s.cfg.StyleSuffix,
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		Seed:        promptSeed(prompt),
	}
}

// SlideRequest is the request for a slide illustration
func (s *IllustrationService) SlideRequest(prompt string) IllustrationRequest {
	return IllustrationRequest{
		Prompt:      prompt,
		StyleSuffix: s.cfg.SlideSuffix,
		Width:       s.cfg.SlideSize,
		Height:      s.cfg.SlideSize,
		Seed:        promptSeed(prompt),
	}
}

// StockRequest is the request for a full-bleed stock background
func (s *IllustrationService) StockRequest(prompt string) IllustrationRequest {
	return IllustrationRequest{
		Prompt:      prompt,
		StyleSuffix: s.cfg.StockSuffix,
		Width:       s.cfg.StockWidth,
		Height:      s.cfg.StockHeight,
		Seed:        promptSeed(prompt),
	}
}

// Reference returns the provider reference of a request
func (s *IllustrationService) Reference(req IllustrationRequest) string {
	return s.provider.Reference(req)
}

// Fetch downloads the image of a request
func (s *IllustrationService) Fetch(ctx context.Context, req IllustrationRequest) ([]byte, string, error) {
	ref := s.provider.Reference(req)
	data, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, ref, err
	}
	return data, ref, nil
}

// Illustrate returns a copy of slide whose image references a generated
// illustration of prompt. The slide title is used when prompt is empty.
func (s *IllustrationService) Illustrate(slide models.Slide, prompt string) (models.Slide, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = strings.TrimSpace(slide.Title)
	}
	if prompt == "" {
		return slide, &models.ValidationError{Field: "prompt", Message: "is required"}
	}
	out := slide.Clone()
	out.Image = s.provider.Reference(s.SlideRequest(prompt))
	return out, nil
}

// promptSeed derives a stable seed so that re-fetching a prompt returns the
// same picture.
func promptSeed(prompt string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return h.Sum32()%1_000_000 + 1
}
