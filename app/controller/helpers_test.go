package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"deckforge/layout"
	"deckforge/logger"
	"deckforge/models"
	"deckforge/renderer/pdf"
	"deckforge/renderer/pptx"
	"deckforge/repository"
	"deckforge/service"
	"deckforge/theme"
)

const deckJSON = `{
	"title": "Quarterly Review",
	"themeId": "nature",
	"slides": [
		{"id": "s1", "title": "Intro", "layout": "title", "content": ["Hello"]},
		{"id": "s2", "title": "Numbers", "layout": "bullets", "content": ["Up", "Right"]}
	]
}`

type memDecks struct {
	mu    sync.Mutex
	decks map[string]*models.StoredDeck
	err   error
}

var _ repository.DeckRepositoryInterface = (*memDecks)(nil)

func newMemDecks() *memDecks {
	return &memDecks{decks: map[string]*models.StoredDeck{}}
}

func (m *memDecks) Save(_ context.Context, id string, deck *models.Deck) (*models.StoredDeck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	stored := &models.StoredDeck{ID: id, Title: deck.Title, ThemeID: deck.ThemeID, Deck: *deck.Clone(), CreatedAt: now, UpdatedAt: now}
	if prev, ok := m.decks[id]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	m.decks[id] = stored
	return stored, nil
}

func (m *memDecks) Get(_ context.Context, id string) (*models.StoredDeck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	stored, ok := m.decks[id]
	if !ok {
		return nil, fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}
	out := *stored
	out.Deck = *stored.Deck.Clone()
	return &out, nil
}

func (m *memDecks) List(_ context.Context, limit, offset int) ([]models.StoredDeckSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.StoredDeckSummary, 0, len(m.decks))
	for _, d := range m.decks {
		out = append(out, models.StoredDeckSummary{ID: d.ID, Title: d.Title, ThemeID: d.ThemeID, SlideCount: len(d.Deck.Slides), UpdatedAt: d.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDecks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}
	delete(m.decks, id)
	return nil
}

type memRecords struct {
	mu      sync.Mutex
	records []models.ExportRecord
	err     error
}

var _ repository.ExportRepositoryInterface = (*memRecords)(nil)

func (m *memRecords) Record(_ context.Context, rec *models.ExportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	rec.ID = fmt.Sprintf("rec-%d", len(m.records)+1)
	m.records = append(m.records, *rec)
	return nil
}

func (m *memRecords) ListByDeck(_ context.Context, deckID string) ([]models.ExportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExportRecord
	for _, r := range m.records {
		if r.DeckID == deckID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubPrinter struct {
	pages int
}

func (p *stubPrinter) PrintPDF(_ context.Context, document string, _ pdf.Paper) ([]byte, error) {
	return []byte("%PDF-1.4 stub " + fmt.Sprint(len(document))), nil
}

func (p *stubPrinter) Screenshots(_ context.Context, _ string, _ pdf.Paper, pages int) ([][]byte, error) {
	p.pages = pages
	out := make([][]byte, pages)
	for i := range out {
		out[i] = []byte(fmt.Sprintf("png-%d", i+1))
	}
	return out, nil
}

func newExporter() (*service.ExportService, *pdf.Renderer) {
	opts := layout.DefaultOptions()
	opts.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pdfRenderer := pdf.NewRenderer(&stubPrinter{})
	exporter := service.NewExportService(
		theme.Default(),
		nil,
		opts,
		logger.Nop(),
		pptx.NewRenderer("deckforge-test"),
		pdfRenderer,
		pdf.NewHTMLRenderer(),
	)
	return exporter, pdfRenderer
}
