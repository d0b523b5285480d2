package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"deckforge/logger"
	"deckforge/models"
	"deckforge/repository"
	"deckforge/service"
)

// DeckController handles HTTP requests for stored decks
type DeckController struct {
	decks    repository.DeckRepositoryInterface
	records  repository.ExportRepositoryInterface
	exporter Exporter
	log      *logger.Logger
}

// NewDeckController creates a new DeckController. decks and records may be
// nil when no database is configured; storage routes then answer 503.
func NewDeckController(decks repository.DeckRepositoryInterface, records repository.ExportRepositoryInterface, exporter Exporter, log *logger.Logger) *DeckController {
	return &DeckController{decks: decks, records: records, exporter: exporter, log: log}
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Slides int    `json:"slides,omitempty"`
	Error  string `json:"error,omitempty"`
	Field  string `json:"field,omitempty"`
}

// Validate handles POST /decks/validate
func (c *DeckController) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, c.log, "validate", err)
		return
	}
	deck, err := models.ParseDeck(data)
	if err != nil {
		writeError(w, c.log, "validate", err)
		return
	}
	if err := models.ValidateDeck(deck); err != nil {
		resp := validateResponse{Error: err.Error()}
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			resp.Field = verr.Field
		}
		writeJSON(w, c.log, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, c.log, http.StatusOK, validateResponse{Valid: true, Slides: len(deck.Slides)})
}

// Collection handles GET and POST /decks
func (c *DeckController) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.List(w, r)
	case http.MethodPost:
		c.Create(w, r)
	default:
		methodNotAllowed(w)
	}
}

// Item handles GET, PUT and DELETE /decks/{id}
func (c *DeckController) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.Get(w, r)
	case http.MethodPut:
		c.Update(w, r)
	case http.MethodDelete:
		c.Delete(w, r)
	default:
		methodNotAllowed(w)
	}
}

// List handles GET /decks?limit=&offset=
func (c *DeckController) List(w http.ResponseWriter, r *http.Request) {
	if c.decks == nil {
		writeError(w, c.log, "list decks", ErrStorageUnavailable)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, c.log, "list decks", err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, c.log, "list decks", err)
		return
	}

	decks, err := c.decks.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, c.log, "list decks", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, map[string]any{
		"decks": decks,
		"count": len(decks),
	})
}

// Create handles POST /decks
func (c *DeckController) Create(w http.ResponseWriter, r *http.Request) {
	if c.decks == nil {
		writeError(w, c.log, "create deck", ErrStorageUnavailable)
		return
	}

	deck, err := decodeDeck(r)
	if err != nil {
		writeError(w, c.log, "create deck", err)
		return
	}

	stored, err := c.decks.Save(r.Context(), uuid.NewString(), deck)
	if err != nil {
		writeError(w, c.log, "create deck", err)
		return
	}
	c.log.Infof("✓ Deck %s saved: %q", stored.ID, stored.Title)
	writeJSON(w, c.log, http.StatusCreated, stored)
}

// Get handles GET /decks/{id}
func (c *DeckController) Get(w http.ResponseWriter, r *http.Request) {
	if c.decks == nil {
		writeError(w, c.log, "get deck", ErrStorageUnavailable)
		return
	}

	stored, err := c.decks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, c.log, "get deck", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, stored)
}

// Update handles PUT /decks/{id}
func (c *DeckController) Update(w http.ResponseWriter, r *http.Request) {
	if c.decks == nil {
		writeError(w, c.log, "update deck", ErrStorageUnavailable)
		return
	}

	id := r.PathValue("id")
	if _, err := c.decks.Get(r.Context(), id); err != nil {
		writeError(w, c.log, "update deck", err)
		return
	}

	deck, err := decodeDeck(r)
	if err != nil {
		writeError(w, c.log, "update deck", err)
		return
	}

	stored, err := c.decks.Save(r.Context(), id, deck)
	if err != nil {
		writeError(w, c.log, "update deck", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, stored)
}

// Delete handles DELETE /decks/{id}
func (c *DeckController) Delete(w http.ResponseWriter, r *http.Request) {
	if c.decks == nil {
		writeError(w, c.log, "delete deck", ErrStorageUnavailable)
		return
	}

	id := r.PathValue("id")
	if err := c.decks.Delete(r.Context(), id); err != nil {
		writeError(w, c.log, "delete deck", err)
		return
	}
	c.log.Infof("🗑️  Deck %s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Exports handles GET /decks/{id}/exports
func (c *DeckController) Exports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if c.decks == nil || c.records == nil {
		writeError(w, c.log, "list exports", ErrStorageUnavailable)
		return
	}

	id := r.PathValue("id")
	if _, err := c.decks.Get(r.Context(), id); err != nil {
		writeError(w, c.log, "list exports", err)
		return
	}
	records, err := c.records.ListByDeck(r.Context(), id)
	if err != nil {
		writeError(w, c.log, "list exports", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, map[string]any{
		"exports": records,
		"count":   len(records),
	})
}

// Export handles GET /decks/{id}/export?format=&theme=. The export is
// recorded; a failure to record it does not fail the response.
func (c *DeckController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if c.decks == nil {
		writeError(w, c.log, "export deck", ErrStorageUnavailable)
		return
	}

	format, err := parseFormat(r)
	if err != nil {
		writeError(w, c.log, "export deck", err)
		return
	}
	if !c.exporter.Supports(format) {
		writeError(w, c.log, "export deck", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, format))
		return
	}

	id := r.PathValue("id")
	stored, err := c.decks.Get(r.Context(), id)
	if err != nil {
		writeError(w, c.log, "export deck", err)
		return
	}

	result, err := c.exporter.Export(r.Context(), service.ExportRequest{
		Deck:    &stored.Deck,
		ThemeID: r.URL.Query().Get("theme"),
		Formats: []models.Format{format},
	})
	if err != nil {
		writeError(w, c.log, "export deck", err)
		return
	}

	if c.records != nil {
		rec := &models.ExportRecord{
			DeckID:         id,
			Format:         format,
			ThemeID:        result.Theme.ID,
			Bytes:          len(result.Artifacts[format].Data),
			DegradedSlides: result.Report.DegradedSlides(),
			FailedAssets:   result.Report.FailedAssets(),
			Report:         result.Report,
		}
		if err := c.records.Record(r.Context(), rec); err != nil {
			c.log.Error(err, fmt.Sprintf("⚠️  Failed to record export of deck %s", id))
		}
	}

	writeArtifact(w, c.log, result, format)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &models.ValidationError{Field: name, Message: fmt.Sprintf("invalid value %q", raw)}
	}
	return n, nil
}
