package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"deckforge/models"
)

// DeckRepository handles database operations for stored decks
// Implements DeckRepositoryInterface
type DeckRepository struct {
	q Querier
}

// NewDeckRepository creates a new DeckRepository
func NewDeckRepository(q Querier) *DeckRepository {
	return &DeckRepository{q: q}
}

// Ensure DeckRepository implements DeckRepositoryInterface
var _ DeckRepositoryInterface = (*DeckRepository)(nil)

// Save inserts deck under id, or replaces the stored deck when id exists.
// An empty id allocates a new one.
func (r *DeckRepository) Save(ctx context.Context, id string, deck *models.Deck) (*models.StoredDeck, error) {
	if deck == nil {
		return nil, &models.ValidationError{Field: "deck", Message: "deck is required"}
	}
	if id == "" {
		id = uuid.NewString()
	}
	body, err := json.Marshal(deck)
	if err != nil {
		return nil, fmt.Errorf("failed to encode deck: %w", err)
	}

	stored := &models.StoredDeck{ID: id, Title: deck.Title, ThemeID: deck.ThemeID, Deck: *deck}
	query := `
		INSERT INTO decks (id, title, theme_id, body)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, theme_id = EXCLUDED.theme_id, body = EXCLUDED.body, updated_at = now()
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query, id, deck.Title, deck.ThemeID, string(body)).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save deck %s: %w", id, err)
	}
	return stored, nil
}

// Get returns the stored deck with id
func (r *DeckRepository) Get(ctx context.Context, id string) (*models.StoredDeck, error) {
	query := `SELECT id, title, theme_id, body, created_at, updated_at FROM decks WHERE id = $1`

	var (
		stored models.StoredDeck
		body   []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&stored.ID, &stored.Title, &stored.ThemeID, &body, &stored.CreatedAt, &stored.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &stored.Deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck %s: %w", id, err)
	}
	return &stored, nil
}

// List returns deck summaries, most recently updated first
func (r *DeckRepository) List(ctx context.Context, limit, offset int) ([]models.StoredDeckSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT id, title, theme_id, COALESCE(jsonb_array_length(body->'slides'), 0), updated_at
		FROM decks
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	summaries := []models.StoredDeckSummary{}
	for rows.Next() {
		var s models.StoredDeckSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ThemeID, &s.SlideCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}
	return summaries, nil
}

// Delete removes the deck with id and its export history
func (r *DeckRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}
	return nil
}
