package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"deckforge/models"
)

// ExportRepository records export runs of stored decks
// Implements ExportRepositoryInterface
type ExportRepository struct {
	q Querier
}

// NewExportRepository creates a new ExportRepository
func NewExportRepository(q Querier) *ExportRepository {
	return &ExportRepository{q: q}
}

// Ensure ExportRepository implements ExportRepositoryInterface
var _ ExportRepositoryInterface = (*ExportRepository)(nil)

// Record inserts rec, filling its id and creation time
func (r *ExportRepository) Record(ctx context.Context, rec *models.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("failed to encode export report: %w", err)
	}

	query := `
		INSERT INTO exports (id, deck_id, format, theme_id, bytes, degraded_slides, failed_assets, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	err = r.q.QueryRow(ctx, query,
		rec.ID, rec.DeckID, string(rec.Format), rec.ThemeID, rec.Bytes, rec.DegradedSlides, rec.FailedAssets, string(report),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record export of deck %s: %w", rec.DeckID, err)
	}
	return nil
}

// ListByDeck returns the export history of a deck, newest first
func (r *ExportRepository) ListByDeck(ctx context.Context, deckID string) ([]models.ExportRecord, error) {
	query := `
		SELECT id, deck_id, format, theme_id, bytes, degraded_slides, failed_assets, report, created_at
		FROM exports
		WHERE deck_id = $1
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	records := []models.ExportRecord{}
	for rows.Next() {
		var (
			rec    models.ExportRecord
			format string
			report []byte
		)
		if err := rows.Scan(&rec.ID, &rec.DeckID, &format, &rec.ThemeID, &rec.Bytes, &rec.DegradedSlides, &rec.FailedAssets, &report, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		rec.Format = models.Format(format)
		if len(report) > 0 {
			if err := json.Unmarshal(report, &rec.Report); err != nil {
				return nil, fmt.Errorf("failed to decode export report %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exports: %w", err)
	}
	return records, nil
}
