package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"deckforge/models"
)

// Querier is the subset of a pgx pool used by the repositories
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DeckRepositoryInterface defines the contract for stored deck operations
type DeckRepositoryInterface interface {
	Save(ctx context.Context, id string, deck *models.Deck) (*models.StoredDeck, error)
	Get(ctx context.Context, id string) (*models.StoredDeck, error)
	List(ctx context.Context, limit, offset int) ([]models.StoredDeckSummary, error)
	Delete(ctx context.Context, id string) error
}

// ExportRepositoryInterface defines the contract for export history operations
type ExportRepositoryInterface interface {
	Record(ctx context.Context, rec *models.ExportRecord) error
	ListByDeck(ctx context.Context, deckID string) ([]models.ExportRecord, error)
}
