package ports

import (
	"context"

	"bonusMarket/internal/domain"
)

// PairRepository stores the pair catalog together with the user's favorites.
type PairRepository interface {
	// Upsert inserts or refreshes pairs. Market figures are overwritten, the
	// favorite flag of an existing pair is kept.
	Upsert(ctx context.Context, pairs []domain.Pair) error
	// FindByID retrieves a pair by its identifier.
	// Returns ErrNotFound if no pair has that identifier.
	FindByID(ctx context.Context, id string) (domain.Pair, error)
	// FindAll retrieves all pairs, favorites first, then by identifier.
	FindAll(ctx context.Context) ([]domain.Pair, error)
	// SetFavorite updates the favorite flag of a pair.
	SetFavorite(ctx context.Context, id string, favorite bool) error
}

// QuoteSource supplies reference market figures for catalog pairs.
type QuoteSource interface {
	// Name identifies the source in logs.
	Name() string
	// Quotes returns the given pairs with LastPrice, Change24h and Volume24h
	// refreshed. Pairs the source does not know are returned unchanged.
	Quotes(ctx context.Context, pairs []domain.Pair) ([]domain.Pair, error)
}
