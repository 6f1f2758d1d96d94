// Package catalog keeps the list of tradable pairs: a static seed stored in
// the pair repository, optionally refreshed from a quote source.
package catalog

import (
	"context"
	"fmt"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
)

type seed struct {
	base, quote         string
	baseName, quoteName string
	price, change, vol  float64
}

var seeds = []seed{
	{"BONUS", "USDT", "Bonus Point", "Tether", 1.00, 0.00, 250_000},
	{"BTC", "USDT", "Bitcoin", "Tether", 65_000, 1.85, 1_250_000_000},
	{"ETH", "USDT", "Ethereum", "Tether", 3_200, -0.92, 640_000_000},
	{"TON", "USDT", "Toncoin", "Tether", 5.25, 3.40, 95_000_000},
	{"NOT", "USDT", "Notcoin", "Tether", 0.0075, -4.10, 48_000_000},
	{"SOL", "USDT", "Solana", "Tether", 145.30, 2.15, 310_000_000},
}

// SeedPairs returns the built-in pair catalog.
func SeedPairs() []domain.Pair {
	out := make([]domain.Pair, 0, len(seeds))
	for _, s := range seeds {
		p, err := domain.NewPair("", s.base, s.quote, s.baseName, s.quoteName, s.price, s.change, s.vol, false)
		if err != nil {
			panic(fmt.Sprintf("invalid catalog seed %s/%s: %v", s.base, s.quote, err))
		}
		out = append(out, p)
	}
	return out
}

// StaticSource is a QuoteSource that leaves figures untouched.
type StaticSource struct{}

func (StaticSource) Name() string { return "static" }

func (StaticSource) Quotes(_ context.Context, pairs []domain.Pair) ([]domain.Pair, error) {
	out := make([]domain.Pair, len(pairs))
	copy(out, pairs)
	return out, nil
}

// Service reads and updates the pair catalog.
type Service struct {
	repo   ports.PairRepository
	source ports.QuoteSource
	logger ports.Logger
}

// NewService creates a catalog service. A nil source means StaticSource.
func NewService(repo ports.PairRepository, source ports.QuoteSource, logger ports.Logger) (*Service, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for catalog Service")
	}
	if source == nil {
		source = StaticSource{}
	}
	return &Service{repo: repo, source: source, logger: logger}, nil
}

// Seed stores the built-in pairs when the catalog is empty.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug(ctx, "Catalog already seeded", map[string]interface{}{"pairs": len(existing)})
		return nil
	}

	pairs := SeedPairs()
	if err := s.repo.Upsert(ctx, pairs); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.Info(ctx, "Catalog seeded", map[string]interface{}{"pairs": len(pairs)})
	return nil
}

// Refresh pulls current figures for every stored pair from the quote source.
func (s *Service) Refresh(ctx context.Context) error {
	pairs, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(pairs) == 0 {
		return nil
	}

	quoted, err := s.source.Quotes(ctx, pairs)
	if err != nil {
		return fmt.Errorf("quote source %s: %w", s.source.Name(), err)
	}
	if err := s.repo.Upsert(ctx, quoted); err != nil {
		return fmt.Errorf("failed to store refreshed quotes: %w", err)
	}
	s.logger.Info(ctx, "Catalog refreshed", map[string]interface{}{"source": s.source.Name(), "pairs": len(quoted)})
	return nil
}

// List returns all pairs, favorites first.
func (s *Service) List(ctx context.Context) ([]domain.Pair, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one pair.
func (s *Service) Get(ctx context.Context, id string) (domain.Pair, error) {
	return s.repo.FindByID(ctx, id)
}

// SetFavorite flags or unflags a pair and returns its new state.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) (domain.Pair, error) {
	if err := s.repo.SetFavorite(ctx, id, favorite); err != nil {
		return domain.Pair{}, err
	}
	s.logger.Info(ctx, "Favorite updated", map[string]interface{}{"pairID": id, "favorite": favorite})
	return s.repo.FindByID(ctx, id)
}
