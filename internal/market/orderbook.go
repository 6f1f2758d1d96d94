package market

import (
	"fmt"
	"math"
	"sort"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
)

// BookConfig holds the ladder shape parameters.
type BookConfig struct {
	Depth          int     // Levels per side
	Step           float64 // Price offset per level, e.g. 0.01 for 1%
	JitterMin      float64 // Price offset jitter range
	JitterMax      float64
	MinAmount      float64
	MaxAmount      float64
	DepthJitterMin float64 // Depth weight jitter range
	DepthJitterMax float64
}

// DefaultBookConfig returns the reference ladder parameters.
func DefaultBookConfig() BookConfig {
	return BookConfig{
		Depth:          12,
		Step:           0.01,
		JitterMin:      0.8,
		JitterMax:      1.2,
		MinAmount:      200,
		MaxAmount:      1200,
		DepthJitterMin: 0.7,
		DepthJitterMax: 1.0,
	}
}

// OrderBookSimulator fabricates bid/ask ladders around a reference price.
type OrderBookSimulator struct {
	config BookConfig
	rnd    ports.RandomSource
}

// NewOrderBookSimulator creates a simulator drawing from rnd.
func NewOrderBookSimulator(rnd ports.RandomSource, config BookConfig) (*OrderBookSimulator, error) {
	if rnd == nil {
		return nil, fmt.Errorf("random source is required for order book simulator")
	}
	if config.Depth <= 0 {
		return nil, fmt.Errorf("ladder depth %d must be positive: %w", config.Depth, domain.ErrInvalidInput)
	}
	if config.Step <= 0 || config.JitterMin <= 0 || config.JitterMax < config.JitterMin {
		return nil, fmt.Errorf("invalid ladder step or jitter: %w", domain.ErrInvalidInput)
	}
	// Prices must stay positive on the deepest bid.
	if config.Step*float64(config.Depth)*config.JitterMax >= 1 {
		return nil, fmt.Errorf("ladder of %d levels at step %v reaches zero: %w", config.Depth, config.Step, domain.ErrInvalidInput)
	}
	if config.MinAmount <= 0 || config.MaxAmount < config.MinAmount {
		return nil, fmt.Errorf("invalid amount range [%v, %v]: %w", config.MinAmount, config.MaxAmount, domain.ErrInvalidInput)
	}
	if config.DepthJitterMin < 0 || config.DepthJitterMax < config.DepthJitterMin {
		return nil, fmt.Errorf("invalid depth jitter range: %w", domain.ErrInvalidInput)
	}
	return &OrderBookSimulator{config: config, rnd: rnd}, nil
}

// Depth returns the number of levels per side.
func (s *OrderBookSimulator) Depth() int {
	return s.config.Depth
}

// Generate builds one side of the book. Bids come back sorted by price
// descending, asks ascending. Draw order per level: price jitter, amount, depth jitter.
func (s *OrderBookSimulator) Generate(basePrice float64, side domain.LadderSide) ([]domain.OrderBookLevel, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return nil, fmt.Errorf("base price %v must be positive: %w", basePrice, domain.ErrInvalidInput)
	}
	if side != domain.Bids && side != domain.Asks {
		return nil, fmt.Errorf("unknown ladder side %q: %w", side, domain.ErrInvalidInput)
	}

	count := s.config.Depth
	sign := side.Sign()
	levels := make([]domain.OrderBookLevel, 0, count)
	for i := 0; i < count; i++ {
		delta := sign * s.config.Step * float64(i+1) * uniform(s.rnd, s.config.JitterMin, s.config.JitterMax)
		price := basePrice * (1 + delta)
		amount := uniform(s.rnd, s.config.MinAmount, s.config.MaxAmount)
		depth := (100 - float64(i)*(100/float64(count))) * uniform(s.rnd, s.config.DepthJitterMin, s.config.DepthJitterMax)

		levels = append(levels, domain.OrderBookLevel{
			Price:       price,
			Amount:      amount,
			Total:       price * amount,
			DepthWeight: depth,
		})
	}

	// Jitter can reorder neighbouring levels; the sort is what callers rely on.
	if side == domain.Bids {
		sort.SliceStable(levels, func(i, j int) bool { return levels[i].Price > levels[j].Price })
	} else {
		sort.SliceStable(levels, func(i, j int) bool { return levels[i].Price < levels[j].Price })
	}
	return levels, nil
}

// Snapshot builds both sides from the same reference price.
func (s *OrderBookSimulator) Snapshot(basePrice float64) (domain.OrderBook, error) {
	bids, err := s.Generate(basePrice, domain.Bids)
	if err != nil {
		return domain.OrderBook{}, fmt.Errorf("failed to generate bids: %w", err)
	}
	asks, err := s.Generate(basePrice, domain.Asks)
	if err != nil {
		return domain.OrderBook{}, fmt.Errorf("failed to generate asks: %w", err)
	}
	return domain.OrderBook{Bids: bids, Asks: asks}, nil
}
