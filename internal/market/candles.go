package market

import (
	"fmt"
	"math"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
)

// CandleConfig holds the shape parameters of the random walk.
// All ratios are relative to the price at the start of each step.
type CandleConfig struct {
	Volatility float64 // Max absolute body move, e.g. 0.05 for ±5%
	WickRatio  float64 // Max wick length beyond the body
	MinVolume  float64
	MaxVolume  float64
}

// DefaultCandleConfig returns the reference walk parameters.
func DefaultCandleConfig() CandleConfig {
	return CandleConfig{
		Volatility: 0.05,
		WickRatio:  0.05,
		MinVolume:  100,
		MaxVolume:  1100,
	}
}

// CandleGenerator fabricates OHLCV series by a bounded random walk.
type CandleGenerator struct {
	config CandleConfig
	rnd    ports.RandomSource
}

// NewCandleGenerator creates a generator drawing from rnd.
func NewCandleGenerator(rnd ports.RandomSource, config CandleConfig) (*CandleGenerator, error) {
	if rnd == nil {
		return nil, fmt.Errorf("random source is required for candle generator")
	}
	if config.Volatility <= 0 || config.Volatility >= 1 || config.WickRatio < 0 || config.WickRatio >= 1 {
		return nil, fmt.Errorf("candle ratios must be in (0, 1): %w", domain.ErrInvalidInput)
	}
	if config.MinVolume < 0 || config.MaxVolume < config.MinVolume {
		return nil, fmt.Errorf("invalid candle volume range [%v, %v]: %w", config.MinVolume, config.MaxVolume, domain.ErrInvalidInput)
	}
	return &CandleGenerator{config: config, rnd: rnd}, nil
}

// Generate returns count candles starting at basePrice. Each call is a new,
// independent walk. Draw order per candle: body, upper wick, lower wick, volume.
func (g *CandleGenerator) Generate(count int, basePrice float64) ([]domain.Candle, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return nil, fmt.Errorf("base price %v must be positive: %w", basePrice, domain.ErrInvalidInput)
	}
	if count < 0 {
		return nil, fmt.Errorf("candle count %d cannot be negative: %w", count, domain.ErrInvalidInput)
	}

	candles := make([]domain.Candle, 0, count)
	current := basePrice
	for i := 0; i < count; i++ {
		open := current
		change := uniform(g.rnd, -g.config.Volatility, g.config.Volatility) * current
		closePrice := open + change
		high := math.Max(open, closePrice) + uniform(g.rnd, 0, g.config.WickRatio)*current
		low := math.Min(open, closePrice) - uniform(g.rnd, 0, g.config.WickRatio)*current
		volume := uniform(g.rnd, g.config.MinVolume, g.config.MaxVolume)

		candles = append(candles, domain.Candle{
			Index:  i,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
		current = closePrice
	}
	return candles, nil
}

// uniform draws from [lo, hi).
func uniform(rnd ports.RandomSource, lo, hi float64) float64 {
	return lo + (hi-lo)*rnd.Float64()
}
