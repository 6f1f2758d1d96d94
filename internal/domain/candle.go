package domain

import (
	"fmt"
	"math"
)

// Candle represents a single OHLCV point of a simulated series.
// Index is an ordinal position in the series, not a wall-clock time.
type Candle struct {
	Index  int     `json:"index"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Validate checks the OHLC envelope of a single candle.
func (c Candle) Validate() error {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
		if !isFinite(v) || v <= 0 {
			return fmt.Errorf("candle %d: prices must be positive: %w", c.Index, ErrInvalidInput)
		}
	}
	if !isFinite(c.Volume) || c.Volume < 0 {
		return fmt.Errorf("candle %d: volume cannot be negative: %w", c.Index, ErrInvalidInput)
	}
	if c.High < math.Max(c.Open, c.Close) {
		return fmt.Errorf("candle %d: high %v below body: %w", c.Index, c.High, ErrInvalidInput)
	}
	if c.Low > math.Min(c.Open, c.Close) {
		return fmt.Errorf("candle %d: low %v above body: %w", c.Index, c.Low, ErrInvalidInput)
	}
	return nil
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}
