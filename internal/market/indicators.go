package market

import (
	"fmt"

	"bonusMarket/internal/domain"
)

// MovingAverageType defines the type of moving average
type MovingAverageType string

const (
	// SimpleMovingAverage represents a simple moving average
	SimpleMovingAverage MovingAverageType = "SMA"
	// ExponentialMovingAverage represents an exponential moving average
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// MovingAverage computes SMA or EMA over candle closes for the chart overlay.
type MovingAverage struct {
	period int
	kind   MovingAverageType
}

// NewMovingAverage creates a moving average over period candles.
func NewMovingAverage(kind MovingAverageType, period int) (*MovingAverage, error) {
	if period <= 0 {
		return nil, fmt.Errorf("moving average period %d must be positive: %w", period, domain.ErrInvalidInput)
	}
	if kind != SimpleMovingAverage && kind != ExponentialMovingAverage {
		return nil, fmt.Errorf("unsupported moving average type: %s", kind)
	}
	return &MovingAverage{period: period, kind: kind}, nil
}

// Name returns the name of the indicator
func (m *MovingAverage) Name() string {
	return string(m.kind)
}

// RequiredDataPoints returns the minimum number of candles needed.
func (m *MovingAverage) RequiredDataPoints() int {
	return m.period
}

// Calculate returns the value at the last candle.
func (m *MovingAverage) Calculate(candles []domain.Candle) (float64, error) {
	values, err := m.Series(candles)
	if err != nil {
		return 0, err
	}
	return values[len(values)-1], nil
}

// Series returns one value per candle from index period-1 onwards.
func (m *MovingAverage) Series(candles []domain.Candle) ([]float64, error) {
	if len(candles) < m.period {
		return nil, fmt.Errorf("not enough data (%d) to calculate %s for period %d", len(candles), m.kind, m.period)
	}

	out := make([]float64, 0, len(candles)-m.period+1)
	total := 0.0
	for i := 0; i < m.period; i++ {
		total += candles[i].Close
	}
	avg := total / float64(m.period)
	out = append(out, avg)

	multiplier := 2.0 / float64(m.period+1)
	for i := m.period; i < len(candles); i++ {
		switch m.kind {
		case SimpleMovingAverage:
			total += candles[i].Close - candles[i-m.period].Close
			avg = total / float64(m.period)
		case ExponentialMovingAverage:
			avg = (candles[i].Close-avg)*multiplier + avg
		}
		out = append(out, avg)
	}
	return out, nil
}
