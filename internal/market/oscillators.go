package market

import (
	"fmt"
	"math"

	"bonusMarket/internal/domain"
)

// DefaultOscillatorPeriod is the Wilder period used for RSI and ATR.
const DefaultOscillatorPeriod = 14

// RSI returns the relative strength index of the closes using Wilder's smoothing.
// It needs more than period candles.
func RSI(candles []domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("RSI period %d must be positive: %w", period, domain.ErrInvalidInput)
	}
	if len(candles) <= period {
		return 0, fmt.Errorf("not enough data (%d) to calculate RSI for period %d", len(candles), period)
	}

	var avgGain, avgLoss float64
	n := float64(period)
	for i := 1; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		gain, loss := math.Max(change, 0), math.Max(-change, 0)
		if i <= period {
			avgGain += gain / n
			avgLoss += loss / n
			continue
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, nil
		}
		return 100, nil
	}
	rsi := 100 - 100/(1+avgGain/avgLoss)
	return math.Min(100, math.Max(0, rsi)), nil
}

// ATR returns the average true range using Wilder's smoothing.
// It needs at least period+1 candles.
func ATR(candles []domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("ATR period %d must be positive: %w", period, domain.ErrInvalidInput)
	}
	if len(candles) < period+1 {
		return 0, fmt.Errorf("not enough data points for ATR calculation: need %d, got %d", period+1, len(candles))
	}

	atr := 0.0
	for i, c := range candles {
		tr := c.High - c.Low
		if i > 0 {
			prevClose := candles[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
		}
		switch {
		case i < period:
			atr += tr / float64(period)
		default:
			atr = (atr*float64(period-1) + tr) / float64(period)
		}
	}
	return atr, nil
}
