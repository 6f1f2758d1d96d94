package market

import (
	"math"

	"bonusMarket/internal/domain"
)

// ComputeStats derives the headline figures shown above the chart.
// Indicators are left at zero when the series is too short for them.
func ComputeStats(series []domain.Candle, book domain.OrderBook, maPeriod int) domain.SeriesStats {
	var stats domain.SeriesStats
	if spread, ok := book.Spread(); ok {
		stats.Spread = spread
	}
	if len(series) == 0 {
		return stats
	}

	stats.Open = series[0].Open
	stats.Close = series[len(series)-1].Close
	stats.High = series[0].High
	stats.Low = series[0].Low
	for _, c := range series {
		stats.High = math.Max(stats.High, c.High)
		stats.Low = math.Min(stats.Low, c.Low)
		stats.Volume += c.Volume
	}
	if stats.Open > 0 {
		stats.ChangePercent = (stats.Close - stats.Open) / stats.Open * 100
	}

	if sma, err := NewMovingAverage(SimpleMovingAverage, maPeriod); err == nil {
		if v, err := sma.Calculate(series); err == nil {
			stats.SMA = v
		}
	}
	if ema, err := NewMovingAverage(ExponentialMovingAverage, maPeriod); err == nil {
		if v, err := ema.Calculate(series); err == nil {
			stats.EMA = v
		}
	}
	if v, err := RSI(series, DefaultOscillatorPeriod); err == nil {
		stats.RSI = v
	}
	if v, err := ATR(series, DefaultOscillatorPeriod); err == nil {
		stats.ATR = v
	}
	return stats
}
