package domain

import "time"

// SeriesStats are figures derived from a candle series and book for display.
type SeriesStats struct {
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        float64 `json:"volume"`
	ChangePercent float64 `json:"change_percent"`
	Spread        float64 `json:"spread"`
	SMA           float64 `json:"sma"`
	EMA           float64 `json:"ema"`
	RSI           float64 `json:"rsi"`
	ATR           float64 `json:"atr"`
}

// MarketSnapshot is the unit the market store publishes.
// It is never mutated after publication.
type MarketSnapshot struct {
	Pair       Pair        `json:"pair"`
	Series     []Candle    `json:"series"`
	Book       OrderBook   `json:"book"`
	Stats      SeriesStats `json:"stats"`
	Generation uint64      `json:"generation"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
