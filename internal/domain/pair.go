package domain

import (
	"fmt"
	"math"
	"strings"
)

// Pair describes a tradable pair as selected from the catalog.
// A Pair is a value: the store swaps it wholesale when the user changes pairs.
type Pair struct {
	ID        string  `json:"id"`
	Base      string  `json:"base"`       // Base asset symbol (e.g. "BONUS")
	Quote     string  `json:"quote"`      // Quote asset symbol (e.g. "USDT")
	BaseName  string  `json:"base_name"`  // Display name of the base asset
	QuoteName string  `json:"quote_name"` // Display name of the quote asset
	LastPrice float64 `json:"last_price"` // Always positive
	Change24h float64 `json:"change_24h"` // Signed percent
	Volume24h float64 `json:"volume_24h"` // Non-negative
	Favorite  bool    `json:"favorite"`
}

// NewPair builds a validated Pair. An empty id is derived from the symbols.
func NewPair(id, base, quote, baseName, quoteName string, lastPrice, change24h, volume24h float64, favorite bool) (Pair, error) {
	p := Pair{
		ID:        id,
		Base:      strings.ToUpper(strings.TrimSpace(base)),
		Quote:     strings.ToUpper(strings.TrimSpace(quote)),
		BaseName:  baseName,
		QuoteName: quoteName,
		LastPrice: lastPrice,
		Change24h: change24h,
		Volume24h: volume24h,
		Favorite:  favorite,
	}
	if p.ID == "" {
		p.ID = strings.ToLower(p.Base + "-" + p.Quote)
	}
	if err := p.Validate(); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// Validate checks the pair invariants.
func (p Pair) Validate() error {
	if p.Base == "" || p.Quote == "" {
		return fmt.Errorf("pair %q: base and quote symbols are required: %w", p.ID, ErrInvalidInput)
	}
	if p.Base == p.Quote {
		return fmt.Errorf("pair %q: base and quote must differ: %w", p.ID, ErrInvalidInput)
	}
	if !isFinite(p.LastPrice) || p.LastPrice <= 0 {
		return fmt.Errorf("pair %q: last price %v must be positive: %w", p.ID, p.LastPrice, ErrInvalidInput)
	}
	if !isFinite(p.Change24h) {
		return fmt.Errorf("pair %q: 24h change must be finite: %w", p.ID, ErrInvalidInput)
	}
	if !isFinite(p.Volume24h) || p.Volume24h < 0 {
		return fmt.Errorf("pair %q: 24h volume %v cannot be negative: %w", p.ID, p.Volume24h, ErrInvalidInput)
	}
	return nil
}

// String returns the display form "BASE/QUOTE".
func (p Pair) String() string {
	return p.Base + "/" + p.Quote
}

// Symbol returns the exchange-style symbol without separator (e.g. "BTCUSDT").
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
