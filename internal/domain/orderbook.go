package domain

// OrderBookLevel is one price level of a ladder.
// DepthWeight is a 0-100 visual magnitude and is not tradable.
type OrderBookLevel struct {
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
	Total       float64 `json:"total"`
	DepthWeight float64 `json:"depth_weight"`
}

// OrderBook is a complete two-sided ladder snapshot.
// Bids are sorted by price descending, asks ascending.
type OrderBook struct {
	Bids []OrderBookLevel `json:"bids"`
	Asks []OrderBookLevel `json:"asks"`
}

// BestBid returns the highest bid, if any.
func (b OrderBook) BestBid() (OrderBookLevel, bool) {
	if len(b.Bids) == 0 {
		return OrderBookLevel{}, false
	}
	return b.Bids[0], true
}

// BestAsk returns the lowest ask, if any.
func (b OrderBook) BestAsk() (OrderBookLevel, bool) {
	if len(b.Asks) == 0 {
		return OrderBookLevel{}, false
	}
	return b.Asks[0], true
}

// Spread returns best ask minus best bid.
// Ladders are only loosely anchored to the reference price, so the result can
// be negative. It is reported as is.
func (b OrderBook) Spread() (float64, bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0, false
	}
	return ask.Price - bid.Price, true
}

// BidVolume is the summed amount on the bid side.
func (b OrderBook) BidVolume() float64 {
	return sumAmount(b.Bids)
}

// AskVolume is the summed amount on the ask side.
func (b OrderBook) AskVolume() float64 {
	return sumAmount(b.Asks)
}

func sumAmount(levels []OrderBookLevel) float64 {
	total := 0.0
	for _, l := range levels {
		total += l.Amount
	}
	return total
}
