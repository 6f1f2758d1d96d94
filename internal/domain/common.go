package domain

// OrderSide represents the direction of a ticket.
// Trades use BUY/SELL, transfers use SEND/RECEIVE.
type OrderSide string

const (
	Buy     OrderSide = "BUY"
	Sell    OrderSide = "SELL"
	Send    OrderSide = "SEND"
	Receive OrderSide = "RECEIVE"
)

// Valid reports whether s is a known side.
func (s OrderSide) Valid() bool {
	switch s {
	case Buy, Sell, Send, Receive:
		return true
	}
	return false
}

// OrderType represents how the effective price of a ticket is chosen.
type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

// Operation groups tickets by the screen that produced them.
type Operation string

const (
	OperationTrade    Operation = "trade"
	OperationTransfer Operation = "transfer"
	OperationSwap     Operation = "swap"
)

// LadderSide selects one side of the order book.
type LadderSide string

const (
	Bids LadderSide = "bids"
	Asks LadderSide = "asks"
)

// Sign returns -1 for bids and +1 for asks.
func (s LadderSide) Sign() float64 {
	if s == Bids {
		return -1
	}
	return 1
}
