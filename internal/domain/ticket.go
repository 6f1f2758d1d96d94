package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderTicket is a prospective order, transfer or swap as typed by the user.
// A ticket is rebuilt on every edit and discarded on submit or cancel.
type OrderTicket struct {
	Operation     Operation       `json:"operation"`
	Side          OrderSide       `json:"side"`
	Type          OrderType       `json:"type"`
	Pair          Pair            `json:"pair"`
	Price         decimal.Decimal `json:"price"`  // Effective price: limit price or the pair's last price
	Amount        decimal.Decimal `json:"amount"` // Base-asset amount; not validated here
	ClientOrderID string          `json:"client_order_id,omitempty"`
}

// NewOrderTicket validates the shape of a ticket. Amount and price values are
// left to the evaluator, which reports them as reasons instead of errors.
// Market tickets always take the pair's last price; an empty type means market.
func NewOrderTicket(op Operation, side OrderSide, typ OrderType, pair Pair, price, amount decimal.Decimal) (OrderTicket, error) {
	if err := pair.Validate(); err != nil {
		return OrderTicket{}, err
	}
	if typ == "" {
		typ = Market
	}
	if typ != Limit && typ != Market {
		return OrderTicket{}, fmt.Errorf("unknown order type %q: %w", typ, ErrInvalidInput)
	}

	switch op {
	case OperationTrade:
		if side != Buy && side != Sell {
			return OrderTicket{}, fmt.Errorf("trade ticket needs BUY or SELL, got %q: %w", side, ErrInvalidInput)
		}
	case OperationTransfer:
		if side != Send && side != Receive {
			return OrderTicket{}, fmt.Errorf("transfer ticket needs SEND or RECEIVE, got %q: %w", side, ErrInvalidInput)
		}
	case OperationSwap:
		if side == "" {
			side = Sell
		}
		if side != Sell {
			return OrderTicket{}, fmt.Errorf("swap ticket always sells the source asset, got %q: %w", side, ErrInvalidInput)
		}
	default:
		return OrderTicket{}, fmt.Errorf("unknown operation %q: %w", op, ErrInvalidInput)
	}

	if typ == Market {
		price = decimal.NewFromFloat(pair.LastPrice)
	}

	return OrderTicket{
		Operation: op,
		Side:      side,
		Type:      typ,
		Pair:      pair,
		Price:     price,
		Amount:    amount,
	}, nil
}

// Spends reports whether executing the ticket debits the holder's balance.
func (t OrderTicket) Spends() bool {
	switch t.Operation {
	case OperationSwap:
		return true
	case OperationTransfer:
		return t.Side == Send
	default:
		return t.Side == Buy || t.Side == Sell
	}
}
