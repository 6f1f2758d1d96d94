package ticket

import (
	"fmt"

	"bonusMarket/internal/domain"

	"github.com/shopspring/decimal"
)

// Reason explains why a ticket cannot be submitted.
// The display layer disables submission instead of raising an error.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInvalidInput        Reason = "InvalidInput"
	ReasonNonPositiveAmount   Reason = "NonPositiveAmount"
	ReasonInsufficientBalance Reason = "InsufficientBalance"
)

// DefaultCommissionRate is the swap fee rate.
var DefaultCommissionRate = decimal.RequireFromString("0.02")

// Config holds configuration for the evaluator.
type Config struct {
	CommissionRate decimal.NullDecimal // Unset means DefaultCommissionRate; zero is a valid rate
}

// Evaluation is the priced summary of a ticket.
// Rejected tickets carry zero monetary fields so nothing downstream can use them.
type Evaluation struct {
	EffectivePrice    decimal.Decimal `json:"effective_price"`
	Total             decimal.Decimal `json:"total"`
	Commission        decimal.Decimal `json:"commission"`
	NetReceive        decimal.Decimal `json:"net_receive"`
	SourceDebit       decimal.Decimal `json:"source_debit"`
	DestinationCredit decimal.Decimal `json:"destination_credit"`
	Valid             bool            `json:"valid"`
	Reason            Reason          `json:"reason,omitempty"`
}

// Evaluator validates and prices tickets against a wallet balance.
type Evaluator struct {
	commissionRate decimal.Decimal
}

// NewEvaluator creates an evaluator. An unset commission rate means DefaultCommissionRate.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	rate := DefaultCommissionRate
	if cfg.CommissionRate.Valid {
		rate = cfg.CommissionRate.Decimal
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("commission rate %s must be in [0, 1): %w", rate, domain.ErrInvalidInput)
	}
	return &Evaluator{commissionRate: rate}, nil
}

// CommissionRate returns the configured swap fee rate.
func (e *Evaluator) CommissionRate() decimal.Decimal {
	return e.commissionRate
}

// Commission returns the swap fee for amount.
func (e *Evaluator) Commission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(e.commissionRate)
}

// NetReceive returns what the destination side of a swap is credited with.
func (e *Evaluator) NetReceive(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(e.Commission(amount))
}

// Evaluate prices t against balance. It has no side effects.
//
// Balance is denominated in whatever the ticket spends: the quote asset for a
// trade buy, the base asset for everything else.
func (e *Evaluator) Evaluate(t domain.OrderTicket, balance decimal.Decimal) Evaluation {
	price := t.Price
	if t.Type == domain.Market {
		price = decimal.NewFromFloat(t.Pair.LastPrice)
	}
	if !price.IsPositive() {
		return rejected(ReasonInvalidInput)
	}
	if !t.Amount.IsPositive() {
		return rejected(ReasonNonPositiveAmount)
	}

	total := t.Amount.Mul(price)
	if t.Spends() {
		required := t.Amount
		if t.Operation == domain.OperationTrade && t.Side == domain.Buy {
			required = total
		}
		if required.GreaterThan(balance) {
			return rejected(ReasonInsufficientBalance)
		}
	}

	ev := Evaluation{
		EffectivePrice: price,
		Total:          total,
		Commission:     decimal.Zero,
		NetReceive:     decimal.Zero,
		Valid:          true,
	}

	switch {
	case t.Operation == domain.OperationSwap:
		ev.Commission = e.Commission(t.Amount)
		ev.NetReceive = t.Amount.Sub(ev.Commission)
		ev.SourceDebit = t.Amount
		ev.DestinationCredit = ev.NetReceive
	case t.Side == domain.Buy:
		ev.SourceDebit = total
		ev.DestinationCredit = t.Amount
	case t.Side == domain.Sell:
		ev.SourceDebit = t.Amount
		ev.DestinationCredit = total
	case t.Side == domain.Send:
		ev.SourceDebit = t.Amount
		ev.DestinationCredit = decimal.Zero
	case t.Side == domain.Receive:
		ev.SourceDebit = decimal.Zero
		ev.DestinationCredit = t.Amount
	}
	return ev
}

func rejected(reason Reason) Evaluation {
	return Evaluation{
		EffectivePrice:    decimal.Zero,
		Total:             decimal.Zero,
		Commission:        decimal.Zero,
		NetReceive:        decimal.Zero,
		SourceDebit:       decimal.Zero,
		DestinationCredit: decimal.Zero,
		Reason:            reason,
	}
}
