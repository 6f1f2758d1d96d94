package ports

import (
	"context"
	"time"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ticket"

	"github.com/shopspring/decimal"
)

// RandomSource yields uniformly distributed values in [0, 1).
// Generators draw from it in a fixed order so a fixed sequence gives fixed output.
type RandomSource interface {
	Float64() float64
}

// Clock creates tickers for periodic work. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Acknowledgment is returned for an accepted ticket submission.
// It stands in for a trade-execution API: nothing is executed or recorded.
type Acknowledgment struct {
	ID             string             `json:"id"`
	IdempotencyKey string             `json:"idempotency_key"`
	Status         string             `json:"status"`
	Ticket         domain.OrderTicket `json:"ticket"`
	Evaluation     ticket.Evaluation  `json:"evaluation"`
	Timestamp      time.Time          `json:"timestamp"`
}

// OrderSubmitter accepts evaluated tickets.
type OrderSubmitter interface {
	Submit(ctx context.Context, t domain.OrderTicket, balance decimal.Decimal) (*Acknowledgment, error)
}
