package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
	"bonusMarket/internal/ticket"
)

const (
	// StatusAcknowledged is the only status a simulated submission reaches.
	StatusAcknowledged = "ACKNOWLEDGED"

	maxRememberedKeys = 1000
)

// OrderDesk evaluates tickets and acknowledges valid submissions.
// No order is executed and no ledger is written.
type OrderDesk struct {
	logger    ports.Logger
	evaluator *ticket.Evaluator
	clock     ports.Clock

	mu    sync.Mutex
	acks  map[string]*ports.Acknowledgment
	order []string // idempotency keys, oldest first
}

// NewOrderDesk creates an order desk.
func NewOrderDesk(logger ports.Logger, evaluator *ticket.Evaluator, clock ports.Clock) (*OrderDesk, error) {
	if logger == nil || evaluator == nil || clock == nil {
		return nil, fmt.Errorf("missing required dependencies for OrderDesk")
	}
	return &OrderDesk{
		logger:    logger,
		evaluator: evaluator,
		clock:     clock,
		acks:      make(map[string]*ports.Acknowledgment),
	}, nil
}

// Evaluate prices a ticket without submitting it.
func (d *OrderDesk) Evaluate(t domain.OrderTicket, balance decimal.Decimal) ticket.Evaluation {
	return d.evaluator.Evaluate(t, balance)
}

// Submit re-evaluates t and acknowledges it when valid. A repeated
// ClientOrderID returns the first acknowledgment unchanged.
func (d *OrderDesk) Submit(ctx context.Context, t domain.OrderTicket, balance decimal.Decimal) (*ports.Acknowledgment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrContextCanceled, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if t.ClientOrderID != "" {
		if ack, ok := d.acks[t.ClientOrderID]; ok {
			d.logger.Debug(ctx, "Duplicate submission, returning existing acknowledgment", map[string]interface{}{
				"clientOrderId": t.ClientOrderID,
				"ackId":         ack.ID,
			})
			return ack, nil
		}
	}

	ev := d.evaluator.Evaluate(t, balance)
	if !ev.Valid {
		fields := map[string]interface{}{
			"pair":      t.Pair.String(),
			"operation": t.Operation,
			"side":      t.Side,
			"reason":    ev.Reason,
		}
		d.logger.Warn(ctx, "Ticket rejected", fields)
		if ev.Reason == ticket.ReasonInsufficientBalance {
			return nil, fmt.Errorf("ticket rejected (%s): %w", ev.Reason, ports.ErrInsufficientFunds)
		}
		return nil, fmt.Errorf("ticket rejected (%s): %w", ev.Reason, ports.ErrInvalidRequest)
	}

	key := t.ClientOrderID
	if key == "" {
		key = uuid.NewString()
	}
	ack := &ports.Acknowledgment{
		ID:             uuid.NewString(),
		IdempotencyKey: key,
		Status:         StatusAcknowledged,
		Ticket:         t,
		Evaluation:     ev,
		Timestamp:      d.clock.Now(),
	}
	d.remember(key, ack)

	d.logger.Info(ctx, "Ticket acknowledged", map[string]interface{}{
		"ackId":     ack.ID,
		"pair":      t.Pair.String(),
		"operation": t.Operation,
		"side":      t.Side,
		"amount":    t.Amount.String(),
		"total":     ev.Total.String(),
	})
	return ack, nil
}

func (d *OrderDesk) remember(key string, ack *ports.Acknowledgment) {
	d.acks[key] = ack
	d.order = append(d.order, key)
	if len(d.order) > maxRememberedKeys {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.acks, oldest)
	}
}

var _ ports.OrderSubmitter = (*OrderDesk)(nil)
