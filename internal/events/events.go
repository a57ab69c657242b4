package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicTransactionPosted   = "transaction.posted"
	TopicTransactionReversed = "transaction.reversed"
	TopicOrderCreated        = "order.created"
)

// Publisher delivers domain events to interested consumers. Publish is only
// called after the originating database transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// Noop discards every event. Used when no brokers are configured and in
// tests.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

type TransactionPosted struct {
	TransactionID uint            `json:"transaction_id"`
	Reference     string          `json:"reference"`
	AccountID     uint            `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Balance       decimal.Decimal `json:"balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type TransactionReversed struct {
	TransactionID uint            `json:"transaction_id"`
	Reference     string          `json:"reference"`
	AccountID     uint            `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Balance       decimal.Decimal `json:"balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type OrderCreated struct {
	OrderID     uint            `json:"order_id"`
	UserID      uint            `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
