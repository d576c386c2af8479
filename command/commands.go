package command

import (
	"time"

	"storefront/entity"

	"github.com/ThreeDotsLabs/watermill"
)

type header struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func newHeader(idempotencyKey string) header {
	return header{
		ID:             watermill.NewUUID(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// RefundOrder returns the payment of a checkout that could not be persisted.
type RefundOrder struct {
	Header  header       `json:"header"`
	OrderID string       `json:"order_id"`
	Amount  entity.Money `json:"amount"`
	Reason  string       `json:"reason"`
}

func NewRefundOrder(idempotencyKey, orderID string, amount entity.Money, reason string) RefundOrder {
	return RefundOrder{
		Header:  newHeader(idempotencyKey),
		OrderID: orderID,
		Amount:  amount,
		Reason:  reason,
	}
}
