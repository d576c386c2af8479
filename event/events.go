package event

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

type OrderLine struct {
	TicketID  string       `json:"ticket_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice entity.Money `json:"unit_price"`
}

type OrderPlaced struct {
	Header        header       `json:"header"`
	OrderID       string       `json:"order_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	Lines         []OrderLine  `json:"lines"`
	Total         entity.Money `json:"total"`
	PlacedAt      time.Time    `json:"placed_at"`
}

func NewOrderPlaced(idempotencyKey string, order entity.Order) OrderPlaced {
	lines := make([]OrderLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = OrderLine{
			TicketID:  item.TicketID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: entity.NewMoney(item.UnitPrice),
		}
	}

	return OrderPlaced{
		Header:        newHeader(idempotencyKey),
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.Email,
		Lines:         lines,
		Total:         entity.NewMoney(order.Total),
		PlacedAt:      order.Date,
	}
}

type PurchaseRecorded struct {
	Header        header       `json:"header"`
	PurchaseID    string       `json:"purchase_id"`
	TicketID      string       `json:"ticket_id"`
	Quantity      int          `json:"quantity"`
	TotalPrice    entity.Money `json:"total_price"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	QRCode        string       `json:"qr_code"`
}

func NewPurchaseRecorded(idempotencyKey string, purchase entity.Purchase) PurchaseRecorded {
	return PurchaseRecorded{
		Header:        newHeader(idempotencyKey),
		PurchaseID:    purchase.ID,
		TicketID:      purchase.TicketID,
		Quantity:      purchase.Quantity,
		TotalPrice:    entity.NewMoney(purchase.TotalPrice),
		CustomerName:  purchase.CustomerName,
		CustomerEmail: purchase.CustomerEmail,
		QRCode:        purchase.QRCode,
	}
}
