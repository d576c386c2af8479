package http

import (
	"context"

	"storefront/checkout"
	"storefront/document"
	"storefront/entity"

	"github.com/shopspring/decimal"
)

const headerKeyIdempotencyKey = "Idempotency-Key"

type Catalog interface {
	Events() []entity.Event
	Search(query string) []entity.Event
	Ticket(ticketID string) (entity.Ticket, bool)
	Refresh(ctx context.Context) error
	Delete(ctx context.Context, eventID string) error
}

type Cart interface {
	AddItem(item entity.CartItem) error
	RemoveItem(ticketID string)
	Clear()
	Snapshot() ([]entity.CartItem, decimal.Decimal)
	ItemCount() int
}

type Orders interface {
	All() []entity.Order
	Get(orderID string) (entity.Order, bool)
	Search(query string) []entity.Order
}

type Checkout interface {
	Run(ctx context.Context, req checkout.Request) (checkout.Result, error)
}

type IdempotencyStore interface {
	Claim(ctx context.Context, key string) error
	Complete(ctx context.Context, key string, orderID string) error
	Release(ctx context.Context, key string) error
	OrderID(ctx context.Context, key string) (string, bool, error)
}

type Documents interface {
	TicketsPDF(t document.Tickets) ([]byte, error)
	EventsPDF(events []entity.Event) ([]byte, error)
	EventsXLSX(events []entity.Event) ([]byte, error)
}

type PurchaseFinder interface {
	FindByTicketAndEmail(ctx context.Context, ticketID, email string) (entity.Purchase, error)
}

type PurchaseLister interface {
	// List returns purchases newest first.
	List(ctx context.Context) ([]entity.Purchase, error)
}

type Purchases interface {
	PurchaseFinder
	PurchaseLister
}

type handler struct {
	catalog     Catalog
	cart        Cart
	orders      Orders
	checkout    Checkout
	idempotency IdempotencyStore
	documents   Documents
	purchases   Purchases
}
