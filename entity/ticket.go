package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const CurrencyEUR = "EUR"

// Money is the wire form of an amount sent to the gateway services.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{
		Amount:   amount.StringFixed(2),
		Currency: CurrencyEUR,
	}
}

type Ticket struct {
	ID          string          `json:"ticket_id" db:"ticket_id"`
	EventID     string          `json:"event_id" db:"event_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Available   int             `json:"available" db:"available"`
}

type Event struct {
	ID          string    `json:"event_id" db:"event_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	Date        time.Time `json:"date" db:"date"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Tickets     []Ticket  `json:"tickets" db:"-"`
}

// TotalTickets sums the issued quantity over the event's ticket types.
func (e Event) TotalTickets() int {
	var n int
	for _, t := range e.Tickets {
		n += t.Quantity
	}
	return n
}

func (e Event) AvailableTickets() int {
	var n int
	for _, t := range e.Tickets {
		n += t.Available
	}
	return n
}

// TicketFile is the printable form of a purchase stored in the files service.
type TicketFile struct {
	PurchaseID   string
	TicketID     string
	CustomerName string
	Quantity     int
	TotalPrice   Money
	QRCode       string
}
