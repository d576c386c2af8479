package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart: a quantity of a single ticket type.
type CartItem struct {
	TicketID  string          `json:"ticket_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (c CustomerInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type PaymentDetails struct {
	CardNumber string          `json:"card_number"`
	ExpiryDate string          `json:"expiry_date"`
	CVV        string          `json:"cvv"`
	Amount     decimal.Decimal `json:"amount"`
}

type Order struct {
	ID           string          `json:"order_id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	Email        string          `json:"email"`
	Items        []CartItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Purchases    []Purchase      `json:"purchases"`
}

type Purchase struct {
	ID            string          `json:"purchase_id" db:"purchase_id"`
	TicketID      string          `json:"ticket_id" db:"ticket_id"`
	Quantity      int             `json:"quantity" db:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price" db:"total_price"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
	CustomerEmail string          `json:"customer_email" db:"customer_email"`
	QRCode        string          `json:"qr_code" db:"qr_code"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
