package document_test

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"
	"time"

	"storefront/document"
	"storefront/entity"
	"storefront/proof"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var pageCount = regexp.MustCompile(`/Count (\d+)`)

func pages(t *testing.T, pdf []byte) int {
	t.Helper()

	m := pageCount.FindSubmatch(pdf)
	require.NotNil(t, m, "page count not found")
	n, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	return n
}

func TestGenerator_TicketsPDF(t *testing.T) {
	code, err := proof.NewGenerator().Generate(proof.Payload{TicketID: "t-1", Email: "alice@example.com", Quantity: 2})
	require.NoError(t, err)

	doc, err := document.NewGenerator().TicketsPDF(document.Tickets{
		OrderID:      "ord-1",
		CustomerName: "Alice Martin",
		Email:        "alice@example.com",
		Items: []entity.CartItem{
			{TicketID: "t-1", Name: "Fosse", UnitPrice: decimal.RequireFromString("1250.00"), Quantity: 2},
		},
		Purchases: []entity.Purchase{{TicketID: "t-1", QRCode: code}},
		Total:     decimal.RequireFromString("2500.00"),
		IssuedAt:  time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Equal(t, 1, pages(t, doc))
}

func TestGenerator_TicketsPDFPaginates(t *testing.T) {
	var items []entity.CartItem
	for i := 0; i < 12; i++ {
		items = append(items, entity.CartItem{
			TicketID:  strconv.Itoa(i),
			Name:      "Balcon " + strconv.Itoa(i),
			UnitPrice: decimal.NewFromInt(30),
			Quantity:  1,
		})
	}

	doc, err := document.NewGenerator().TicketsPDF(document.Tickets{
		CustomerName: "Bob Durand",
		Email:        "bob@example.org",
		Items:        items,
		Total:        decimal.NewFromInt(360),
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pages(t, doc), 2)
}

func TestGenerator_TicketsPDFRejectsBrokenCode(t *testing.T) {
	_, err := document.NewGenerator().TicketsPDF(document.Tickets{
		Items:     []entity.CartItem{{TicketID: "t-1", Name: "Fosse", UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
		Purchases: []entity.Purchase{{TicketID: "t-1", QRCode: "not a data url"}},
	})
	assert.Error(t, err)
}

func testEvents() []entity.Event {
	return []entity.Event{
		{
			ID:          "e-1",
			Title:       "Concert",
			Description: "Open air",
			Location:    "Lyon",
			Date:        time.Date(2026, 6, 21, 20, 0, 0, 0, time.UTC),
			Tickets: []entity.Ticket{
				{Name: "Fosse", Price: decimal.NewFromInt(35), Quantity: 500, Available: 120},
				{Name: "Balcon", Price: decimal.NewFromInt(55), Quantity: 200, Available: 15},
			},
		},
		{
			ID:       "e-2",
			Title:    "Théâtre",
			Location: "Paris",
			Date:     time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		},
	}
}

func TestGenerator_EventsPDF(t *testing.T) {
	doc, err := document.NewGenerator().EventsPDF(testEvents())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Equal(t, 2, pages(t, doc))
}

func TestGenerator_EventsXLSX(t *testing.T) {
	b, err := document.NewGenerator().EventsXLSX(testEvents())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Events")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Title", "Description", "Date", "Location", "Total Tickets", "Available Tickets"}, rows[0])
	assert.Equal(t, []string{"Concert", "Open air", "21/06/2026", "Lyon", "700", "135"}, rows[1])
	assert.Equal(t, "Théâtre", rows[2][0])
	assert.Equal(t, "0", rows[2][4])
	assert.Equal(t, "0", rows[2][5])
}
