package clients_test

import (
	"testing"

	"storefront/clients"
	"storefront/entity"

	"github.com/stretchr/testify/assert"
)

func TestRenderTicketFile(t *testing.T) {
	content := clients.RenderTicketFile(entity.TicketFile{
		PurchaseID:   "p-1",
		TicketID:     "t-1",
		CustomerName: "Ada <Lovelace>",
		Quantity:     2,
		TotalPrice:   entity.Money{Amount: "50.00", Currency: "EUR"},
		QRCode:       "data:image/png;base64,AAAA",
	})

	assert.Contains(t, content, "Ticket ID: t-1")
	assert.Contains(t, content, "Customer: Ada &lt;Lovelace&gt;")
	assert.Contains(t, content, "Quantity: 2")
	assert.Contains(t, content, "Price amount: 50.00")
	assert.Contains(t, content, `<img src="data:image/png;base64,AAAA"`)
}

func TestTicketFileID(t *testing.T) {
	assert.Equal(t, "p-1-ticket.html", clients.TicketFileID("p-1"))
}
