package clients

import (
	"context"
	"fmt"
	"net/http"

	"storefront/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/clients"
	"github.com/ThreeDotsLabs/go-event-driven/common/clients/receipts"
)

type ReceiptsClient struct {
	clients *clients.Clients
}

func NewReceiptsClient(clients *clients.Clients) ReceiptsClient {
	return ReceiptsClient{
		clients: clients,
	}
}

// IssueReceipt asks for a receipt of an order. The receipts service
// deduplicates on the order id, so idempotencyKey is only logged context.
func (c ReceiptsClient) IssueReceipt(ctx context.Context, idempotencyKey string, orderID string, total entity.Money) error {
	body := receipts.CreateReceipt{
		TicketId: orderID,
		Price: receipts.Money{
			MoneyAmount:   total.Amount,
			MoneyCurrency: total.Currency,
		},
	}

	res, err := c.clients.Receipts.PutReceiptsWithResponse(ctx, body)
	if err != nil {
		return fmt.Errorf("put receipt request (key %s): %w", idempotencyKey, err)
	}

	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %v", res.StatusCode())
	}

	return nil
}
