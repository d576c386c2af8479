package clients

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"storefront/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/clients"
	"github.com/ThreeDotsLabs/go-event-driven/common/clients/files"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

const ticketFileTemplate = `<html><body>
<h1>Event Ticket</h1>
<p>Ticket ID: %s</p>
<p>Customer: %s</p>
<p>Quantity: %d</p>
<p>Price amount: %s</p>
<p>Price currency: %s</p>
<img src="%s" alt="Proof of purchase"/>
</body></html>`

type FilesClient struct {
	client files.ClientWithResponsesInterface
}

func NewFilesClient(c *clients.Clients) FilesClient {
	return FilesClient{
		client: c.Files,
	}
}

func (c FilesClient) StoreTicketFile(ctx context.Context, ticket entity.TicketFile) (string, error) {
	fileID := TicketFileID(ticket.PurchaseID)

	res, err := c.client.PutFilesFileIdContentWithTextBodyWithResponse(ctx, fileID, RenderTicketFile(ticket))
	if err != nil {
		return "", fmt.Errorf("put file request: %w", err)
	}

	if res.StatusCode() == http.StatusConflict {
		log.FromContext(ctx).Infof("file %s already exists", fileID)
		return fileID, nil
	}

	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}

	return fileID, nil
}

func TicketFileID(purchaseID string) string {
	return fmt.Sprintf("%s-ticket.html", purchaseID)
}

func RenderTicketFile(ticket entity.TicketFile) string {
	return fmt.Sprintf(
		ticketFileTemplate,
		html.EscapeString(ticket.TicketID),
		html.EscapeString(ticket.CustomerName),
		ticket.Quantity,
		ticket.TotalPrice.Amount,
		ticket.TotalPrice.Currency,
		html.EscapeString(ticket.QRCode),
	)
}
