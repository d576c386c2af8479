package message

import (
	"context"
	"fmt"
	"strconv"

	"storefront/command"
	"storefront/entity"
	"storefront/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

const (
	ordersSheet    = "orders"
	purchasesSheet = "purchases"
)

type ReceiptIssuer interface {
	IssueReceipt(ctx context.Context, idempotencyKey string, orderID string, total entity.Money) error
}

type SpreadsheetAppender interface {
	AppendRow(ctx context.Context, spreadsheetName string, row []string) error
}

type TicketFileStorer interface {
	StoreTicketFile(ctx context.Context, ticket entity.TicketFile) (string, error)
}

type PaymentRefunder interface {
	RefundPayment(ctx context.Context, idempotencyKey string, orderID string, reason string) error
}

func handleIssueReceipt(issuer ReceiptIssuer) func(ctx context.Context, e *event.OrderPlaced) error {
	return func(ctx context.Context, e *event.OrderPlaced) error {
		if err := issuer.IssueReceipt(ctx, e.Header.IdempotencyKey, e.OrderID, e.Total); err != nil {
			return fmt.Errorf("issuing receipt for order %s: %w", e.OrderID, err)
		}

		return nil
	}
}

func handleAppendToOrdersTracker(appender SpreadsheetAppender) func(ctx context.Context, e *event.OrderPlaced) error {
	return func(ctx context.Context, e *event.OrderPlaced) error {
		quantity := 0
		for _, line := range e.Lines {
			quantity += line.Quantity
		}

		row := []string{
			e.OrderID,
			e.CustomerName,
			e.CustomerEmail,
			strconv.Itoa(quantity),
			e.Total.Amount,
			e.Total.Currency,
		}

		if err := appender.AppendRow(ctx, ordersSheet, row); err != nil {
			return fmt.Errorf("appending order %s to tracker: %w", e.OrderID, err)
		}

		return nil
	}
}

func handleStoreTicketFile(storer TicketFileStorer) func(ctx context.Context, e *event.PurchaseRecorded) error {
	return func(ctx context.Context, e *event.PurchaseRecorded) error {
		fileID, err := storer.StoreTicketFile(ctx, entity.TicketFile{
			PurchaseID:   e.PurchaseID,
			TicketID:     e.TicketID,
			CustomerName: e.CustomerName,
			Quantity:     e.Quantity,
			TotalPrice:   e.TotalPrice,
			QRCode:       e.QRCode,
		})
		if err != nil {
			return fmt.Errorf("storing ticket file for purchase %s: %w", e.PurchaseID, err)
		}

		log.FromContext(ctx).WithField("file_id", fileID).Info("Ticket file stored")

		return nil
	}
}

func handleAppendToPurchasesTracker(appender SpreadsheetAppender) func(ctx context.Context, e *event.PurchaseRecorded) error {
	return func(ctx context.Context, e *event.PurchaseRecorded) error {
		row := []string{
			e.PurchaseID,
			e.TicketID,
			e.CustomerEmail,
			strconv.Itoa(e.Quantity),
			e.TotalPrice.Amount,
			e.TotalPrice.Currency,
		}

		if err := appender.AppendRow(ctx, purchasesSheet, row); err != nil {
			return fmt.Errorf("appending purchase %s to tracker: %w", e.PurchaseID, err)
		}

		return nil
	}
}

func handleRefundOrder(refunder PaymentRefunder) func(ctx context.Context, c *command.RefundOrder) error {
	return func(ctx context.Context, c *command.RefundOrder) error {
		if err := refunder.RefundPayment(ctx, c.Header.IdempotencyKey, c.OrderID, c.Reason); err != nil {
			return fmt.Errorf("refunding order %s: %w", c.OrderID, err)
		}

		return nil
	}
}
