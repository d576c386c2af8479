package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/entity"
	"storefront/event"
	"storefront/message"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseRepo struct {
	db     *sqlx.DB
	logger watermill.LoggerAdapter
}

func NewPurchaseRepo(db *sqlx.DB, logger watermill.LoggerAdapter) PurchaseRepo {
	return PurchaseRepo{
		db:     db,
		logger: logger,
	}
}

// Add inserts the purchase and publishes PurchaseRecorded to the outbox in
// the same transaction.
func (r PurchaseRepo) Add(ctx context.Context, purchase entity.Purchase) (entity.Purchase, error) {
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return entity.Purchase{}, fmt.Errorf("beginning transaction: %w", err)
	}

	created, err := r.add(ctx, tx, purchase)
	if err != nil {
		return entity.Purchase{}, errors.Join(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return entity.Purchase{}, fmt.Errorf("committing transaction: %w", err)
	}

	return created, nil
}

func (r PurchaseRepo) add(ctx context.Context, tx *sql.Tx, purchase entity.Purchase) (entity.Purchase, error) {
	row := tx.QueryRowContext(ctx, `INSERT INTO purchases
		(purchase_id, ticket_id, quantity, total_price, customer_name, customer_email, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at;`,
		purchase.ID, purchase.TicketID, purchase.Quantity, purchase.TotalPrice,
		purchase.CustomerName, purchase.CustomerEmail, purchase.QRCode)
	if err := row.Scan(&purchase.CreatedAt); err != nil {
		return entity.Purchase{}, fmt.Errorf("inserting purchase: %w", err)
	}

	e := event.NewPurchaseRecorded(purchase.ID, purchase)

	if err := message.PublishInTx(ctx, e, tx, r.logger); err != nil {
		return entity.Purchase{}, fmt.Errorf("publishing event in transaction: %w", err)
	}

	return purchase, nil
}

func (r PurchaseRepo) Delete(ctx context.Context, purchaseID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM purchases WHERE purchase_id = $1", purchaseID)
	if err != nil {
		return fmt.Errorf("executing delete query: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n != 1 {
		return ErrPurchaseNotFound
	}

	return nil
}

// List returns all purchases, most recent first.
func (r PurchaseRepo) List(ctx context.Context) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := r.db.SelectContext(ctx, &purchases, `SELECT purchase_id, ticket_id, quantity, total_price,
		customer_name, customer_email, qr_code, created_at
		FROM purchases ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	return purchases, nil
}

// FindByTicketAndEmail returns the latest purchase of ticketID by email.
func (r PurchaseRepo) FindByTicketAndEmail(ctx context.Context, ticketID, email string) (entity.Purchase, error) {
	var p entity.Purchase
	err := r.db.GetContext(ctx, &p, `SELECT purchase_id, ticket_id, quantity, total_price,
		customer_name, customer_email, qr_code, created_at
		FROM purchases WHERE ticket_id = $1 AND customer_email = $2
		ORDER BY created_at DESC LIMIT 1`, ticketID, email)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Purchase{}, ErrPurchaseNotFound
	}
	if err != nil {
		return entity.Purchase{}, fmt.Errorf("querying purchase: %w", err)
	}
	return p, nil
}
