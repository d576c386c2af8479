package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepo struct {
	db *sqlx.DB
}

func NewTicketRepo(db *sqlx.DB) TicketRepo {
	return TicketRepo{
		db: db,
	}
}

// DecrementAvailable lowers the available count of a ticket type. The update
// does not reserve stock: concurrent buyers may drive it below zero.
func (r TicketRepo) DecrementAvailable(ctx context.Context, ticketID string, quantity int) error {
	return r.adjustAvailable(ctx, ticketID, -quantity)
}

func (r TicketRepo) IncrementAvailable(ctx context.Context, ticketID string, quantity int) error {
	return r.adjustAvailable(ctx, ticketID, quantity)
}

func (r TicketRepo) adjustAvailable(ctx context.Context, ticketID string, delta int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE tickets SET available = available + $1 WHERE ticket_id = $2", delta, ticketID)
	if err != nil {
		return fmt.Errorf("executing update query: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n != 1 {
		return ErrTicketNotFound
	}

	return nil
}
