package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func InitialiseDB(ctx context.Context, db *sqlx.DB) error {
	if err := CreateEventsTable(ctx, db); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	if err := CreateTicketsTable(ctx, db); err != nil {
		return fmt.Errorf("creating tickets table: %w", err)
	}

	if err := CreatePurchasesTable(ctx, db); err != nil {
		return fmt.Errorf("creating purchases table: %w", err)
	}

	return nil
}

func CreateEventsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		event_id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL,
		date TIMESTAMP WITH TIME ZONE NOT NULL,
		image_url TEXT NOT NULL DEFAULT ''
	);`)
	return err
}

func CreateTicketsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tickets (
		ticket_id UUID PRIMARY KEY,
		event_id UUID NOT NULL REFERENCES events (event_id),
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10, 2) NOT NULL,
		quantity INTEGER NOT NULL,
		available INTEGER NOT NULL
	);`)
	return err
}

func CreatePurchasesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS purchases (
		purchase_id UUID PRIMARY KEY,
		ticket_id UUID NOT NULL REFERENCES tickets (ticket_id),
		quantity INTEGER NOT NULL,
		total_price NUMERIC(10, 2) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		qr_code TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`)
	return err
}
