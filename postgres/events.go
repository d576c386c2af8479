package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepo struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) EventRepo {
	return EventRepo{
		db: db,
	}
}

// Add stores the event together with its ticket types.
func (r EventRepo) Add(ctx context.Context, event entity.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := addEvent(ctx, tx, event); err != nil {
		return errors.Join(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func addEvent(ctx context.Context, tx *sqlx.Tx, event entity.Event) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO events
		(event_id, title, description, location, date, image_url)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		event.ID, event.Title, event.Description, event.Location, event.Date, event.ImageURL)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	for _, t := range event.Tickets {
		_, err := tx.ExecContext(ctx, `INSERT INTO tickets
			(ticket_id, event_id, name, description, price, quantity, available)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			t.ID, event.ID, t.Name, t.Description, t.Price, t.Quantity, t.Available)
		if err != nil {
			return fmt.Errorf("inserting ticket %s: %w", t.ID, err)
		}
	}

	return nil
}

// List returns every event with its ticket types, soonest first.
func (r EventRepo) List(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, `SELECT event_id, title, description, location, date, image_url
		FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	if len(events) == 0 {
		return events, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	var tickets []entity.Ticket
	err = r.db.SelectContext(ctx, &tickets, `SELECT ticket_id, event_id, name, description, price, quantity, available
		FROM tickets WHERE event_id = ANY($1) ORDER BY price ASC, name ASC`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}

	byEvent := make(map[string][]entity.Ticket, len(events))
	for _, t := range tickets {
		byEvent[t.EventID] = append(byEvent[t.EventID], t)
	}
	for i := range events {
		events[i].Tickets = byEvent[events[i].ID]
	}

	return events, nil
}

// Delete removes the event after its purchases and tickets. Failing to delete
// the purchases does not stop the rest.
func (r EventRepo) Delete(ctx context.Context, eventID string) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM events WHERE event_id = $1)", eventID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking event: %w", err)
	}
	if !exists {
		return ErrEventNotFound
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM purchases
		WHERE ticket_id IN (SELECT ticket_id FROM tickets WHERE event_id = $1)`, eventID)
	if err != nil {
		log.FromContext(ctx).WithError(err).WithField("event_id", eventID).Warn("Failed to delete purchases of event")
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("deleting tickets: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}
