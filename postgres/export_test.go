package postgres

import "context"

func (r TicketRepo) Available(ctx context.Context, ticketID string) (int, error) {
	var available int
	err := r.db.GetContext(ctx, &available, "SELECT available FROM tickets WHERE ticket_id = $1", ticketID)
	return available, err
}
