package postgres_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"storefront/entity"
	"storefront/message"
	"storefront/postgres"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *sqlx.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		fmt.Println("POSTGRES_URL not set, skipping postgres tests")
		os.Exit(0)
	}

	var err error
	db, err = sqlx.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to db: %s", err)
	}

	if err := postgres.InitialiseDB(context.Background(), db); err != nil {
		log.Fatalf("failed to create tables: %s", err)
	}

	// Creating the forwarder creates the outbox tables written by PurchaseRepo.Add.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	if _, err := message.NewForwarder(db, pubSub, watermill.NopLogger{}); err != nil {
		log.Fatalf("failed to create outbox: %s", err)
	}

	code := m.Run()

	if err := db.Close(); err != nil {
		log.Fatalf("failed to close db connection: %s", err)
	}

	os.Exit(code)
}

func newEvent(date time.Time) entity.Event {
	eventID := uuid.NewString()

	return entity.Event{
		ID:       eventID,
		Title:    "Jazz Night",
		Location: "Paris",
		Date:     date,
		Tickets: []entity.Ticket{
			{ID: uuid.NewString(), EventID: eventID, Name: "VIP", Price: decimal.RequireFromString("80.00"), Quantity: 10, Available: 10},
			{ID: uuid.NewString(), EventID: eventID, Name: "Standard", Price: decimal.RequireFromString("25.50"), Quantity: 100, Available: 100},
		},
	}
}

func findEvent(events []entity.Event, eventID string) (int, entity.Event, bool) {
	for i, e := range events {
		if e.ID == eventID {
			return i, e, true
		}
	}
	return -1, entity.Event{}, false
}

func TestEventRepo_List(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewEventRepo(db)

	later := newEvent(time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second))
	sooner := newEvent(time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second))
	require.NoError(t, repo.Add(ctx, later))
	require.NoError(t, repo.Add(ctx, sooner))

	events, err := repo.List(ctx)
	require.NoError(t, err)

	laterIdx, _, ok := findEvent(events, later.ID)
	require.True(t, ok)
	soonerIdx, got, ok := findEvent(events, sooner.ID)
	require.True(t, ok)

	assert.Less(t, soonerIdx, laterIdx)
	require.Len(t, got.Tickets, 2)
	assert.Equal(t, 110, got.TotalTickets())
	assert.Equal(t, 110, got.AvailableTickets())
	assert.True(t, got.Tickets[0].Price.Equal(decimal.RequireFromString("25.50")))
}

func TestTicketRepo_Availability(t *testing.T) {
	ctx := context.Background()
	event := newEvent(time.Now().UTC())
	require.NoError(t, postgres.NewEventRepo(db).Add(ctx, event))

	repo := postgres.NewTicketRepo(db)
	ticketID := event.Tickets[0].ID

	require.NoError(t, repo.DecrementAvailable(ctx, ticketID, 3))
	available, err := repo.Available(ctx, ticketID)
	require.NoError(t, err)
	assert.Equal(t, 7, available)

	require.NoError(t, repo.IncrementAvailable(ctx, ticketID, 3))
	available, err = repo.Available(ctx, ticketID)
	require.NoError(t, err)
	assert.Equal(t, 10, available)

	assert.ErrorIs(t, repo.DecrementAvailable(ctx, uuid.NewString(), 1), postgres.ErrTicketNotFound)
}

func TestPurchaseRepo(t *testing.T) {
	ctx := context.Background()
	event := newEvent(time.Now().UTC())
	require.NoError(t, postgres.NewEventRepo(db).Add(ctx, event))

	repo := postgres.NewPurchaseRepo(db, watermill.NopLogger{})
	email := uuid.NewString() + "@example.com"

	purchase, err := repo.Add(ctx, entity.Purchase{
		ID:            uuid.NewString(),
		TicketID:      event.Tickets[0].ID,
		Quantity:      2,
		TotalPrice:    decimal.RequireFromString("160.00"),
		CustomerName:  "Alice Martin",
		CustomerEmail: email,
		QRCode:        "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	assert.False(t, purchase.CreatedAt.IsZero())

	found, err := repo.FindByTicketAndEmail(ctx, event.Tickets[0].ID, email)
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, found.ID)
	assert.True(t, found.TotalPrice.Equal(decimal.RequireFromString("160")))

	_, err = repo.FindByTicketAndEmail(ctx, event.Tickets[0].ID, "nobody@example.com")
	assert.ErrorIs(t, err, postgres.ErrPurchaseNotFound)

	require.NoError(t, repo.Delete(ctx, purchase.ID))
	assert.ErrorIs(t, repo.Delete(ctx, purchase.ID), postgres.ErrPurchaseNotFound)
}

func TestPurchaseRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	event := newEvent(time.Now().UTC())
	require.NoError(t, postgres.NewEventRepo(db).Add(ctx, event))

	repo := postgres.NewPurchaseRepo(db, watermill.NopLogger{})

	var ids []string
	for i := 0; i < 2; i++ {
		p, err := repo.Add(ctx, entity.Purchase{
			ID:            uuid.NewString(),
			TicketID:      event.Tickets[0].ID,
			Quantity:      1,
			TotalPrice:    decimal.RequireFromString("80.00"),
			CustomerName:  "Alice Martin",
			CustomerEmail: "alice@example.com",
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
		time.Sleep(10 * time.Millisecond)
	}

	purchases, err := repo.List(ctx)
	require.NoError(t, err)

	position := map[string]int{}
	for i, p := range purchases {
		position[p.ID] = i
	}
	require.Contains(t, position, ids[0])
	require.Contains(t, position, ids[1])
	assert.Less(t, position[ids[1]], position[ids[0]], "later purchase should be listed first")

	for i := 1; i < len(purchases); i++ {
		assert.False(t, purchases[i].CreatedAt.After(purchases[i-1].CreatedAt))
	}
}

func TestEventRepo_Delete(t *testing.T) {
	ctx := context.Background()
	eventRepo := postgres.NewEventRepo(db)
	event := newEvent(time.Now().UTC())
	require.NoError(t, eventRepo.Add(ctx, event))

	_, err := postgres.NewPurchaseRepo(db, watermill.NopLogger{}).Add(ctx, entity.Purchase{
		ID:            uuid.NewString(),
		TicketID:      event.Tickets[1].ID,
		Quantity:      1,
		TotalPrice:    decimal.RequireFromString("25.50"),
		CustomerName:  "Alice Martin",
		CustomerEmail: "alice@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, eventRepo.Delete(ctx, event.ID))

	events, err := eventRepo.List(ctx)
	require.NoError(t, err)
	_, _, ok := findEvent(events, event.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, eventRepo.Delete(ctx, event.ID), postgres.ErrEventNotFound)
}
