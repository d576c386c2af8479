package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/catalog"
	"storefront/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Refresh(t *testing.T) {
	repo := &eventRepoMock{events: testEvents()}
	c := catalog.New(repo)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Events(), 3)

	repo.listErr = errors.New("connection refused")
	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, catalog.ErrLoadEvents)
	assert.ErrorContains(t, err, "connection refused")
	assert.Len(t, c.Events(), 3, "previous events should be kept")
}

func TestCatalog_Search(t *testing.T) {
	c := catalog.New(&eventRepoMock{events: testEvents()})
	require.NoError(t, c.Refresh(context.Background()))

	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{"e-1", "e-2", "e-3"}},
		{name: "blank query returns all", query: "   ", want: []string{"e-1", "e-2", "e-3"}},
		{name: "title", query: "jazz", want: []string{"e-1"}},
		{name: "description case insensitive", query: "ORCHESTRA", want: []string{"e-2"}},
		{name: "location", query: "lyon", want: []string{"e-2", "e-3"}},
		{name: "no match", query: "opera", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ids []string
			for _, e := range c.Search(tc.query) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestCatalog_Ticket(t *testing.T) {
	c := catalog.New(&eventRepoMock{events: testEvents()})
	require.NoError(t, c.Refresh(context.Background()))

	ticket, ok := c.Ticket("t-2")
	require.True(t, ok)
	assert.Equal(t, "VIP", ticket.Name)

	_, ok = c.Ticket("missing")
	assert.False(t, ok)
}

func TestCatalog_Delete(t *testing.T) {
	repo := &eventRepoMock{events: testEvents()}
	c := catalog.New(repo)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Delete(context.Background(), "e-2"))
	assert.Equal(t, []string{"e-2"}, repo.Deleted())
	assert.Len(t, c.Events(), 2)
	_, ok := c.Ticket("t-3")
	assert.False(t, ok)
}

func TestCatalog_DeleteFailureKeepsEvents(t *testing.T) {
	repo := &eventRepoMock{events: testEvents(), deleteErr: errors.New("foreign key violation")}
	c := catalog.New(repo)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Delete(context.Background(), "e-1")
	require.ErrorIs(t, err, catalog.ErrDeleteEvent)
	assert.Len(t, c.Events(), 3)
}

func testEvents() []entity.Event {
	date := time.Date(2026, 6, 21, 20, 0, 0, 0, time.UTC)

	return []entity.Event{
		{
			ID:          "e-1",
			Title:       "Jazz Night",
			Description: "Quartet live",
			Location:    "Paris",
			Date:        date,
			Tickets: []entity.Ticket{
				{ID: "t-1", EventID: "e-1", Name: "Standard", Price: decimal.RequireFromString("25"), Quantity: 100, Available: 40},
				{ID: "t-2", EventID: "e-1", Name: "VIP", Price: decimal.RequireFromString("80"), Quantity: 10, Available: 2},
			},
		},
		{
			ID:          "e-2",
			Title:       "Symphony",
			Description: "The city orchestra plays Mahler",
			Location:    "Lyon",
			Date:        date.AddDate(0, 1, 0),
			Tickets: []entity.Ticket{
				{ID: "t-3", EventID: "e-2", Name: "Seat", Price: decimal.RequireFromString("45.5"), Quantity: 500, Available: 500},
			},
		},
		{
			ID:       "e-3",
			Title:    "Rock Festival",
			Location: "Lyon",
			Date:     date.AddDate(0, 2, 0),
		},
	}
}

type eventRepoMock struct {
	lock      sync.Mutex
	events    []entity.Event
	listErr   error
	deleteErr error
	deleted   []string
}

func (m *eventRepoMock) List(ctx context.Context) ([]entity.Event, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	return append([]entity.Event(nil), m.events...), nil
}

func (m *eventRepoMock) Delete(ctx context.Context, eventID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.deleteErr != nil {
		return m.deleteErr
	}

	m.deleted = append(m.deleted, eventID)

	return nil
}

func (m *eventRepoMock) Deleted() []string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]string(nil), m.deleted...)
}
