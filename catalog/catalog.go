// Package catalog holds the list of events offered in the storefront.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"storefront/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

var (
	ErrLoadEvents  = errors.New("could not load events")
	ErrDeleteEvent = errors.New("could not delete event")
)

type EventRepo interface {
	List(ctx context.Context) ([]entity.Event, error)
	Delete(ctx context.Context, eventID string) error
}

type Catalog struct {
	repo EventRepo

	lock   sync.RWMutex
	events []entity.Event
}

func New(repo EventRepo) *Catalog {
	return &Catalog{repo: repo}
}

// Refresh replaces the local list with the events of the store, ordered by date.
// On failure the previous list is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	events, err := c.repo.List(ctx)
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Failed to load events")
		return fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.events = events

	return nil
}

func (c *Catalog) Events() []entity.Event {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return append([]entity.Event(nil), c.events...)
}

// Search matches query case-insensitively against title, description and
// location. A blank query returns every event.
func (c *Catalog) Search(query string) []entity.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Events()
	}

	c.lock.RLock()
	defer c.lock.RUnlock()

	var found []entity.Event
	for _, e := range c.events {
		if strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.Description), query) ||
			strings.Contains(strings.ToLower(e.Location), query) {
			found = append(found, e)
		}
	}

	return found
}

// Ticket finds a ticket type across all events.
func (c *Catalog) Ticket(ticketID string) (entity.Ticket, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	for _, e := range c.events {
		for _, t := range e.Tickets {
			if t.ID == ticketID {
				return t, true
			}
		}
	}

	return entity.Ticket{}, false
}

// Delete removes the event from the store and, only once that succeeded, from the list.
func (c *Catalog) Delete(ctx context.Context, eventID string) error {
	if err := c.repo.Delete(ctx, eventID); err != nil {
		log.FromContext(ctx).WithError(err).WithField("event_id", eventID).Error("Failed to delete event")
		return fmt.Errorf("%w: %w", ErrDeleteEvent, err)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	kept := c.events[:0:0]
	for _, e := range c.events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	c.events = kept

	return nil
}
