// Package cart holds the shopping cart of the current session.
package cart

import (
	"errors"
	"sync"

	"storefront/entity"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingTicketID = errors.New("ticket id is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Cart keeps one line per ticket id in insertion order.
type Cart struct {
	lock  sync.RWMutex
	items []entity.CartItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem appends item, or adds its quantity to the existing line with the
// same ticket id.
func (c *Cart) AddItem(item entity.CartItem) error {
	if item.TicketID == "" {
		return ErrMissingTicketID
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	for i := range c.items {
		if c.items[i].TicketID == item.TicketID {
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}

	c.items = append(c.items, item)

	return nil
}

// RemoveItem drops the line for ticketID. Removing an absent ticket is a no-op.
func (c *Cart) RemoveItem(ticketID string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for i := range c.items {
		if c.items[i].TicketID == ticketID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// RemoveLines subtracts the quantity of each given line from the cart. A line
// whose quantity drops to zero or below is dropped; lines not listed are kept.
func (c *Cart) RemoveLines(lines []entity.CartItem) {
	removed := make(map[string]int, len(lines))
	for _, line := range lines {
		removed[line.TicketID] += line.Quantity
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		item.Quantity -= removed[item.TicketID]
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *Cart) Clear() {
	c.lock.Lock()
	c.items = nil
	c.lock.Unlock()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []entity.CartItem {
	c.lock.RLock()
	defer c.lock.RUnlock()

	items := make([]entity.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Total() decimal.Decimal {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return total(c.items)
}

func (c *Cart) ItemCount() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.items)
}

// Snapshot returns the lines and their total read under the same lock.
func (c *Cart) Snapshot() ([]entity.CartItem, decimal.Decimal) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	items := make([]entity.CartItem, len(c.items))
	copy(items, c.items)
	return items, total(c.items)
}

func total(items []entity.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
