// Package order keeps the orders completed during this session, newest first.
package order

import (
	"strings"
	"sync"

	"storefront/entity"
)

type Store struct {
	lock   sync.RWMutex
	orders []entity.Order
}

func NewStore() *Store {
	return &Store{}
}

// Add records order ahead of all previous orders.
func (s *Store) Add(order entity.Order) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.orders = append([]entity.Order{order}, s.orders...)
}

func (s *Store) All() []entity.Order {
	s.lock.RLock()
	defer s.lock.RUnlock()

	orders := make([]entity.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

func (s *Store) Get(orderID string) (entity.Order, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, o := range s.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return entity.Order{}, false
}

// Search matches query case-insensitively against the customer name, email
// and order id. An empty query returns every order.
func (s *Store) Search(query string) []entity.Order {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return s.All()
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	var found []entity.Order
	for _, o := range s.orders {
		if strings.Contains(strings.ToLower(o.CustomerName), term) ||
			strings.Contains(strings.ToLower(o.Email), term) ||
			strings.Contains(strings.ToLower(o.ID), term) {
			found = append(found, o)
		}
	}
	return found
}
