package order_test

import (
	"testing"
	"time"

	"storefront/entity"
	"storefront/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddKeepsNewestFirst(t *testing.T) {
	s := order.NewStore()
	a := entity.Order{ID: "A", Date: time.Now()}
	b := entity.Order{ID: "B", Date: time.Now()}

	s.Add(a)
	s.Add(b)

	orders := s.All()
	require.Len(t, orders, 2)
	assert.Equal(t, "B", orders[0].ID)
	assert.Equal(t, "A", orders[1].ID)
}

func TestStore_Search(t *testing.T) {
	s := order.NewStore()
	s.Add(entity.Order{ID: "ord-100", CustomerName: "Alice Martin", Email: "alice@example.com"})
	s.Add(entity.Order{ID: "ord-200", CustomerName: "Bob Durand", Email: "bob@example.org"})
	s.Add(entity.Order{ID: "ord-300", CustomerName: "Claire Petit", Email: "claire@example.com"})

	t.Run("empty query returns all orders in order", func(t *testing.T) {
		orders := s.Search("")
		require.Len(t, orders, 3)
		assert.Equal(t, []string{"ord-300", "ord-200", "ord-100"}, ids(orders))

		assert.Len(t, s.Search("   "), 3)
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"ord-100"}, ids(s.Search("ALICE")))
	})

	t.Run("matches email", func(t *testing.T) {
		assert.Equal(t, []string{"ord-300", "ord-100"}, ids(s.Search("example.com")))
	})

	t.Run("matches order id", func(t *testing.T) {
		assert.Equal(t, []string{"ord-200"}, ids(s.Search("ORD-2")))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Search("zoe"))
	})

	assert.Len(t, s.All(), 3)
}

func TestStore_Get(t *testing.T) {
	s := order.NewStore()
	s.Add(entity.Order{ID: "ord-1"})

	o, ok := s.Get("ord-1")
	require.True(t, ok)
	assert.Equal(t, "ord-1", o.ID)

	_, ok = s.Get("ord-2")
	assert.False(t, ok)
}

func ids(orders []entity.Order) []string {
	var out []string
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
