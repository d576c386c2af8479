package cart_test

import (
	"testing"

	"storefront/cart"
	"storefront/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(ticketID, unitPrice string, quantity int) entity.CartItem {
	return entity.CartItem{
		TicketID:  ticketID,
		Name:      "Ticket " + ticketID,
		UnitPrice: decimal.RequireFromString(unitPrice),
		Quantity:  quantity,
	}
}

func TestCart_AddItemMergesByTicketID(t *testing.T) {
	c := cart.New()

	require.NoError(t, c.AddItem(item("a", "10.00", 1)))
	require.NoError(t, c.AddItem(item("b", "25.50", 2)))
	require.NoError(t, c.AddItem(item("a", "10.00", 3)))
	require.NoError(t, c.AddItem(item("b", "25.50", 1)))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].TicketID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "b", items[1].TicketID)
	assert.Equal(t, 3, items[1].Quantity)

	assert.Equal(t, 7, c.ItemCount())
	assert.True(t, decimal.RequireFromString("116.50").Equal(c.Total()), "got %s", c.Total())
}

func TestCart_AddItemRejectsInvalidLines(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("a", "10.00", 1)))

	assert.ErrorIs(t, c.AddItem(item("a", "10.00", 0)), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(item("b", "10.00", -2)), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(item("", "10.00", 1)), cart.ErrMissingTicketID)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_RemoveItem(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("a", "10.00", 1)))
	require.NoError(t, c.AddItem(item("b", "5.00", 2)))

	c.RemoveItem("missing")
	assert.Equal(t, 2, c.Len())
	assert.True(t, decimal.RequireFromString("20").Equal(c.Total()))

	c.RemoveItem("a")
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].TicketID)
	assert.True(t, decimal.RequireFromString("10").Equal(c.Total()))
}

func TestCart_Clear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("a", "10.00", 1)))

	c.Clear()

	assert.Zero(t, c.Len())
	assert.Zero(t, c.ItemCount())
	assert.True(t, c.Total().IsZero())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("a", "10.00", 1)))

	items := c.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_RemoveLinesKeepsLaterAdditions(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("t-1", "10", 2)))
	require.NoError(t, c.AddItem(item("t-2", "5", 1)))

	ordered, _ := c.Snapshot()

	require.NoError(t, c.AddItem(item("t-1", "10", 1)))
	require.NoError(t, c.AddItem(item("t-3", "7", 4)))

	c.RemoveLines(ordered)

	assert.Equal(t, []entity.CartItem{item("t-1", "10", 1), item("t-3", "7", 4)}, c.Items())
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_RemoveLinesEmptiesOrderedCart(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(item("t-1", "10", 2)))

	ordered, _ := c.Snapshot()
	c.RemoveLines(ordered)

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}
