package http

import (
	"fmt"
	"net/http"

	"storefront/entity"
	"storefront/price"

	"github.com/labstack/echo/v4"
)

type addCartItemRequest struct {
	TicketID string `json:"ticket_id"`
	Quantity int    `json:"quantity"`
}

type cartResponse struct {
	Items          []entity.CartItem `json:"items"`
	ItemCount      int               `json:"item_count"`
	Total          string            `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
}

func (h handler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h handler) AddCartItem(c echo.Context) error {
	var request addCartItemRequest
	if err := c.Bind(&request); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("failed to bind request: %w", err),
		}
	}

	ticket, ok := h.catalog.Ticket(request.TicketID)
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "ticket not found",
		}
	}

	err := h.cart.AddItem(entity.CartItem{
		TicketID:  ticket.ID,
		Name:      ticket.Name,
		UnitPrice: ticket.Price,
		Quantity:  request.Quantity,
	})
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  err.Error(),
			Internal: err,
		}
	}

	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h handler) RemoveCartItem(c echo.Context) error {
	h.cart.RemoveItem(c.Param("ticket_id"))

	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h handler) ClearCart(c echo.Context) error {
	h.cart.Clear()

	return c.NoContent(http.StatusNoContent)
}

func (h handler) cartResponse() cartResponse {
	items, total := h.cart.Snapshot()
	if items == nil {
		items = []entity.CartItem{}
	}

	return cartResponse{
		Items:          items,
		ItemCount:      h.cart.ItemCount(),
		Total:          total.StringFixed(2),
		TotalFormatted: price.Format(total),
	}
}
