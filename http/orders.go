package http

import (
	"fmt"
	"net/http"

	"storefront/checkout"
	"storefront/entity"

	"github.com/labstack/echo/v4"
)

func (h handler) ListOrders(c echo.Context) error {
	orders := h.orders.Search(c.QueryParam("q"))
	if orders == nil {
		orders = []entity.Order{}
	}

	return c.JSON(http.StatusOK, orders)
}

func (h handler) GetOrderTickets(c echo.Context) error {
	order, ok := h.orders.Get(c.Param("id"))
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "order not found",
		}
	}

	content, err := h.documents.TicketsPDF(checkout.TicketsDocument(order))
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not render tickets",
			Internal: fmt.Errorf("rendering tickets of order %s: %w", order.ID, err),
		}
	}

	return attachment(c, fmt.Sprintf("tickets-%s.pdf", order.ID), "application/pdf", content)
}
