package http

import (
	"fmt"
	"net/http"

	"storefront/entity"

	"github.com/labstack/echo/v4"
)

func (h handler) ListPurchases(c echo.Context) error {
	purchases, err := h.purchases.List(c.Request().Context())
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not load purchases",
			Internal: fmt.Errorf("listing purchases: %w", err),
		}
	}

	if purchases == nil {
		purchases = []entity.Purchase{}
	}

	return c.JSON(http.StatusOK, purchases)
}
