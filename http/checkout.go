package http

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/checkout"
	"storefront/entity"
	"storefront/idempotency"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type checkoutRequest struct {
	Customer entity.CustomerInfo `json:"customer"`
	Card     cardRequest         `json:"card"`
}

type cardRequest struct {
	Number     string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type checkoutResponse struct {
	State      checkout.State `json:"state"`
	Message    string         `json:"message"`
	Order      *entity.Order  `json:"order,omitempty"`
	TicketsURL string         `json:"tickets_url,omitempty"`
}

func (h handler) PostCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var request checkoutRequest
	if err := c.Bind(&request); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("failed to bind request: %w", err),
		}
	}

	key := c.Request().Header.Get(headerKeyIdempotencyKey)
	if key != "" {
		err := h.idempotency.Claim(ctx, key)
		if errors.Is(err, idempotency.ErrDuplicateKey) {
			return h.replayCheckout(c, key)
		}
		if err != nil {
			return &echo.HTTPError{
				Code:     http.StatusInternalServerError,
				Message:  http.StatusText(http.StatusInternalServerError),
				Internal: err,
			}
		}
	}

	res, err := h.checkout.Run(ctx, checkout.Request{
		Customer: request.Customer,
		Card: entity.PaymentDetails{
			CardNumber: request.Card.Number,
			ExpiryDate: request.Card.ExpiryDate,
			CVV:        request.Card.CVV,
		},
	})
	if err != nil {
		if key != "" {
			if releaseErr := h.idempotency.Release(ctx, key); releaseErr != nil {
				log.FromContext(ctx).WithError(releaseErr).Warn("Failed to release idempotency key")
			}
		}

		return &echo.HTTPError{
			Code:     checkoutErrorStatus(err),
			Message:  res.Message,
			Internal: err,
		}
	}

	if key != "" {
		if err := h.idempotency.Complete(ctx, key, res.Order.ID); err != nil {
			log.FromContext(ctx).WithError(err).Warn("Failed to record idempotency key")
		}
	}

	return c.JSON(http.StatusCreated, newCheckoutResponse(res.State, res.Message, res.Order))
}

func (h handler) replayCheckout(c echo.Context, key string) error {
	orderID, done, err := h.idempotency.OrderID(c.Request().Context(), key)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  http.StatusText(http.StatusInternalServerError),
			Internal: err,
		}
	}

	if !done {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: checkout.Message(checkout.ErrCheckoutInProgress),
		}
	}

	// Orders are kept in memory, so a key completed before a restart can
	// outlive its order.
	order, ok := h.orders.Get(orderID)
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This checkout was already completed, use a new submission to order again",
		}
	}

	return c.JSON(http.StatusOK, newCheckoutResponse(checkout.StateCompleted, "", order))
}

func newCheckoutResponse(state checkout.State, message string, order entity.Order) checkoutResponse {
	return checkoutResponse{
		State:      state,
		Message:    message,
		Order:      &order,
		TicketsURL: fmt.Sprintf("/orders/%s/tickets.pdf", order.ID),
	}
}

func checkoutErrorStatus(err error) int {
	var declined *checkout.DeclinedError
	var persistence *checkout.PersistenceError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInvalidCustomer):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.As(err, &declined):
		return http.StatusPaymentRequired
	case errors.As(err, &persistence):
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
