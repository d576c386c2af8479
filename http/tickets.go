package http

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/entity"
	"storefront/postgres"
	"storefront/proof"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type validateTicketRequest struct {
	// Payload is the scanned content of the proof-of-purchase code.
	Payload string `json:"payload"`
}

type validateTicketResponse struct {
	Valid    bool             `json:"valid"`
	Message  string           `json:"message"`
	Purchase *entity.Purchase `json:"purchase,omitempty"`
}

func (h handler) ValidateTicket(c echo.Context) error {
	ctx := c.Request().Context()

	var request validateTicketRequest
	if err := c.Bind(&request); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("failed to bind request: %w", err),
		}
	}

	payload, err := proof.ParsePayload(request.Payload)
	if err != nil {
		log.FromContext(ctx).WithError(err).Info("Unreadable ticket code")
		return c.JSON(http.StatusOK, validateTicketResponse{Message: "Could not read the ticket code"})
	}

	purchase, err := h.purchases.FindByTicketAndEmail(ctx, payload.TicketID, payload.Email)
	if errors.Is(err, postgres.ErrPurchaseNotFound) {
		return c.JSON(http.StatusOK, validateTicketResponse{Message: "Invalid or unknown ticket"})
	}
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not validate ticket",
			Internal: err,
		}
	}

	name := purchase.TicketID
	if ticket, ok := h.catalog.Ticket(purchase.TicketID); ok {
		name = ticket.Name
	}

	return c.JSON(http.StatusOK, validateTicketResponse{
		Valid:    true,
		Message:  fmt.Sprintf("Valid ticket for %s", name),
		Purchase: &purchase,
	})
}
