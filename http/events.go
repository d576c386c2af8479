package http

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/catalog"
	"storefront/postgres"

	"github.com/labstack/echo/v4"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h handler) ListEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Search(c.QueryParam("q")))
}

func (h handler) RefreshEvents(c echo.Context) error {
	if err := h.catalog.Refresh(c.Request().Context()); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusServiceUnavailable,
			Message:  catalog.ErrLoadEvents.Error(),
			Internal: err,
		}
	}

	return c.JSON(http.StatusOK, h.catalog.Events())
}

func (h handler) DeleteEvent(c echo.Context) error {
	eventID := c.Param("id")

	err := h.catalog.Delete(c.Request().Context(), eventID)
	if errors.Is(err, postgres.ErrEventNotFound) {
		return &echo.HTTPError{
			Code:     http.StatusNotFound,
			Message:  "event not found",
			Internal: err,
		}
	}
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  catalog.ErrDeleteEvent.Error(),
			Internal: err,
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h handler) ExportEventsXLSX(c echo.Context) error {
	content, err := h.documents.EventsXLSX(h.catalog.Events())
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not export events",
			Internal: fmt.Errorf("rendering events spreadsheet: %w", err),
		}
	}

	return attachment(c, "events.xlsx", contentTypeXLSX, content)
}

func (h handler) ExportEventsPDF(c echo.Context) error {
	content, err := h.documents.EventsPDF(h.catalog.Events())
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not export events",
			Internal: fmt.Errorf("rendering events document: %w", err),
		}
	}

	return attachment(c, "events.pdf", "application/pdf", content)
}

func attachment(c echo.Context, name, contentType string, content []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, content)
}
