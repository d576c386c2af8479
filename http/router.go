package http

import (
	"net/http"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
)

var ErrServerClosed = http.ErrServerClosed

type RouterDeps struct {
	Catalog     Catalog
	Cart        Cart
	Orders      Orders
	Checkout    Checkout
	Idempotency IdempotencyStore
	Documents   Documents
	Purchases   Purchases
}

func NewRouter(deps RouterDeps) *echo.Echo {
	server := commonHTTP.NewEcho()

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	handler := handler{
		catalog:     deps.Catalog,
		cart:        deps.Cart,
		orders:      deps.Orders,
		checkout:    deps.Checkout,
		idempotency: deps.Idempotency,
		documents:   deps.Documents,
		purchases:   deps.Purchases,
	}

	server.GET("/events", handler.ListEvents)
	server.POST("/events/refresh", handler.RefreshEvents)
	server.GET("/events/export.xlsx", handler.ExportEventsXLSX)
	server.GET("/events/export.pdf", handler.ExportEventsPDF)
	server.DELETE("/events/:id", handler.DeleteEvent)

	server.GET("/cart", handler.GetCart)
	server.POST("/cart/items", handler.AddCartItem)
	server.DELETE("/cart/items/:ticket_id", handler.RemoveCartItem)
	server.DELETE("/cart", handler.ClearCart)

	server.POST("/checkout", handler.PostCheckout)

	server.GET("/orders", handler.ListOrders)
	server.GET("/orders/:id/tickets.pdf", handler.GetOrderTickets)

	server.GET("/purchases", handler.ListPurchases)

	server.POST("/tickets/validate", handler.ValidateTicket)

	return server
}
