// Package api exposes the storefront over a JSON HTTP API: the priced
// catalog, session carts, checkout, and the order status machine.
package api

import (
	"context"

	"github.com/danukusuma/gerai/internal/cart"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/events"
	"github.com/danukusuma/gerai/internal/order"
	"github.com/danukusuma/gerai/internal/pricing"
	"github.com/danukusuma/gerai/internal/telemetry"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// OrderStore persists orders. Both the postgres and memory stores
// satisfy it.
type OrderStore interface {
	SaveOrder(ctx context.Context, o domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// Handler serves the storefront API.
type Handler struct {
	log         zerolog.Logger
	catalog     domain.CatalogReader
	pricer      *pricing.Engine
	commissions *pricing.Calculator
	agg         *cart.Aggregator
	lifecycle   *order.Lifecycle
	orders      OrderStore
	sessions    *SessionCarts
	events      events.Publisher
	metrics     *telemetry.Metrics
	validate    *validator.Validate
}

// NewHandler wires the API handler to the commerce engine.
func NewHandler(
	log zerolog.Logger,
	catalog domain.CatalogReader,
	pricer *pricing.Engine,
	commissions *pricing.Calculator,
	agg *cart.Aggregator,
	lifecycle *order.Lifecycle,
	orders OrderStore,
	publisher events.Publisher,
	metrics *telemetry.Metrics,
) *Handler {
	return &Handler{
		log:         log,
		catalog:     catalog,
		pricer:      pricer,
		commissions: commissions,
		agg:         agg,
		lifecycle:   lifecycle,
		orders:      orders,
		sessions:    NewSessionCarts(),
		events:      publisher,
		metrics:     metrics,
		validate:    validator.New(),
	}
}

// RegisterRoutes mounts the API under /api.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/products", h.listProducts)
	g.GET("/products/:id", h.getProduct)
	g.GET("/products/:id/commission", h.getCommission)
	g.GET("/sales-bonus", h.getSalesBonus)

	g.GET("/cart", h.getCart)
	g.POST("/cart/items", h.addCartItem)
	g.PATCH("/cart/items/:productID", h.updateCartItem)
	g.DELETE("/cart/items/:productID", h.removeCartItem)
	g.POST("/cart/promo", h.applyPromo)

	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.listOrders)
	g.GET("/orders/:id", h.getOrder)
	g.POST("/orders/:id/status", h.transitionOrder)
	g.POST("/orders/:id/payment", h.markPayment)
}

// roleFrom resolves the caller's role from the X-Role header. Absent
// means customer; an unrecognized value is rejected.
func roleFrom(c echo.Context) (domain.Role, error) {
	raw := c.Request().Header.Get("X-Role")
	if raw == "" {
		return domain.RoleCustomer, nil
	}
	return domain.ParseRole(raw)
}
