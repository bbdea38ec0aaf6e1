package api

import (
	"context"
	"net/http"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/events"
	"github.com/labstack/echo/v4"
)

type checkoutRequest struct {
	ShippingAddress domain.Address `json:"shipping_address" validate:"required"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// checkout freezes the session cart into a new order. On success the
// session cart is discarded.
func (h *Handler) checkout(c echo.Context) error {
	const op = "api.checkout"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}

	ctx := c.Request().Context()
	var created domain.Order
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		o, err := h.lifecycle.Create(ctx, current, role, req.ShippingAddress)
		if err != nil {
			return current, err
		}
		if err := h.orders.SaveOrder(ctx, o); err != nil {
			return current, err
		}
		created = o
		return domain.Cart{}, nil
	})
	if err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			h.metrics.StockRejections.Inc()
		}
		return h.respondError(c, err)
	}
	h.sessions.drop(c.Response().Header().Get(sessionHeader))

	h.metrics.OrdersCreated.WithLabelValues(string(role)).Inc()
	h.publishCreated(ctx, created)

	return c.JSON(http.StatusCreated, created)
}

// listOrders returns all orders, newest first.
func (h *Handler) listOrders(c echo.Context) error {
	orders, err := h.orders.ListOrders(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

// getOrder returns one order by ID.
func (h *Handler) getOrder(c echo.Context) error {
	o, err := h.orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// transitionOrder advances an order's fulfillment status.
func (h *Handler) transitionOrder(c echo.Context) error {
	const op = "api.transition_order"

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.respondError(c, domain.Invalid(op, "status is required"))
	}

	ctx := c.Request().Context()
	o, err := h.orders.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	from := o.OrderStatus
	next, err := h.lifecycle.Transition(*o, domain.OrderStatus(req.Status))
	if err != nil {
		return h.respondError(c, err)
	}
	if err := h.orders.SaveOrder(ctx, next); err != nil {
		return h.respondError(c, err)
	}

	h.metrics.StatusTransitions.WithLabelValues(string(domain.EventOrderStatus), req.Status).Inc()
	h.publishStatusChanged(ctx, next, domain.EventOrderStatus, string(from), req.Status)

	return c.JSON(http.StatusOK, next)
}

// markPayment advances an order's payment status.
func (h *Handler) markPayment(c echo.Context) error {
	const op = "api.mark_payment"

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.respondError(c, domain.Invalid(op, "status is required"))
	}

	ctx := c.Request().Context()
	o, err := h.orders.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	from := o.PaymentStatus
	next, err := h.lifecycle.MarkPayment(*o, domain.PaymentStatus(req.Status))
	if err != nil {
		return h.respondError(c, err)
	}
	if err := h.orders.SaveOrder(ctx, next); err != nil {
		return h.respondError(c, err)
	}

	h.metrics.StatusTransitions.WithLabelValues(string(domain.EventPaymentStatus), req.Status).Inc()
	h.publishStatusChanged(ctx, next, domain.EventPaymentStatus, string(from), req.Status)

	return c.JSON(http.StatusOK, next)
}

// publishCreated emits the order-created event. Publish failures are
// logged, never surfaced to the buyer.
func (h *Handler) publishCreated(ctx context.Context, o domain.Order) {
	itemCount := 0
	for _, l := range o.Lines {
		itemCount += l.Quantity
	}
	err := h.events.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:    o.ID,
		Role:       o.Role,
		TotalCents: o.Totals.TotalCents,
		ItemCount:  itemCount,
		OccurredAt: o.CreatedAt,
	})
	if err != nil {
		h.log.Error().Err(err).Str("order_id", o.ID).Msg("failed to publish order created event")
	}
}

func (h *Handler) publishStatusChanged(ctx context.Context, o domain.Order, kind domain.StatusEventKind, from, to string) {
	last := o.StatusHistory[len(o.StatusHistory)-1]
	err := h.events.PublishOrderStatusChanged(ctx, events.OrderStatusChanged{
		OrderID:    o.ID,
		Kind:       kind,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: last.OccurredAt,
	})
	if err != nil {
		h.log.Error().Err(err).Str("order_id", o.ID).Msg("failed to publish status changed event")
	}
}
