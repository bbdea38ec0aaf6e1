package api

import (
	"net/http"

	"github.com/danukusuma/gerai/internal/cart"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/labstack/echo/v4"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// getCart returns the session cart priced for the caller's role.
func (h *Handler) getCart(c echo.Context) error {
	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	var summary *cart.Summary
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		summary, err = h.agg.Summarize(c.Request().Context(), current, role)
		return current, err
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// addCartItem adds quantity units of a product to the session cart.
func (h *Handler) addCartItem(c echo.Context) error {
	const op = "api.add_cart_item"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.respondError(c, domain.Invalid(op, "product_id and a positive quantity are required"))
	}

	var summary *cart.Summary
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		next, err := h.agg.AddItem(c.Request().Context(), current, req.ProductID, req.Quantity)
		if err != nil {
			return current, err
		}
		summary, err = h.agg.Summarize(c.Request().Context(), next, role)
		return next, err
	})
	if err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			h.metrics.StockRejections.Inc()
		}
		return h.respondError(c, err)
	}

	h.metrics.CartMutations.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, summary)
}

// updateCartItem sets a line to an absolute quantity. Zero removes the
// line.
func (h *Handler) updateCartItem(c echo.Context) error {
	const op = "api.update_cart_item"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}

	productID := c.Param("productID")
	var summary *cart.Summary
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		next, err := h.agg.UpdateQuantity(c.Request().Context(), current, productID, req.Quantity)
		if err != nil {
			return current, err
		}
		summary, err = h.agg.Summarize(c.Request().Context(), next, role)
		return next, err
	})
	if err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			h.metrics.StockRejections.Inc()
		}
		return h.respondError(c, err)
	}

	h.metrics.CartMutations.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, summary)
}

// removeCartItem deletes a line from the session cart. Removing an
// absent line succeeds.
func (h *Handler) removeCartItem(c echo.Context) error {
	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	productID := c.Param("productID")
	var summary *cart.Summary
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		next := h.agg.RemoveItem(current, productID)
		summary, err = h.agg.Summarize(c.Request().Context(), next, role)
		return next, err
	})
	if err != nil {
		return h.respondError(c, err)
	}

	h.metrics.CartMutations.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, summary)
}

// applyPromo validates a promo code and applies its discount rate to
// the session cart.
func (h *Handler) applyPromo(c echo.Context) error {
	const op = "api.apply_promo"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	var req applyPromoRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, domain.Invalid(op, "malformed request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.respondError(c, domain.Invalid(op, "code is required"))
	}

	var summary *cart.Summary
	err = h.withCart(c, func(current domain.Cart) (domain.Cart, error) {
		next, err := h.agg.ApplyPromoCode(c.Request().Context(), current, req.Code)
		if err != nil {
			return current, err
		}
		summary, err = h.agg.Summarize(c.Request().Context(), next, role)
		return next, err
	})
	if err != nil {
		return h.respondError(c, err)
	}

	h.metrics.CartMutations.WithLabelValues("promo").Inc()
	return c.JSON(http.StatusOK, summary)
}
