package api

import (
	"net/http"
	"strconv"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/labstack/echo/v4"
)

// productView is a catalog record priced for the caller's role.
type productView struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	ImageURL       string            `json:"image_url,omitempty"`
	Features       []string          `json:"features,omitempty"`
	BasePriceCents int64             `json:"base_price_cents"`
	Pricing        domain.PricedLine `json:"pricing"`
}

func (h *Handler) productView(p domain.Product, role domain.Role) (productView, error) {
	line, err := h.pricer.PriceFor(p, role)
	if err != nil {
		return productView{}, err
	}
	return productView{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		ImageURL:       p.ImageURL,
		Features:       p.Features,
		BasePriceCents: p.BasePriceCents,
		Pricing:        line,
	}, nil
}

// listProducts returns the active catalog priced for the caller's role.
func (h *Handler) listProducts(c echo.Context) error {
	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		view, err := h.productView(p, role)
		if err != nil {
			return h.respondError(c, err)
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, map[string]any{"products": views})
}

// getProduct returns one product priced for the caller's role.
func (h *Handler) getProduct(c echo.Context) error {
	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	if product == nil {
		return h.respondError(c, domain.ErrUnknownProduct)
	}

	view, err := h.productView(*product, role)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// getCommission previews the commission earned on a quantity of one
// product for the caller's role.
func (h *Handler) getCommission(c echo.Context) error {
	const op = "api.get_commission"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return h.respondError(c, domain.Invalid(op, "quantity must be an integer"))
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	if product == nil {
		return h.respondError(c, domain.ErrUnknownProduct)
	}

	commission, err := h.commissions.CommissionFor(*product, role, quantity)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, commission)
}

// getSalesBonus evaluates the agent monthly sales-target bonus for a
// cumulative unit count supplied by the caller.
func (h *Handler) getSalesBonus(c echo.Context) error {
	const op = "api.get_sales_bonus"

	role, err := roleFrom(c)
	if err != nil {
		return h.respondError(c, err)
	}

	units, err := strconv.Atoi(c.QueryParam("units"))
	if err != nil || units < 0 {
		return h.respondError(c, domain.Invalid(op, "units must be a non-negative integer"))
	}

	bonus, unlocked := h.commissions.SalesTargetBonus(role, units)
	return c.JSON(http.StatusOK, map[string]any{
		"role":        role,
		"units":       units,
		"bonus_cents": bonus,
		"unlocked":    unlocked,
	})
}
