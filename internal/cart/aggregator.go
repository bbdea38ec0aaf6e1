// Package cart aggregates cart lines into role-priced totals. The cart
// itself is a value type (domain.Cart) with pure transition functions:
// every mutation validates against current inventory, returns a new cart,
// and leaves the input untouched on rejection.
//
// The engine assumes one active mutator per cart (one user session). A
// server handling concurrent requests against the same cart must serialize
// writes per cart ID; the aggregator itself performs no locking and no I/O
// beyond its synchronous reader calls.
package cart

import (
	"context"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/inventory"
	"github.com/danukusuma/gerai/internal/pricing"
	"github.com/danukusuma/gerai/internal/promo"
	"github.com/danukusuma/gerai/internal/shipping"
	"github.com/danukusuma/gerai/internal/tax"
	"github.com/shopspring/decimal"
)

// Aggregator validates cart mutations and computes totals. It holds no
// cart state; callers own the domain.Cart value.
type Aggregator struct {
	catalog  domain.CatalogReader
	guard    *inventory.Guard
	pricer   *pricing.Engine
	promos   promo.Validator
	shipping shipping.Quoter
	taxes    tax.Calculator
}

// NewAggregator wires the aggregator to its collaborators.
func NewAggregator(
	catalog domain.CatalogReader,
	guard *inventory.Guard,
	pricer *pricing.Engine,
	promos promo.Validator,
	quoter shipping.Quoter,
	taxes tax.Calculator,
) *Aggregator {
	return &Aggregator{
		catalog:  catalog,
		guard:    guard,
		pricer:   pricer,
		promos:   promos,
		shipping: quoter,
		taxes:    taxes,
	}
}

// activeProduct loads a product and rejects unknown or inactive records.
func (a *Aggregator) activeProduct(ctx context.Context, op, productID string) (*domain.Product, error) {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "failed to read catalog")
	}
	if product == nil {
		return nil, &domain.Error{Code: domain.ENOTFOUND, Op: op, Message: domain.ErrUnknownProduct.Message}
	}
	if !product.IsActive {
		return nil, &domain.Error{Code: domain.EINVALID, Op: op, Message: domain.ErrInactiveProduct.Message}
	}
	return product, nil
}

// AddItem adds quantity units of a product, merging with any existing line.
// The combined total quantity is what gets validated against stock, not the
// delta, so a stale cart can never sneak past an inventory change.
func (a *Aggregator) AddItem(ctx context.Context, c domain.Cart, productID string, quantity int) (domain.Cart, error) {
	const op = "cart.add_item"

	if quantity <= 0 {
		return c, &domain.Error{Code: domain.EINVALID, Op: op, Message: domain.ErrInvalidQuantity.Message}
	}
	if _, err := a.activeProduct(ctx, op, productID); err != nil {
		return c, err
	}

	requested := c.Quantity(productID) + quantity
	ok, err := a.guard.CanReserve(ctx, productID, requested)
	if err != nil {
		return c, err
	}
	if !ok {
		return c, &domain.Error{Code: domain.ECONFLICT, Op: op, Message: domain.ErrOutOfStock.Message}
	}

	next := c.Clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity = requested
			return next, nil
		}
	}
	next.Lines = append(next.Lines, domain.CartLine{ProductID: productID, Quantity: requested})
	return next, nil
}

// UpdateQuantity sets a line to an absolute quantity. A quantity of zero or
// less removes the line; no zero- or negative-quantity line ever persists.
func (a *Aggregator) UpdateQuantity(ctx context.Context, c domain.Cart, productID string, newQuantity int) (domain.Cart, error) {
	const op = "cart.update_quantity"

	if newQuantity <= 0 {
		return a.RemoveItem(c, productID), nil
	}
	if _, err := a.activeProduct(ctx, op, productID); err != nil {
		return c, err
	}

	ok, err := a.guard.CanReserve(ctx, productID, newQuantity)
	if err != nil {
		return c, err
	}
	if !ok {
		return c, &domain.Error{Code: domain.ECONFLICT, Op: op, Message: domain.ErrOutOfStock.Message}
	}

	next := c.Clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity = newQuantity
			return next, nil
		}
	}
	next.Lines = append(next.Lines, domain.CartLine{ProductID: productID, Quantity: newQuantity})
	return next, nil
}

// RemoveItem deletes a line. Removing an absent line is a no-op, not an
// error, so the operation is idempotent.
func (a *Aggregator) RemoveItem(c domain.Cart, productID string) domain.Cart {
	next := c.Clone()
	for i, line := range next.Lines {
		if line.ProductID == productID {
			next.Lines = append(next.Lines[:i], next.Lines[i+1:]...)
			break
		}
	}
	return next
}

// ApplyPromoCode validates a code with the external promo validator and
// applies the returned discount rate to the cart.
func (a *Aggregator) ApplyPromoCode(ctx context.Context, c domain.Cart, code string) (domain.Cart, error) {
	rate, err := a.promos.Validate(ctx, code)
	if err != nil {
		return c, err
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	next := c.Clone()
	next.DiscountRatePercent = rate
	return next, nil
}

// PricedCartLine pairs a cart line with its role-specific unit pricing.
type PricedCartLine struct {
	domain.CartLine
	Unit              domain.PricedLine `json:"unit"`
	LineSubtotalCents int64             `json:"line_subtotal_cents"`
}

// PriceLines derives the role-specific pricing for every cart line.
func (a *Aggregator) PriceLines(ctx context.Context, c domain.Cart, role domain.Role) ([]PricedCartLine, error) {
	const op = "cart.price_lines"

	lines := make([]PricedCartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		product, err := a.activeProduct(ctx, op, l.ProductID)
		if err != nil {
			return nil, err
		}
		unit, err := a.pricer.PriceFor(*product, role)
		if err != nil {
			return nil, err
		}
		lines = append(lines, PricedCartLine{
			CartLine:          l,
			Unit:              unit,
			LineSubtotalCents: unit.SellPriceCents * int64(l.Quantity),
		})
	}
	return lines, nil
}

// ComputeTotals prices the cart for a role and assembles the order totals.
// An empty cart yields all-zero totals and never fails.
func (a *Aggregator) ComputeTotals(ctx context.Context, c domain.Cart, role domain.Role) (domain.OrderTotals, error) {
	if c.IsEmpty() {
		return domain.OrderTotals{}, nil
	}

	lines, err := a.PriceLines(ctx, c, role)
	if err != nil {
		return domain.OrderTotals{}, err
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.LineSubtotalCents
	}

	discount := discountAmount(subtotal, c.DiscountRatePercent)

	shippingCost, err := a.shipping.QuoteCents(ctx, c)
	if err != nil {
		return domain.OrderTotals{}, domain.WrapError(err, domain.EINTERNAL, "cart.compute_totals", "failed to quote shipping")
	}

	taxAmount, err := a.taxes.TaxCents(ctx, subtotal-discount+shippingCost)
	if err != nil {
		return domain.OrderTotals{}, domain.WrapError(err, domain.EINTERNAL, "cart.compute_totals", "failed to compute tax")
	}

	return domain.OrderTotals{
		SubtotalCents:       subtotal,
		DiscountAmountCents: discount,
		ShippingCostCents:   shippingCost,
		TaxAmountCents:      taxAmount,
		TotalCents:          subtotal - discount + shippingCost + taxAmount,
	}, nil
}

// Summary bundles priced lines and totals for one cart view.
type Summary struct {
	Items     []PricedCartLine   `json:"items"`
	ItemCount int                `json:"item_count"`
	Totals    domain.OrderTotals `json:"totals"`
}

// Summarize prices the cart and computes totals in one pass.
func (a *Aggregator) Summarize(ctx context.Context, c domain.Cart, role domain.Role) (*Summary, error) {
	totals, err := a.ComputeTotals(ctx, c, role)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Items: []PricedCartLine{}, Totals: totals}
	if c.IsEmpty() {
		return summary, nil
	}

	lines, err := a.PriceLines(ctx, c, role)
	if err != nil {
		return nil, err
	}
	summary.Items = lines
	for _, l := range lines {
		summary.ItemCount += l.Quantity
	}
	return summary, nil
}

// discountAmount converts a percentage rate into an absolute discount,
// rounded half up and capped at the subtotal.
func discountAmount(subtotalCents int64, ratePercent float64) int64 {
	if subtotalCents <= 0 || ratePercent <= 0 {
		return 0
	}
	amount := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).IntPart()
	if amount > subtotalCents {
		return subtotalCents
	}
	return amount
}
