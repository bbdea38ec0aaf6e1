package domain

// Cart-related domain errors.
var (
	ErrOutOfStock       = &Error{Code: ECONFLICT, Message: "Requested quantity exceeds available stock"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrInvalidPromoCode = &Error{Code: EINVALID, Message: "Promo code is not valid"}
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
)

// CartLine is one product entry in a cart. Quantity is always positive;
// a quantity that would drop to zero removes the line instead.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the ordered set of lines for one session, unique by product ID.
// It is a value type: mutations produce a new Cart and leave the receiver
// untouched, so a rejected operation never leaves partial state behind.
type Cart struct {
	Lines []CartLine `json:"lines"`

	// DiscountRatePercent is the promo discount applied to the subtotal,
	// 0 when no promo code has been accepted.
	DiscountRatePercent float64 `json:"discount_rate_percent"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Quantity returns the quantity for a product, 0 when absent.
func (c Cart) Quantity(productID string) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Clone returns a deep copy of the cart. Line slices are never shared
// between the copy and the original.
func (c Cart) Clone() Cart {
	out := Cart{DiscountRatePercent: c.DiscountRatePercent}
	if len(c.Lines) > 0 {
		out.Lines = make([]CartLine, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}

// OrderTotals is the money summary of a cart or order, in the smallest
// currency unit.
//
// Invariant: Total = Subtotal - DiscountAmount + ShippingCost + TaxAmount,
// all non-negative, DiscountAmount <= Subtotal.
type OrderTotals struct {
	SubtotalCents       int64 `json:"subtotal_cents"`
	DiscountAmountCents int64 `json:"discount_amount_cents"`
	ShippingCostCents   int64 `json:"shipping_cost_cents"`
	TaxAmountCents      int64 `json:"tax_amount_cents"`
	TotalCents          int64 `json:"total_cents"`
}
