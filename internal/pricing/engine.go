// Package pricing derives role-specific sell prices, margins, and
// commissions from catalog base prices. The markup table is policy, not
// code: it arrives through Config at construction time and can be changed
// without touching this package.
package pricing

import (
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/shopspring/decimal"
)

// Config carries the pricing policy. Zero values fall back to the defaults
// in DefaultConfig.
type Config struct {
	// MarkupPercentByRole maps each role to its markup over base price,
	// in percent. Roles absent from the map transact at base price.
	MarkupPercentByRole map[domain.Role]float64

	// BulkDiscountThreshold is the quantity at which the reseller bulk
	// tier activates.
	BulkDiscountThreshold int

	// BulkDiscountRatePercent is the discount applied to the sell price
	// for reseller bulk orders.
	BulkDiscountRatePercent float64

	// AgentMonthlySalesTarget is the cumulative monthly unit count at
	// which the agent sales-target bonus unlocks.
	AgentMonthlySalesTarget int

	// AgentSalesTargetBonusCents is the flat bonus paid once the target
	// is reached.
	AgentSalesTargetBonusCents int64
}

// DefaultConfig returns the stock pricing policy: retail at base price for
// customers, +25% for agents, +35% for resellers, wholesale (base) for
// distributors and principals, bulk tier at 10 units / 5%.
func DefaultConfig() Config {
	return Config{
		MarkupPercentByRole: map[domain.Role]float64{
			domain.RoleCustomer:    0,
			domain.RoleAgent:       25,
			domain.RoleReseller:    35,
			domain.RoleDistributor: 0,
			domain.RolePrincipal:   0,
		},
		BulkDiscountThreshold:      10,
		BulkDiscountRatePercent:    5,
		AgentMonthlySalesTarget:    50,
		AgentSalesTargetBonusCents: 50_000_00,
	}
}

// Engine computes PricedLines. It is stateless apart from the immutable
// policy captured at construction.
type Engine struct {
	markup map[domain.Role]decimal.Decimal
}

// NewEngine creates a pricing engine for the given policy.
func NewEngine(cfg Config) *Engine {
	markup := make(map[domain.Role]decimal.Decimal, len(cfg.MarkupPercentByRole))
	for role, percent := range cfg.MarkupPercentByRole {
		markup[role] = decimal.NewFromFloat(percent)
	}
	return &Engine{markup: markup}
}

var oneHundred = decimal.NewFromInt(100)

// roundCents rounds to the nearest whole currency unit, half up.
func roundCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// PriceFor derives the role-specific sell price and margin for a product.
//
// A zero base price short-circuits to an all-zero line before any division,
// so a free product never produces a divide-by-zero. A negative base price
// is a malformed catalog record and fails with ErrInvalidProduct.
func (e *Engine) PriceFor(product domain.Product, role domain.Role) (domain.PricedLine, error) {
	if !role.Valid() {
		return domain.PricedLine{}, domain.Errorf(domain.EINVALID, "pricing.price_for", "unknown role: %q", role)
	}
	if product.BasePriceCents < 0 {
		return domain.PricedLine{}, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "pricing.price_for",
			Message: domain.ErrInvalidProduct.Message,
		}
	}

	line := domain.PricedLine{
		ProductID:      product.ID,
		Role:           role,
		BasePriceCents: product.BasePriceCents,
	}

	if product.BasePriceCents == 0 {
		return line, nil
	}

	base := decimal.NewFromInt(product.BasePriceCents)
	sell := roundCents(base.Mul(oneHundred.Add(e.markup[role])).Div(oneHundred))

	line.SellPriceCents = sell
	line.MarginPerUnit = sell - product.BasePriceCents
	line.CommissionPercent = commissionPercent(line.MarginPerUnit, sell)
	return line, nil
}

// commissionPercent converts an absolute margin into a percentage of the
// sell price, rounded half up. Zero sell price short-circuits to zero.
func commissionPercent(marginCents, sellCents int64) int64 {
	if sellCents == 0 {
		return 0
	}
	margin := decimal.NewFromInt(marginCents)
	sell := decimal.NewFromInt(sellCents)
	return margin.Mul(oneHundred).Div(sell).Round(0).IntPart()
}
