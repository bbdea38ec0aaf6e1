package pricing

import (
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/shopspring/decimal"
)

// Tier names the commission tier applied to a sale.
type Tier string

const (
	TierStandard Tier = "standard"
	TierBulk     Tier = "bulk"
)

// Commission is the earnings breakdown for a quantity of one product sold
// by one role.
type Commission struct {
	ProductID               string      `json:"product_id"`
	Role                    domain.Role `json:"role"`
	QuantitySold            int         `json:"quantity_sold"`
	EffectiveSellPriceCents int64       `json:"effective_sell_price_cents"`
	UnitCommissionCents     int64       `json:"unit_commission_cents"`
	TotalCommissionCents    int64       `json:"total_commission_cents"`
	CommissionPercent       int64       `json:"commission_percent"`
	TierApplied             Tier        `json:"tier_applied"`
}

// Calculator converts pricing margins into commissions, applying the
// reseller bulk tier and the agent sales-target bonus policy.
type Calculator struct {
	engine        *Engine
	bulkThreshold int
	bulkRate      decimal.Decimal
	agentTarget   int
	agentBonus    int64
}

// NewCalculator creates a commission calculator on top of the pricing engine.
func NewCalculator(engine *Engine, cfg Config) *Calculator {
	return &Calculator{
		engine:        engine,
		bulkThreshold: cfg.BulkDiscountThreshold,
		bulkRate:      decimal.NewFromFloat(cfg.BulkDiscountRatePercent),
		agentTarget:   cfg.AgentMonthlySalesTarget,
		agentBonus:    cfg.AgentSalesTargetBonusCents,
	}
}

// CommissionFor computes the commission earned on quantitySold units.
//
// Reseller orders at or above the bulk threshold sell at a discounted
// price; the margin is recomputed under that discounted price rather than
// shaving the discount off the standard commission, so the commission
// percentage genuinely drops for bulk orders.
func (c *Calculator) CommissionFor(product domain.Product, role domain.Role, quantitySold int) (Commission, error) {
	if quantitySold <= 0 {
		return Commission{}, domain.Errorf(domain.EINVALID, "pricing.commission_for", "quantity sold must be greater than 0")
	}

	line, err := c.engine.PriceFor(product, role)
	if err != nil {
		return Commission{}, err
	}

	sell := line.SellPriceCents
	tier := TierStandard

	if role == domain.RoleReseller && c.bulkThreshold > 0 && quantitySold >= c.bulkThreshold && sell > 0 {
		discounted := decimal.NewFromInt(sell).
			Mul(oneHundred.Sub(c.bulkRate)).
			Div(oneHundred)
		sell = roundCents(discounted)
		tier = TierBulk
	}

	margin := sell - line.BasePriceCents

	return Commission{
		ProductID:               product.ID,
		Role:                    role,
		QuantitySold:            quantitySold,
		EffectiveSellPriceCents: sell,
		UnitCommissionCents:     margin,
		TotalCommissionCents:    margin * int64(quantitySold),
		CommissionPercent:       commissionPercent(margin, sell),
		TierApplied:             tier,
	}, nil
}

// SalesTargetBonus evaluates the agent monthly sales-target bonus.
//
// The cumulative monthly unit count is an external input: this calculator
// never tracks sales itself. Non-agent roles never unlock the bonus.
func (c *Calculator) SalesTargetBonus(role domain.Role, cumulativeMonthlyUnits int) (bonusCents int64, unlocked bool) {
	if role != domain.RoleAgent || c.agentTarget <= 0 {
		return 0, false
	}
	if cumulativeMonthlyUnits < c.agentTarget {
		return 0, false
	}
	return c.agentBonus, true
}
