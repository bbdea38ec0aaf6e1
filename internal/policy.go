package internal

import (
	"fmt"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/pricing"
	"github.com/spf13/viper"
)

// Policy is the commerce policy: every number a business owner may want to
// change without a deploy. It loads from an optional YAML file over a full
// set of defaults, so a missing file still yields a working policy.
type Policy struct {
	MarkupPercentByRole        map[string]float64 `mapstructure:"markup_percent_by_role"`
	BulkDiscountThreshold      int                `mapstructure:"bulk_discount_threshold"`
	BulkDiscountRatePercent    float64            `mapstructure:"bulk_discount_rate_percent"`
	FlatShippingCostCents      int64              `mapstructure:"flat_shipping_cost_cents"`
	TaxRatePercent             float64            `mapstructure:"tax_rate_percent"`
	AgentMonthlySalesTarget    int                `mapstructure:"agent_monthly_sales_target"`
	AgentSalesTargetBonusCents int64              `mapstructure:"agent_sales_target_bonus_cents"`
	PromoCodes                 map[string]float64 `mapstructure:"promo_codes"`
}

// LoadPolicy reads the policy file at path, or returns the defaults when
// path is empty.
func LoadPolicy(path string) (*Policy, error) {
	v := viper.New()

	defaults := pricing.DefaultConfig()
	markups := make(map[string]float64, len(defaults.MarkupPercentByRole))
	for role, percent := range defaults.MarkupPercentByRole {
		markups[string(role)] = percent
	}
	v.SetDefault("markup_percent_by_role", markups)
	v.SetDefault("bulk_discount_threshold", defaults.BulkDiscountThreshold)
	v.SetDefault("bulk_discount_rate_percent", defaults.BulkDiscountRatePercent)
	v.SetDefault("flat_shipping_cost_cents", 25_000)
	v.SetDefault("tax_rate_percent", 0.0)
	v.SetDefault("agent_monthly_sales_target", defaults.AgentMonthlySalesTarget)
	v.SetDefault("agent_sales_target_bonus_cents", defaults.AgentSalesTargetBonusCents)
	v.SetDefault("promo_codes", map[string]float64{})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read policy file %s: %w", path, err)
		}
	}

	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return &p, nil
}

// PricingConfig converts the policy into the pricing package's config,
// rejecting markup entries for unrecognized roles.
func (p *Policy) PricingConfig() (pricing.Config, error) {
	markups := make(map[domain.Role]float64, len(p.MarkupPercentByRole))
	for raw, percent := range p.MarkupPercentByRole {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("policy markup table: %w", err)
		}
		markups[role] = percent
	}
	return pricing.Config{
		MarkupPercentByRole:        markups,
		BulkDiscountThreshold:      p.BulkDiscountThreshold,
		BulkDiscountRatePercent:    p.BulkDiscountRatePercent,
		AgentMonthlySalesTarget:    p.AgentMonthlySalesTarget,
		AgentSalesTargetBonusCents: p.AgentSalesTargetBonusCents,
	}, nil
}
