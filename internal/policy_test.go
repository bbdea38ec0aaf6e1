package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danukusuma/gerai/internal"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicy_DefaultsWithoutFile(t *testing.T) {
	p, err := internal.LoadPolicy("")

	require.NoError(t, err)
	assert.Equal(t, 25.0, p.MarkupPercentByRole["agent"])
	assert.Equal(t, 35.0, p.MarkupPercentByRole["reseller"])
	assert.Equal(t, 10, p.BulkDiscountThreshold)
	assert.Equal(t, 5.0, p.BulkDiscountRatePercent)
	assert.Equal(t, int64(25_000), p.FlatShippingCostCents)
	assert.Equal(t, 0.0, p.TaxRatePercent)
}

func TestLoadPolicy_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
markup_percent_by_role:
  customer: 0
  agent: 20
  reseller: 30
  distributor: 0
  principal: 0
bulk_discount_threshold: 12
flat_shipping_cost_cents: 15000
promo_codes:
  HEMAT10: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := internal.LoadPolicy(path)

	require.NoError(t, err)
	assert.Equal(t, 20.0, p.MarkupPercentByRole["agent"])
	assert.Equal(t, 12, p.BulkDiscountThreshold)
	assert.Equal(t, int64(15_000), p.FlatShippingCostCents)
	assert.Equal(t, 10.0, p.PromoCodes["HEMAT10"])
	// Values absent from the file keep their defaults.
	assert.Equal(t, 5.0, p.BulkDiscountRatePercent)
}

func TestLoadPolicy_MissingFileFails(t *testing.T) {
	_, err := internal.LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
}

func TestPolicy_PricingConfig(t *testing.T) {
	p, err := internal.LoadPolicy("")
	require.NoError(t, err)

	cfg, err := p.PricingConfig()

	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.MarkupPercentByRole[domain.RoleAgent])
	assert.Equal(t, 10, cfg.BulkDiscountThreshold)
}

func TestPolicy_PricingConfig_RejectsUnknownRole(t *testing.T) {
	p, err := internal.LoadPolicy("")
	require.NoError(t, err)
	p.MarkupPercentByRole["superadmin"] = 50

	_, err = p.PricingConfig()

	require.Error(t, err)
}
