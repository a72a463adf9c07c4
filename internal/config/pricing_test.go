package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPricing_Defaults(t *testing.T) {
	t.Setenv("PRICING_TAX_RATE", "")
	t.Setenv("PRICING_SERVICE_FEE", "")

	p := LoadPricing()
	assert.Equal(t, 0.08, p.TaxRate)
	assert.Equal(t, 50.0, p.ServiceFee)
}

func TestLoadPricing_FromEnv(t *testing.T) {
	t.Setenv("PRICING_TAX_RATE", "0.10")
	t.Setenv("PRICING_SERVICE_FEE", "0")

	p := LoadPricing()
	assert.Equal(t, 0.10, p.TaxRate)
	assert.Equal(t, 0.0, p.ServiceFee)
}

func TestLoadPricing_RejectsGarbage(t *testing.T) {
	t.Setenv("PRICING_TAX_RATE", "lots")
	t.Setenv("PRICING_SERVICE_FEE", "-5")

	p := LoadPricing()
	assert.Equal(t, 0.08, p.TaxRate)
	assert.Equal(t, 50.0, p.ServiceFee)
}
