package config

import (
	"os"
	"strconv"
)

// Pricing holds the charge parameters applied on top of the nightly
// rate. The client screens historically disagreed on these values
// (8% vs 10% tax, fee 50 vs 0), so they are configuration, not
// constants baked into call sites.
type Pricing struct {
	TaxRate    float64
	ServiceFee float64
}

const (
	defaultTaxRate    = 0.08
	defaultServiceFee = 50
)

func LoadPricing() Pricing {
	return Pricing{
		TaxRate:    envFloat("PRICING_TAX_RATE", defaultTaxRate),
		ServiceFee: envFloat("PRICING_SERVICE_FEE", defaultServiceFee),
	}
}

func envFloat(name string, def float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
