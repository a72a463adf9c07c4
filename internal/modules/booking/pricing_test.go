package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown_LongStayNoDiscount(t *testing.T) {
	bd := ComputeBreakdown(650, 30, 0, 0.08, 0).Rounded()

	assert.Equal(t, 30, bd.Nights)
	assert.Equal(t, 19500.0, bd.Subtotal)
	assert.Equal(t, 0.0, bd.DiscountAmount)
	assert.Equal(t, 1560.0, bd.Tax)
	assert.Equal(t, 0.0, bd.ServiceFee)
	assert.Equal(t, 21060.0, bd.Total)
}

func TestComputeBreakdown_DiscountReducesTaxBase(t *testing.T) {
	bd := ComputeBreakdown(200, 5, 20, 0.10, 50)

	assert.Equal(t, 1000.0, bd.Subtotal)
	assert.Equal(t, 200.0, bd.DiscountAmount)
	assert.Equal(t, 800.0, bd.TaxableAmount)
	// Tax applies after the discount, not before.
	assert.InDelta(t, 80.0, bd.Tax, 1e-9)
	assert.InDelta(t, 930.0, bd.Total, 1e-9)
}

func TestComputeBreakdown_ZeroDiscountIdentity(t *testing.T) {
	bd := ComputeBreakdown(180, 3, 0, 0.10, 50)

	assert.Equal(t, bd.Subtotal, bd.TaxableAmount)
	assert.InDelta(t, bd.Subtotal+bd.Tax+bd.ServiceFee, bd.Total, 1e-9)
}

func TestComputeBreakdown_FullDiscount(t *testing.T) {
	bd := ComputeBreakdown(100, 2, 100, 0.08, 50)

	assert.Equal(t, 200.0, bd.Subtotal)
	assert.Equal(t, 200.0, bd.DiscountAmount)
	assert.Equal(t, 0.0, bd.TaxableAmount)
	assert.Equal(t, 0.0, bd.Tax)
	// Only the flat fee survives a full discount.
	assert.Equal(t, 50.0, bd.Total)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
}

func TestBreakdownRounded_TruncatesFloatNoise(t *testing.T) {
	bd := Breakdown{Subtotal: 99.999, Tax: 8.0001, Total: 108.00001}.Rounded()

	assert.Equal(t, 100.0, bd.Subtotal)
	assert.Equal(t, 8.0, bd.Tax)
	assert.Equal(t, 108.0, bd.Total)
}
