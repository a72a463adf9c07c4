package booking

import "math"

// Breakdown is the derived price decomposition for a stay. It is a
// value snapshot: recomputed whenever an input changes, never mutated.
type Breakdown struct {
	Nights         int     `json:"nights"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxableAmount  float64 `json:"taxable_amount"`
	Tax            float64 `json:"tax"`
	ServiceFee     float64 `json:"service_fee"`
	Total          float64 `json:"total"`
}

// ComputeBreakdown maps a nightly rate and stay length to the full
// charge decomposition. Callers guarantee pricePerNight > 0 and
// nights >= 1; discountPercent is a percentage in [0,100], taxRate a
// fraction in [0,1]. Intermediate values keep full float precision;
// rounding happens only at presentation via Round2.
func ComputeBreakdown(pricePerNight float64, nights int, discountPercent, taxRate, serviceFee float64) Breakdown {
	subtotal := pricePerNight * float64(nights)
	discountAmount := subtotal * discountPercent / 100
	taxable := subtotal - discountAmount
	tax := taxable * taxRate

	return Breakdown{
		Nights:         nights,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		Tax:            tax,
		ServiceFee:     serviceFee,
		Total:          taxable + tax + serviceFee,
	}
}

// Round2 rounds a money value to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of the breakdown with every money field
// rounded to two decimals.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Nights:         b.Nights,
		Subtotal:       Round2(b.Subtotal),
		DiscountAmount: Round2(b.DiscountAmount),
		TaxableAmount:  Round2(b.TaxableAmount),
		Tax:            Round2(b.Tax),
		ServiceFee:     Round2(b.ServiceFee),
		Total:          Round2(b.Total),
	}
}
