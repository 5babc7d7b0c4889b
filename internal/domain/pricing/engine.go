// internal/domain/pricing/engine.go
package pricing

import (
	"math"

	"github.com/your-org/pharmacy-pos/internal/domain/cart"
)

// Pricing constants. The senior-citizen style discount is a post-tax
// percentage off (subtotal + tax), gated on a minimum subtotal.
const (
	TaxRate             = 0.12
	DiscountRate        = 0.20
	DiscountMinSubtotal = 200.00
)

// Snapshot represents the derived pricing of a cart. It is recomputed from
// the line set on every call and never stored.
type Snapshot struct {
	Subtotal         float64 `json:"subtotal"`
	TaxAmount        float64 `json:"tax_amount"`
	DiscountEligible bool    `json:"discount_eligible"`
	DiscountApplied  bool    `json:"discount_applied"`
	DiscountAmount   float64 `json:"discount_amount"`
	Total            float64 `json:"total"`
}

// Price computes the pricing snapshot for a set of cart lines.
//
// Accumulation is unrounded; only the emitted amounts are rounded to two
// decimals, so per-line rounding error never compounds. The discount is
// forced off whenever the subtotal falls below the eligibility minimum,
// regardless of the flag the session carries.
func Price(lines []cart.Line, discountApplied bool) Snapshot {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	tax := subtotal * TaxRate

	eligible := subtotal >= DiscountMinSubtotal
	applied := discountApplied && eligible

	var discount float64
	if applied {
		discount = (subtotal + tax) * DiscountRate
	}

	return Snapshot{
		Subtotal:         Round2(subtotal),
		TaxAmount:        Round2(tax),
		DiscountEligible: eligible,
		DiscountApplied:  applied,
		DiscountAmount:   Round2(discount),
		Total:            Round2(subtotal + tax - discount),
	}
}

// ChangeDue computes change for a cash tender. Never negative.
func ChangeDue(tendered, total float64) float64 {
	return Round2(math.Max(0, tendered-total))
}

// Round2 rounds an amount to two decimal places for display and persistence.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
