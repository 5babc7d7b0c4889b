// internal/domain/pricing/engine_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
)

func TestPriceWithDiscount(t *testing.T) {
	lines := []cart.Line{
		{DisplayName: "Amoxicillin 500mg", UnitPrice: 120.00, Quantity: 2},
		{DisplayName: "Paracetamol 500mg (per piece)", UnitPrice: 2.50, Quantity: 10},
	}

	snapshot := Price(lines, true)

	assert.InDelta(t, 265.00, snapshot.Subtotal, 0.001)
	assert.InDelta(t, 31.80, snapshot.TaxAmount, 0.001)
	assert.True(t, snapshot.DiscountEligible)
	assert.True(t, snapshot.DiscountApplied)
	assert.InDelta(t, 59.36, snapshot.DiscountAmount, 0.001)
	assert.InDelta(t, 237.44, snapshot.Total, 0.001)
}

func TestPriceWithoutDiscount(t *testing.T) {
	lines := []cart.Line{
		{UnitPrice: 120.00, Quantity: 2},
		{UnitPrice: 2.50, Quantity: 10},
	}

	snapshot := Price(lines, false)

	assert.True(t, snapshot.DiscountEligible)
	assert.False(t, snapshot.DiscountApplied)
	assert.InDelta(t, 0, snapshot.DiscountAmount, 0.001)
	assert.InDelta(t, 296.80, snapshot.Total, 0.001)
}

func TestPriceDiscountEligibilityBoundary(t *testing.T) {
	below := Price([]cart.Line{{UnitPrice: 199.99, Quantity: 1}}, true)
	assert.False(t, below.DiscountEligible)
	assert.False(t, below.DiscountApplied)
	assert.InDelta(t, 0, below.DiscountAmount, 0.001)

	at := Price([]cart.Line{{UnitPrice: 200.00, Quantity: 1}}, true)
	assert.True(t, at.DiscountEligible)
	assert.True(t, at.DiscountApplied)
	assert.InDelta(t, 44.80, at.DiscountAmount, 0.001)
}

func TestPriceDiscountForcedOffBelowMinimum(t *testing.T) {
	// The session flag survives cart edits; pricing must ignore it when
	// the subtotal no longer qualifies.
	snapshot := Price([]cart.Line{{UnitPrice: 50.00, Quantity: 1}}, true)

	assert.False(t, snapshot.DiscountApplied)
	assert.InDelta(t, 56.00, snapshot.Total, 0.001)
}

func TestPriceEmptyCart(t *testing.T) {
	snapshot := Price(nil, false)

	assert.InDelta(t, 0, snapshot.Subtotal, 0.001)
	assert.InDelta(t, 0, snapshot.Total, 0.001)
	assert.False(t, snapshot.DiscountEligible)
}

func TestPriceAccumulatesUnrounded(t *testing.T) {
	// Three lines of 0.333 each: per-line rounding would give 0.99,
	// unrounded accumulation gives 0.999 -> 1.00 once at output.
	lines := []cart.Line{
		{UnitPrice: 0.333, Quantity: 1},
		{UnitPrice: 0.333, Quantity: 1},
		{UnitPrice: 0.333, Quantity: 1},
	}

	snapshot := Price(lines, false)
	assert.InDelta(t, 1.00, snapshot.Subtotal, 0.001)
}

func TestChangeDue(t *testing.T) {
	assert.InDelta(t, 62.56, ChangeDue(300.00, 237.44), 0.001)
	assert.InDelta(t, 0, ChangeDue(237.44, 237.44), 0.001)
	assert.InDelta(t, 0, ChangeDue(200.00, 237.44), 0.001)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 1.01, Round2(1.006), 0.0001)
	assert.InDelta(t, 1.00, Round2(1.004), 0.0001)
	assert.InDelta(t, 2.67, Round2(2.666666), 0.0001)
	assert.InDelta(t, -2.67, Round2(-2.666666), 0.0001)
}
