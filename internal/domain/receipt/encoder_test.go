// internal/domain/receipt/encoder_test.go
package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/pricing"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/pkg/escpos"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.StoreName = "Calloway Pharmacy"
	cfg.App.StoreAddress = "123 Rizal Ave, Manila"
	cfg.Printer.PaperWidth = 32
	cfg.Printer.QRModuleSize = 5
	cfg.Printer.QRErrorCorrection = 49
	cfg.Printer.RewardLandingURL = "https://rewards.callowaypharmacy.ph/claim"
	return cfg
}

func testSale() *sale.Sale {
	return &sale.Sale{
		ReceiptNumber: "OR-20260830-143000",
		Lines: []cart.Line{
			{DisplayName: "Amoxicillin 500mg", UnitPrice: 120.00, Quantity: 2},
			{DisplayName: "Paracetamol 500mg (per piece)", UnitPrice: 2.50, Quantity: 10},
		},
		Pricing: pricing.Snapshot{
			Subtotal:        265.00,
			TaxAmount:       31.80,
			DiscountApplied: true,
			DiscountAmount:  59.36,
			Total:           237.44,
		},
		PaymentMethod:  sale.PaymentCash,
		AmountTendered: 300.00,
		ChangeDue:      62.56,
		CashierName:    "Maria",
		CreatedAt:      time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
	}
}

func textLines(frames []Frame) []string {
	var out []string
	for _, f := range frames {
		if !f.IsRaw() {
			out = append(out, f.Text)
		}
	}
	return out
}

func TestEncodeStartsWithResetAndEndsWithCut(t *testing.T) {
	frames := NewEncoder(testConfig()).Encode(testSale())

	require.NotEmpty(t, frames)
	assert.Equal(t, escpos.Reset, frames[0].Raw)
	assert.Equal(t, escpos.PartialCut, frames[len(frames)-1].Raw)
	assert.Equal(t, escpos.Feed(3), frames[len(frames)-2].Raw)
}

func TestEncodeBody(t *testing.T) {
	frames := NewEncoder(testConfig()).Encode(testSale())
	lines := textLines(frames)
	body := strings.Join(lines, "\n")

	assert.Contains(t, body, "Calloway Pharmacy")
	assert.Contains(t, body, "Receipt: OR-20260830-143000")
	assert.Contains(t, body, "Cashier: Maria")
	assert.Contains(t, body, "Amoxicillin 500mg")
	assert.Contains(t, body, "2 x P120.00")
	assert.Contains(t, body, "P240.00")
	assert.Contains(t, body, "-P59.36")
	assert.Contains(t, body, "Tendered (cash)")
	assert.Contains(t, body, "P62.56")
	assert.Contains(t, body, "Thank you, get well soon!")

	// Every rendered line fits the paper.
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 32, "line overflows paper: %q", line)
	}
}

func TestEncodeWrapsLongItemNames(t *testing.T) {
	s := testSale()
	s.Lines = []cart.Line{{
		DisplayName: "Amoxicillin Trihydrate 500mg Capsule Box of 100",
		UnitPrice:   450.00,
		Quantity:    1,
	}}

	lines := textLines(NewEncoder(testConfig()).Encode(s))

	assert.Contains(t, lines, "Amoxicillin Trihydrate 500mg")
	assert.Contains(t, lines, "Capsule Box of 100")
}

func TestEncodeOmitsDiscountLineWhenZero(t *testing.T) {
	s := testSale()
	s.Pricing.DiscountApplied = false
	s.Pricing.DiscountAmount = 0

	body := strings.Join(textLines(NewEncoder(testConfig()).Encode(s)), "\n")
	assert.NotContains(t, body, "Discount")
}

func TestEncodeRewardSection(t *testing.T) {
	s := testSale()
	s.RewardCode = "RW-7H2K"
	expiry := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	s.RewardExpiresAt = &expiry

	frames := NewEncoder(testConfig()).Encode(s)
	body := strings.Join(textLines(frames), "\n")

	assert.Contains(t, body, "YOUR REWARD")
	assert.Contains(t, body, "Code: RW-7H2K")
	assert.Contains(t, body, "Valid until")

	// The QR symbol stores the landing URL, not the bare code.
	url := "https://rewards.callowaypharmacy.ph/claim?code=RW-7H2K"
	var stored bool
	for _, f := range frames {
		if f.IsRaw() && strings.Contains(string(f.Raw), url) {
			stored = true
		}
	}
	assert.True(t, stored, "QR store frame missing the reward URL")
}

func TestEncodeNoRewardSectionWithoutCode(t *testing.T) {
	body := strings.Join(textLines(NewEncoder(testConfig()).Encode(testSale())), "\n")
	assert.NotContains(t, body, "YOUR REWARD")
}

func TestRewardURLEscapesCode(t *testing.T) {
	enc := NewEncoder(testConfig())
	assert.Equal(t,
		"https://rewards.callowaypharmacy.ph/claim?code=A%2FB+C",
		enc.RewardURL("A/B C"))
}

func TestRenderTextDropsRawFrames(t *testing.T) {
	frames := []Frame{
		raw(escpos.BoldOn),
		text("TOTAL"),
		raw(escpos.BoldOff),
		text("P237.44"),
	}
	assert.Equal(t, "TOTAL\nP237.44\n", RenderText(frames))
}
