// internal/domain/printing/service_test.go
package printing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/pkg/escpos"
)

func encoderConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.StoreName = "Calloway Pharmacy"
	cfg.App.StoreAddress = "123 Rizal Ave, Manila"
	cfg.Printer.PaperWidth = 32
	cfg.Printer.QRModuleSize = 5
	cfg.Printer.QRErrorCorrection = 49
	cfg.Printer.RewardLandingURL = "https://rewards.callowaypharmacy.ph/claim"
	return cfg
}

func printableSale(method sale.PaymentMethod) *sale.Sale {
	return &sale.Sale{
		ReceiptNumber: "OR-20260830-143000",
		Lines: []cart.Line{
			{DisplayName: "Cetirizine 10mg", UnitPrice: 150.00, Quantity: 1},
		},
		PaymentMethod: method,
	}
}

type captureTransport struct {
	frames []receipt.Frame
}

func (t *captureTransport) Name() string { return "capture" }

func (t *captureTransport) Print(_ context.Context, _ *sale.Sale, frames []receipt.Frame) (*Result, error) {
	t.frames = frames
	return &Result{Tier: t.Name()}, nil
}

func TestPrintReceiptKicksDrawerForCash(t *testing.T) {
	capture := &captureTransport{}
	svc := NewPrinterService(
		receipt.NewEncoder(encoderConfig()),
		NewDispatcher(quietLogger(), capture),
	)

	tier, _, err := svc.PrintReceipt(context.Background(), printableSale(sale.PaymentCash))
	require.NoError(t, err)
	assert.Equal(t, "capture", tier)

	require.NotEmpty(t, capture.frames)
	assert.True(t, bytes.Equal(capture.frames[0].Raw, escpos.DrawerKick),
		"cash sale must open the drawer first")
}

func TestPrintReceiptNoDrawerForDigitalTender(t *testing.T) {
	capture := &captureTransport{}
	svc := NewPrinterService(
		receipt.NewEncoder(encoderConfig()),
		NewDispatcher(quietLogger(), capture),
	)

	_, _, err := svc.PrintReceipt(context.Background(), printableSale(sale.PaymentGCash))
	require.NoError(t, err)

	for _, f := range capture.frames {
		assert.False(t, bytes.Equal(f.Raw, escpos.DrawerKick))
	}
}
