// internal/domain/printing/fallback.go
package printing

import (
	"context"

	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

// FallbackTransport renders the receipt as plain text for the cashier to
// print manually from the browser. Last tier; it cannot fail.
type FallbackTransport struct{}

// NewFallbackTransport creates the manual fallback tier
func NewFallbackTransport() *FallbackTransport {
	return &FallbackTransport{}
}

// Name implements Transport
func (t *FallbackTransport) Name() string {
	return "manual"
}

// Print implements Transport
func (t *FallbackTransport) Print(_ context.Context, _ *sale.Sale, frames []receipt.Frame) (*Result, error) {
	return &Result{
		Tier:      t.Name(),
		PlainText: receipt.RenderText(frames),
	}, nil
}
