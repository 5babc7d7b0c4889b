// internal/domain/printing/service.go
package printing

import (
	"context"

	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/pkg/escpos"
)

// PrinterService encodes a sale and delivers it through the tier chain.
// It is what the checkout flow sees as its receipt printer.
type PrinterService struct {
	encoder    *receipt.Encoder
	dispatcher *Dispatcher
}

// NewPrinterService creates a new printer service
func NewPrinterService(encoder *receipt.Encoder, dispatcher *Dispatcher) *PrinterService {
	return &PrinterService{
		encoder:    encoder,
		dispatcher: dispatcher,
	}
}

// PrintReceipt encodes and prints the receipt for a completed sale. Cash
// tenders open the drawer ahead of the receipt so change counting starts
// while the paper feeds.
func (p *PrinterService) PrintReceipt(ctx context.Context, s *sale.Sale) (string, string, error) {
	frames := p.encoder.Encode(s)

	if s.PaymentMethod == sale.PaymentCash {
		frames = append([]receipt.Frame{{Raw: escpos.DrawerKick}}, frames...)
	}

	result, err := p.dispatcher.Print(ctx, s, frames)
	if err != nil {
		return "", "", err
	}
	return result.Tier, result.PlainText, nil
}
