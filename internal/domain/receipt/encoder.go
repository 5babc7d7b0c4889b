// internal/domain/receipt/encoder.go
package receipt

import (
	"fmt"
	"net/url"

	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/pkg/escpos"
)

// Frame is one unit of printer output: either a raw control sequence sent
// verbatim, or a line of text subject to the transport's text encoding.
type Frame struct {
	Raw  []byte
	Text string
}

// IsRaw reports whether the frame is a control sequence.
func (f Frame) IsRaw() bool {
	return f.Raw != nil
}

// Bytes serializes the frame for a byte-oriented transport. Text frames get
// a trailing line feed so the printer advances.
func (f Frame) Bytes() []byte {
	if f.IsRaw() {
		return f.Raw
	}
	return append([]byte(f.Text), '\n')
}

func raw(b []byte) Frame  { return Frame{Raw: b} }
func text(s string) Frame { return Frame{Text: s} }
func textf(format string, args ...interface{}) Frame {
	return Frame{Text: fmt.Sprintf(format, args...)}
}

// Encoder translates a finalized sale into the ordered frame sequence the
// print transports deliver. It is stateless; all variability comes from
// configuration (store header, paper width, QR tuning).
type Encoder struct {
	config *config.Config
}

// NewEncoder creates a new receipt encoder
func NewEncoder(cfg *config.Config) *Encoder {
	return &Encoder{config: cfg}
}

// Encode produces the full receipt for a sale.
func (e *Encoder) Encode(s *sale.Sale) []Frame {
	w := e.config.Printer.PaperWidth
	frames := []Frame{raw(escpos.Reset)}

	// Store header, centered and double height
	frames = append(frames,
		raw(escpos.AlignCenter),
		raw(escpos.DoubleSizeOn),
		text(e.config.App.StoreName),
		raw(escpos.DoubleSizeOff),
		text(e.config.App.StoreAddress),
		raw(escpos.AlignLeft),
	)

	// Transaction metadata
	frames = append(frames,
		textf("Receipt: %s", s.ReceiptNumber),
		textf("Date: %s", s.CreatedAt.Local().Format("01/02/2006 3:04 PM")),
		textf("Cashier: %s", s.CashierName),
		text(divider(w)),
	)

	// Item lines: wrapped name, then right-justified qty x price / total
	for _, line := range s.Lines {
		for _, segment := range wrap(line.DisplayName, w) {
			frames = append(frames, text(segment))
		}
		left := fmt.Sprintf("  %d x %s", line.Quantity, FormatMoney(line.UnitPrice))
		right := FormatMoney(line.Total())
		frames = append(frames, text(twoColumns(left, right, w)))
	}

	// Totals block
	frames = append(frames, text(divider(w)))
	frames = append(frames, text(twoColumns("Subtotal", FormatMoney(s.Pricing.Subtotal), w)))
	frames = append(frames, text(twoColumns("VAT (12%)", FormatMoney(s.Pricing.TaxAmount), w)))
	if s.Pricing.DiscountAmount > 0 {
		frames = append(frames, text(twoColumns("Discount (20%)", FormatMoney(-s.Pricing.DiscountAmount), w)))
	}
	frames = append(frames,
		raw(escpos.BoldOn),
		text(twoColumns("TOTAL", FormatMoney(s.Pricing.Total), w)),
		raw(escpos.BoldOff),
		text(twoColumns(fmt.Sprintf("Tendered (%s)", s.PaymentMethod), FormatMoney(s.AmountTendered), w)),
		text(twoColumns("Change", FormatMoney(s.ChangeDue), w)),
	)

	frames = append(frames,
		text(divider(w)),
		raw(escpos.AlignCenter),
		text("Thank you, get well soon!"),
		raw(escpos.AlignLeft),
	)

	if s.RewardCode != "" {
		frames = append(frames, e.rewardFrames(s, w)...)
	}

	frames = append(frames,
		raw(escpos.Feed(3)),
		raw(escpos.PartialCut),
	)

	return frames
}

// rewardFrames emits the loyalty QR section: the stored-then-printed symbol
// encodes a landing page URL, not the bare code, so a camera scan navigates
// straight to redemption.
func (e *Encoder) rewardFrames(s *sale.Sale, w int) []Frame {
	frames := []Frame{
		raw(escpos.AlignCenter),
		raw(escpos.BoldOn),
		text("YOUR REWARD"),
		raw(escpos.BoldOff),
		raw(escpos.QRSelectModel),
		raw(escpos.QRModuleSize(e.config.Printer.QRModuleSize)),
		raw(escpos.QRErrorCorrection(e.config.Printer.QRErrorCorrection)),
		raw(escpos.QRStore([]byte(e.RewardURL(s.RewardCode)))),
		raw(escpos.QRPrint),
		textf("Code: %s", s.RewardCode),
	}

	if s.RewardExpiresAt != nil {
		frames = append(frames, textf("Valid until %s", s.RewardExpiresAt.Local().Format("01/02/2006")))
	}

	frames = append(frames,
		raw(escpos.AlignLeft),
		text(divider(w)),
	)
	return frames
}

// RewardURL builds the deep link encoded into the QR symbol.
func (e *Encoder) RewardURL(code string) string {
	return fmt.Sprintf("%s?code=%s", e.config.Printer.RewardLandingURL, url.QueryEscape(code))
}
