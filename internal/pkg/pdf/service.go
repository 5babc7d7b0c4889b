// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

// Service renders a completed sale as a PDF copy of the receipt, for
// emailing to a customer or archiving alongside the thermal original.
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for a sale
func (s *Service) GenerateReceipt(sl *sale.Sale) (*bytes.Buffer, error) {
	data := receiptData{
		StoreName:     s.config.App.StoreName,
		StoreAddress:  s.config.App.StoreAddress,
		ReceiptNumber: sl.ReceiptNumber,
		Date:          sl.CreatedAt.Local().Format("January 2, 2006 3:04 PM"),
		Cashier:       sl.CashierName,
		Subtotal:      receipt.FormatMoney(sl.Pricing.Subtotal),
		Tax:           receipt.FormatMoney(sl.Pricing.TaxAmount),
		Total:         receipt.FormatMoney(sl.Pricing.Total),
		PaymentMethod: string(sl.PaymentMethod),
		Tendered:      receipt.FormatMoney(sl.AmountTendered),
		Change:        receipt.FormatMoney(sl.ChangeDue),
		RewardCode:    sl.RewardCode,
	}

	if sl.Pricing.DiscountAmount > 0 {
		data.Discount = receipt.FormatMoney(-sl.Pricing.DiscountAmount)
	}

	for _, line := range sl.Lines {
		data.Items = append(data.Items, receiptItem{
			Name:      line.DisplayName,
			Quantity:  line.Quantity,
			UnitPrice: receipt.FormatMoney(line.UnitPrice),
			Total:     receipt.FormatMoney(line.Total()),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// receiptData is the data passed to the receipt template
type receiptData struct {
	StoreName     string
	StoreAddress  string
	ReceiptNumber string
	Date          string
	Cashier       string
	Items         []receiptItem
	Subtotal      string
	Tax           string
	Discount      string
	Total         string
	PaymentMethod string
	Tendered      string
	Change        string
	RewardCode    string
}

type receiptItem struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            max-width: 360px;
            margin: 0 auto;
            padding: 20px;
            color: #111;
        }
        .header {
            text-align: center;
            margin-bottom: 16px;
        }
        .store-name {
            font-size: 20px;
            font-weight: bold;
        }
        .meta p {
            margin: 2px 0;
            font-size: 12px;
        }
        .rule {
            border-top: 1px dashed #555;
            margin: 10px 0;
        }
        .items-table {
            width: 100%;
            font-size: 12px;
            border-collapse: collapse;
        }
        .items-table td {
            padding: 2px 0;
            vertical-align: top;
        }
        .amount {
            text-align: right;
            white-space: nowrap;
        }
        .totals-table {
            width: 100%;
            font-size: 12px;
        }
        .total-row td {
            font-size: 14px;
            font-weight: bold;
            padding-top: 4px;
        }
        .footer {
            text-align: center;
            margin-top: 16px;
            font-size: 12px;
        }
        .reward {
            text-align: center;
            margin-top: 12px;
            padding: 8px;
            border: 1px dashed #555;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-name">{{.StoreName}}</div>
        <div>{{.StoreAddress}}</div>
    </div>

    <div class="meta">
        <p>Receipt: {{.ReceiptNumber}}</p>
        <p>Date: {{.Date}}</p>
        <p>Cashier: {{.Cashier}}</p>
    </div>

    <div class="rule"></div>

    <table class="items-table">
        {{range .Items}}
        <tr>
            <td colspan="2">{{.Name}}</td>
        </tr>
        <tr>
            <td>&nbsp;&nbsp;{{.Quantity}} x {{.UnitPrice}}</td>
            <td class="amount">{{.Total}}</td>
        </tr>
        {{end}}
    </table>

    <div class="rule"></div>

    <table class="totals-table">
        <tr>
            <td>Subtotal</td>
            <td class="amount">{{.Subtotal}}</td>
        </tr>
        <tr>
            <td>VAT (12%)</td>
            <td class="amount">{{.Tax}}</td>
        </tr>
        {{if .Discount}}
        <tr>
            <td>Discount (20%)</td>
            <td class="amount">{{.Discount}}</td>
        </tr>
        {{end}}
        <tr class="total-row">
            <td>TOTAL</td>
            <td class="amount">{{.Total}}</td>
        </tr>
        <tr>
            <td>Tendered ({{.PaymentMethod}})</td>
            <td class="amount">{{.Tendered}}</td>
        </tr>
        <tr>
            <td>Change</td>
            <td class="amount">{{.Change}}</td>
        </tr>
    </table>

    <div class="rule"></div>

    <div class="footer">Thank you, get well soon!</div>

    {{if .RewardCode}}
    <div class="reward">
        <strong>YOUR REWARD</strong><br>
        Code: {{.RewardCode}}
    </div>
    {{end}}
</body>
</html>
`
