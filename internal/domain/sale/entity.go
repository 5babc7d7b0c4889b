// internal/domain/sale/entity.go
package sale

import (
	"fmt"
	"time"

	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/pricing"
)

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
	PaymentCard  PaymentMethod = "card"
)

// Sale is one completed transaction. It is immutable after creation and is
// what the receipt encoder and the PDF renderer consume. A local copy is
// kept for reprints; the system of record lives behind the Sale Persistence
// Service.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// SaleID is assigned by the Sale Persistence Service
	SaleID int64 `gorm:"index" json:"sale_id"`
	// ReceiptNumber is client-generated before submission
	ReceiptNumber string `gorm:"uniqueIndex;size:50" json:"receipt_number"`

	Lines   []cart.Line      `gorm:"serializer:json" json:"lines"`
	Pricing pricing.Snapshot `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`

	PaymentMethod  PaymentMethod `gorm:"size:20" json:"payment_method"`
	AmountTendered float64       `json:"amount_tendered"`
	ChangeDue      float64       `json:"change_due"`
	CashierName    string        `gorm:"size:100" json:"cashier_name"`

	RewardCode      string     `gorm:"size:64" json:"reward_code,omitempty"`
	RewardExpiresAt *time.Time `json:"reward_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Sale) TableName() string {
	return "sales"
}

// NewReceiptNumber generates a time-based receipt number.
// Format: OR-YYYYMMDD-HHMMSS
func NewReceiptNumber(at time.Time) string {
	return fmt.Sprintf("OR-%s", at.Format("20060102-150405"))
}
