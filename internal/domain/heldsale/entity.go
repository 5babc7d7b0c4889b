// internal/domain/heldsale/entity.go
package heldsale

import (
	"errors"
	"time"

	"github.com/your-org/pharmacy-pos/internal/domain/cart"
)

// ErrNotFound is returned for operations on a stale or deleted entry ID.
// The store is left unmodified.
var ErrNotFound = errors.New("held sale not found")

// Entry is a suspended cart. The ID doubles as the hold timestamp
// (unix milliseconds), which keeps the list naturally ordered.
type Entry struct {
	ID              int64       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TerminalID      string      `gorm:"index;size:64" json:"terminal_id"`
	Lines           []cart.Line `gorm:"serializer:json" json:"lines"`
	DiscountApplied bool        `json:"discount_applied"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "held_sales"
}

// CreatedAtDisplay formats the hold time the way the register lists it.
func (e *Entry) CreatedAtDisplay() string {
	return e.CreatedAt.Local().Format("Jan 2 3:04 PM")
}
