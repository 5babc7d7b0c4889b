// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pharmacy-pos/internal/domain/product"
)

// ErrStockCeilingExceeded is returned when a mutation would push a line's
// quantity past the sellable stock. The line is left unchanged.
var ErrStockCeilingExceeded = errors.New("quantity exceeds available stock")

// ErrLineNotFound is returned for an out-of-range line index.
var ErrLineNotFound = errors.New("cart line not found")

// Line is one product/sale-unit pairing in the cart. A product sold both by
// the box and by the piece occupies two independent lines, told apart by
// CartKey.
type Line struct {
	ProductID         uint    `json:"product_id"`
	CartKey           string  `json:"cart_key"`
	DisplayName       string  `json:"display_name"`
	UnitPrice         float64 `json:"unit_price"`
	Quantity          int     `json:"quantity"`
	MaxQuantity       int     `json:"max_quantity"`
	IsPerUnitSplit    bool    `json:"is_per_unit_split"`
	UnitsPerContainer int     `json:"units_per_container"`
}

// Total returns the line total before rounding.
func (l Line) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// KeyFor builds the cart key disambiguating whole-container vs split-unit
// lines of the same product.
func KeyFor(productID uint, asSplitUnit bool) string {
	if asSplitUnit {
		return fmt.Sprintf("%d:pc", productID)
	}
	return fmt.Sprintf("%d", productID)
}

// Session is the register session: the active cart plus the discount flag,
// owned by one terminal and persisted between requests. All mutations are
// synchronous and either complete fully or leave the session untouched.
type Session struct {
	ID              string    `json:"id"`
	CashierName     string    `json:"cashier_name"`
	Lines           []Line    `json:"lines"`
	DiscountApplied bool      `json:"discount_applied"`
	// Set when the cart was loaded from an online pickup order
	ResumedOrderID  string    `json:"resumed_order_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddLine rings up one unit of a product. An existing line for the same
// cart key is incremented; otherwise a new line with quantity 1 is appended.
func (s *Session) AddLine(prod *product.Product, asSplitUnit bool) error {
	if asSplitUnit && !prod.AllowSplitSale {
		return fmt.Errorf("product %q cannot be sold per piece", prod.Name)
	}

	max := prod.MaxSellable(asSplitUnit)
	if max < 1 {
		return ErrStockCeilingExceeded
	}

	key := KeyFor(prod.ID, asSplitUnit)
	for i := range s.Lines {
		if s.Lines[i].CartKey == key {
			if s.Lines[i].Quantity+1 > s.Lines[i].MaxQuantity {
				return ErrStockCeilingExceeded
			}
			s.Lines[i].Quantity++
			return nil
		}
	}

	name := prod.Name
	if asSplitUnit {
		name = prod.Name + " (per piece)"
	}

	s.Lines = append(s.Lines, Line{
		ProductID:         prod.ID,
		CartKey:           key,
		DisplayName:       name,
		UnitPrice:         prod.UnitPriceFor(asSplitUnit),
		Quantity:          1,
		MaxQuantity:       max,
		IsPerUnitSplit:    asSplitUnit,
		UnitsPerContainer: prod.PiecesPerBox,
	})
	return nil
}

// ChangeQuantity adjusts a line's quantity by delta. A resulting quantity of
// zero or less removes the line; an overflow past the stock ceiling fails
// without mutating.
func (s *Session) ChangeQuantity(lineIndex, delta int) error {
	if lineIndex < 0 || lineIndex >= len(s.Lines) {
		return ErrLineNotFound
	}

	next := s.Lines[lineIndex].Quantity + delta
	if next <= 0 {
		s.Lines = append(s.Lines[:lineIndex], s.Lines[lineIndex+1:]...)
		return nil
	}
	if next > s.Lines[lineIndex].MaxQuantity {
		return ErrStockCeilingExceeded
	}

	s.Lines[lineIndex].Quantity = next
	return nil
}

// Clear empties the cart and resets the discount flag and order linkage.
func (s *Session) Clear() {
	s.Lines = nil
	s.DiscountApplied = false
	s.ResumedOrderID = ""
}

// IsEmpty reports whether the cart has no lines.
func (s *Session) IsEmpty() bool {
	return len(s.Lines) == 0
}
