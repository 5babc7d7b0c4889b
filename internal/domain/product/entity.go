// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product is the read model the register consults when ringing up a line.
// Catalog management lives in a separate system; this table is a synced copy.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:255" json:"name"`
	GenericName string `gorm:"size:255" json:"generic_name"`
	// Price of the whole container (box, bottle, blister pack)
	Price float64 `gorm:"not null" json:"price"`
	// Price of a single unit when the product may be sold per piece
	PiecePrice     float64 `gorm:"default:0" json:"piece_price"`
	PiecesPerBox   int     `gorm:"default:1" json:"pieces_per_box"`
	AllowSplitSale bool    `gorm:"default:false" json:"allow_split_sale"`
	// Stock is counted in whole containers
	Stock     int            `gorm:"not null;default:0" json:"stock"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// MaxSellable returns the stock ceiling for a cart line of this product.
// Split-unit lines draw from the same container stock, converted to pieces.
func (p *Product) MaxSellable(asSplitUnit bool) int {
	if asSplitUnit {
		pieces := p.PiecesPerBox
		if pieces < 1 {
			pieces = 1
		}
		return p.Stock * pieces
	}
	return p.Stock
}

// UnitPriceFor returns the per-quantity price for a whole or split line.
func (p *Product) UnitPriceFor(asSplitUnit bool) float64 {
	if asSplitUnit {
		return p.PiecePrice
	}
	return p.Price
}
