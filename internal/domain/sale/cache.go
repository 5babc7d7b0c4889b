// internal/domain/sale/cache.go
package sale

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrSaleNotFound is returned when no locally cached sale matches.
var ErrSaleNotFound = errors.New("sale not found")

// Cache is the local copy of completed sales kept for reprints. The system
// of record is the Sale Persistence Service; losing this cache only loses
// reprint capability.
type Cache interface {
	Store(ctx context.Context, s *Sale) error
	FindByReceipt(ctx context.Context, receiptNumber string) (*Sale, error)
}

// GormCache is the Postgres-backed sale cache used in production.
type GormCache struct {
	db *gorm.DB
}

// NewGormCache creates a new database-backed sale cache
func NewGormCache(db *gorm.DB) *GormCache {
	return &GormCache{db: db}
}

// Store saves a completed sale.
func (c *GormCache) Store(ctx context.Context, s *Sale) error {
	return c.db.WithContext(ctx).Create(s).Error
}

// FindByReceipt fetches a cached sale by receipt number.
func (c *GormCache) FindByReceipt(ctx context.Context, receiptNumber string) (*Sale, error) {
	var s Sale
	err := c.db.WithContext(ctx).Where("receipt_number = ?", receiptNumber).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	} else if err != nil {
		return nil, err
	}
	return &s, nil
}
