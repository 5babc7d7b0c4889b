// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/your-org/pharmacy-pos/internal/config"
	"gorm.io/gorm"
)

// Service handles product lookups for the register
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetProduct retrieves an active product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var prod Product
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}
	return &prod, nil
}

// SearchProducts returns active products whose name matches the query.
// The register uses this for barcode-miss lookups; full catalog search is
// the catalog system's job.
func (s *Service) SearchProducts(query string, limit int) ([]Product, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var products []Product
	err := s.db.
		Where("is_active = ? AND (name ILIKE ? OR generic_name ILIKE ?)", true, "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}
