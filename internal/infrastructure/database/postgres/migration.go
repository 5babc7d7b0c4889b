// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/pharmacy-pos/internal/domain/heldsale"
	"github.com/your-org/pharmacy-pos/internal/domain/product"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&product.Product{},
		&heldsale.Entry{},
		&sale.Sale{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_name_active ON products(name, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_held_sales_terminal ON held_sales(terminal_id, id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds a handful of products for development registers
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("🔄 Seeding development products...")

	products := []product.Product{
		{Name: "Amoxicillin 500mg Box of 100", GenericName: "Amoxicillin", Price: 450.00, PiecePrice: 5.00, PiecesPerBox: 100, AllowSplitSale: true, Stock: 20, IsActive: true},
		{Name: "Paracetamol 500mg Box of 100", GenericName: "Paracetamol", Price: 180.00, PiecePrice: 2.50, PiecesPerBox: 100, AllowSplitSale: true, Stock: 35, IsActive: true},
		{Name: "Cetirizine 10mg Box of 50", GenericName: "Cetirizine", Price: 150.00, PiecePrice: 3.50, PiecesPerBox: 50, AllowSplitSale: true, Stock: 15, IsActive: true},
		{Name: "Losartan 50mg Box of 30", GenericName: "Losartan", Price: 285.00, PiecePrice: 10.00, PiecesPerBox: 30, AllowSplitSale: true, Stock: 12, IsActive: true},
		{Name: "Vitamin C 500mg Bottle", GenericName: "Ascorbic Acid", Price: 120.00, PiecesPerBox: 1, Stock: 40, IsActive: true},
		{Name: "Digital Thermometer", Price: 199.00, PiecesPerBox: 1, Stock: 8, IsActive: true},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Development products seeded successfully")
	return nil
}
