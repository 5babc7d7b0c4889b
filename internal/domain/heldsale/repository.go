// internal/domain/heldsale/repository.go
package heldsale

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the durable held-sale list. The register re-reads it on
// every listing so two terminals never see stale holds.
type Repository interface {
	List(ctx context.Context, terminalID string) ([]Entry, error)
	Get(ctx context.Context, id int64) (*Entry, error)
	Append(ctx context.Context, entry *Entry) error
	Remove(ctx context.Context, id int64) error
}

// GormRepository is the Postgres-backed repository used in production.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new database-backed repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns held entries for a terminal, oldest first.
func (r *GormRepository) List(ctx context.Context, terminalID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("terminal_id = ?", terminalID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Get fetches one entry by ID.
func (r *GormRepository) Get(ctx context.Context, id int64) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Append stores a new held entry.
func (r *GormRepository) Append(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Remove deletes an entry; a missing ID reports ErrNotFound.
func (r *GormRepository) Remove(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
