// Package searchhistory provides database operations for the append-only
// search history.
package searchhistory

import (
	"time"

	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a search history item.
func (r *Repository) Create(item *entities.SearchHistoryItem) (*entities.SearchHistoryItem, error) {
	if err := r.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListByUser returns a user's history, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.SearchHistoryItem, error) {
	var items []entities.SearchHistoryItem
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

// Clear removes all of a user's history. Clearing an empty history is not
// an error.
func (r *Repository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.SearchHistoryItem{}).Error
}

// DeleteOlderThan prunes entries past the retention window across all
// users and returns how many rows were removed.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.SearchHistoryItem{})
	return result.RowsAffected, result.Error
}
