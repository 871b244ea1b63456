// Package progress provides database operations for reading progress,
// one row per (user, content type).
package progress

import (
	"errors"
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

// Get returns the progress row for a user and content type.
func (r *Repository) Get(userID uint, contentType entities.ContentType) (*entities.ReadingProgress, error) {
	var p entities.ReadingProgress
	err := r.db.Where("user_id = ? AND type = ?", userID, contentType).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a progress row by ID.
func (r *Repository) GetByID(id uint) (*entities.ReadingProgress, error) {
	var p entities.ReadingProgress
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates the row for (user, type) or replaces its position.
func (r *Repository) Upsert(p *entities.ReadingProgress) (*entities.ReadingProgress, error) {
	existing, err := r.Get(p.UserID, p.Type)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.Create(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	existing.LastRead = p.LastRead
	existing.CompletionPercentage = p.CompletionPercentage
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Update applies a partial update to an existing progress row.
func (r *Repository) Update(id uint, lastRead *entities.ContentRef, completion *int) (*entities.ReadingProgress, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if lastRead != nil {
		p.LastRead = *lastRead
	}
	if completion != nil {
		p.CompletionPercentage = *completion
	}
	p.UpdatedAt = time.Now()

	if err := r.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
