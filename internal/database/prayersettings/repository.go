// Package prayersettings provides database operations for per-user prayer
// calculation settings (1:1 with users).
package prayersettings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the settings row for a user.
func (r *Repository) Get(userID uint) (*entities.PrayerSettings, error) {
	var s entities.PrayerSettings
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrDefault returns the user's settings, or the defaults when none are
// stored yet. Backend failures are still reported.
func (r *Repository) GetOrDefault(userID uint) (*entities.PrayerSettings, error) {
	s, err := r.Get(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entities.PrayerSettings{
			UserID:               userID,
			CalculationMethod:    entities.MethodMWL,
			AsrMethod:            entities.AsrStandard,
			NotificationsEnabled: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert creates or replaces the user's settings.
func (r *Repository) Upsert(s *entities.PrayerSettings) (*entities.PrayerSettings, error) {
	existing, err := r.Get(s.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.Create(s).Error; err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	existing.CalculationMethod = s.CalculationMethod
	existing.AsrMethod = s.AsrMethod
	existing.Adjustments = s.Adjustments
	existing.NotificationsEnabled = s.NotificationsEnabled
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
