// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("amira")
package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The caller is responsible for hashing the
// password beforehand.
func (r *Repository) Create(user *entities.User) (*entities.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the fields PUT /api/user may change. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name        *string
	Email       *string
	Language    *string
	Theme       *string
	Location    *entities.Location
	Preferences *entities.Preferences
}

// UpdateProfile applies a partial profile update and returns the fresh row.
func (r *Repository) UpdateProfile(id uint, upd ProfileUpdate) (*entities.User, error) {
	updates := map[string]any{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.Language != nil {
		updates["language"] = *upd.Language
	}
	if upd.Theme != nil {
		updates["theme"] = *upd.Theme
	}

	if len(updates) > 0 {
		result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	// JSON columns go through the serializer, so they are written via the
	// model rather than the column map.
	if upd.Location != nil || upd.Preferences != nil {
		var user entities.User
		if err := r.db.First(&user, id).Error; err != nil {
			return nil, err
		}
		if upd.Location != nil {
			user.Location = *upd.Location
		}
		if upd.Preferences != nil {
			user.Preferences = *upd.Preferences
		}
		if err := r.db.Save(&user).Error; err != nil {
			return nil, err
		}
	}

	return r.GetByID(id)
}

// RecordLogin resets lockout bookkeeping after a successful login.
func (r *Repository) RecordLogin(id uint) error {
	now := time.Now()
	return r.db.Model(&entities.User{}).Where("id = ?", id).Updates(map[string]any{
		"last_login_at":      now,
		"failed_login_count": 0,
		"locked_until":       nil,
	}).Error
}

// RecordFailedLogin increments the failure counter and locks the account
// once the threshold is reached.
func (r *Repository) RecordFailedLogin(user *entities.User, maxAttempts int, lockout time.Duration) error {
	user.FailedLoginCount++

	updates := map[string]any{
		"failed_login_count": user.FailedLoginCount,
	}
	if maxAttempts > 0 && user.FailedLoginCount >= maxAttempts {
		lockedUntil := time.Now().Add(lockout)
		updates["locked_until"] = lockedUntil
	}

	return r.db.Model(user).Updates(updates).Error
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(id uint, passwordHash string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
