// Package bookmarks provides database operations for saved Quran verses
// and hadiths.
package bookmarks

import (
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a validated bookmark.
func (r *Repository) Create(bookmark *entities.Bookmark) (*entities.Bookmark, error) {
	if err := r.db.Create(bookmark).Error; err != nil {
		return nil, err
	}
	return bookmark, nil
}

// GetByID retrieves a bookmark by ID.
func (r *Repository) GetByID(id uint) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	if err := r.db.First(&bookmark, id).Error; err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// ListByUser returns all bookmarks for a user, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// ListByUserAndType returns a user's bookmarks of one content type.
func (r *Repository) ListByUserAndType(userID uint, contentType entities.ContentType) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Where("user_id = ? AND type = ?", userID, contentType).
		Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// Update applies a partial update to note and reference.
func (r *Repository) Update(id uint, updates map[string]any) (*entities.Bookmark, error) {
	bookmark, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if note, ok := updates["note"].(string); ok {
		bookmark.Note = note
	}
	if ref, ok := updates["reference"].(entities.ContentRef); ok {
		bookmark.Reference = ref
	}

	if err := r.db.Save(bookmark).Error; err != nil {
		return nil, err
	}
	return bookmark, nil
}

// Delete removes a bookmark. Deleting a missing row reports not-found.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Bookmark{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
