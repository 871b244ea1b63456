package entities

import (
	"errors"
	"fmt"
	"time"
)

// ContentType discriminates references into Quran and Hadith addressing.
type ContentType string

const (
	ContentTypeQuran  ContentType = "quran"
	ContentTypeHadith ContentType = "hadith"
)

var ErrInvalidContentType = errors.New("content type must be quran or hadith")

// ParseContentType validates a raw type string.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypeQuran, ContentTypeHadith:
		return ContentType(s), nil
	}
	return "", ErrInvalidContentType
}

// ContentRef addresses a piece of content. It is a tagged union: the fields
// that must be set depend on the ContentType it is stored next to.
// Quran references use Surah/Ayah, Hadith references use Collection/Number.
type ContentRef struct {
	Surah      int    `json:"surah,omitempty"`
	Ayah       int    `json:"ayah,omitempty"`
	Collection string `json:"collection,omitempty"`
	Number     string `json:"number,omitempty"`
}

// Validate checks the reference against its discriminator.
func (r ContentRef) Validate(t ContentType) error {
	switch t {
	case ContentTypeQuran:
		if r.Surah < 1 || r.Surah > 114 {
			return fmt.Errorf("surah must be between 1 and 114, got %d", r.Surah)
		}
		if r.Ayah < 1 {
			return fmt.Errorf("ayah must be positive, got %d", r.Ayah)
		}
		return nil
	case ContentTypeHadith:
		if r.Collection == "" {
			return errors.New("collection is required for hadith references")
		}
		if r.Number == "" {
			return errors.New("number is required for hadith references")
		}
		return nil
	}
	return ErrInvalidContentType
}

type Bookmark struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	Type      ContentType `gorm:"size:16;index" json:"type"`
	Reference ContentRef  `gorm:"serializer:json" json:"reference"`
	Note      string      `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// ReadingProgress tracks the last position per content type, one row per
// (user, type).
type ReadingProgress struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	UserID               uint        `gorm:"index" json:"user_id"`
	Type                 ContentType `gorm:"size:16" json:"type"`
	LastRead             ContentRef  `gorm:"serializer:json" json:"last_read"`
	CompletionPercentage int         `json:"completion_percentage"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
