// Package questions provides database operations for user questions and
// the pending→answered transition.
package questions

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

// ErrAlreadyAnswered is returned when a transition would re-answer a
// question. The status machine is one-way.
var ErrAlreadyAnswered = errors.New("question is already answered")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new question in pending status.
func (r *Repository) Create(q *entities.Question) (*entities.Question, error) {
	if q.Status == "" {
		q.Status = entities.QuestionStatusPending
	}
	if err := r.db.Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a question by ID.
func (r *Repository) GetByID(id uint) (*entities.Question, error) {
	var q entities.Question
	if err := r.db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByUser returns all of a user's questions, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Question, error) {
	var qs []entities.Question
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&qs).Error
	return qs, err
}

// ListAnsweredByUser returns a user's answered questions, newest first.
func (r *Repository) ListAnsweredByUser(userID uint) ([]entities.Question, error) {
	var qs []entities.Question
	err := r.db.Where("user_id = ? AND status = ?", userID, entities.QuestionStatusAnswered).
		Order("created_at DESC").Find(&qs).Error
	return qs, err
}

// ListPending returns pending questions across all users, oldest first,
// for the background answering sweep. limit <= 0 means no limit.
func (r *Repository) ListPending(limit int) ([]entities.Question, error) {
	var qs []entities.Question
	query := r.db.Where("status = ?", entities.QuestionStatusPending).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&qs).Error
	return qs, err
}

// MarkAnswered performs the pending→answered transition in one write.
// Re-answering is refused.
func (r *Repository) MarkAnswered(id uint, answer string) (*entities.Question, error) {
	q, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if q.Status == entities.QuestionStatusAnswered {
		return nil, ErrAlreadyAnswered
	}

	now := time.Now()
	err = r.db.Model(q).Updates(map[string]any{
		"answer":      answer,
		"status":      entities.QuestionStatusAnswered,
		"answered_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	q.Answer = &answer
	q.Status = entities.QuestionStatusAnswered
	q.AnsweredAt = &now
	return q, nil
}

// Delete removes a question. Deleting a missing row reports not-found.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
