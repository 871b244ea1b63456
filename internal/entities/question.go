package entities

import (
	"time"
)

type QuestionStatus string

const (
	QuestionStatusPending  QuestionStatus = "pending"
	QuestionStatusAnswered QuestionStatus = "answered"
)

// Question is a user-submitted question answered by the assistant. The
// status transition is one-way: pending questions become answered, never
// the reverse.
type Question struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	Question   string         `gorm:"type:text" json:"question"`
	Answer     *string        `gorm:"type:text" json:"answer"`
	Status     QuestionStatus `gorm:"size:16;default:pending;index" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	AnsweredAt *time.Time     `json:"answered_at,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type SearchHistoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Query     string    `gorm:"size:512" json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

func (SearchHistoryItem) TableName() string {
	return "search_history"
}
