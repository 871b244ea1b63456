package entities

import (
	"time"
)

type ClientStatus string

const (
	ClientStatusLead   ClientStatus = "lead"
	ClientStatusActive ClientStatus = "active"
	ClientStatusPast   ClientStatus = "past"
)

// ValidClientStatus reports whether s is one of the enumerated statuses.
func ValidClientStatus(s ClientStatus) bool {
	return s == ClientStatusLead || s == ClientStatusActive || s == ClientStatusPast
}

type Client struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"index" json:"user_id"`
	FirstName string       `gorm:"size:100" json:"first_name"`
	LastName  string       `gorm:"size:100" json:"last_name"`
	Email     string       `gorm:"size:255" json:"email"`
	Phone     string       `gorm:"size:32" json:"phone,omitempty"`
	Status    ClientStatus `gorm:"size:16;default:lead" json:"status"`
	Notes     string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Client) TableName() string {
	return "clients"
}

// Meeting references a client by id. Deleting the client does not delete
// its meetings; the reports and list views keep showing them.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ClientID  uint      `gorm:"index" json:"client_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Date      time.Time `json:"date"`
	Time      string    `gorm:"size:8" json:"time"` // "HH:MM"
	Location  string    `gorm:"size:255" json:"location,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ValidTaskPriority reports whether p is one of the enumerated priorities.
func ValidTaskPriority(p TaskPriority) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"index" json:"user_id"`
	ClientID    *uint        `gorm:"index" json:"client_id,omitempty"`
	Title       string       `gorm:"size:255" json:"title"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `gorm:"size:16;default:medium" json:"priority"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (Task) TableName() string {
	return "tasks"
}
