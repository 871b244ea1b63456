package entities

import (
	"time"
)

// Location stores where the user is, for prayer times and qibla.
type Location struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// NotificationPreferences controls which reminders the user receives.
type NotificationPreferences struct {
	DailyReminder bool `json:"daily_reminder"`
	PrayerAlerts  bool `json:"prayer_alerts"`
	WeeklyDigest  bool `json:"weekly_digest"`
}

// Preferences is the canonical nested preferences object. Reading and
// writing both use this shape; nothing is flattened into top-level columns.
type Preferences struct {
	Avatar        string                  `json:"avatar,omitempty"`
	ArabicScript  string                  `json:"arabic_script,omitempty"`
	Translation   string                  `json:"translation,omitempty"`
	Reciter       string                  `json:"reciter,omitempty"`
	Notifications NotificationPreferences `json:"notifications"`
}

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string      `gorm:"size:100" json:"-"`
	Email        string      `gorm:"size:255" json:"email"`
	Name         string      `gorm:"size:255" json:"name,omitempty"`
	Location     Location    `gorm:"serializer:json" json:"location"`
	Language     string      `gorm:"size:8;default:en" json:"language"`
	Theme        string      `gorm:"size:16;default:light" json:"theme"`
	Preferences  Preferences `gorm:"serializer:json" json:"preferences"`

	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FailedLoginCount int        `json:"-"`
	LockedUntil      *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
