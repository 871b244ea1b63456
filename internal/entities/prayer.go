package entities

import (
	"gorm.io/datatypes"
)

// Calculation methods supported by the prayer time engine.
const (
	MethodMWL     = "MWL"     // Muslim World League
	MethodISNA    = "ISNA"    // Islamic Society of North America
	MethodEgypt   = "Egypt"   // Egyptian General Authority of Survey
	MethodMakkah  = "Makkah"  // Umm al-Qura, Makkah
	MethodKarachi = "Karachi" // University of Islamic Sciences, Karachi
)

const (
	AsrStandard = "standard"
	AsrHanafi   = "hanafi"
)

// PrayerSettings is 1:1 with User. Adjustments holds per-prayer minute
// offsets keyed by lowercase prayer name, e.g. {"fajr": -2, "isha": 3}.
type PrayerSettings struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	UserID               uint              `gorm:"uniqueIndex" json:"user_id"`
	CalculationMethod    string            `gorm:"size:16;default:MWL" json:"calculation_method"`
	AsrMethod            string            `gorm:"size:16;default:standard" json:"asr_method"`
	Adjustments          datatypes.JSONMap `json:"adjustments,omitempty"`
	NotificationsEnabled bool              `gorm:"default:true" json:"notifications_enabled"`
}

func (PrayerSettings) TableName() string {
	return "prayer_settings"
}

// ValidCalculationMethod reports whether the engine knows the method.
func ValidCalculationMethod(m string) bool {
	switch m {
	case MethodMWL, MethodISNA, MethodEgypt, MethodMakkah, MethodKarachi:
		return true
	}
	return false
}

// ValidAsrMethod reports whether the Asr juristic method is known.
func ValidAsrMethod(m string) bool {
	return m == AsrStandard || m == AsrHanafi
}
