package prayersettings

import (
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.PrayerSettings{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRepository(db)
}

func TestRepository_GetOrDefault(t *testing.T) {
	repo := setupTestDB(t)

	defaults, err := repo.GetOrDefault(1)
	if err != nil {
		t.Fatalf("GetOrDefault failed: %v", err)
	}
	if defaults.CalculationMethod != entities.MethodMWL {
		t.Errorf("expected default method MWL, got %q", defaults.CalculationMethod)
	}
	if defaults.AsrMethod != entities.AsrStandard {
		t.Errorf("expected default asr standard, got %q", defaults.AsrMethod)
	}
	if !defaults.NotificationsEnabled {
		t.Error("expected notifications enabled by default")
	}
	if defaults.ID != 0 {
		t.Error("defaults must not be persisted")
	}
}

func TestRepository_UpsertReplacesRow(t *testing.T) {
	repo := setupTestDB(t)

	first, err := repo.Upsert(&entities.PrayerSettings{
		UserID:            1,
		CalculationMethod: entities.MethodISNA,
		AsrMethod:         entities.AsrStandard,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	second, err := repo.Upsert(&entities.PrayerSettings{
		UserID:            1,
		CalculationMethod: entities.MethodMakkah,
		AsrMethod:         entities.AsrHanafi,
		Adjustments:       datatypes.JSONMap{"fajr": -3},
	})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected upsert to reuse row %d, created %d", first.ID, second.ID)
	}

	stored, err := repo.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.CalculationMethod != entities.MethodMakkah {
		t.Errorf("expected method Makkah, got %q", stored.CalculationMethod)
	}
	if stored.AsrMethod != entities.AsrHanafi {
		t.Errorf("expected asr hanafi, got %q", stored.AsrMethod)
	}
	if len(stored.Adjustments) != 1 {
		t.Errorf("expected one adjustment, got %v", stored.Adjustments)
	}
}

func TestRepository_SettingsArePerUser(t *testing.T) {
	repo := setupTestDB(t)

	if _, err := repo.Upsert(&entities.PrayerSettings{
		UserID:            1,
		CalculationMethod: entities.MethodKarachi,
		AsrMethod:         entities.AsrHanafi,
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	other, err := repo.GetOrDefault(2)
	if err != nil {
		t.Fatalf("GetOrDefault failed: %v", err)
	}
	if other.CalculationMethod != entities.MethodMWL {
		t.Errorf("user 2 should get defaults, got %q", other.CalculationMethod)
	}
}
