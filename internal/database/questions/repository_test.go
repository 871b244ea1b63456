package questions

import (
	"errors"
	"testing"

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
	if err := db.AutoMigrate(&entities.Question{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRepository(db)
}

func ask(t *testing.T, repo *Repository, userID uint, text string) *entities.Question {
	t.Helper()
	q, err := repo.Create(&entities.Question{
		UserID:   userID,
		Question: text,
		Status:   entities.QuestionStatusPending,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return q
}

func TestRepository_MarkAnswered(t *testing.T) {
	repo := setupTestDB(t)
	q := ask(t, repo, 1, "What are the pillars of Islam?")

	answered, err := repo.MarkAnswered(q.ID, "There are five pillars.")
	if err != nil {
		t.Fatalf("MarkAnswered failed: %v", err)
	}
	if answered.Status != entities.QuestionStatusAnswered {
		t.Errorf("expected status answered, got %q", answered.Status)
	}
	if answered.Answer == nil || *answered.Answer != "There are five pillars." {
		t.Errorf("expected stored answer, got %v", answered.Answer)
	}
	if answered.AnsweredAt == nil {
		t.Error("expected AnsweredAt to be set")
	}

	// Answering is one-way
	if _, err := repo.MarkAnswered(q.ID, "rewrite"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected ErrAlreadyAnswered, got %v", err)
	}
	fresh, err := repo.GetByID(q.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if *fresh.Answer != "There are five pillars." {
		t.Errorf("refused transition must not change the answer, got %q", *fresh.Answer)
	}
}

func TestRepository_ListFilters(t *testing.T) {
	repo := setupTestDB(t)
	first := ask(t, repo, 1, "first")
	ask(t, repo, 1, "second")
	ask(t, repo, 2, "other user")

	if _, err := repo.MarkAnswered(first.ID, "answer"); err != nil {
		t.Fatalf("MarkAnswered failed: %v", err)
	}

	all, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 questions for user 1, got %d", len(all))
	}

	answered, err := repo.ListAnsweredByUser(1)
	if err != nil {
		t.Fatalf("ListAnsweredByUser failed: %v", err)
	}
	if len(answered) != 1 || answered[0].ID != first.ID {
		t.Errorf("expected only the answered question, got %+v", answered)
	}
}

func TestRepository_ListPending(t *testing.T) {
	repo := setupTestDB(t)
	for i := 0; i < 5; i++ {
		ask(t, repo, 1, "pending")
	}
	answered := ask(t, repo, 1, "done")
	if _, err := repo.MarkAnswered(answered.ID, "yes"); err != nil {
		t.Fatalf("MarkAnswered failed: %v", err)
	}

	pending, err := repo.ListPending(3)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("expected limit of 3, got %d", len(pending))
	}

	unlimited, err := repo.ListPending(0)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(unlimited) != 5 {
		t.Errorf("expected 5 pending questions, got %d", len(unlimited))
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	q := ask(t, repo, 1, "temporary")

	if err := repo.Delete(q.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(q.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}
