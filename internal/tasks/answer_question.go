package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/assistant"
	"github.com/hkhalifa/deen-companion/internal/database/questions"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// AnswerQuestionTask retries the AI answer for one pending question,
// enqueued when the synchronous attempt at submission time failed.
type AnswerQuestionTask struct {
	QuestionID uint `json:"question_id"`
}

// Config returns the queue configuration for question answering tasks.
func (t AnswerQuestionTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "answer_question",
		MaxAttempts: 5,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// AnswerQuestionProcessor creates a processor function for AnswerQuestionTask.
func AnswerQuestionProcessor(repo *questions.Repository, ai assistant.Client) backlite.QueueProcessor[AnswerQuestionTask] {
	return func(ctx context.Context, task AnswerQuestionTask) error {
		if repo == nil || ai == nil {
			return fmt.Errorf("question answering not configured")
		}

		question, err := repo.GetByID(task.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Deleted before the retry ran; nothing to do
				return nil
			}
			return fmt.Errorf("load question %d: %w", task.QuestionID, err)
		}
		if question.Status == entities.QuestionStatusAnswered {
			return nil
		}

		answer, err := ai.Generate(ctx, assistant.QuestionPrompt, question.Question)
		if err != nil {
			return fmt.Errorf("answer question %d: %w", task.QuestionID, err)
		}

		if _, err := repo.MarkAnswered(question.ID, answer); err != nil {
			if errors.Is(err, questions.ErrAlreadyAnswered) {
				return nil
			}
			return fmt.Errorf("store answer for question %d: %w", task.QuestionID, err)
		}

		slog.Info("answered pending question", "question_id", question.ID, "user_id", question.UserID)
		return nil
	}
}

// NewAnswerQuestionQueue creates a backlite queue for question answering.
func NewAnswerQuestionQueue(repo *questions.Repository, ai assistant.Client) backlite.Queue {
	return backlite.NewQueue(AnswerQuestionProcessor(repo, ai))
}

// AnswerPendingQuestionsTask sweeps the oldest pending questions and
// enqueues an answering task for each. Scheduled by cron.
type AnswerPendingQuestionsTask struct {
	Limit int `json:"limit"`
}

// Config returns the queue configuration for the pending sweep.
func (t AnswerPendingQuestionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "answer_pending_questions",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// TaskEnqueuer enqueues follow-up tasks. *Client satisfies it.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// AnswerPendingQuestionsProcessor fans the oldest pending questions out
// to individual answer tasks.
func AnswerPendingQuestionsProcessor(repo *questions.Repository, enqueuer TaskEnqueuer) backlite.QueueProcessor[AnswerPendingQuestionsTask] {
	return func(ctx context.Context, task AnswerPendingQuestionsTask) error {
		if repo == nil || enqueuer == nil {
			return fmt.Errorf("pending question sweep not configured")
		}

		limit := task.Limit
		if limit <= 0 {
			limit = 20
		}

		pending, err := repo.ListPending(limit)
		if err != nil {
			return fmt.Errorf("list pending questions: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}

		followups := make([]backlite.Task, 0, len(pending))
		for _, q := range pending {
			followups = append(followups, AnswerQuestionTask{QuestionID: q.ID})
		}
		if _, err := enqueuer.Add(followups...).Save(); err != nil {
			return fmt.Errorf("enqueue answer tasks: %w", err)
		}

		slog.Info("scheduled answers for pending questions", "count", len(pending))
		return nil
	}
}

// NewAnswerPendingQuestionsQueue creates a backlite queue for the sweep.
func NewAnswerPendingQuestionsQueue(repo *questions.Repository, enqueuer TaskEnqueuer) backlite.Queue {
	return backlite.NewQueue(AnswerPendingQuestionsProcessor(repo, enqueuer))
}
