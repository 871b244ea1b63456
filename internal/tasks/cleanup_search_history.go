package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"
)

// HistoryCleaner deletes search history rows older than a cutoff.
type HistoryCleaner interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// CleanupSearchHistoryTask removes search history entries beyond the
// configured retention window.
type CleanupSearchHistoryTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for history cleanup tasks.
func (t CleanupSearchHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_search_history",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupSearchHistoryProcessor creates a processor function for
// CleanupSearchHistoryTask.
func CleanupSearchHistoryProcessor(cleaner HistoryCleaner) backlite.QueueProcessor[CleanupSearchHistoryTask] {
	return func(ctx context.Context, task CleanupSearchHistoryTask) error {
		if cleaner == nil {
			return fmt.Errorf("history cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := cleaner.DeleteOlderThan(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup search history: %w", err)
		}

		if deleted > 0 {
			slog.Info("cleaned up search history", "deleted", deleted, "retention_days", retentionDays)
		}
		return nil
	}
}

// NewCleanupSearchHistoryQueue creates a backlite queue for history cleanup.
func NewCleanupSearchHistoryQueue(cleaner HistoryCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupSearchHistoryProcessor(cleaner))
}
