// Package scheduler drives the recurring background work: sweeping
// pending questions for answering and enforcing search history
// retention. Each job only enqueues a backlite task; the queue does the
// actual work with retries.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hkhalifa/deen-companion/internal/config"
	"github.com/hkhalifa/deen-companion/internal/tasks"
)

// Scheduler manages the cron jobs. Both jobs are disabled by default
// and enabled per schedule through configuration.
type Scheduler struct {
	config     config.Schedules
	taskClient *tasks.Client

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// New creates a scheduler that enqueues work on the given task client.
func New(cfg config.Schedules, taskClient *tasks.Client) *Scheduler {
	return &Scheduler{
		config:     cfg,
		taskClient: taskClient,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the enabled jobs and begins the cron loop. It is a
// no-op when every job is disabled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := 0
	if s.config.QuestionSweepEnabled {
		if _, err := s.cron.AddFunc(s.config.QuestionSweepSchedule, s.runQuestionSweep); err != nil {
			return fmt.Errorf("invalid question sweep schedule %q: %w", s.config.QuestionSweepSchedule, err)
		}
		slog.Info("scheduled question sweep", "schedule", s.config.QuestionSweepSchedule)
		jobs++
	}
	if s.config.HistoryCleanupEnabled {
		if _, err := s.cron.AddFunc(s.config.HistoryCleanupSchedule, s.runHistoryCleanup); err != nil {
			return fmt.Errorf("invalid history cleanup schedule %q: %w", s.config.HistoryCleanupSchedule, err)
		}
		slog.Info("scheduled history cleanup",
			"schedule", s.config.HistoryCleanupSchedule,
			"retention_days", s.config.HistoryRetentionDays)
		jobs++
	}

	if jobs == 0 {
		slog.Info("scheduler disabled, no jobs configured")
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil
	slog.Info("scheduler stopped")
}

// IsRunning returns whether the cron loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRuns returns the upcoming fire times, soonest first.
func (s *Scheduler) NextRuns() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entries := s.cron.Entries()
	times := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		times = append(times, e.Next)
	}
	return times
}

func (s *Scheduler) runQuestionSweep() {
	if _, err := s.taskClient.Add(tasks.AnswerPendingQuestionsTask{}).Save(); err != nil {
		slog.Error("failed to enqueue question sweep", "error", err)
	}
}

func (s *Scheduler) runHistoryCleanup() {
	task := tasks.CleanupSearchHistoryTask{RetentionDays: s.config.HistoryRetentionDays}
	if _, err := s.taskClient.Add(task).Save(); err != nil {
		slog.Error("failed to enqueue history cleanup", "error", err)
	}
}
