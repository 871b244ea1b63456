package tasks

import "time"

// Config tunes the sidecar queue. Retry counts, backoff and retention
// are per-queue concerns set in each task's QueueConfig; these knobs
// cover the client itself.
type Config struct {
	// Workers is how many tasks run concurrently. Question answering
	// is rate limited upstream, so keep this small.
	Workers int

	// ReleaseAfter is how long a claimed task may run before it is
	// handed back to the queue, covering worker crashes mid-answer.
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are swept from the
	// sidecar database.
	CleanupInterval time.Duration
}

// DefaultConfig returns the settings used when the environment does
// not override them.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
