package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Redis
		Auth
		Assistant
		Content
		Geo
		Tasks
		Schedules
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Driver string // "sqlite" or "postgres"
		Path   string // sqlite file path
		URL    string // postgres DSN
	}

	Redis struct {
		URL string // empty disables the list cache
	}

	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool

		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration
	}

	Assistant struct {
		GeminiAPIKey string
		Model        string
		Timeout      time.Duration
	}

	Content struct {
		QuranAPIURL  string
		HadithAPIURL string
		HadithAPIKey string
	}

	Geo struct {
		OpenCageAPIKey string
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	Schedules struct {
		QuestionSweepEnabled   bool
		QuestionSweepSchedule  string // cron format
		HistoryCleanupEnabled  bool
		HistoryCleanupSchedule string
		HistoryRetentionDays   int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")

	// Auth defaults
	v.SetDefault("session_secret", "") // auto-generated if empty
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("secure_cookies", true)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Assistant defaults
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash-001")
	v.SetDefault("assistant_timeout", "30s")

	// Content API defaults
	v.SetDefault("quran_api_url", "https://api.alquran.cloud/v1")
	v.SetDefault("hadith_api_url", "https://hadithapi.com/api")
	v.SetDefault("hadith_api_key", "")
	v.SetDefault("opencage_api_key", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Background sweeps are opt-in
	v.SetDefault("question_sweep_enabled", false)
	v.SetDefault("question_sweep_schedule", "*/15 * * * *")
	v.SetDefault("history_cleanup_enabled", false)
	v.SetDefault("history_cleanup_schedule", "0 3 * * *")
	v.SetDefault("history_retention_days", 90)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
			URL:    v.GetString("DATABASE_URL"),
		},
		Redis: Redis{
			URL: v.GetString("REDIS_URL"),
		},
		Auth: Auth{
			SessionSecret:    v.GetString("SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Assistant: Assistant{
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			Model:        v.GetString("GEMINI_MODEL"),
			Timeout:      v.GetDuration("ASSISTANT_TIMEOUT"),
		},
		Content: Content{
			QuranAPIURL:  v.GetString("QURAN_API_URL"),
			HadithAPIURL: v.GetString("HADITH_API_URL"),
			HadithAPIKey: v.GetString("HADITH_API_KEY"),
		},
		Geo: Geo{
			OpenCageAPIKey: v.GetString("OPENCAGE_API_KEY"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Schedules: Schedules{
			QuestionSweepEnabled:   v.GetBool("QUESTION_SWEEP_ENABLED"),
			QuestionSweepSchedule:  v.GetString("QUESTION_SWEEP_SCHEDULE"),
			HistoryCleanupEnabled:  v.GetBool("HISTORY_CLEANUP_ENABLED"),
			HistoryCleanupSchedule: v.GetString("HISTORY_CLEANUP_SCHEDULE"),
			HistoryRetentionDays:   v.GetInt("HISTORY_RETENTION_DAYS"),
		},
	}
}
