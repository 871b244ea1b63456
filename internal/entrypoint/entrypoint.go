package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/assistant"
	"github.com/hkhalifa/deen-companion/internal/auth"
	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/config"
	"github.com/hkhalifa/deen-companion/internal/content/hadith"
	"github.com/hkhalifa/deen-companion/internal/content/quran"
	"github.com/hkhalifa/deen-companion/internal/database"
	"github.com/hkhalifa/deen-companion/internal/database/bookmarks"
	"github.com/hkhalifa/deen-companion/internal/database/crm"
	"github.com/hkhalifa/deen-companion/internal/database/prayersettings"
	"github.com/hkhalifa/deen-companion/internal/database/progress"
	"github.com/hkhalifa/deen-companion/internal/database/questions"
	"github.com/hkhalifa/deen-companion/internal/database/searchhistory"
	"github.com/hkhalifa/deen-companion/internal/database/users"
	"github.com/hkhalifa/deen-companion/internal/geo"
	http_controllers "github.com/hkhalifa/deen-companion/internal/http"
	"github.com/hkhalifa/deen-companion/internal/scheduler"
	"github.com/hkhalifa/deen-companion/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		slog.Info("starting server", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

// Run wires every component together and serves.
func Run(cfg *config.Config, version string) {
	slog.Info("starting deen-companion", "version", version)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		slog.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := db.SQLDB()
	if err != nil {
		slog.Error("database handle unavailable", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := users.NewRepository(db.DB)
	bookmarkRepo := bookmarks.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	settingsRepo := prayersettings.NewRepository(db.DB)
	questionRepo := questions.NewRepository(db.DB)
	historyRepo := searchhistory.NewRepository(db.DB)
	crmRepo := crm.NewRepository(db.DB)

	listCache, err := cache.New(cfg.Redis.URL)
	if err != nil {
		slog.Error("redis cache initialization failed", "error", err)
		os.Exit(1)
	}
	defer listCache.Close()
	if listCache.Enabled() {
		slog.Info("redis list cache enabled")
	}

	// Sessions need a signing secret; generate one per process when the
	// operator has not pinned it.
	sessionSecret := cfg.Auth.SessionSecret
	if sessionSecret == "" {
		sessionSecret, err = auth.GenerateSessionSecret()
		if err != nil {
			slog.Error("session secret generation failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("SESSION_SECRET not set, sessions will not survive restarts")
	}
	csrfSecret, err := hex.DecodeString(sessionSecret)
	if err != nil {
		csrfSecret = []byte(sessionSecret)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
	if err != nil {
		slog.Error("session manager initialization failed", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(userRepo, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)
	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})

	// External clients
	quranClient := quran.NewClient(cfg.Content.QuranAPIURL)
	hadithClient := hadith.NewClient(cfg.Content.HadithAPIURL, cfg.Content.HadithAPIKey)
	if cfg.Content.HadithAPIKey == "" {
		slog.Warn("HADITH_API_KEY not set, hadith endpoints will be unavailable")
	}
	var geoClient *geo.Client
	if cfg.Geo.OpenCageAPIKey != "" {
		geoClient = geo.NewClient("", cfg.Geo.OpenCageAPIKey)
	} else {
		slog.Warn("OPENCAGE_API_KEY not set, city lookups disabled")
	}
	aiClient := assistant.NewGeminiClient("", cfg.Assistant.GeminiAPIKey, cfg.Assistant.Model, cfg.Assistant.Timeout)
	if cfg.Assistant.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, assistant endpoints will be unavailable")
	}

	// Background task queue and schedules
	var (
		taskClient *tasks.Client
		sched      *scheduler.Scheduler
	)
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			slog.Error("task queue initialization failed", "error", err)
			os.Exit(1)
		}
		taskClient.Register(
			tasks.NewAnswerQuestionQueue(questionRepo, aiClient),
			tasks.NewAnswerPendingQuestionsQueue(questionRepo, taskClient),
			tasks.NewCleanupSearchHistoryQueue(historyRepo),
		)

		taskCtx, cancelTasks := context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
		defer cancelTasks()

		sched = scheduler.New(cfg.Schedules, taskClient)
		if err := sched.Start(taskCtx); err != nil {
			slog.Error("scheduler start failed", "error", err)
			os.Exit(1)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database: db,
		Cache:    listCache,

		Users:          userRepo,
		Bookmarks:      bookmarkRepo,
		Progress:       progressRepo,
		PrayerSettings: settingsRepo,
		Questions:      questionRepo,
		SearchHistory:  historyRepo,
		CRM:            crmRepo,

		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,

		Quran:     quranClient,
		Hadith:    hadithClient,
		Geo:       geoClient,
		Assistant: aiClient,

		TaskClient: taskClient,

		Version: version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil {
			if !taskClient.Stop(ctx) {
				slog.Warn("task queue did not drain before timeout")
			}
			taskClient.Close()
		}
	})
}
