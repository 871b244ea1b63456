package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hkhalifa/deen-companion/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeaders())
	router.Use(requestID())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	api := router.Group("/api")

	// Liveness
	health := NewHealthController(cfg.Database, cfg.Cache, cfg.Version)
	api.GET("/health", health.Status)
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if len(cfg.CSRFSecret) > 0 {
		api.GET("/csrf", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"token": auth.CSRFToken(c)})
		})
	}

	authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter)
	authController.RegisterRoutes(api)

	// Public reference content
	quranController := NewQuranController(cfg.Quran, cfg.SearchHistory, cfg.Cache)
	api.GET("/quran/surahs", quranController.ListSurahs)
	api.GET("/quran/surahs/:number", quranController.GetSurah)
	api.GET("/quran/ayah/:surah/:ayah", quranController.GetAyah)
	api.GET("/quran/search", quranController.Search)

	hadithController := NewHadithController(cfg.Hadith)
	api.GET("/hadith/collections", hadithController.ListCollections)
	api.GET("/hadith/:collection", hadithController.ListHadiths)

	prayerController := NewPrayerController(cfg.PrayerSettings, cfg.Geo)
	api.GET("/prayer-times", prayerController.GetPrayerTimes)
	api.GET("/qibla", prayerController.GetQibla)

	calendarController := NewCalendarController()
	api.GET("/calendar/hijri", calendarController.GetHijriDate)

	// Everything below requires a session
	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	authController.RegisterProtectedRoutes(protected)

	userController := NewUserController(cfg.AuthService, cfg.Users)
	protected.GET("/user", userController.Current)
	protected.PUT("/user", userController.Update)

	bookmarkController := NewBookmarkController(cfg.Bookmarks, cfg.Cache)
	protected.GET("/bookmarks", bookmarkController.List)
	protected.GET("/bookmarks/type/:type", bookmarkController.ListByType)
	protected.POST("/bookmarks", bookmarkController.Create)
	protected.GET("/bookmarks/:id", bookmarkController.Get)
	protected.PATCH("/bookmarks/:id", bookmarkController.Update)
	protected.DELETE("/bookmarks/:id", bookmarkController.Delete)

	progressController := NewProgressController(cfg.Progress, cfg.Cache)
	protected.GET("/reading-progress/:type", progressController.Get)
	protected.POST("/reading-progress", progressController.Upsert)
	protected.PATCH("/reading-progress/:id", progressController.Update)

	settingsController := NewPrayerSettingsController(cfg.PrayerSettings)
	protected.GET("/prayer-settings", settingsController.Get)
	protected.PUT("/prayer-settings", settingsController.Put)

	questionController := NewQuestionController(cfg.Questions, cfg.Assistant, cfg.TaskClient, cfg.Cache)
	protected.GET("/questions", questionController.List)
	protected.GET("/questions/answered", questionController.ListAnswered)
	protected.GET("/questions/:id", questionController.Get)
	protected.POST("/questions", questionController.Create)
	protected.PATCH("/questions/:id", questionController.Answer)
	protected.POST("/ask", questionController.Ask)

	assistantController := NewAssistantController(cfg.Assistant, cfg.Quran)
	protected.POST("/quran/explain", assistantController.ExplainVerse)
	protected.POST("/explain", assistantController.ExplainConcept)
	protected.POST("/scholar", assistantController.ScholarBio)

	historyController := NewSearchHistoryController(cfg.SearchHistory, cfg.Cache)
	protected.GET("/search-history", historyController.List)
	protected.POST("/search-history", historyController.Create)
	protected.DELETE("/search-history", historyController.Clear)

	crmController := NewCRMController(cfg.CRM, cfg.Cache)
	protected.GET("/clients", crmController.ListClients)
	protected.POST("/clients", crmController.CreateClient)
	protected.GET("/clients/:id", crmController.GetClient)
	protected.PATCH("/clients/:id", crmController.UpdateClient)
	protected.DELETE("/clients/:id", crmController.DeleteClient)
	protected.GET("/clients/:id/meetings", crmController.ListClientMeetings)
	protected.GET("/meetings", crmController.ListMeetings)
	protected.POST("/meetings", crmController.CreateMeeting)
	protected.PATCH("/meetings/:id", crmController.UpdateMeeting)
	protected.DELETE("/meetings/:id", crmController.DeleteMeeting)
	protected.GET("/tasks", crmController.ListTasks)
	protected.POST("/tasks", crmController.CreateTask)
	protected.PATCH("/tasks/:id", crmController.UpdateTask)
	protected.PATCH("/tasks/:id/complete", crmController.CompleteTask)
	protected.DELETE("/tasks/:id", crmController.DeleteTask)
	protected.GET("/reports/summary", crmController.GetSummary)

	return router
}

// requestID tags every request for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
