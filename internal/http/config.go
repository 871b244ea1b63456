package http

import (
	"github.com/hkhalifa/deen-companion/internal/assistant"
	"github.com/hkhalifa/deen-companion/internal/auth"
	"github.com/hkhalifa/deen-companion/internal/cache"
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
	"github.com/hkhalifa/deen-companion/internal/tasks"
)

// RouterConfig contains all dependencies needed to create the HTTP
// router.
type RouterConfig struct {
	Database *database.Database
	Cache    *cache.Cache

	// Repositories
	Users          *users.Repository
	Bookmarks      *bookmarks.Repository
	Progress       *progress.Repository
	PrayerSettings *prayersettings.Repository
	Questions      *questions.Repository
	SearchHistory  *searchhistory.Repository
	CRM            *crm.Repository

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	RateLimiter    *auth.RateLimiter
	CSRFSecret     []byte
	SecureCookies  bool

	// External clients
	Quran     *quran.Client
	Hadith    *hadith.Client
	Geo       *geo.Client
	Assistant assistant.Client

	// Background work
	TaskClient *tasks.Client

	Version string
}
