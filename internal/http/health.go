package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database"
)

// HealthResponse reports liveness per dependency. Status is "healthy"
// only when every required check passes; a disabled cache does not
// count against it.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	cache   *cache.Cache
	version string
}

func NewHealthController(db *database.Database, c *cache.Cache, version string) *HealthController {
	return &HealthController{db: db, cache: c, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{
		"database": h.checkDatabase(),
		"cache":    h.checkCache(c),
	}

	status := "healthy"
	code := http.StatusOK
	if checks["database"] != "ok" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.IndentedJSON(code, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

func (h *HealthController) checkDatabase() string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.SQLDB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// checkCache is informational; Redis being down degrades performance
// but does not make the service unhealthy.
func (h *HealthController) checkCache(c *gin.Context) string {
	if h.cache == nil || !h.cache.Enabled() {
		return "disabled"
	}
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
