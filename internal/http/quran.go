package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/content/quran"
	"github.com/hkhalifa/deen-companion/internal/database/searchhistory"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// QuranController proxies the AlQuran.cloud catalogue. Reads are public;
// searches made by a signed-in user are recorded in their history.
type QuranController struct {
	quran   *quran.Client
	history *searchhistory.Repository
	cache   *cache.Cache
}

func NewQuranController(client *quran.Client, history *searchhistory.Repository, c *cache.Cache) *QuranController {
	return &QuranController{quran: client, history: history, cache: c}
}

func (qc *QuranController) ListSurahs(c *gin.Context) {
	surahs, err := qc.quran.ListSurahs(c.Request.Context())
	if err != nil {
		respondBadGateway(c, err, "list surahs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"surahs": surahs})
}

func (qc *QuranController) GetSurah(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	edition := quran.EditionForLanguage(c.Query("language"))
	detail, err := qc.quran.GetSurah(c.Request.Context(), number, edition)
	if err != nil {
		if errors.Is(err, quran.ErrNotFound) {
			respondNotFound(c, "surah")
			return
		}
		respondBadGateway(c, err, "get surah")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (qc *QuranController) GetAyah(c *gin.Context) {
	surah, ok := parseIntParam(c, "surah")
	if !ok {
		return
	}
	ayah, ok := parseIntParam(c, "ayah")
	if !ok {
		return
	}

	edition := quran.EditionForLanguage(c.Query("language"))
	reciter := c.Query("reciter")
	detail, err := qc.quran.GetAyah(c.Request.Context(), surah, ayah, edition, reciter)
	if err != nil {
		if errors.Is(err, quran.ErrNotFound) {
			respondNotFound(c, "ayah")
			return
		}
		respondBadGateway(c, err, "get ayah")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (qc *QuranController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	edition := quran.EditionForLanguage(c.Query("language"))
	result, err := qc.quran.Search(c.Request.Context(), query, edition)
	if err != nil {
		if errors.Is(err, quran.ErrNotFound) {
			c.JSON(http.StatusOK, &quran.SearchResult{Matches: []quran.SearchMatch{}})
			return
		}
		respondBadGateway(c, err, "search quran")
		return
	}

	if userID := GetUserID(c); userID != 0 && qc.history != nil {
		if _, err := qc.history.Create(&entities.SearchHistoryItem{UserID: userID, Query: query}); err != nil {
			slog.Error("record search history", "error", err)
		} else {
			_ = qc.cache.Invalidate(c.Request.Context(), cache.EntityHistory, userID)
		}
	}
	c.JSON(http.StatusOK, result)
}
