package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database/searchhistory"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// SearchHistoryController exposes the signed-in user's past searches.
type SearchHistoryController struct {
	repo  *searchhistory.Repository
	cache *cache.Cache
}

func NewSearchHistoryController(repo *searchhistory.Repository, c *cache.Cache) *SearchHistoryController {
	return &SearchHistoryController{repo: repo, cache: c}
}

func (sc *SearchHistoryController) List(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.HistoryKey(userID)

	var cached []entities.SearchHistoryItem
	if found, _ := sc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, gin.H{"history": cached})
		return
	}

	items, err := sc.repo.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list search history")
		return
	}
	_ = sc.cache.Set(c.Request.Context(), key, items)
	c.JSON(http.StatusOK, gin.H{"history": items})
}

type searchHistoryRequest struct {
	Query string `json:"query" binding:"required"`
}

func (sc *SearchHistoryController) Create(c *gin.Context) {
	var req searchHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "query is required")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondBadRequest(c, "query is required")
		return
	}

	userID := GetUserID(c)
	item, err := sc.repo.Create(&entities.SearchHistoryItem{UserID: userID, Query: query})
	if err != nil {
		respondInternalError(c, err, "record search")
		return
	}

	_ = sc.cache.Invalidate(c.Request.Context(), cache.EntityHistory, userID)
	respondCreated(c, item)
}

func (sc *SearchHistoryController) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if err := sc.repo.Clear(userID); err != nil {
		respondInternalError(c, err, "clear search history")
		return
	}

	_ = sc.cache.Invalidate(c.Request.Context(), cache.EntityHistory, userID)
	respondSuccess(c, "search history cleared")
}
