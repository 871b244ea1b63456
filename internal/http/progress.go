package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database/progress"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// ProgressController tracks where the user left off reading, one record
// per content type.
type ProgressController struct {
	repo  *progress.Repository
	cache *cache.Cache
}

func NewProgressController(repo *progress.Repository, c *cache.Cache) *ProgressController {
	return &ProgressController{repo: repo, cache: c}
}

// Get returns the user's progress for one content type.
func (pc *ProgressController) Get(c *gin.Context) {
	contentType, err := entities.ParseContentType(c.Param("type"))
	if err != nil {
		respondBadRequest(c, "type must be quran or hadith")
		return
	}

	record, err := pc.repo.Get(GetUserID(c), contentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "reading progress")
			return
		}
		respondInternalError(c, err, "get reading progress")
		return
	}
	c.JSON(http.StatusOK, record)
}

type upsertProgressRequest struct {
	Type                 string              `json:"type"`
	LastRead             entities.ContentRef `json:"lastRead"`
	CompletionPercentage int                 `json:"completionPercentage"`
}

// Upsert creates or replaces the record for the given content type.
func (pc *ProgressController) Upsert(c *gin.Context) {
	var req upsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid progress payload")
		return
	}

	contentType, err := entities.ParseContentType(req.Type)
	if err != nil {
		respondBadRequest(c, "type must be quran or hadith")
		return
	}
	if err := req.LastRead.Validate(contentType); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.CompletionPercentage < 0 || req.CompletionPercentage > 100 {
		respondBadRequest(c, "completionPercentage must be between 0 and 100")
		return
	}

	userID := GetUserID(c)
	record, err := pc.repo.Upsert(&entities.ReadingProgress{
		UserID:               userID,
		Type:                 contentType,
		LastRead:             req.LastRead,
		CompletionPercentage: req.CompletionPercentage,
	})
	if err != nil {
		respondInternalError(c, err, "save reading progress")
		return
	}

	_ = pc.cache.Invalidate(c.Request.Context(), cache.EntityProgress, userID)
	respondCreated(c, record)
}

type updateProgressRequest struct {
	LastRead             *entities.ContentRef `json:"lastRead"`
	CompletionPercentage *int                 `json:"completionPercentage"`
}

// Update partially edits an owned progress record.
func (pc *ProgressController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid progress payload")
		return
	}
	if req.LastRead == nil && req.CompletionPercentage == nil {
		respondBadRequest(c, "no fields to update")
		return
	}
	if req.CompletionPercentage != nil &&
		(*req.CompletionPercentage < 0 || *req.CompletionPercentage > 100) {
		respondBadRequest(c, "completionPercentage must be between 0 and 100")
		return
	}

	existing, err := pc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "reading progress")
			return
		}
		respondInternalError(c, err, "get reading progress")
		return
	}
	userID := GetUserID(c)
	if existing.UserID != userID {
		respondNotFound(c, "reading progress")
		return
	}
	if req.LastRead != nil {
		if err := req.LastRead.Validate(existing.Type); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	updated, err := pc.repo.Update(id, req.LastRead, req.CompletionPercentage)
	if err != nil {
		respondInternalError(c, err, "update reading progress")
		return
	}

	_ = pc.cache.Invalidate(c.Request.Context(), cache.EntityProgress, userID)
	c.JSON(http.StatusOK, updated)
}
