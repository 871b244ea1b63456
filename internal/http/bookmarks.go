package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database/bookmarks"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// BookmarkController manages saved Quran verses and hadiths.
type BookmarkController struct {
	repo  *bookmarks.Repository
	cache *cache.Cache
}

func NewBookmarkController(repo *bookmarks.Repository, c *cache.Cache) *BookmarkController {
	return &BookmarkController{repo: repo, cache: c}
}

// List returns the user's bookmarks, newest first.
func (bc *BookmarkController) List(c *gin.Context) {
	userID := GetUserID(c)

	var cached []entities.Bookmark
	if hit, _ := bc.cache.Get(c.Request.Context(), cache.BookmarksKey(userID), &cached); hit {
		c.JSON(http.StatusOK, gin.H{"bookmarks": cached})
		return
	}

	items, err := bc.repo.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}
	_ = bc.cache.Set(c.Request.Context(), cache.BookmarksKey(userID), items)
	c.JSON(http.StatusOK, gin.H{"bookmarks": items})
}

// ListByType filters by content type.
func (bc *BookmarkController) ListByType(c *gin.Context) {
	contentType, err := entities.ParseContentType(c.Param("type"))
	if err != nil {
		respondBadRequest(c, "type must be quran or hadith")
		return
	}

	items, err := bc.repo.ListByUserAndType(GetUserID(c), contentType)
	if err != nil {
		respondInternalError(c, err, "list bookmarks by type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": items})
}

type createBookmarkRequest struct {
	Type      string              `json:"type"`
	Reference entities.ContentRef `json:"reference"`
	Note      string              `json:"note"`
}

// Create validates the tagged reference against its declared type
// before anything is written.
func (bc *BookmarkController) Create(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid bookmark payload")
		return
	}

	contentType, err := entities.ParseContentType(req.Type)
	if err != nil {
		respondBadRequest(c, "type must be quran or hadith")
		return
	}
	if err := req.Reference.Validate(contentType); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID := GetUserID(c)
	created, err := bc.repo.Create(&entities.Bookmark{
		UserID:    userID,
		Type:      contentType,
		Reference: req.Reference,
		Note:      req.Note,
	})
	if err != nil {
		respondInternalError(c, err, "create bookmark")
		return
	}

	_ = bc.cache.Invalidate(c.Request.Context(), cache.EntityBookmarks, userID)
	respondCreated(c, created)
}

// Get returns one bookmark, enforcing ownership.
func (bc *BookmarkController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmark, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}
	if bookmark.UserID != GetUserID(c) {
		respondNotFound(c, "bookmark")
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

type updateBookmarkRequest struct {
	Note      *string              `json:"note"`
	Reference *entities.ContentRef `json:"reference"`
}

// Update edits the note or reference of an owned bookmark.
func (bc *BookmarkController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid bookmark payload")
		return
	}
	if req.Note == nil && req.Reference == nil {
		respondBadRequest(c, "no fields to update")
		return
	}

	existing, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}
	userID := GetUserID(c)
	if existing.UserID != userID {
		respondNotFound(c, "bookmark")
		return
	}

	updates := map[string]any{}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if req.Reference != nil {
		if err := req.Reference.Validate(existing.Type); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		updates["reference"] = *req.Reference
	}

	updated, err := bc.repo.Update(id, updates)
	if err != nil {
		respondInternalError(c, err, "update bookmark")
		return
	}

	_ = bc.cache.Invalidate(c.Request.Context(), cache.EntityBookmarks, userID)
	c.JSON(http.StatusOK, updated)
}

// Delete removes an owned bookmark. A second delete reports not-found.
func (bc *BookmarkController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}
	userID := GetUserID(c)
	if existing.UserID != userID {
		respondNotFound(c, "bookmark")
		return
	}

	if err := bc.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "delete bookmark")
		return
	}

	_ = bc.cache.Invalidate(c.Request.Context(), cache.EntityBookmarks, userID)
	respondSuccess(c, "bookmark deleted")
}
