package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/auth"
	"github.com/hkhalifa/deen-companion/internal/database/users"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// UserController serves the current user's profile.
type UserController struct {
	auth  *auth.Service
	users *users.Repository
}

func NewUserController(authService *auth.Service, repo *users.Repository) *UserController {
	return &UserController{auth: authService, users: repo}
}

// Current returns the authenticated user without credential fields.
func (uc *UserController) Current(c *gin.Context) {
	user, err := uc.auth.GetUserByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "load current user")
		return
	}
	c.JSON(http.StatusOK, auth.SanitizeUser(user))
}

type profileUpdateRequest struct {
	Name        *string               `json:"name"`
	Email       *string               `json:"email"`
	Language    *string               `json:"language"`
	Theme       *string               `json:"theme"`
	Location    *entities.Location    `json:"location"`
	Preferences *entities.Preferences `json:"preferences"`
}

// Update applies a partial profile update. Absent fields are left
// untouched; preferences always use the nested form.
func (uc *UserController) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid profile payload")
		return
	}
	if req.Name == nil && req.Email == nil && req.Language == nil &&
		req.Theme == nil && req.Location == nil && req.Preferences == nil {
		respondBadRequest(c, "no fields to update")
		return
	}

	updated, err := uc.users.UpdateProfile(GetUserID(c), users.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Language:    req.Language,
		Theme:       req.Theme,
		Location:    req.Location,
		Preferences: req.Preferences,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, auth.SanitizeUser(updated))
}
