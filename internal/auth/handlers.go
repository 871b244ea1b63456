package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

// Controller exposes the authentication endpoints.
type Controller struct {
	service     *Service
	sessions    *SessionManager
	rateLimiter *RateLimiter
}

func NewController(service *Service, sessions *SessionManager, rateLimiter *RateLimiter) *Controller {
	return &Controller{
		service:     service,
		sessions:    sessions,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes attaches the public auth endpoints to the given group.
func (ctrl *Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", ctrl.register)
	r.POST("/login", ctrl.login)
}

// RegisterProtectedRoutes attaches the endpoints that need a session.
func (ctrl *Controller) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/logout", ctrl.logout)
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (ctrl *Controller) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	user, err := ctrl.service.Register(RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
		case errors.Is(err, ErrUsernameInvalid), errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		slog.Error("session creation failed after registration", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, SanitizeUser(user))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *Controller) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	limitKey := c.ClientIP() + ":" + req.Username
	if ctrl.rateLimiter != nil && !ctrl.rateLimiter.Allow(limitKey) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
		return
	}

	user, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if ctrl.rateLimiter != nil {
			ctrl.rateLimiter.RecordFailure(limitKey)
		}
		switch {
		case errors.Is(err, ErrAccountLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "account temporarily locked"})
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		default:
			slog.Error("login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	if ctrl.rateLimiter != nil {
		ctrl.rateLimiter.RecordSuccess(limitKey)
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		slog.Error("session creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, SanitizeUser(user))
}

func (ctrl *Controller) logout(c *gin.Context) {
	if err := ctrl.sessions.DestroySession(c.Request); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// SanitizeUser strips credential fields before returning a user over the API.
func SanitizeUser(user *entities.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"name":        user.Name,
		"location":    user.Location,
		"language":    user.Language,
		"theme":       user.Theme,
		"preferences": user.Preferences,
		"lastLoginAt": user.LastLoginAt,
		"createdAt":   user.CreatedAt,
	}
}
