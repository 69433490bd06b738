package handler

import (
	"log"
	"net/http"

	"github.com/hasan-mia/the-x-tribune-server/internal/cache"
	"github.com/hasan-mia/the-x-tribune-server/internal/middleware"
	"github.com/hasan-mia/the-x-tribune-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	users    service.UserService
	profiles *cache.ProfileCache // may be nil when redis is not configured
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(users service.UserService, profiles *cache.ProfileCache) *ProfileHandler {
	return &ProfileHandler{users: users, profiles: profiles}
}

// Me returns the profile for the bearer token, consulting the cache first.
func (h *ProfileHandler) Me(c *gin.Context) {
	authUser := middleware.CurrentUser(c)
	tokenVal, _ := c.Get(middleware.AuthTokenKey)
	token, _ := tokenVal.(string)

	if h.profiles != nil && token != "" {
		if cached, err := h.profiles.Get(c.Request.Context(), token); err == nil && cached != nil {
			c.JSON(http.StatusOK, gin.H{"user": cached})
			return
		}
	}

	user, err := h.users.Get(c.Request.Context(), authUser.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if h.profiles != nil && token != "" {
		if err := h.profiles.Set(c.Request.Context(), token, user); err != nil {
			log.Printf("WARN: failed to cache profile for user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe updates the caller's own profile fields.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	authUser := middleware.CurrentUser(c)

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Avatar    string `json:"avatar"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), authUser.ID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// The cached profile is stale now.
	tokenVal, _ := c.Get(middleware.AuthTokenKey)
	if token, ok := tokenVal.(string); ok && h.profiles != nil {
		if err := h.profiles.Invalidate(c.Request.Context(), token); err != nil {
			log.Printf("WARN: failed to invalidate cached profile for user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RegisterProfileRoutes registers the profile routes behind authentication.
func (h *ProfileHandler) RegisterProfileRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/me", authMW, h.Me)
	rg.PUT("/me", authMW, h.UpdateMe)
}
