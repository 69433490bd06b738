package middleware

import (
	"net/http"
	"strings"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AuthUserKey holds the *model.User built from validated claims.
	AuthUserKey = "authUser"
	// AuthTokenKey holds the raw bearer token.
	AuthTokenKey = "authToken"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func userFromClaims(claims *utils.JWTClaims) *model.User {
	return &model.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  model.Role{Name: claims.RoleName, Score: claims.RoleScore},
	}
}

// JWTAuthMiddleware creates a middleware for JWT authentication. Requests
// without a valid bearer token are rejected outright.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, userFromClaims(claims))
		c.Set(AuthTokenKey, tokenString)

		c.Next()
	}
}

// OptionalJWTMiddleware extracts the user when a valid bearer token is
// present and continues either way. Score middleware downstream decides what
// an absent user means.
func OptionalJWTMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := jwtUtil.ValidateToken(tokenString); err == nil {
				c.Set(AuthUserKey, userFromClaims(claims))
				c.Set(AuthTokenKey, tokenString)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the JWT middleware, or
// nil when the request is anonymous.
func CurrentUser(c *gin.Context) *model.User {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}
