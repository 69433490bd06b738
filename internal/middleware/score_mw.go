package middleware

import (
	"net/http"
	"strings"

	"github.com/hasan-mia/the-x-tribune-server/internal/guard"
	"github.com/hasan-mia/the-x-tribune-server/internal/permission"

	"github.com/gin-gonic/gin"
)

// ScoreMiddleware gates a route group on a minimum role score, mirroring the
// client-side guards: anonymous requests go to login, authenticated but
// under-privileged ones to the fallback. Browser clients get the redirect;
// API clients get 401/403 JSON.
func ScoreMiddleware(minScore int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if permission.NewEvaluator(user).HasPermission(minScore) {
			c.Next()
			return
		}

		wantsHTML := strings.Contains(c.GetHeader("Accept"), "text/html")
		if user == nil {
			if wantsHTML {
				c.Redirect(http.StatusSeeOther, guard.DefaultLoginPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if wantsHTML {
			c.Redirect(http.StatusSeeOther, guard.DefaultFallbackPath)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// AdminMiddleware checks for administrative capability
func AdminMiddleware() gin.HandlerFunc {
	return ScoreMiddleware(permission.ScoreAdmin)
}

// SuperAdminMiddleware checks for super-administrative capability
func SuperAdminMiddleware() gin.HandlerFunc {
	return ScoreMiddleware(permission.ScoreSuperAdmin)
}

// UserMiddleware admits any authenticated user
func UserMiddleware() gin.HandlerFunc {
	return ScoreMiddleware(0)
}
