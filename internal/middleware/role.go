package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalapp/internal/domain"
	"rentalapp/internal/pkg/response"
)

// RequireRole ensures the authenticated user has the given role.
// Admins pass every role check.
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		r := domain.UserRole(role.(string))
		if r != requiredRole && r != domain.RoleAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireHost guards the host listing management endpoints.
func RequireHost() gin.HandlerFunc {
	return RequireRole(domain.RoleHost)
}
