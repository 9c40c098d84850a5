package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"travel_fleet/internal/model"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a request on the authenticated identity holding one of
// the allowed roles. JWTAuthMiddleware must run first.
func RequireRoles(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		for _, allowed := range allowedRoles {
			if user.Role == allowed {
				c.Next()
				return
			}
		}

		names := make([]string, len(allowedRoles))
		for i, r := range allowedRoles {
			names[i] = string(r)
		}
		utils.AbortError(c, http.StatusForbidden, fmt.Sprintf(
			"Access denied. Required role(s): %s. Your role: %s",
			strings.Join(names, ", "), user.Role))
	}
}

// RequireAdmin allows admins only
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}

// RequireOwner allows vehicle owners only
func RequireOwner() gin.HandlerFunc {
	return RequireRoles(model.RoleOwner)
}

// RequireAdminOrOwner allows either admins or vehicle owners
func RequireAdminOrOwner() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin, model.RoleOwner)
}

// RequireSelfOrAdmin allows the request when the authenticated user is an
// admin or when the named route parameter is their own id. Ids compare by
// canonical hex form.
func RequireSelfOrAdmin(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		if user.Role == model.RoleAdmin || user.ID.Hex() == c.Param(paramName) {
			c.Next()
			return
		}

		utils.AbortError(c, http.StatusForbidden,
			"Access denied. You can only access your own resources or need admin privileges")
	}
}
