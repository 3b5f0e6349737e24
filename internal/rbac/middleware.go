package rbac

import (
	"net/http"

	"poi-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAdmin restricts a route group to identities carrying the admin role.
// It assumes auth.VerifyToken already ran; a request without an identity is
// rejected the same way as one with the wrong role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(auth.Role(c.Request.Context())) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admins only"})
			return
		}
		c.Next()
	}
}
