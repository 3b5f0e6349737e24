package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"

// Gin context key carrying the raw token between the two pipeline stages.
const rawTokenKey = "raw_token"

// StripToken is the extraction stage of the auth pipeline. It takes the
// credential after the scheme word in the Authorization header and stashes
// it for VerifyToken. The scheme itself is not inspected; a wrong scheme
// surfaces as a verification failure, not a malformed header.
func StripToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		fields := strings.Fields(raw)
		if len(fields) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Malformed token"})
			return
		}

		c.Set(rawTokenKey, fields[1])
		c.Next()
	}
}

// VerifyToken is the verification stage. It consumes the token stashed by
// StripToken and injects the decoded identity into the request context.
// Any verification failure is reported uniformly; auth failures are never
// transient, so there are no retries.
func VerifyToken(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetString(rawTokenKey)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.UserID, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
