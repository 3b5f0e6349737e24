package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// UserID must be present in every token; Role is optional and only
// meaningful on elevated routes (see internal/rbac).
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}
