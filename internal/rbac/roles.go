package rbac

// Role names. Keep these stable; they are embedded in issued tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
