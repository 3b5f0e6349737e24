package users

import "time"

// User is an account that can own listings and comments.
// Role is "user" for everyone at registration; admins are promoted out of
// band (there is no self-service path to the admin role).
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
