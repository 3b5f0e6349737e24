package users

import "context"

// Repository abstracts account persistence.
// Implementations: Postgres for the service, MemoryRepo for tests.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (User, error)
	List(ctx context.Context) ([]User, error)
}
