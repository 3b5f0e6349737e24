package catalog

import "context"

// Repository abstracts listing and comment persistence.
// Implementations: Postgres for the service, MemoryRepo for tests.
//
// Get and List hydrate the owner summary and comment slice; mutating calls
// operate on the bare row. Writes are last-write-wins per row.
type Repository interface {
	List(ctx context.Context, kind Kind) ([]Listing, error)
	Get(ctx context.Context, kind Kind, id string) (Listing, error)
	// GetAny fetches a listing regardless of kind. Admin paths only.
	GetAny(ctx context.Context, id string) (Listing, error)
	Create(ctx context.Context, l Listing) (Listing, error)
	Update(ctx context.Context, l Listing) (Listing, error)
	Delete(ctx context.Context, kind Kind, id string) error

	GetComment(ctx context.Context, listingID, commentID string) (Comment, error)
	AddComment(ctx context.Context, cm Comment) (Comment, error)
	UpdateComment(ctx context.Context, cm Comment) (Comment, error)
	DeleteComment(ctx context.Context, listingID, commentID string) error
}
