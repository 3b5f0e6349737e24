package catalog

import "time"

// Kind discriminates the two listing flavors. The HTTP surface exposes them
// as separate collections, but they share one schema and one code path.
type Kind string

const (
	KindPlace      Kind = "place"
	KindRestaurant Kind = "restaurant"
)

func (k Kind) Valid() bool {
	return k == KindPlace || k == KindRestaurant
}

// Label is the user-facing name used in response messages.
func (k Kind) Label() string {
	switch k {
	case KindRestaurant:
		return "Restaurant"
	default:
		return "Place"
	}
}

// Listing is a point of interest created and owned by a user.
// Ownership invariant: only the owner may update or delete a listing.
// Rating is a plain scalar any authenticated user may overwrite.
type Listing struct {
	ID          string  `json:"id" db:"id"`
	Kind        Kind    `json:"kind" db:"kind"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description,omitempty" db:"description"`
	Location    string  `json:"location" db:"location"`
	Image       string  `json:"image,omitempty" db:"image"`
	Rating      float64 `json:"rating" db:"rating"`

	OwnerID string        `json:"owner_id" db:"owner_id"`
	Owner   *OwnerSummary `json:"owner,omitempty"`

	Comments []Comment `json:"comments"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerSummary is the slice of the owning account exposed on reads.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Comment is attached to exactly one listing.
// Ownership invariant: only the author may edit or delete a comment.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ListingID string    `json:"listing_id" db:"listing_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ListingUpdate is a partial update; nil fields keep their current value.
type ListingUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating"`
}

func (u ListingUpdate) apply(l *Listing) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Location != nil {
		l.Location = *u.Location
	}
	if u.Image != nil {
		l.Image = *u.Image
	}
	if u.Rating != nil {
		l.Rating = *u.Rating
	}
}
