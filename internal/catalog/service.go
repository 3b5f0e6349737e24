package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("listing not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("not authorized")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service owns listing and comment operations.
//
// Ownership invariants:
//   - Update and Delete require the actor to be the listing owner.
//   - EditComment and DeleteComment require the actor to be the comment author.
//   - SetRating deliberately has no ownership check: the rating is a shared
//     scalar any authenticated user may overwrite (public-vote semantics).
type Service struct {
	repo Repository

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Listing, error) {
	if !kind.Valid() {
		return nil, ErrInvalidArgument
	}
	return s.repo.List(ctx, kind)
}

func (s *Service) Get(ctx context.Context, kind Kind, id string) (Listing, error) {
	if !kind.Valid() || id == "" {
		return Listing{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, kind, id)
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
}

func (s *Service) Create(ctx context.Context, kind Kind, ownerID string, req CreateRequest) (Listing, error) {
	if !kind.Valid() || ownerID == "" {
		return Listing{}, ErrInvalidArgument
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return Listing{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	l := Listing{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
		Image:       req.Image,
		Rating:      req.Rating,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, l)
}

// Update applies a partial update after the ownership guard passes.
func (s *Service) Update(ctx context.Context, kind Kind, actorID, id string, upd ListingUpdate) (Listing, error) {
	if !kind.Valid() || actorID == "" || id == "" {
		return Listing{}, ErrInvalidArgument
	}

	l, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return Listing{}, err
	}
	if l.OwnerID != actorID {
		return Listing{}, ErrForbidden
	}

	upd.apply(&l)
	if strings.TrimSpace(l.Name) == "" || strings.TrimSpace(l.Location) == "" {
		return Listing{}, ErrInvalidArgument
	}
	l.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, l)
}

func (s *Service) Delete(ctx context.Context, kind Kind, actorID, id string) error {
	if !kind.Valid() || actorID == "" || id == "" {
		return ErrInvalidArgument
	}

	l, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if l.OwnerID != actorID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, kind, id)
}

// AdminDelete removes a listing of any kind regardless of owner.
// Callers must have passed the admin role check.
func (s *Service) AdminDelete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	l, err := s.repo.GetAny(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, l.Kind, l.ID)
}

// SetRating overwrites the listing rating. No ownership check; see the
// service invariants above.
func (s *Service) SetRating(ctx context.Context, kind Kind, id string, rating float64) (Listing, error) {
	if !kind.Valid() || id == "" {
		return Listing{}, ErrInvalidArgument
	}
	if rating < 1 || rating > 5 {
		return Listing{}, ErrInvalidArgument
	}

	l, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return Listing{}, err
	}
	l.Rating = rating
	l.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, l)
}

func (s *Service) AddComment(ctx context.Context, kind Kind, authorID, listingID, text string) (Comment, error) {
	if !kind.Valid() || authorID == "" || listingID == "" {
		return Comment{}, ErrInvalidArgument
	}
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrInvalidArgument
	}

	if _, err := s.repo.Get(ctx, kind, listingID); err != nil {
		return Comment{}, err
	}

	now := s.clock().UTC()
	cm := Comment{
		ID:        uuid.NewString(),
		ListingID: listingID,
		AuthorID:  authorID,
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.AddComment(ctx, cm)
}

func (s *Service) EditComment(ctx context.Context, kind Kind, actorID, listingID, commentID, text string) (Comment, error) {
	if !kind.Valid() || actorID == "" || listingID == "" || commentID == "" {
		return Comment{}, ErrInvalidArgument
	}
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrInvalidArgument
	}

	if _, err := s.repo.Get(ctx, kind, listingID); err != nil {
		return Comment{}, err
	}

	cm, err := s.repo.GetComment(ctx, listingID, commentID)
	if err != nil {
		return Comment{}, err
	}
	if cm.AuthorID != actorID {
		return Comment{}, ErrForbidden
	}

	cm.Text = strings.TrimSpace(text)
	cm.UpdatedAt = s.clock().UTC()
	return s.repo.UpdateComment(ctx, cm)
}

func (s *Service) DeleteComment(ctx context.Context, kind Kind, actorID, listingID, commentID string) error {
	if !kind.Valid() || actorID == "" || listingID == "" || commentID == "" {
		return ErrInvalidArgument
	}

	if _, err := s.repo.Get(ctx, kind, listingID); err != nil {
		return err
	}

	cm, err := s.repo.GetComment(ctx, listingID, commentID)
	if err != nil {
		return err
	}
	if cm.AuthorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteComment(ctx, listingID, commentID)
}
