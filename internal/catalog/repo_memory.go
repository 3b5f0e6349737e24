package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is a simple in-memory repository useful for tests and early
// development. Not intended for production.
type MemoryRepo struct {
	mu       sync.RWMutex
	listings map[string]Listing
	comments map[string]Comment // keyed by comment id

	// Owners lets tests control the owner summaries returned on reads.
	Owners map[string]OwnerSummary
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings: make(map[string]Listing),
		comments: make(map[string]Comment),
		Owners:   make(map[string]OwnerSummary),
	}
}

func (r *MemoryRepo) List(ctx context.Context, kind Kind) ([]Listing, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Listing
	for _, l := range r.listings {
		if l.Kind != kind {
			continue
		}
		out = append(out, r.hydrate(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, kind Kind, id string) (Listing, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok || l.Kind != kind {
		return Listing{}, ErrNotFound
	}
	return r.hydrate(l), nil
}

func (r *MemoryRepo) GetAny(ctx context.Context, id string) (Listing, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return r.hydrate(l), nil
}

func (r *MemoryRepo) Create(ctx context.Context, l Listing) (Listing, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings[l.ID] = l
	return r.hydrate(l), nil
}

func (r *MemoryRepo) Update(ctx context.Context, l Listing) (Listing, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.listings[l.ID]
	if !ok || existing.Kind != l.Kind {
		return Listing{}, ErrNotFound
	}
	r.listings[l.ID] = l
	return r.hydrate(l), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, kind Kind, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok || l.Kind != kind {
		return ErrNotFound
	}
	delete(r.listings, id)
	for cid, cm := range r.comments {
		if cm.ListingID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *MemoryRepo) GetComment(ctx context.Context, listingID, commentID string) (Comment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	cm, ok := r.comments[commentID]
	if !ok || cm.ListingID != listingID {
		return Comment{}, ErrCommentNotFound
	}
	return cm, nil
}

func (r *MemoryRepo) AddComment(ctx context.Context, cm Comment) (Comment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[cm.ListingID]; !ok {
		return Comment{}, ErrNotFound
	}
	r.comments[cm.ID] = cm
	r.touchListing(cm.ListingID, cm.UpdatedAt)
	return cm, nil
}

func (r *MemoryRepo) UpdateComment(ctx context.Context, cm Comment) (Comment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.comments[cm.ID]
	if !ok || existing.ListingID != cm.ListingID {
		return Comment{}, ErrCommentNotFound
	}
	r.comments[cm.ID] = cm
	r.touchListing(cm.ListingID, cm.UpdatedAt)
	return cm, nil
}

func (r *MemoryRepo) DeleteComment(ctx context.Context, listingID, commentID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	cm, ok := r.comments[commentID]
	if !ok || cm.ListingID != listingID {
		return ErrCommentNotFound
	}
	delete(r.comments, commentID)
	r.touchListing(listingID, time.Now().UTC())
	return nil
}

// touchListing mirrors the transactional updated_at bump the Postgres
// repository applies on comment mutations. Callers must hold the write lock.
func (r *MemoryRepo) touchListing(listingID string, at time.Time) {
	if l, ok := r.listings[listingID]; ok {
		l.UpdatedAt = at
		r.listings[listingID] = l
	}
}

// hydrate attaches comments and the owner summary the way the Postgres
// repository does on reads. Callers must hold at least a read lock.
func (r *MemoryRepo) hydrate(l Listing) Listing {
	comments := []Comment{}
	for _, cm := range r.comments {
		if cm.ListingID == l.ID {
			comments = append(comments, cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	l.Comments = comments

	if owner, ok := r.Owners[l.OwnerID]; ok {
		l.Owner = &owner
	}
	return l
}
