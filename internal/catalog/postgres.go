package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"poi-platform/pkg/utils"
)

// PostgresRepo persists listings and comments.
// Comments live in their own table and are reassembled onto the listing
// on read.
type PostgresRepo struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) List(ctx context.Context, kind Kind) ([]Listing, error) {
	const q = `
SELECT l.id, l.kind, l.name, l.description, l.location, l.image, l.rating,
       l.owner_id, l.created_at, l.updated_at,
       u.username, u.email
FROM listings l
JOIN users u ON u.id = l.owner_id
WHERE l.kind = $1
ORDER BY l.created_at
`
	rows, err := r.db.QueryContext(ctx, q, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		l, err := scanListingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		comments, err := listComments(ctx, r.db, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Comments = comments
	}
	return out, nil
}

func (r *PostgresRepo) Get(ctx context.Context, kind Kind, id string) (Listing, error) {
	const q = `
SELECT l.id, l.kind, l.name, l.description, l.location, l.image, l.rating,
       l.owner_id, l.created_at, l.updated_at,
       u.username, u.email
FROM listings l
JOIN users u ON u.id = l.owner_id
WHERE l.kind = $1 AND l.id = $2
`
	return r.getOne(ctx, q, kind, id)
}

func (r *PostgresRepo) GetAny(ctx context.Context, id string) (Listing, error) {
	const q = `
SELECT l.id, l.kind, l.name, l.description, l.location, l.image, l.rating,
       l.owner_id, l.created_at, l.updated_at,
       u.username, u.email
FROM listings l
JOIN users u ON u.id = l.owner_id
WHERE l.id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *PostgresRepo) getOne(ctx context.Context, q string, args ...any) (Listing, error) {
	l, err := scanListingRow(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, err
	}

	comments, err := listComments(ctx, r.db, l.ID)
	if err != nil {
		return Listing{}, err
	}
	l.Comments = comments
	return l, nil
}

func (r *PostgresRepo) Create(ctx context.Context, l Listing) (Listing, error) {
	const q = `
INSERT INTO listings (id, kind, name, description, location, image, rating, owner_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
	if _, err := r.db.ExecContext(ctx, q,
		l.ID, l.Kind, l.Name, l.Description, l.Location, l.Image, l.Rating,
		l.OwnerID, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return Listing{}, err
	}
	l.Comments = []Comment{}
	return l, nil
}

func (r *PostgresRepo) Update(ctx context.Context, l Listing) (Listing, error) {
	const q = `
UPDATE listings
SET name = $1, description = $2, location = $3, image = $4, rating = $5, updated_at = $6
WHERE kind = $7 AND id = $8
`
	res, err := r.db.ExecContext(ctx, q,
		l.Name, l.Description, l.Location, l.Image, l.Rating, l.UpdatedAt,
		l.Kind, l.ID,
	)
	if err != nil {
		return Listing{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Listing{}, ErrNotFound
	}
	return l, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, kind Kind, id string) error {
	// Comments go with the listing via ON DELETE CASCADE.
	const q = `DELETE FROM listings WHERE kind = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, kind, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetComment(ctx context.Context, listingID, commentID string) (Comment, error) {
	const q = `
SELECT id, listing_id, author_id, text, created_at, updated_at
FROM comments
WHERE listing_id = $1 AND id = $2
`
	var cm Comment
	if err := r.db.QueryRowContext(ctx, q, listingID, commentID).Scan(
		&cm.ID, &cm.ListingID, &cm.AuthorID, &cm.Text, &cm.CreatedAt, &cm.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Comment{}, ErrCommentNotFound
		}
		return Comment{}, err
	}
	return cm, nil
}

// Comment mutations run in a transaction: the comment row and the parent
// listing's updated_at must move together, matching the document-level
// timestamp the client API exposes.

func (r *PostgresRepo) AddComment(ctx context.Context, cm Comment) (Comment, error) {
	const q = `
INSERT INTO comments (id, listing_id, author_id, text, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, q,
			cm.ID, cm.ListingID, cm.AuthorID, cm.Text, cm.CreatedAt, cm.UpdatedAt,
		); err != nil {
			return err
		}
		return touchListing(ctx, tx, cm.ListingID, cm.UpdatedAt)
	})
	if err != nil {
		return Comment{}, err
	}
	return cm, nil
}

func (r *PostgresRepo) UpdateComment(ctx context.Context, cm Comment) (Comment, error) {
	const q = `
UPDATE comments
SET text = $1, updated_at = $2
WHERE listing_id = $3 AND id = $4
`
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, cm.Text, cm.UpdatedAt, cm.ListingID, cm.ID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrCommentNotFound
		}
		return touchListing(ctx, tx, cm.ListingID, cm.UpdatedAt)
	})
	if err != nil {
		return Comment{}, err
	}
	return cm, nil
}

func (r *PostgresRepo) DeleteComment(ctx context.Context, listingID, commentID string) error {
	const q = `DELETE FROM comments WHERE listing_id = $1 AND id = $2`
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, listingID, commentID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrCommentNotFound
		}
		return touchListing(ctx, tx, listingID, time.Now().UTC())
	})
}

func touchListing(ctx context.Context, tx *sql.Tx, listingID string, at time.Time) error {
	const q = `UPDATE listings SET updated_at = $1 WHERE id = $2`
	_, err := tx.ExecContext(ctx, q, at, listingID)
	return err
}

func listComments(ctx context.Context, db *sql.DB, listingID string) ([]Comment, error) {
	const q = `
SELECT id, listing_id, author_id, text, created_at, updated_at
FROM comments
WHERE listing_id = $1
ORDER BY created_at
`
	rows, err := db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.ListingID, &cm.AuthorID, &cm.Text, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListingRow(row rowScanner) (Listing, error) {
	var l Listing
	var owner OwnerSummary
	if err := row.Scan(
		&l.ID, &l.Kind, &l.Name, &l.Description, &l.Location, &l.Image, &l.Rating,
		&l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
		&owner.Username, &owner.Email,
	); err != nil {
		return Listing{}, err
	}
	owner.ID = l.OwnerID
	l.Owner = &owner
	return l, nil
}
