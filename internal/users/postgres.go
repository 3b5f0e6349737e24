package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepo persists accounts in the users table.
type PostgresRepo struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO users (id, username, email, role, password_hash, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, username, email, role, password_hash, created_at
`
	row := r.db.QueryRowContext(ctx, q, u.ID, u.Username, u.Email, u.Role, u.PasswordHash, u.CreatedAt)
	out, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrAlreadyExists
		}
		return User{}, err
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
WHERE id = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
WHERE username = $1 OR email = $1
LIMIT 1
`
	return scanUser(r.db.QueryRowContext(ctx, q, identifier))
}

func (r *PostgresRepo) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
