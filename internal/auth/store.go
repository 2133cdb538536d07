package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists user accounts in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// CreateUser inserts a new account and returns the stored record.
func (s *PGStore) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	var u User
	err := s.Pool.QueryRow(ctx, `
INSERT INTO users (name, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, name, email, roles, created_at`, name, email, passwordHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.Roles, &u.CreatedAt)
	return u, err
}

// UserByEmail loads an account with its password hash for login checks.
func (s *PGStore) UserByEmail(ctx context.Context, email string) (Credential, error) {
	var c Credential
	err := s.Pool.QueryRow(ctx, `
SELECT id, name, email, roles, created_at, password_hash
FROM users WHERE email = $1`, email).
		Scan(&c.ID, &c.Name, &c.Email, &c.Roles, &c.CreatedAt, &c.PasswordHash)
	return c, err
}

// UserByID loads the safe user record.
func (s *PGStore) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := s.Pool.QueryRow(ctx, `
SELECT id, name, email, roles, created_at
FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Roles, &u.CreatedAt)
	return u, err
}
