package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists buyer profiles in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// ProfileByUser loads the profile for one buyer.
func (s *PGStore) ProfileByUser(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var p Profile
	err := s.Pool.QueryRow(ctx, `
SELECT user_id, COALESCE(phone, ''), COALESCE(province, ''), COALESCE(city, ''), COALESCE(address_line, ''), updated_at
FROM buyer_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.Phone, &p.Province, &p.City, &p.AddressLine, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// UpsertProfile creates or replaces the buyer's profile fields.
func (s *PGStore) UpsertProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (Profile, error) {
	var p Profile
	err := s.Pool.QueryRow(ctx, `
INSERT INTO buyer_profiles (user_id, phone, province, city, address_line, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id) DO UPDATE SET
  phone = EXCLUDED.phone,
  province = EXCLUDED.province,
  city = EXCLUDED.city,
  address_line = EXCLUDED.address_line,
  updated_at = now()
RETURNING user_id, COALESCE(phone, ''), COALESCE(province, ''), COALESCE(city, ''), COALESCE(address_line, ''), updated_at`,
		userID, input.Phone, input.Province, input.City, input.AddressLine).
		Scan(&p.UserID, &p.Phone, &p.Province, &p.City, &p.AddressLine, &p.UpdatedAt)
	return p, err
}
