package favorites

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists favorites in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// ListByUser returns the buyer's favorites joined with product snapshots.
func (s *PGStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT f.product_id, p.title, p.price, f.created_at
FROM favorites f
JOIN products p ON p.id = f.product_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ProductID, &f.Title, &f.Price, &f.SavedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

// Insert marks a product as favorite. The (user_id, product_id) pair is
// unique, so a duplicate insert surfaces a 23505 error.
func (s *PGStore) Insert(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := s.Pool.Exec(ctx, `
INSERT INTO favorites (user_id, product_id) VALUES ($1, $2)`, userID, productID)
	return err
}

// Delete removes the favorite mark, reporting whether a row was removed.
func (s *PGStore) Delete(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the product is favorited by the buyer.
func (s *PGStore) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`, userID, productID).
		Scan(&exists)
	return exists, err
}
