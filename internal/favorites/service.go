package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Favorite is one saved product.
type Favorite struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	SavedAt   time.Time `json:"savedAt"`
}

// Store persists favorite marks.
type Store interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	Insert(ctx context.Context, userID, productID uuid.UUID) error
	Delete(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// Service manages the buyer's favorites list.
type Service struct {
	Store Store
}

// List returns the buyer's saved products, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("favorites service not configured")
	}
	return s.Store.ListByUser(ctx, userID)
}

// Toggle flips the favorite mark on a product and reports the new state.
// A concurrent duplicate insert is treated as already favorited.
func (s *Service) Toggle(ctx context.Context, userID, productID uuid.UUID) (favorited bool, err error) {
	if s == nil || s.Store == nil {
		return false, errors.New("favorites service not configured")
	}
	removed, err := s.Store.Delete(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if err := s.Store.Insert(ctx, userID, productID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Check reports whether the product is in the buyer's favorites.
func (s *Service) Check(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if s == nil || s.Store == nil {
		return false, errors.New("favorites service not configured")
	}
	return s.Store.Exists(ctx, userID, productID)
}
