package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists carts in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// ActiveCartByUser returns the buyer's unexpired cart.
func (s *PGStore) ActiveCartByUser(ctx context.Context, userID uuid.UUID) (Cart, error) {
	var c Cart
	err := s.Pool.QueryRow(ctx, `
SELECT id, user_id, expires_at
FROM carts WHERE user_id = $1 AND expires_at > now()
ORDER BY expires_at DESC
LIMIT 1`, userID).Scan(&c.ID, &c.UserID, &c.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cart{}, ErrNotFound
	}
	return c, err
}

// CreateCart opens a new cart for the buyer.
func (s *PGStore) CreateCart(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (Cart, error) {
	var c Cart
	err := s.Pool.QueryRow(ctx, `
INSERT INTO carts (user_id, expires_at) VALUES ($1, $2)
RETURNING id, user_id, expires_at`, userID, expiresAt).Scan(&c.ID, &c.UserID, &c.ExpiresAt)
	return c, err
}

// TouchCart extends a cart's expiry.
func (s *PGStore) TouchCart(ctx context.Context, cartID uuid.UUID, expiresAt time.Time) error {
	_, err := s.Pool.Exec(ctx, `UPDATE carts SET expires_at = $2 WHERE id = $1`, cartID, expiresAt)
	return err
}

// ListItems returns the cart's lines in insertion order.
func (s *PGStore) ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT id, cart_id, product_id, seller_id, title, qty, unit_price, subtotal
FROM cart_items WHERE cart_id = $1
ORDER BY created_at, id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.SellerID, &it.Title, &it.Qty, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ItemByProduct finds an existing line for the given product.
func (s *PGStore) ItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (Item, error) {
	var it Item
	err := s.Pool.QueryRow(ctx, `
SELECT id, cart_id, product_id, seller_id, title, qty, unit_price, subtotal
FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID).
		Scan(&it.ID, &it.CartID, &it.ProductID, &it.SellerID, &it.Title, &it.Qty, &it.UnitPrice, &it.Subtotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

// InsertItem appends a line to the cart.
func (s *PGStore) InsertItem(ctx context.Context, item Item) (Item, error) {
	err := s.Pool.QueryRow(ctx, `
INSERT INTO cart_items (cart_id, product_id, seller_id, title, qty, unit_price, subtotal)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`, item.CartID, item.ProductID, item.SellerID, item.Title, item.Qty, item.UnitPrice, item.Subtotal).
		Scan(&item.ID)
	return item, err
}

// UpdateItemQty sets a line's quantity and recomputed subtotal.
func (s *PGStore) UpdateItemQty(ctx context.Context, itemID uuid.UUID, qty int, subtotal int64) error {
	_, err := s.Pool.Exec(ctx, `
UPDATE cart_items SET qty = $2, subtotal = $3 WHERE id = $1`, itemID, qty, subtotal)
	return err
}

// DeleteItem removes a line from the cart.
func (s *PGStore) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	return err
}

// ProductForCart loads the product snapshot used when adding a line.
func (s *PGStore) ProductForCart(ctx context.Context, productID uuid.UUID) (ProductInfo, error) {
	var p ProductInfo
	err := s.Pool.QueryRow(ctx, `
SELECT id, seller_id, title, price
FROM products WHERE id = $1 AND active`, productID).
		Scan(&p.ID, &p.SellerID, &p.Title, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductInfo{}, ErrNotFound
	}
	return p, err
}
