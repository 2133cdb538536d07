package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads orders from Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// ListByUser returns one page of the buyer's orders plus the total count.
func (s *PGStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error) {
	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.Pool.Query(ctx, `
SELECT id, user_id, status, items_total, shipping_total, grand_total, created_at
FROM orders WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.ItemsTotal, &o.ShippingTotal, &o.GrandTotal, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// ByID loads one order scoped to the buyer.
func (s *PGStore) ByID(ctx context.Context, userID, orderID uuid.UUID) (Order, error) {
	var o Order
	err := s.Pool.QueryRow(ctx, `
SELECT id, user_id, status, items_total, shipping_total, grand_total, created_at
FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.ItemsTotal, &o.ShippingTotal, &o.GrandTotal, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// ItemsByOrder returns the order's purchased lines.
func (s *PGStore) ItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]Item, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT id, order_id, product_id, seller_id, title, qty, unit_price, subtotal
FROM order_items WHERE order_id = $1
ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SellerID, &it.Title, &it.Qty, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
