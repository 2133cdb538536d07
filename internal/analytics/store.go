package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGQuerier computes reporting aggregates with direct SQL over orders.
type PGQuerier struct {
	Pool *pgxpool.Pool
}

var _ Querier = (*PGQuerier)(nil)

// SalesDailyRange aggregates completed orders per day.
func (q *PGQuerier) SalesDailyRange(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	rows, err := q.Pool.Query(ctx, `
SELECT date_trunc('day', created_at) AS day,
       COUNT(*),
       COALESCE(SUM(items_total), 0),
       COALESCE(SUM(shipping_total), 0),
       COALESCE(SUM(grand_total), 0)
FROM orders
WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
GROUP BY 1
ORDER BY 1`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailySales{}
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.ItemsTotal, &d.ShippingTotal, &d.GrandTotal); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopSellers ranks sellers by item revenue, attributing each order's shipping
// charge to the seller it was computed for.
func (q *PGQuerier) TopSellers(ctx context.Context, limit, offset int) ([]SellerSales, error) {
	rows, err := q.Pool.Query(ctx, `
SELECT oi.seller_id,
       COALESCE(u.name, ''),
       COUNT(DISTINCT oi.order_id),
       COALESCE(SUM(oi.subtotal), 0),
       COALESCE(SUM(os.price), 0)
FROM order_items oi
JOIN orders o ON o.id = oi.order_id AND o.status <> 'cancelled'
LEFT JOIN users u ON u.id = oi.seller_id
LEFT JOIN order_shipping os ON os.order_id = oi.order_id AND os.seller_id = oi.seller_id
GROUP BY oi.seller_id, u.name
ORDER BY SUM(oi.subtotal) DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SellerSales{}
	for rows.Next() {
		var s SellerSales
		if err := rows.Scan(&s.SellerID, &s.SellerName, &s.Orders, &s.ItemsTotal, &s.ShippingTotal); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
