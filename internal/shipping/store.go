package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRuleStore reads seller shipping rules from Postgres. The table is owned
// by the seller rule-management surface; this store never writes to it.
type PGRuleStore struct {
	Pool *pgxpool.Pool
}

var _ RuleSource = (*PGRuleStore)(nil)

// RulesForSeller returns the seller's active rules in creation order so the
// resolver's first-match behaviour stays deterministic across requests.
func (s *PGRuleStore) RulesForSeller(ctx context.Context, sellerID uuid.UUID) ([]Rule, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT id, seller_id, province, COALESCE(city, ''), price, active
FROM seller_shipping_rules
WHERE seller_id = $1 AND active
ORDER BY created_at, id`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.ID, &r.SellerID, &r.Province, &r.City, &r.Price, &r.Active); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
