package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/andeshop/tienda-api/internal/obs"
)

// CachedRuleSource caches per-seller rule sets in Redis as JSON. Rules change
// rarely relative to estimate traffic, so a short TTL keeps the store mostly
// out of the request path without a seller-side invalidation hook.
type CachedRuleSource struct {
	Source RuleSource
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

var _ RuleSource = (*CachedRuleSource)(nil)

// RulesForSeller serves from cache when possible, falling back to the
// underlying source. Cache failures degrade to a direct lookup.
func (c *CachedRuleSource) RulesForSeller(ctx context.Context, sellerID uuid.UUID) ([]Rule, error) {
	if c.Client == nil || c.TTL <= 0 {
		return c.Source.RulesForSeller(ctx, sellerID)
	}
	key := c.key(sellerID)
	data, err := c.Client.Get(ctx, key).Bytes()
	if err == nil {
		var rules []Rule
		if err := json.Unmarshal(data, &rules); err == nil {
			observeRuleCache("hit")
			return rules, nil
		}
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	observeRuleCache("miss")

	rules, err := c.Source.RulesForSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(rules); err == nil {
		_ = c.Client.Set(ctx, key, payload, c.TTL).Err()
	}
	return rules, nil
}

func (c *CachedRuleSource) key(sellerID uuid.UUID) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "ship:rules:"
	}
	return prefix + sellerID.String()
}

func observeRuleCache(result string) {
	if obs.ShippingRuleCacheTotal != nil {
		obs.ShippingRuleCacheTotal.WithLabelValues(result).Inc()
	}
}
