package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DailySales is one day of aggregated sales.
type DailySales struct {
	Day           time.Time `json:"day"`
	Orders        int64     `json:"orders"`
	ItemsTotal    int64     `json:"itemsTotal"`
	ShippingTotal int64     `json:"shippingTotal"`
	GrandTotal    int64     `json:"grandTotal"`
}

// SellerSales is one seller's aggregated revenue and shipping charges.
type SellerSales struct {
	SellerID      string `json:"sellerId"`
	SellerName    string `json:"sellerName"`
	Orders        int64  `json:"orders"`
	ItemsTotal    int64  `json:"itemsTotal"`
	ShippingTotal int64  `json:"shippingTotal"`
}

// Querier defines the database access required for analytics operations.
type Querier interface {
	SalesDailyRange(ctx context.Context, from, to time.Time) ([]DailySales, error)
	TopSellers(ctx context.Context, limit, offset int) ([]SellerSales, error)
}

// Service provides cached access to reporting aggregates.
type Service struct {
	Q            Querier
	R            *redis.Client
	TTL          time.Duration
	DefaultRange int
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// SalesRange returns the sales summary between the provided bounds, inclusive
// of from and exclusive of to.
func (s *Service) SalesRange(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("analytics service not configured")
	}
	key := cacheKey("an", "sales", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached []DailySales
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}
	rows, err := s.Q.SalesDailyRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

// DefaultSalesRange covers the trailing DefaultRange days ending today.
func (s *Service) DefaultSalesRange(ctx context.Context) ([]DailySales, error) {
	days := s.DefaultRange
	if days <= 0 {
		days = 30
	}
	to := s.now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -days)
	return s.SalesRange(ctx, from, to)
}

// TopSellers returns sellers ordered by revenue.
func (s *Service) TopSellers(ctx context.Context, limit, offset int) ([]SellerSales, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("analytics service not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	key := cacheKey("an", "topsellers", limit, offset)
	var cached []SellerSales
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}
	rows, err := s.Q.TopSellers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) bool {
	if s.R == nil || s.TTL <= 0 {
		return false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
