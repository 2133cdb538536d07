package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/andeshop/tienda-api/internal/analytics"
)

type stubQuerier struct {
	salesCalls   int
	sellersCalls int
}

func (s *stubQuerier) SalesDailyRange(_ context.Context, from, _ time.Time) ([]analytics.DailySales, error) {
	s.salesCalls++
	return []analytics.DailySales{{Day: from, Orders: 2, ItemsTotal: 1000, ShippingTotal: 300, GrandTotal: 1300}}, nil
}

func (s *stubQuerier) TopSellers(context.Context, int, int) ([]analytics.SellerSales, error) {
	s.sellersCalls++
	return []analytics.SellerSales{{SellerID: "s1", Orders: 5, ItemsTotal: 4000, ShippingTotal: 900}}, nil
}

func TestSalesRangeCached(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q := &stubQuerier{}
	svc := &analytics.Service{Q: q, R: rdb, TTL: time.Minute, DefaultRange: 30}

	from := time.Now().Add(-24 * time.Hour).Truncate(24 * time.Hour)
	to := time.Now().Truncate(24 * time.Hour)
	if _, err := svc.SalesRange(context.Background(), from, to); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.SalesRange(context.Background(), from, to); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if q.salesCalls != 1 {
		t.Fatalf("expected 1 DB call, got %d", q.salesCalls)
	}
}

func TestTopSellersCached(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q := &stubQuerier{}
	svc := &analytics.Service{Q: q, R: rdb, TTL: time.Minute}

	for i := 0; i < 3; i++ {
		rows, err := svc.TopSellers(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if len(rows) != 1 || rows[0].SellerID != "s1" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	}
	if q.sellersCalls != 1 {
		t.Fatalf("expected 1 DB call, got %d", q.sellersCalls)
	}
}

func TestSalesRangeWithoutCache(t *testing.T) {
	q := &stubQuerier{}
	svc := &analytics.Service{Q: q}

	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := svc.SalesRange(context.Background(), from, to); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if q.salesCalls != 2 {
		t.Fatalf("expected 2 DB calls, got %d", q.salesCalls)
	}
}
