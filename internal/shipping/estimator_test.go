package shipping

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubRules struct {
	mu    sync.Mutex
	rules map[uuid.UUID][]Rule
	errs  map[uuid.UUID]error
	calls int
}

func (s *stubRules) RulesForSeller(_ context.Context, sellerID uuid.UUID) ([]Rule, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err, ok := s.errs[sellerID]; ok {
		return nil, err
	}
	return s.rules[sellerID], nil
}

func sellerRule(sellerID uuid.UUID, province, city string, price Money) Rule {
	return Rule{ID: uuid.New(), SellerID: sellerID, Province: province, City: city, Price: price, Active: true}
}

func TestEstimateMultiSeller(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	sellerC := uuid.New()
	src := &stubRules{rules: map[uuid.UUID][]Rule{
		sellerA: {sellerRule(sellerA, "Pichincha", "Quito", 300), sellerRule(sellerA, "Pichincha", "", 500)},
		sellerB: {sellerRule(sellerB, "Pichincha", "", 400)},
		// sellerC ships nowhere near the buyer.
		sellerC: {sellerRule(sellerC, "Guayas", "", 600)},
	}}
	est := &Estimator{Rules: src}

	lines := []Line{
		{ProductID: uuid.New(), SellerID: sellerA, Qty: 2},
		{ProductID: uuid.New(), SellerID: sellerB, Qty: 1},
		{ProductID: uuid.New(), SellerID: sellerC, Qty: 4},
	}
	result, err := est.Estimate(context.Background(), lines, BuyerLocation{Province: "Pichincha", City: "Quito"})
	require.NoError(t, err)
	require.Empty(t, result.Warning)
	require.Equal(t, Money(700), result.Total)
	require.Len(t, result.Breakdown, 3)

	require.Equal(t, sellerA, result.Breakdown[0].SellerID)
	require.Equal(t, Money(300), result.Breakdown[0].Price)
	require.Equal(t, 2, result.Breakdown[0].ItemCount)

	require.Equal(t, sellerB, result.Breakdown[1].SellerID)
	require.Equal(t, Money(400), result.Breakdown[1].Price)

	require.Equal(t, sellerC, result.Breakdown[2].SellerID)
	require.Equal(t, Money(0), result.Breakdown[2].Price)
	require.Equal(t, 4, result.Breakdown[2].ItemCount)
}

func TestEstimateBlankProvinceWarns(t *testing.T) {
	src := &stubRules{}
	est := &Estimator{Rules: src}

	lines := []Line{{ProductID: uuid.New(), SellerID: uuid.New(), Qty: 1}}
	result, err := est.Estimate(context.Background(), lines, BuyerLocation{Province: "  ", City: "Quito"})
	require.NoError(t, err)
	require.Equal(t, WarnNoProvince, result.Warning)
	require.Equal(t, Money(0), result.Total)
	require.Empty(t, result.Breakdown)
	require.Zero(t, src.calls, "blank province must skip rule lookups")
}

func TestEstimateEmptyCart(t *testing.T) {
	src := &stubRules{}
	est := &Estimator{Rules: src}

	result, err := est.Estimate(context.Background(), nil, BuyerLocation{Province: "Pichincha"})
	require.NoError(t, err)
	require.Empty(t, result.Warning)
	require.Equal(t, Money(0), result.Total)
	require.Empty(t, result.Breakdown)
}

func TestEstimateRuleLookupFailureFailsRequest(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	boom := errors.New("store down")
	src := &stubRules{
		rules: map[uuid.UUID][]Rule{sellerA: {sellerRule(sellerA, "Pichincha", "", 400)}},
		errs:  map[uuid.UUID]error{sellerB: boom},
	}
	est := &Estimator{Rules: src}

	lines := []Line{
		{ProductID: uuid.New(), SellerID: sellerA, Qty: 1},
		{ProductID: uuid.New(), SellerID: sellerB, Qty: 1},
	}
	_, err := est.Estimate(context.Background(), lines, BuyerLocation{Province: "Pichincha"})
	require.ErrorIs(t, err, boom)
}

func TestEstimateTotalEqualsBreakdownSum(t *testing.T) {
	sellers := make([]uuid.UUID, 6)
	rules := map[uuid.UUID][]Rule{}
	for i := range sellers {
		sellers[i] = uuid.New()
		rules[sellers[i]] = []Rule{sellerRule(sellers[i], "Azuay", "", Money(100*(i+1)))}
	}
	src := &stubRules{rules: rules}
	est := &Estimator{Rules: src, MaxParallel: 2}

	var lines []Line
	for _, id := range sellers {
		lines = append(lines, Line{ProductID: uuid.New(), SellerID: id, Qty: 1})
	}
	result, err := est.Estimate(context.Background(), lines, BuyerLocation{Province: "Azuay", City: "Cuenca"})
	require.NoError(t, err)

	var sum Money
	for _, entry := range result.Breakdown {
		sum += entry.Price
	}
	require.Equal(t, sum, result.Total)
	require.Equal(t, len(sellers), src.calls)
}

func TestEstimateNoRuleSource(t *testing.T) {
	est := &Estimator{}
	_, err := est.Estimate(context.Background(), nil, BuyerLocation{Province: "Pichincha"})
	require.Error(t, err)
}
