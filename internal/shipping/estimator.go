package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// WarnNoProvince is surfaced when the buyer profile has no province, in which
// case no tariff can be resolved for any seller.
const WarnNoProvince = "La cuenta no tiene una provincia configurada; no es posible estimar el envío."

// RuleSource fetches the shipping rules registered by one seller. Rule sets
// for different sellers are independent and read-only, so lookups may run
// concurrently. Implementations may batch or cache behind this contract.
type RuleSource interface {
	RulesForSeller(ctx context.Context, sellerID uuid.UUID) ([]Rule, error)
}

// Estimator computes per-seller shipping estimates for a cart snapshot. It
// holds no request state and a single instance is safe for concurrent use.
type Estimator struct {
	Rules       RuleSource
	MaxParallel int
}

const defaultMaxParallel = 4

// Estimate groups the cart by seller, fetches each seller's rules, resolves a
// tariff per seller against the buyer location and sums the result.
//
// A blank buyer province returns a zero estimate with a warning and skips all
// per-seller work. An empty cart returns a zero estimate with no warning.
// One failed rule lookup fails the whole request and cancels the sibling
// lookups; a cancelled context never yields a partial breakdown.
func (e *Estimator) Estimate(ctx context.Context, lines []Line, buyer BuyerLocation) (Estimate, error) {
	if e == nil || e.Rules == nil {
		return Estimate{}, errors.New("shipping: rule source not configured")
	}
	if NormalizeLocation(buyer.Province) == "" {
		return Estimate{Breakdown: []SellerEstimate{}, Warning: WarnNoProvince}, nil
	}
	groups := GroupBySeller(lines)
	if len(groups) == 0 {
		return Estimate{Breakdown: []SellerEstimate{}}, nil
	}

	ruleSets := make([][]Rule, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel())
	for i, group := range groups {
		g.Go(func() error {
			rules, err := e.Rules.RulesForSeller(gctx, group.SellerID)
			if err != nil {
				return fmt.Errorf("rules for seller %s: %w", group.SellerID, err)
			}
			ruleSets[i] = rules
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	result := Estimate{Breakdown: make([]SellerEstimate, 0, len(groups))}
	for i, group := range groups {
		price := ResolveTariff(ruleSets[i], buyer.Province, buyer.City)
		result.Breakdown = append(result.Breakdown, SellerEstimate{
			SellerID:  group.SellerID,
			Province:  buyer.Province,
			City:      buyer.City,
			Price:     price,
			ItemCount: group.ItemCount,
		})
		result.Total += price
	}
	return result, nil
}

func (e *Estimator) maxParallel() int {
	if e == nil || e.MaxParallel <= 0 {
		return defaultMaxParallel
	}
	return e.MaxParallel
}
