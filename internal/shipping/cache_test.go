package shipping

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCachedRuleSourceServesFromCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	seller := uuid.New()
	src := &stubRules{rules: map[uuid.UUID][]Rule{
		seller: {sellerRule(seller, "Pichincha", "Quito", 300)},
	}}
	cached := &CachedRuleSource{Source: src, Client: client, TTL: time.Minute}

	ctx := context.Background()
	first, err := cached.RulesForSeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cached.RulesForSeller(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, src.calls, "second lookup must come from cache")
}

func TestCachedRuleSourceExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	seller := uuid.New()
	src := &stubRules{rules: map[uuid.UUID][]Rule{
		seller: {sellerRule(seller, "Guayas", "", 450)},
	}}
	cached := &CachedRuleSource{Source: src, Client: client, TTL: time.Second}

	ctx := context.Background()
	_, err = cached.RulesForSeller(ctx, seller)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cached.RulesForSeller(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls, "expired entry must refetch")
}

func TestCachedRuleSourceDegradesOnCacheFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	mr.Close()

	seller := uuid.New()
	src := &stubRules{rules: map[uuid.UUID][]Rule{
		seller: {sellerRule(seller, "Azuay", "Cuenca", 200)},
	}}
	cached := &CachedRuleSource{Source: src, Client: client, TTL: time.Minute}

	rules, err := cached.RulesForSeller(context.Background(), seller)
	require.NoError(t, err)
	require.Len(t, rules, 1)
}

func TestCachedRuleSourceDisabledWithoutClient(t *testing.T) {
	seller := uuid.New()
	src := &stubRules{rules: map[uuid.UUID][]Rule{
		seller: {sellerRule(seller, "Manabí", "", 350)},
	}}
	cached := &CachedRuleSource{Source: src}

	_, err := cached.RulesForSeller(context.Background(), seller)
	require.NoError(t, err)
	_, err = cached.RulesForSeller(context.Background(), seller)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls)
}
