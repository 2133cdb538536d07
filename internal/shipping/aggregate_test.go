package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGroupBySellerPreservesFirstSeenOrder(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	lines := []Line{
		{ProductID: uuid.New(), SellerID: sellerA, Qty: 2},
		{ProductID: uuid.New(), SellerID: sellerB, Qty: 1},
		{ProductID: uuid.New(), SellerID: sellerA, Qty: 3},
	}

	groups := GroupBySeller(lines)
	require.Len(t, groups, 2)
	require.Equal(t, sellerA, groups[0].SellerID)
	require.Equal(t, 5, groups[0].ItemCount)
	require.Equal(t, sellerB, groups[1].SellerID)
	require.Equal(t, 1, groups[1].ItemCount)
}

func TestGroupBySellerDropsNonPositiveQty(t *testing.T) {
	seller := uuid.New()
	lines := []Line{
		{ProductID: uuid.New(), SellerID: seller, Qty: 0},
		{ProductID: uuid.New(), SellerID: seller, Qty: -2},
	}
	require.Empty(t, GroupBySeller(lines))
}

func TestGroupBySellerEmptyCart(t *testing.T) {
	require.Empty(t, GroupBySeller(nil))
}
