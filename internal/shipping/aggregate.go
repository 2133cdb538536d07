package shipping

import "github.com/google/uuid"

// SellerGroup aggregates the cart lines belonging to one seller.
type SellerGroup struct {
	SellerID  uuid.UUID
	ItemCount int
}

// GroupBySeller partitions cart lines by seller, summing quantities per
// group. Group order follows the first appearance of each seller while
// scanning the cart. Lines with non-positive quantity are dropped, which
// also absorbs malformed snapshots.
func GroupBySeller(lines []Line) []SellerGroup {
	index := make(map[uuid.UUID]int, len(lines))
	groups := make([]SellerGroup, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			continue
		}
		at, ok := index[line.SellerID]
		if !ok {
			at = len(groups)
			index[line.SellerID] = at
			groups = append(groups, SellerGroup{SellerID: line.SellerID})
		}
		groups[at].ItemCount += line.Qty
	}
	return groups
}
