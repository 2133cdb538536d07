package shipping

import "github.com/google/uuid"

// Money is a monetary amount in minor units.
type Money = int64

// Rule is a seller-defined shipping tariff for a destination. A blank City
// makes the rule province-wide. Rules are created and edited through the
// seller rule-management UI; this service only reads them.
type Rule struct {
	ID       uuid.UUID `json:"id"`
	SellerID uuid.UUID `json:"sellerId"`
	Province string    `json:"province"`
	City     string    `json:"city"`
	Price    Money     `json:"price"`
	Active   bool      `json:"active"`
}

// Line is a single cart line item used as estimate input. Lines are
// reconstructed per request from the buyer's cart snapshot and never
// persisted here.
type Line struct {
	ProductID uuid.UUID
	SellerID  uuid.UUID
	Qty       int
	UnitPrice Money
}

// BuyerLocation is the province and city registered on the buyer's profile.
// Either field may be blank.
type BuyerLocation struct {
	Province string
	City     string
}

// SellerEstimate is the resolved shipping charge for one seller in the cart.
type SellerEstimate struct {
	SellerID  uuid.UUID
	Province  string
	City      string
	Price     Money
	ItemCount int
}

// Estimate is the aggregated result for a cart snapshot. Breakdown holds one
// entry per distinct seller, ordered by first appearance in the cart.
type Estimate struct {
	Total     Money
	Breakdown []SellerEstimate
	Warning   string
}
