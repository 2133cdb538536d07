package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the order does not exist or belongs to another buyer.
var ErrNotFound = errors.New("order not found")

// Order is one purchase in the buyer's history. ShippingTotal is the frozen
// shipping charge computed at checkout time.
type Order struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Status        string    `json:"status"`
	ItemsTotal    int64     `json:"itemsTotal"`
	ShippingTotal int64     `json:"shippingTotal"`
	GrandTotal    int64     `json:"grandTotal"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Item is one purchased line, snapshotted at checkout.
type Item struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"productId"`
	SellerID  uuid.UUID `json:"sellerId"`
	Title     string    `json:"title"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unitPrice"`
	Subtotal  int64     `json:"subtotal"`
}

// Detail pairs an order with its lines.
type Detail struct {
	Order Order  `json:"order"`
	Items []Item `json:"items"`
}

// Store reads purchase history from persistent storage.
type Store interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error)
	ByID(ctx context.Context, userID, orderID uuid.UUID) (Order, error)
	ItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]Item, error)
}

// Service exposes the buyer's purchase history.
type Service struct {
	Store Store
}

// List returns one page of the buyer's orders, newest first, plus the total
// count for pagination headers.
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error) {
	if s == nil || s.Store == nil {
		return nil, 0, errors.New("order service not configured")
	}
	return s.Store.ListByUser(ctx, userID, limit, offset)
}

// Get returns one order with its lines, scoped to the buyer.
func (s *Service) Get(ctx context.Context, userID, orderID uuid.UUID) (Detail, error) {
	if s == nil || s.Store == nil {
		return Detail{}, errors.New("order service not configured")
	}
	ord, err := s.Store.ByID(ctx, userID, orderID)
	if err != nil {
		return Detail{}, err
	}
	items, err := s.Store.ItemsByOrder(ctx, ord.ID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Order: ord, Items: items}, nil
}
