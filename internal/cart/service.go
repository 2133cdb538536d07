package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andeshop/tienda-api/internal/shipping"
)

// ErrNotFound indicates the requested cart or item could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Cart is a buyer's active shopping cart.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Item is one cart line. SellerID is snapshotted from the product at add
// time so the shipping estimator can group lines without a catalog join.
type Item struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"productId"`
	SellerID  uuid.UUID `json:"sellerId"`
	Title     string    `json:"title"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unitPrice"`
	Subtotal  int64     `json:"subtotal"`
}

// ProductInfo is the product snapshot needed to add a cart line.
type ProductInfo struct {
	ID       uuid.UUID
	SellerID uuid.UUID
	Title    string
	Price    int64
}

// Store persists carts and cart items.
type Store interface {
	ActiveCartByUser(ctx context.Context, userID uuid.UUID) (Cart, error)
	CreateCart(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (Cart, error)
	TouchCart(ctx context.Context, cartID uuid.UUID, expiresAt time.Time) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error)
	ItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (Item, error)
	InsertItem(ctx context.Context, item Item) (Item, error)
	UpdateItemQty(ctx context.Context, itemID uuid.UUID, qty int, subtotal int64) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	ProductForCart(ctx context.Context, productID uuid.UUID) (ProductInfo, error)
}

// Service encapsulates cart domain operations.
type Service struct {
	Store Store
	TTL   time.Duration
	Now   func() time.Time
}

func (s *Service) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureCart loads or creates the buyer's active cart, extending its TTL.
func (s *Service) EnsureCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	expires := s.now().Add(s.ttl())
	cart, err := s.Store.ActiveCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.Store.CreateCart(ctx, userID, expires)
		}
		return Cart{}, err
	}
	_ = s.Store.TouchCart(ctx, cart.ID, expires)
	return cart, nil
}

// AddItem inserts or increments a cart line, snapshotting price and seller
// from the product.
func (s *Service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	if qty <= 0 {
		return fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	cart, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	existing, err := s.Store.ItemByProduct(ctx, cart.ID, productID)
	if err == nil {
		newQty := existing.Qty + qty
		return s.Store.UpdateItemQty(ctx, existing.ID, newQty, int64(newQty)*existing.UnitPrice)
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	product, err := s.Store.ProductForCart(ctx, productID)
	if err != nil {
		return err
	}
	price := product.Price
	if price < 0 {
		price = 0
	}
	_, err = s.Store.InsertItem(ctx, Item{
		CartID:    cart.ID,
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Title:     product.Title,
		Qty:       qty,
		UnitPrice: price,
		Subtotal:  int64(qty) * price,
	})
	return err
}

// UpdateQty sets the quantity of a cart line owned by the buyer.
func (s *Service) UpdateQty(ctx context.Context, userID, itemID uuid.UUID, qty int) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	if qty <= 0 {
		return fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	cart, err := s.Store.ActiveCartByUser(ctx, userID)
	if err != nil {
		return err
	}
	items, err := s.Store.ListItems(ctx, cart.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == itemID {
			return s.Store.UpdateItemQty(ctx, item.ID, qty, int64(qty)*item.UnitPrice)
		}
	}
	return ErrNotFound
}

// RemoveItem deletes a cart line owned by the buyer.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	cart, err := s.Store.ActiveCartByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.Store.DeleteItem(ctx, cart.ID, itemID)
}

// Items returns the lines of the buyer's active cart. A buyer with no cart
// gets an empty slice.
func (s *Service) Items(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("cart service not configured")
	}
	cart, err := s.Store.ActiveCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Item{}, nil
		}
		return nil, err
	}
	return s.Store.ListItems(ctx, cart.ID)
}

// Snapshot implements shipping.CartSource, converting the buyer's cart lines
// into estimate input. A missing cart yields an empty snapshot.
func (s *Service) Snapshot(ctx context.Context, userID uuid.UUID) ([]shipping.Line, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]shipping.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, shipping.Line{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines, nil
}
