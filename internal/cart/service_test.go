package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	carts    map[uuid.UUID]Cart
	items    map[uuid.UUID][]Item
	products map[uuid.UUID]ProductInfo
}

func newMemStore() *memStore {
	return &memStore{
		carts:    map[uuid.UUID]Cart{},
		items:    map[uuid.UUID][]Item{},
		products: map[uuid.UUID]ProductInfo{},
	}
}

func (m *memStore) ActiveCartByUser(_ context.Context, userID uuid.UUID) (Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (m *memStore) CreateCart(_ context.Context, userID uuid.UUID, expiresAt time.Time) (Cart, error) {
	c := Cart{ID: uuid.New(), UserID: userID, ExpiresAt: expiresAt}
	m.carts[c.ID] = c
	return c, nil
}

func (m *memStore) TouchCart(_ context.Context, cartID uuid.UUID, expiresAt time.Time) error {
	c, ok := m.carts[cartID]
	if !ok {
		return ErrNotFound
	}
	c.ExpiresAt = expiresAt
	m.carts[cartID] = c
	return nil
}

func (m *memStore) ListItems(_ context.Context, cartID uuid.UUID) ([]Item, error) {
	return m.items[cartID], nil
}

func (m *memStore) ItemByProduct(_ context.Context, cartID, productID uuid.UUID) (Item, error) {
	for _, it := range m.items[cartID] {
		if it.ProductID == productID {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

func (m *memStore) InsertItem(_ context.Context, item Item) (Item, error) {
	item.ID = uuid.New()
	m.items[item.CartID] = append(m.items[item.CartID], item)
	return item, nil
}

func (m *memStore) UpdateItemQty(_ context.Context, itemID uuid.UUID, qty int, subtotal int64) error {
	for cartID, items := range m.items {
		for i, it := range items {
			if it.ID == itemID {
				items[i].Qty = qty
				items[i].Subtotal = subtotal
				m.items[cartID] = items
				return nil
			}
		}
	}
	return ErrNotFound
}

func (m *memStore) DeleteItem(_ context.Context, cartID, itemID uuid.UUID) error {
	items := m.items[cartID]
	for i, it := range items {
		if it.ID == itemID {
			m.items[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) ProductForCart(_ context.Context, productID uuid.UUID) (ProductInfo, error) {
	p, ok := m.products[productID]
	if !ok {
		return ProductInfo{}, ErrNotFound
	}
	return p, nil
}

func seedProduct(store *memStore, sellerID uuid.UUID, price int64) ProductInfo {
	p := ProductInfo{ID: uuid.New(), SellerID: sellerID, Title: "Producto", Price: price}
	store.products[p.ID] = p
	return p
}

func TestAddItemCreatesCartAndLine(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}
	userID := uuid.New()
	product := seedProduct(store, uuid.New(), 1500)

	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 2))

	items, err := svc.Items(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Qty)
	require.Equal(t, int64(1500), items[0].UnitPrice)
	require.Equal(t, int64(3000), items[0].Subtotal)
	require.Equal(t, product.SellerID, items[0].SellerID)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}
	userID := uuid.New()
	product := seedProduct(store, uuid.New(), 100)

	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 1))
	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 3))

	items, err := svc.Items(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 4, items[0].Qty)
	require.Equal(t, int64(400), items[0].Subtotal)
}

func TestAddItemRejectsNonPositiveQty(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateQtyUnknownItem(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}
	userID := uuid.New()
	product := seedProduct(store, uuid.New(), 100)
	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 1))

	err := svc.UpdateQty(context.Background(), userID, uuid.New(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotConvertsLines(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}
	userID := uuid.New()
	sellerA := uuid.New()
	sellerB := uuid.New()
	productA := seedProduct(store, sellerA, 200)
	productB := seedProduct(store, sellerB, 300)

	require.NoError(t, svc.AddItem(context.Background(), userID, productA.ID, 2))
	require.NoError(t, svc.AddItem(context.Background(), userID, productB.ID, 1))

	lines, err := svc.Snapshot(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, sellerA, lines[0].SellerID)
	require.Equal(t, 2, lines[0].Qty)
	require.Equal(t, int64(200), lines[0].UnitPrice)
	require.Equal(t, sellerB, lines[1].SellerID)
}

func TestSnapshotWithoutCartIsEmpty(t *testing.T) {
	store := newMemStore()
	svc := &Service{Store: store}

	lines, err := svc.Snapshot(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, lines)
}
