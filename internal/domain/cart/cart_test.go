package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/LCtech96/EmilyBoutique/internal/domain/cart"
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "emily-boutique-cart:s1"

// in-memory Store that can be switched into failure mode
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	writes  int
	failGet error
	failSet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return nil, false, s.failGet
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.writes++
	s.data[key] = value
	return nil
}

type reported struct {
	keys []string
	errs []error
}

func (r *reported) report(_ context.Context, key string, err error) {
	r.keys = append(r.keys, key)
	r.errs = append(r.errs, err)
}

func item(productID, size, color string, price string, qty int) model.CartLineItem {
	return model.CartLineItem{
		ProductID:     productID,
		Title:         "Jeans " + productID,
		Price:         decimal.RequireFromString(price),
		Image:         "https://cdn.example.com/" + productID + ".jpg",
		Quantity:      qty,
		SelectedSize:  size,
		SelectedColor: color,
	}
}

func ptr[T any](v T) *T { return &v }

func TestAddItem_AppendsWithDerivedID(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)

	c.AddItem(ctx, item("p1", "M", "Blu", "49.90", 1))
	c.AddItem(ctx, item("p2", "", "", "10.00", 2))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1-M-Blu", items[0].ID)
	assert.Equal(t, "p2-no-size-no-color", items[1].ID)
}

func TestAddItem_MergesSameIdentity(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)

	c.AddItem(ctx, item("p1", "M", "Red", "10.00", 1))
	second := item("p1", "M", "Red", "12.00", 2)
	second.Title = "renamed"
	c.AddItem(ctx, second)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	// the first snapshot wins
	assert.Equal(t, "Jeans p1", items[0].Title)
	assert.True(t, decimal.RequireFromString("10.00").Equal(items[0].Price))
}

func TestAddItem_DistinctVariantsAreDistinctLines(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)

	c.AddItem(ctx, item("p1", "S", "Red", "10", 1))
	c.AddItem(ctx, item("p1", "M", "Red", "10", 1))
	c.AddItem(ctx, item("p1", "M", "Black", "10", 1))

	assert.Len(t, c.Items(), 3)
}

func TestAddItem_NonPositiveQuantityIgnored(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := cart.New(testKey, store, nil)

	c.AddItem(ctx, item("p1", "", "", "10", 0))
	c.AddItem(ctx, item("p1", "", "", "10", -3))

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, store.writes)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := cart.New(testKey, store, nil)
	c.AddItem(ctx, item("p1", "", "", "10", 1))
	c.AddItem(ctx, item("p2", "", "", "10", 1))

	c.RemoveItem(ctx, "p1-no-size-no-color")
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	writes := store.writes
	c.RemoveItem(ctx, "does-not-exist")
	assert.Len(t, c.Items(), 1)
	assert.Equal(t, writes, store.writes)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "L", "", "5.50", 1))
	id := "p1-L-no-color"

	c.UpdateQuantity(ctx, id, 4)
	got, ok := c.Find(id)
	require.True(t, ok)
	assert.Equal(t, 4, got.Quantity)

	c.UpdateQuantity(ctx, "missing", 2)
	assert.Len(t, c.Items(), 1)
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	ctx := context.Background()
	for _, q := range []int{0, -1} {
		c := cart.New(testKey, newFakeStore(), nil)
		c.AddItem(ctx, item("p1", "", "", "5", 2))
		c.AddItem(ctx, item("p2", "", "", "5", 2))

		c.UpdateQuantity(ctx, "p1-no-size-no-color", q)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p2", items[0].ProductID)
	}
}

func TestUpdateItem_ShallowMerge(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "M", "Red", "10", 1))

	c.UpdateItem(ctx, "p1-M-Red", cart.Patch{Title: ptr("Gonna plissé"), Quantity: ptr(5)})

	got, ok := c.Find("p1-M-Red")
	require.True(t, ok)
	assert.Equal(t, "Gonna plissé", got.Title)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "M", got.SelectedSize)
}

func TestUpdateItem_VariantChangeRecomputesID(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "M", "Red", "10", 1))
	c.AddItem(ctx, item("p2", "", "", "10", 1))

	c.UpdateItem(ctx, "p1-M-Red", cart.Patch{SelectedSize: ptr("L")})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1-L-Red", items[0].ID)
	_, ok := c.Find("p1-M-Red")
	assert.False(t, ok)
}

func TestUpdateItem_VariantCollisionMerges(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "M", "Red", "10", 2))
	c.AddItem(ctx, item("p2", "", "", "10", 1))
	c.AddItem(ctx, item("p1", "L", "Red", "10", 3))

	c.UpdateItem(ctx, "p1-L-Red", cart.Patch{SelectedSize: ptr("M")})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1-M-Red", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestUpdateItem_ZeroQuantityRemovesAndMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "", "", "10", 1))

	c.UpdateItem(ctx, "missing", cart.Patch{Quantity: ptr(9)})
	assert.Len(t, c.Items(), 1)

	c.UpdateItem(ctx, "p1-no-size-no-color", cart.Patch{Quantity: ptr(0)})
	assert.Empty(t, c.Items())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "", "", "10", 1))

	c.Clear(ctx)
	assert.Empty(t, c.Items())
	assert.True(t, c.Total().IsZero())

	// clearing an empty cart is fine
	c.Clear(ctx)
	assert.Empty(t, c.Items())
}

func TestTotalAndCount(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	assert.True(t, c.Total().IsZero())

	c.AddItem(ctx, item("p1", "", "", "19.99", 3))
	c.AddItem(ctx, item("p2", "S", "", "0.10", 3))

	assert.Equal(t, "60.27", c.Total().StringFixed(2))
	assert.Equal(t, 6, c.Count())
}

func TestQuantitiesStayPositive(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)

	c.AddItem(ctx, item("p1", "", "", "1", 2))
	c.AddItem(ctx, item("p2", "", "", "1", 0))
	c.UpdateQuantity(ctx, "p1-no-size-no-color", -5)
	c.AddItem(ctx, item("p3", "", "", "1", 1))
	c.UpdateItem(ctx, "p3-no-size-no-color", cart.Patch{Quantity: ptr(-1)})
	c.AddItem(ctx, item("p4", "", "", "1", 4))

	for _, it := range c.Items() {
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
	assert.Len(t, c.Items(), 1)
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := cart.New(testKey, store, nil)
	c.AddItem(ctx, item("p1", "M", "Red", "49.90", 2))
	c.AddItem(ctx, item("p2", "", "Nero", "15", 1))

	reloaded := cart.Load(ctx, testKey, store, nil)

	assert.Equal(t, len(c.Items()), len(reloaded.Items()))
	for i, it := range c.Items() {
		got := reloaded.Items()[i]
		assert.Equal(t, it.ID, got.ID)
		assert.Equal(t, it.Quantity, got.Quantity)
		assert.Equal(t, it.SelectedColor, got.SelectedColor)
		assert.True(t, it.Price.Equal(got.Price))
	}
	assert.True(t, c.Total().Equal(reloaded.Total()))
}

func TestPersistence_WritesEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := cart.New(testKey, store, nil)

	c.AddItem(ctx, item("p1", "", "", "1", 1))
	c.UpdateQuantity(ctx, "p1-no-size-no-color", 3)
	c.UpdateItem(ctx, "p1-no-size-no-color", cart.Patch{Title: ptr("x")})
	c.RemoveItem(ctx, "p1-no-size-no-color")
	c.Clear(ctx)

	assert.Equal(t, 5, store.writes)
	items, err := cart.Decode(store.data[testKey])
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPersistence_NoopsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := cart.New(testKey, store, nil)

	c.AddItem(ctx, item("p1", "", "", "1", 0))
	c.RemoveItem(ctx, "missing")
	c.UpdateQuantity(ctx, "missing", 2)
	c.UpdateItem(ctx, "missing", cart.Patch{Title: ptr("x")})

	assert.Zero(t, store.writes)
}

func TestLoad_AbsentEntryIsEmpty(t *testing.T) {
	c := cart.Load(context.Background(), testKey, newFakeStore(), nil)
	assert.Empty(t, c.Items())
}

func TestLoad_LegacyNumericPrices(t *testing.T) {
	store := newFakeStore()
	store.data[testKey] = []byte(`{"state":{"items":[
		{"id":"p1-M-no-color","productId":"p1","title":"Giacca","price":89.5,"image":"/placeholder.jpg","quantity":1,"selectedSize":"M"},
		{"productId":"p2","title":"Borsa","price":20,"image":"","quantity":2},
		{"id":"broken","productId":"p3","title":"x","price":1,"image":"","quantity":0}
	]},"version":0}`)

	c := cart.Load(context.Background(), testKey, store, nil)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p2-no-size-no-color", items[1].ID)
	assert.Equal(t, "129.50", c.Total().StringFixed(2))
}

func TestLoad_DuplicateIdentitiesMerge(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.data[testKey] = []byte(`{"state":{"items":[
		{"productId":"p1","title":"Gonna","price":"10","image":"a.jpg","quantity":1},
		{"productId":"p1","title":"Gonna v2","price":"12","image":"b.jpg","quantity":2}
	]},"version":0}`)

	c := cart.Load(ctx, testKey, store, nil)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1-no-size-no-color", items[0].ID)
	assert.Equal(t, "Gonna", items[0].Title)
	assert.Equal(t, 3, items[0].Quantity)

	c.UpdateQuantity(ctx, "p1-no-size-no-color", 5)
	require.Len(t, c.Items(), 1)
	assert.True(t, decimal.NewFromInt(50).Equal(c.Total()))
}

func TestLoad_FailuresAreReportedNotFatal(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.failGet = errors.New("connection refused")
	r := &reported{}
	c := cart.Load(ctx, testKey, store, r.report)
	assert.Empty(t, c.Items())
	require.Len(t, r.errs, 1)
	assert.Equal(t, testKey, r.keys[0])

	corrupt := newFakeStore()
	corrupt.data[testKey] = []byte("{not json")
	r = &reported{}
	c = cart.Load(ctx, testKey, corrupt, r.report)
	assert.Empty(t, c.Items())
	assert.Len(t, r.errs, 1)
}

func TestPersistFailure_StateStaysAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.failSet = errors.New("quota exceeded")
	r := &reported{}
	c := cart.New(testKey, store, r.report)

	c.AddItem(ctx, item("p1", "", "", "10", 1))
	c.UpdateQuantity(ctx, "p1-no-size-no-color", 2)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Len(t, r.errs, 2)
	assert.ErrorContains(t, r.errs[0], "quota exceeded")
}

func TestItems_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := cart.New(testKey, newFakeStore(), nil)
	c.AddItem(ctx, item("p1", "", "", "10", 1))

	items := c.Items()
	items[0].Quantity = 99

	got, _ := c.Find("p1-no-size-no-color")
	assert.Equal(t, 1, got.Quantity)
}
