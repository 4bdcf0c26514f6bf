// Package cart holds the per-session shopping cart container.
//
// A Cart is not safe for concurrent use; callers serialise access per session.
// Every mutation is written through to a Store under a single key. Store
// failures never fail an operation: the in-memory state stays authoritative
// and the failure is handed to a FailureReporter.
package cart

import (
	"context"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Store interface {
	// Get reports found=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

type FailureReporter func(ctx context.Context, key string, err error)

// Patch is a partial update of a line; nil fields are left untouched.
type Patch struct {
	ProductID     *string
	Title         *string
	Price         *decimal.Decimal
	Image         *string
	Quantity      *int
	SelectedSize  *string
	SelectedColor *string
}

type Cart struct {
	key    string
	store  Store
	report FailureReporter
	items  []model.CartLineItem
}

func New(key string, store Store, report FailureReporter) *Cart {
	if report == nil {
		report = func(context.Context, string, error) {}
	}
	return &Cart{key: key, store: store, report: report, items: []model.CartLineItem{}}
}

// Load builds a cart from the persisted entry. A missing entry yields an
// empty cart; an unreadable one is reported and also yields an empty cart.
func Load(ctx context.Context, key string, store Store, report FailureReporter) *Cart {
	c := New(key, store, report)

	data, found, err := store.Get(ctx, key)
	if err != nil {
		c.report(ctx, key, errors.Wrap(err, "load cart"))
		return c
	}
	if !found {
		return c
	}

	items, err := Decode(data)
	if err != nil {
		c.report(ctx, key, errors.Wrap(err, "decode cart"))
		return c
	}
	c.items = items
	return c
}

func (c *Cart) Key() string { return c.key }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []model.CartLineItem {
	out := make([]model.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Find(id string) (model.CartLineItem, bool) {
	return lo.Find(c.items, func(it model.CartLineItem) bool { return it.ID == id })
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	return lo.SumBy(c.items, func(it model.CartLineItem) int { return it.Quantity })
}

func (c *Cart) Total() decimal.Decimal {
	return lo.Reduce(c.items, func(sum decimal.Decimal, it model.CartLineItem, _ int) decimal.Decimal {
		return sum.Add(it.Subtotal())
	}, decimal.Zero)
}

// AddItem merges the candidate into the line with the same identity, or
// appends it. Quantities <= 0 are ignored.
func (c *Cart) AddItem(ctx context.Context, candidate model.CartLineItem) {
	if candidate.Quantity <= 0 {
		return
	}

	id := candidate.Identity()
	if _, idx, ok := lo.FindIndexOf(c.items, func(it model.CartLineItem) bool { return it.ID == id }); ok {
		c.items[idx].Quantity += candidate.Quantity
	} else {
		candidate.ID = id
		c.items = append(c.items, candidate)
	}
	c.persist(ctx)
}

func (c *Cart) RemoveItem(ctx context.Context, id string) {
	if _, ok := c.Find(id); !ok {
		return
	}
	c.items = lo.Filter(c.items, func(it model.CartLineItem, _ int) bool { return it.ID != id })
	c.persist(ctx)
}

// UpdateQuantity sets the quantity of a line; q <= 0 removes it.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, id)
		return
	}

	_, idx, ok := lo.FindIndexOf(c.items, func(it model.CartLineItem) bool { return it.ID == id })
	if !ok {
		return
	}
	c.items[idx].Quantity = quantity
	c.persist(ctx)
}

// UpdateItem applies a partial update. When the patch changes the product or
// a variant the identity is recomputed; if another line already has that
// identity it absorbs this line's quantity and this line is dropped.
func (c *Cart) UpdateItem(ctx context.Context, id string, patch Patch) {
	_, idx, ok := lo.FindIndexOf(c.items, func(it model.CartLineItem) bool { return it.ID == id })
	if !ok {
		return
	}

	updated := patch.applyTo(c.items[idx])
	if updated.Quantity <= 0 {
		c.RemoveItem(ctx, id)
		return
	}

	newID := updated.Identity()
	updated.ID = newID
	if newID != id {
		if _, other, exists := lo.FindIndexOf(c.items, func(it model.CartLineItem) bool { return it.ID == newID }); exists {
			c.items[other].Quantity += updated.Quantity
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			c.persist(ctx)
			return
		}
	}

	c.items[idx] = updated
	c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.items = []model.CartLineItem{}
	c.persist(ctx)
}

func (p Patch) applyTo(it model.CartLineItem) model.CartLineItem {
	if p.ProductID != nil {
		it.ProductID = *p.ProductID
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.SelectedSize != nil {
		it.SelectedSize = *p.SelectedSize
	}
	if p.SelectedColor != nil {
		it.SelectedColor = *p.SelectedColor
	}
	return it
}

func (c *Cart) persist(ctx context.Context) {
	data, err := Encode(c.items)
	if err != nil {
		c.report(ctx, c.key, errors.Wrap(err, "encode cart"))
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.report(ctx, c.key, errors.Wrapf(err, "persist cart %s", c.key))
	}
}
