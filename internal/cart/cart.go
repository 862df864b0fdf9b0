package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andriwidy/backend-troli/internal/catalog"
	"github.com/andriwidy/backend-troli/internal/common"
	"github.com/andriwidy/backend-troli/internal/pricing"
)

// LineItem pairs a product with a quantity. Quantity is always >= 1; a line
// whose quantity drops below 1 is removed from the cart, never stored.
type LineItem struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Cart is an ordered collection of line items keyed uniquely by product SKU,
// plus the set of discount identifiers currently enabled. The total is never
// stored; it is recomputed from the current items and discounts on demand.
//
// A cart has a single logical owner. The store guards its map of carts, but
// an individual cart must not be mutated by two callers at once.
type Cart struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"userId"`
	Items     []LineItem           `json:"items"`
	Discounts []pricing.Identifier `json:"discounts"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// AddItem inserts the product or increments the existing line matched by SKU.
func (c *Cart) AddItem(p catalog.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("qty must be positive: %w", common.ErrInvalidInput)
	}
	for i := range c.Items {
		if c.Items[i].Product.SKU == p.SKU {
			c.Items[i].Qty += qty
			return nil
		}
	}
	c.Items = append(c.Items, LineItem{Product: p, Qty: qty})
	return nil
}

// RemoveItem decrements the line matched by SKU, deleting it when the
// quantity drops below 1. Removing a product that is not in the cart is a
// silent no-op.
func (c *Cart) RemoveItem(sku string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("qty must be positive: %w", common.ErrInvalidInput)
	}
	for i := range c.Items {
		if c.Items[i].Product.SKU != sku {
			continue
		}
		c.Items[i].Qty -= qty
		if c.Items[i].Qty < 1 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return nil
	}
	return nil
}

// FindItem returns the line item matching the SKU, if present.
func (c *Cart) FindItem(sku string) (LineItem, bool) {
	for _, it := range c.Items {
		if it.Product.SKU == sku {
			return it, true
		}
	}
	return LineItem{}, false
}

// AddDiscount enables a discount rule. Enabling an already-active rule is
// idempotent; an unrecognised identifier is rejected to surface caller typos.
func (c *Cart) AddDiscount(id pricing.Identifier) error {
	if !pricing.Known(id) {
		return fmt.Errorf("unknown discount %q: %w", id, common.ErrInvalidInput)
	}
	for _, active := range c.Discounts {
		if active == id {
			return nil
		}
	}
	c.Discounts = append(c.Discounts, id)
	return nil
}

// RemoveDiscount disables a discount rule. Removing a rule that is not
// active is a caller logic error and fails explicitly.
func (c *Cart) RemoveDiscount(id pricing.Identifier) error {
	for i, active := range c.Discounts {
		if active == id {
			c.Discounts = append(c.Discounts[:i], c.Discounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("discount %q not active: %w", id, common.ErrNotFound)
}

// Empty clears all items and active discounts.
func (c *Cart) Empty() {
	c.Items = nil
	c.Discounts = nil
}

// PricingItems converts the cart lines into the engine's input shape.
func (c *Cart) PricingItems() []pricing.Item {
	items := make([]pricing.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, pricing.Item{Qty: it.Qty, UnitPrice: it.Product.Price})
	}
	return items
}
