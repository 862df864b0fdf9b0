package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andriwidy/backend-troli/internal/cart"
	"github.com/andriwidy/backend-troli/internal/catalog"
	"github.com/andriwidy/backend-troli/internal/common"
	"github.com/andriwidy/backend-troli/internal/pricing"
)

func product(sku, title, price string) catalog.Product {
	return catalog.Product{SKU: sku, Title: title, Price: decimal.RequireFromString(price)}
}

func TestAddItemMergesBySKU(t *testing.T) {
	c := &cart.Cart{}
	p := product("123456", "Product 1", "9.99")

	require.NoError(t, c.AddItem(p, 1))
	require.NoError(t, c.AddItem(p, 2))

	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Qty)
}

func TestAddItemRejectsNonPositiveQty(t *testing.T) {
	c := &cart.Cart{}
	p := product("123456", "Product 1", "9.99")

	err := c.AddItem(p, 0)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	// Precondition failures must not leave partial state behind.
	require.Empty(t, c.Items)
}

func TestRemoveItemDecrementsAndDeletes(t *testing.T) {
	c := &cart.Cart{}
	p := product("123456", "Product 1", "9.99")
	require.NoError(t, c.AddItem(p, 3))

	require.NoError(t, c.RemoveItem("123456", 2))
	item, ok := c.FindItem("123456")
	require.True(t, ok)
	require.Equal(t, 1, item.Qty)

	require.NoError(t, c.RemoveItem("123456", 1))
	_, ok = c.FindItem("123456")
	require.False(t, ok)
	require.Empty(t, c.Items)
}

func TestRemoveItemAbsentProductIsNoOp(t *testing.T) {
	c := &cart.Cart{}
	require.NoError(t, c.AddItem(product("123456", "Product 1", "9.99"), 1))

	require.NoError(t, c.RemoveItem("999999", 1))
	require.Len(t, c.Items, 1)
}

func TestRemoveItemRejectsNonPositiveQty(t *testing.T) {
	c := &cart.Cart{}
	require.NoError(t, c.AddItem(product("123456", "Product 1", "9.99"), 2))

	require.ErrorIs(t, c.RemoveItem("123456", 0), common.ErrInvalidInput)
	require.Equal(t, 2, c.Items[0].Qty)
}

func TestFindItemMatchesBySKUEquality(t *testing.T) {
	c := &cart.Cart{}
	require.NoError(t, c.AddItem(product("123456", "Product 1", "9.99"), 1))

	// A distinct value with the same SKU must match.
	item, ok := c.FindItem(product("123456", "Renamed", "9.99").SKU)
	require.True(t, ok)
	require.Equal(t, "Product 1", item.Product.Title)
}

func TestAddDiscountIdempotent(t *testing.T) {
	c := &cart.Cart{}
	require.NoError(t, c.AddDiscount(pricing.DiscountBOGOF))
	require.NoError(t, c.AddDiscount(pricing.DiscountBOGOF))
	require.Equal(t, []pricing.Identifier{pricing.DiscountBOGOF}, c.Discounts)
}

func TestAddDiscountRejectsUnknownIdentifier(t *testing.T) {
	c := &cart.Cart{}
	err := c.AddDiscount("flash_sale")
	require.ErrorIs(t, err, common.ErrInvalidInput)
	require.Empty(t, c.Discounts)
}

func TestRemoveDiscountAbsentFails(t *testing.T) {
	c := &cart.Cart{}
	require.ErrorIs(t, c.RemoveDiscount(pricing.DiscountBulk), common.ErrNotFound)

	require.NoError(t, c.AddDiscount(pricing.DiscountBulk))
	require.NoError(t, c.RemoveDiscount(pricing.DiscountBulk))
	require.Empty(t, c.Discounts)
}

func TestEmptyClearsItemsAndDiscounts(t *testing.T) {
	c := &cart.Cart{}
	require.NoError(t, c.AddItem(product("123456", "Product 1", "9.99"), 2))
	require.NoError(t, c.AddDiscount(pricing.DiscountBOGOF))

	c.Empty()
	require.Empty(t, c.Items)
	require.Empty(t, c.Discounts)
}
