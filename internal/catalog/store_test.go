package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andriwidy/backend-troli/internal/catalog"
	"github.com/andriwidy/backend-troli/internal/common"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := catalog.NewStore()

	p := catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}
	require.NoError(t, store.Create(p))

	got, err := store.Get("123456")
	require.NoError(t, err)
	require.Equal(t, "Product 1", got.Title)
	require.True(t, got.Price.Equal(p.Price))
}

func TestStoreCreateDuplicateSKU(t *testing.T) {
	store := catalog.NewStore()
	p := catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}
	require.NoError(t, store.Create(p))

	err := store.Create(p)
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrConflict))
}

func TestStoreCreateValidation(t *testing.T) {
	store := catalog.NewStore()

	err := store.Create(catalog.Product{SKU: "  ", Title: "Empty"})
	require.True(t, errors.Is(err, common.ErrInvalidInput))

	err = store.Create(catalog.Product{SKU: "123456", Title: "Negative", Price: decimal.RequireFromString("-1")})
	require.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestStoreGetMissing(t *testing.T) {
	store := catalog.NewStore()

	_, err := store.Get("nope")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestStoreListOrderedBySKU(t *testing.T) {
	store := catalog.NewStore()
	for _, sku := range []string{"567890", "123456", "345678"} {
		require.NoError(t, store.Create(catalog.Product{SKU: sku, Title: "p-" + sku, Price: decimal.RequireFromString("2.00")}))
	}

	list := store.List()
	require.Len(t, list, 3)
	require.Equal(t, "123456", list[0].SKU)
	require.Equal(t, "345678", list[1].SKU)
	require.Equal(t, "567890", list[2].SKU)
}

func TestStoreDelete(t *testing.T) {
	store := catalog.NewStore()
	require.NoError(t, store.Create(catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}))

	require.NoError(t, store.Delete("123456"))
	_, err := store.Get("123456")
	require.True(t, errors.Is(err, common.ErrNotFound))

	err = store.Delete("123456")
	require.True(t, errors.Is(err, common.ErrNotFound))
}
