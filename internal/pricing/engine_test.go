package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func item(price string, qty int) Item {
	return Item{Qty: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestComputeNoDiscounts(t *testing.T) {
	summary := Compute([]Item{item("9.99", 2)}, nil, false)
	require.Equal(t, "19.98", summary.Total.StringFixed(2))
	require.Equal(t, "19.98", summary.Subtotal.StringFixed(2))
	require.True(t, summary.Discount.IsZero())
}

func TestComputeBOGOF(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{"pair pays for one", []Item{item("9.99", 2)}, "9.99"},
		{"qty three pays for two", []Item{item("9.99", 3)}, "19.98"},
		{"qty four pays for two", []Item{item("9.99", 4)}, "19.98"},
		{"applies per line", []Item{item("9.99", 2), item("30", 2)}, "39.99"},
		{"single unit unaffected", []Item{item("9.99", 2), item("30", 1)}, "39.99"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary := Compute(tc.items, []Identifier{DiscountBOGOF}, false)
			require.Equal(t, tc.want, summary.Total.StringFixed(2))
		})
	}
}

func TestComputeBulk(t *testing.T) {
	// (9.99 + 30) * 0.9 = 35.991, rounds half-up to 35.99.
	summary := Compute([]Item{item("9.99", 1), item("30", 1)}, []Identifier{DiscountBulk}, false)
	require.Equal(t, "35.99", summary.Total.StringFixed(2))
}

func TestComputeBulkThresholdExclusive(t *testing.T) {
	// Exactly 20 must not qualify for the bulk discount.
	summary := Compute([]Item{item("20", 1)}, []Identifier{DiscountBulk}, false)
	require.Equal(t, "20.00", summary.Total.StringFixed(2))

	summary = Compute([]Item{item("20.01", 1)}, []Identifier{DiscountBulk}, false)
	require.Equal(t, "18.01", summary.Total.StringFixed(2))
}

func TestComputeBulkAfterBOGOF(t *testing.T) {
	// BOGOF first: 9.99*2 + 30 - 9.99 = 39.99, then bulk: *0.9 = 35.991.
	summary := Compute(
		[]Item{item("9.99", 2), item("30", 1)},
		[]Identifier{DiscountBulk, DiscountBOGOF},
		false,
	)
	require.Equal(t, "35.99", summary.Total.StringFixed(2))
}

func TestComputeLoyalty(t *testing.T) {
	// 9.99 * 0.98 = 9.7902, rounds to 9.79.
	summary := Compute([]Item{item("9.99", 1)}, []Identifier{DiscountLoyalty}, true)
	require.Equal(t, "9.79", summary.Total.StringFixed(2))
}

func TestComputeLoyaltyRequiresFlag(t *testing.T) {
	summary := Compute([]Item{item("9.99", 1)}, []Identifier{DiscountLoyalty}, false)
	require.Equal(t, "9.99", summary.Total.StringFixed(2))
}

func TestComputeAllThree(t *testing.T) {
	// BOGOF: 30 + 9.99 = 39.99, bulk: 35.991, loyalty: 35.27118 -> 35.27.
	summary := Compute(
		[]Item{item("30", 1), item("9.99", 2)},
		[]Identifier{DiscountBOGOF, DiscountBulk, DiscountLoyalty},
		true,
	)
	require.Equal(t, "35.27", summary.Total.StringFixed(2))
	require.Equal(t, "49.98", summary.Subtotal.StringFixed(2))
	require.Equal(t, "14.71", summary.Discount.StringFixed(2))
}

func TestComputeActivationOrderIrrelevant(t *testing.T) {
	items := []Item{item("30", 1), item("9.99", 2)}
	forward := Compute(items, []Identifier{DiscountBOGOF, DiscountBulk, DiscountLoyalty}, true)
	reversed := Compute(items, []Identifier{DiscountLoyalty, DiscountBulk, DiscountBOGOF}, true)
	require.True(t, forward.Total.Equal(reversed.Total))
}

func TestComputeEmptyCart(t *testing.T) {
	summary := Compute(nil, []Identifier{DiscountBOGOF, DiscountBulk, DiscountLoyalty}, true)
	require.True(t, summary.Total.IsZero())
}

func TestComputeNeverNegative(t *testing.T) {
	summary := Compute([]Item{item("0", 5)}, Identifiers(), true)
	require.False(t, summary.Total.IsNegative())
}

func TestKnown(t *testing.T) {
	require.True(t, Known(DiscountBOGOF))
	require.True(t, Known(DiscountBulk))
	require.True(t, Known(DiscountLoyalty))
	require.False(t, Known("flash_sale"))
}

func TestIdentifiersOrder(t *testing.T) {
	require.Equal(t, []Identifier{DiscountBOGOF, DiscountBulk, DiscountLoyalty}, Identifiers())
}
