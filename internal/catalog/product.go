package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andriwidy/backend-troli/internal/common"
)

// Product is an immutable catalog record. SKU is the unique key; carts match
// line items by SKU equality, never by object identity.
type Product struct {
	SKU   string          `json:"sku"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Validate checks the record invariants: a non-empty SKU and a non-negative
// unit price.
func (p Product) Validate() error {
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("sku is required: %w", common.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", common.ErrInvalidInput)
	}
	return nil
}
