package pricing

import (
	"github.com/shopspring/decimal"
)

// Identifier names a discount rule recognised by the engine.
type Identifier string

// The full set of discount rules. The declaration order here is also the
// application order: bulk is evaluated against the post-BOGOF total and
// loyalty against the post-bulk total.
const (
	DiscountBOGOF   Identifier = "bogof_discount"
	DiscountBulk    Identifier = "bulk_discount"
	DiscountLoyalty Identifier = "loyalty_discount"
)

var (
	bulkThreshold = decimal.NewFromInt(20)
	bulkRate      = decimal.NewFromFloat(0.9)
	loyaltyRate   = decimal.NewFromFloat(0.98)
)

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice decimal.Decimal
}

// Summary aggregates computed pricing components. Subtotal and Total are
// rounded to two decimal places; Discount is their difference.
type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type ruleFunc func(items []Item, running decimal.Decimal, loyal bool) decimal.Decimal

type rule struct {
	ID    Identifier
	Apply ruleFunc
}

// rules is iterated in order on every computation; a rule runs only when its
// identifier is present in the active set.
var rules = []rule{
	{DiscountBOGOF, applyBOGOF},
	{DiscountBulk, applyBulk},
	{DiscountLoyalty, applyLoyalty},
}

// Known reports whether id names a recognised discount rule.
func Known(id Identifier) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Identifiers returns the recognised discount identifiers in application order.
func Identifiers() []Identifier {
	out := make([]Identifier, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.ID)
	}
	return out
}

// Compute calculates cart totals. Rules in active are applied in the fixed
// engine order regardless of the order they were enabled in; unknown
// identifiers are ignored. The final total never goes below zero.
func Compute(items []Item, active []Identifier, loyal bool) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}

	enabled := make(map[Identifier]struct{}, len(active))
	for _, id := range active {
		enabled[id] = struct{}{}
	}

	total := subtotal
	for _, r := range rules {
		if _, ok := enabled[r.ID]; !ok {
			continue
		}
		total = r.Apply(items, total, loyal)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	roundedSubtotal := subtotal.Round(2)
	roundedTotal := total.Round(2)
	return Summary{
		Subtotal: roundedSubtotal,
		Discount: roundedSubtotal.Sub(roundedTotal),
		Total:    roundedTotal,
	}
}

// applyBOGOF subtracts the price of every second unit per line item. A line
// with quantity n pays for ceil(n/2) units; lines with quantity <= 1 are
// unaffected.
func applyBOGOF(items []Item, running decimal.Decimal, _ bool) decimal.Decimal {
	for _, it := range items {
		if it.Qty <= 1 {
			continue
		}
		free := int64(it.Qty / 2)
		running = running.Sub(it.UnitPrice.Mul(decimal.NewFromInt(free)))
	}
	return running
}

// applyBulk takes 10% off when the running total strictly exceeds the
// threshold. Exactly 20 does not qualify.
func applyBulk(_ []Item, running decimal.Decimal, _ bool) decimal.Decimal {
	if running.GreaterThan(bulkThreshold) {
		return running.Mul(bulkRate)
	}
	return running
}

// applyLoyalty takes 2% off for loyalty members.
func applyLoyalty(_ []Item, running decimal.Decimal, loyal bool) decimal.Decimal {
	if loyal {
		return running.Mul(loyaltyRate)
	}
	return running
}
