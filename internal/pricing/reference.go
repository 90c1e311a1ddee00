package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/enums"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

// ReferencePrice values one unit of a line for discount arithmetic: the
// line's own recorded price when it has one, otherwise the catalog's
// tier-appropriate display price, otherwise zero.
func ReferencePrice(item types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) decimal.Decimal {
	if item.UnitPrice.IsPositive() {
		return item.UnitPrice
	}
	if lookup == nil {
		return decimal.Zero
	}
	if product, ok := lookup.Product(item.ProductID); ok {
		return product.DisplayPrice(tier)
	}
	return decimal.Zero
}

// ReferenceValue is the reference price of the line times its quantity.
func ReferenceValue(item types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) decimal.Decimal {
	return ReferencePrice(item, lookup, tier).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums unit_price x quantity over the order's non-free lines.
func Subtotal(items []types.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.IsFree {
			continue
		}
		subtotal = subtotal.Add(item.LineValue())
	}
	return subtotal
}
