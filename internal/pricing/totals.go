package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/types"
)

// ComputeTotals derives the order's financial summary. perItem is the
// allocated discount map; orderLevelDiscount folds in any legacy
// order-level discount. When persistedTotal is supplied it is authoritative
// for the final total and the discount is re-derived from it, so the
// "you saved X" figure stays consistent with the stored truth even if the
// originating offers have since changed or expired.
func ComputeTotals(items []types.LineItem, perItem map[types.ItemKey]decimal.Decimal, orderLevelDiscount decimal.Decimal, persistedTotal *decimal.Decimal) types.OrderTotals {
	subtotal := Subtotal(items)

	totalDiscount := orderLevelDiscount
	if totalDiscount.IsNegative() {
		totalDiscount = decimal.Zero
	}
	for _, share := range perItem {
		totalDiscount = totalDiscount.Add(share)
	}

	finalTotal := subtotal.Sub(totalDiscount)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}

	if persistedTotal != nil {
		finalTotal = *persistedTotal
		totalDiscount = subtotal.Sub(finalTotal)
		if totalDiscount.IsNegative() {
			totalDiscount = decimal.Zero
		}
	}

	return types.OrderTotals{
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount,
		FinalTotal:    finalTotal,
		Savings:       totalDiscount,
	}
}
