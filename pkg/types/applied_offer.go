package types

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AppliedOffer is the result of matching one offer against a set of line
// items: what it affects, how much currency discount it contributes before
// the per-item split, and which bonus items it grants.
type AppliedOffer struct {
	Offer              Offer
	AffectedProductIDs map[string]struct{}
	DiscountAmount     decimal.Decimal
	FreeItems          []BonusItem
}

// Affects reports whether the offer's discount touches the given product.
func (a AppliedOffer) Affects(productID string) bool {
	_, ok := a.AffectedProductIDs[productID]
	return ok
}

// AffectedProducts returns the affected product ids in stable order.
func (a AppliedOffer) AffectedProducts() []string {
	ids := make([]string, 0, len(a.AffectedProductIDs))
	for id := range a.AffectedProductIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OrderTotals is the engine's financial summary for one order.
type OrderTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	FinalTotal    decimal.Decimal `json:"final_total"`
	Savings       decimal.Decimal `json:"savings"`
}
