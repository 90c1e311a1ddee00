package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/enums"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

// Allocate splits every applied offer's discount amount into a per-line
// map. Percentage and fixed discounts are allocated proportionally to each
// affected line's share of the total affected value, so the shares of one
// offer sum back to its discount amount. buy_get reward discounts are not
// split: they land on the rewarded product's lines, evenly when that
// product appears as several lines.
//
// After accumulation the total for any line is clipped to the line's own
// reference value. The clip does not renormalize other offers' shares, so
// overlapping offers can leave the allocated sum slightly below the sum of
// offer amounts; callers display the clipped figures as-is.
func Allocate(applied []types.AppliedOffer, items []types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) map[types.ItemKey]decimal.Decimal {
	result := make(map[types.ItemKey]decimal.Decimal)

	for _, offer := range applied {
		switch offer.Offer.Kind {
		case enums.OfferKindDiscount, enums.OfferKindProductDiscount:
			allocateProportional(result, offer, items, lookup, tier)
		case enums.OfferKindBuyGet:
			allocateReward(result, offer, items, lookup, tier)
		}
	}

	clipToLineValues(result, items, lookup, tier)
	return result
}

func allocateProportional(result map[types.ItemKey]decimal.Decimal, offer types.AppliedOffer, items []types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) {
	if !offer.DiscountAmount.IsPositive() {
		return
	}

	totalValue := decimal.Zero
	for _, item := range items {
		if item.IsFree || !offer.Affects(item.ProductID) {
			continue
		}
		totalValue = totalValue.Add(ReferenceValue(item, lookup, tier))
	}
	if totalValue.IsZero() {
		return
	}

	for _, item := range items {
		if item.IsFree || !offer.Affects(item.ProductID) {
			continue
		}
		value := ReferenceValue(item, lookup, tier)
		if value.IsZero() {
			continue
		}
		share := offer.DiscountAmount.Mul(value).Div(totalValue)
		key := item.Key()
		result[key] = result[key].Add(share)
	}
}

func allocateReward(result map[types.ItemKey]decimal.Decimal, offer types.AppliedOffer, items []types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) {
	if offer.Offer.BuyGet == nil || !offer.DiscountAmount.IsPositive() {
		return
	}

	var targets []types.LineItem
	for _, item := range items {
		if !item.IsFree && item.ProductID == offer.Offer.BuyGet.GetProductID {
			targets = append(targets, item)
		}
	}
	if len(targets) == 0 {
		return
	}

	perLine := offer.DiscountAmount.Div(decimal.NewFromInt(int64(len(targets))))
	for _, item := range targets {
		share := perLine
		if bound := ReferenceValue(item, lookup, tier); share.GreaterThan(bound) {
			share = bound
		}
		key := item.Key()
		result[key] = result[key].Add(share)
	}
}

// clipToLineValues bounds each line's accumulated discount by the line's
// reference value and floors it at zero.
func clipToLineValues(result map[types.ItemKey]decimal.Decimal, items []types.LineItem, lookup types.ProductLookup, tier enums.PriceTier) {
	caps := make(map[types.ItemKey]decimal.Decimal, len(items))
	for _, item := range items {
		if item.IsFree {
			continue
		}
		key := item.Key()
		caps[key] = caps[key].Add(ReferenceValue(item, lookup, tier))
	}

	for key, total := range result {
		if total.IsNegative() {
			result[key] = decimal.Zero
			continue
		}
		if bound, ok := caps[key]; ok && total.GreaterThan(bound) {
			result[key] = bound
		}
	}
}
