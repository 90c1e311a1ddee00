package offers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/internal/pricing"
	"github.com/angelmondragon/offers-engine/pkg/enums"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// Scope selects what an offer is being matched against: a whole order's
// line items, or a single product page.
type Scope struct {
	productID string
}

// ScopeOrder matches offers against the full set of line items.
func ScopeOrder() Scope {
	return Scope{}
}

// ScopeProduct matches offers against one product, for page-level
// relevance checks where the order is not known yet.
func ScopeProduct(productID string) Scope {
	return Scope{productID: productID}
}

// IsProduct reports whether the scope targets a single product.
func (s Scope) IsProduct() bool {
	return s.productID != ""
}

// Match evaluates every offer independently against the scope and returns
// the applicable ones with their affected products, contributed discount
// amount and granted bonus items. Offers that are inactive or outside
// their validity window never match. Effects are additive; no stacking
// priority exists between matched offers.
func Match(catalog []types.Offer, items []types.LineItem, scope Scope, lookup types.ProductLookup, tier enums.PriceTier, now time.Time) []types.AppliedOffer {
	var applied []types.AppliedOffer
	for _, offer := range catalog {
		if !offer.IsLive(now) {
			continue
		}
		var matched *types.AppliedOffer
		switch offer.Kind {
		case enums.OfferKindDiscount:
			matched = matchCatalogDiscount(offer, items, scope, lookup, tier)
		case enums.OfferKindProductDiscount:
			matched = matchProductDiscount(offer, items, scope, lookup, tier)
		case enums.OfferKindBuyGet:
			matched = matchBuyGet(offer, items, scope, lookup, tier)
		}
		if matched != nil {
			applied = append(applied, *matched)
		}
	}
	return applied
}

// matchCatalogDiscount handles the catalog-wide discount kind: relevant to
// every product on the order, or to the scoped product directly.
func matchCatalogDiscount(offer types.Offer, items []types.LineItem, scope Scope, lookup types.ProductLookup, tier enums.PriceTier) *types.AppliedOffer {
	if offer.Discount == nil {
		return nil
	}

	if scope.IsProduct() {
		affected := map[string]struct{}{scope.productID: {}}
		return &types.AppliedOffer{
			Offer:              offer,
			AffectedProductIDs: affected,
			DiscountAmount:     productDiscountAmount(*offer.Discount, scope.productID, lookup, tier),
		}
	}

	affected := make(map[string]struct{})
	affectedValue := decimal.Zero
	for _, item := range items {
		affected[item.ProductID] = struct{}{}
		if !item.IsFree {
			affectedValue = affectedValue.Add(pricing.ReferenceValue(item, lookup, tier))
		}
	}
	if len(affected) == 0 {
		return nil
	}

	return &types.AppliedOffer{
		Offer:              offer,
		AffectedProductIDs: affected,
		DiscountAmount:     discountAmount(*offer.Discount, affectedValue),
	}
}

// matchProductDiscount handles the single-product discount kind.
func matchProductDiscount(offer types.Offer, items []types.LineItem, scope Scope, lookup types.ProductLookup, tier enums.PriceTier) *types.AppliedOffer {
	if offer.Discount == nil || offer.Discount.LinkedProductID == "" {
		return nil
	}
	linked := offer.Discount.LinkedProductID

	if scope.IsProduct() {
		if scope.productID != linked {
			return nil
		}
		return &types.AppliedOffer{
			Offer:              offer,
			AffectedProductIDs: map[string]struct{}{linked: {}},
			DiscountAmount:     productDiscountAmount(*offer.Discount, linked, lookup, tier),
		}
	}

	linkedValue := decimal.Zero
	found := false
	for _, item := range items {
		if item.ProductID != linked {
			continue
		}
		found = true
		if !item.IsFree {
			linkedValue = linkedValue.Add(pricing.ReferenceValue(item, lookup, tier))
		}
	}
	if !found {
		return nil
	}

	return &types.AppliedOffer{
		Offer:              offer,
		AffectedProductIDs: map[string]struct{}{linked: {}},
		DiscountAmount:     discountAmount(*offer.Discount, linkedValue),
	}
}

// matchBuyGet handles the buy-X-get-Y kind. On a product page the offer is
// surfaced for both the qualifying and the rewarded product, since the
// buy-quantity condition cannot be checked there yet.
func matchBuyGet(offer types.Offer, items []types.LineItem, scope Scope, lookup types.ProductLookup, tier enums.PriceTier) *types.AppliedOffer {
	cfg := offer.BuyGet
	if cfg == nil {
		return nil
	}

	if scope.IsProduct() {
		if scope.productID != cfg.LinkedProductID && scope.productID != cfg.GetProductID {
			return nil
		}
		return buyGetPreview(offer, lookup, tier)
	}

	qualifyingQty := 0
	for _, item := range items {
		if !item.IsFree && item.ProductID == cfg.LinkedProductID {
			qualifyingQty += item.Quantity
		}
	}
	buyQty := cfg.BuyQuantity
	if buyQty < 1 {
		buyQty = 1
	}
	if qualifyingQty < buyQty {
		return nil
	}

	if cfg.RewardType == enums.RewardTypeFree {
		blocks := qualifyingQty / buyQty
		return &types.AppliedOffer{
			Offer:     offer,
			FreeItems: []types.BonusItem{rewardItem(cfg.GetProductID, blocks, lookup, tier)},
		}
	}

	// A non-free reward discounts the rewarded product's line instead of
	// granting it; without that line on the order there is nothing to apply.
	var rewarded *types.LineItem
	for i := range items {
		if !items[i].IsFree && items[i].ProductID == cfg.GetProductID {
			rewarded = &items[i]
			break
		}
	}
	if rewarded == nil {
		return nil
	}

	unit := pricing.ReferencePrice(*rewarded, lookup, tier)
	amount := rewardDiscountAmount(*cfg, unit)
	if !amount.IsPositive() {
		return nil
	}
	return &types.AppliedOffer{
		Offer:              offer,
		AffectedProductIDs: map[string]struct{}{cfg.GetProductID: {}},
		DiscountAmount:     amount,
	}
}

// buyGetPreview builds the "you may get X" page-level application.
func buyGetPreview(offer types.Offer, lookup types.ProductLookup, tier enums.PriceTier) *types.AppliedOffer {
	cfg := *offer.BuyGet
	if cfg.RewardType == enums.RewardTypeFree {
		return &types.AppliedOffer{
			Offer:     offer,
			FreeItems: []types.BonusItem{rewardItem(cfg.GetProductID, 1, lookup, tier)},
		}
	}

	unit := decimal.Zero
	if lookup != nil {
		if product, ok := lookup.Product(cfg.GetProductID); ok {
			unit = product.DisplayPrice(tier)
		}
	}
	return &types.AppliedOffer{
		Offer:              offer,
		AffectedProductIDs: map[string]struct{}{cfg.GetProductID: {}},
		DiscountAmount:     rewardDiscountAmount(cfg, unit),
	}
}

// rewardItem builds a bonus item record, caching display fields from the
// catalog when the product resolves.
func rewardItem(productID string, quantity int, lookup types.ProductLookup, tier enums.PriceTier) types.BonusItem {
	item := types.BonusItem{ProductID: productID, Quantity: quantity}
	if lookup == nil {
		return item
	}
	if product, ok := lookup.Product(productID); ok {
		item.Name = product.DisplayName("")
		price := product.DisplayPrice(tier)
		item.UnitPrice = &price
		if len(product.VariantAttributes) > 0 {
			item.VariantAttributes = product.VariantAttributes
		}
	}
	return item
}

// discountAmount turns a discount config into currency against the value
// the offer touches.
func discountAmount(cfg types.DiscountConfig, affectedValue decimal.Decimal) decimal.Decimal {
	switch cfg.Type {
	case enums.DiscountTypePercentage:
		return affectedValue.Mul(cfg.Percentage).Div(oneHundred)
	case enums.DiscountTypeFixed:
		return cfg.Amount
	}
	return decimal.Zero
}

// productDiscountAmount values a page-scoped discount against the single
// product's display price; an unresolvable product yields zero for the
// percentage form.
func productDiscountAmount(cfg types.DiscountConfig, productID string, lookup types.ProductLookup, tier enums.PriceTier) decimal.Decimal {
	if cfg.Type == enums.DiscountTypeFixed {
		return cfg.Amount
	}
	if lookup == nil {
		return decimal.Zero
	}
	if product, ok := lookup.Product(productID); ok {
		return discountAmount(cfg, product.DisplayPrice(tier))
	}
	return decimal.Zero
}

// rewardDiscountAmount values a non-free buy_get reward against one unit
// of the rewarded product, floored at zero.
func rewardDiscountAmount(cfg types.BuyGetConfig, unitPrice decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch cfg.RewardType {
	case enums.RewardTypePercentage:
		amount = unitPrice.Mul(cfg.RewardValue).Div(oneHundred)
	case enums.RewardTypeFixed:
		amount = cfg.RewardValue
	default:
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
