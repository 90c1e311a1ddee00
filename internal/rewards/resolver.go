package rewards

import (
	"github.com/angelmondragon/offers-engine/pkg/types"
)

// Resolve merges bonus items from the two provenance sources into one
// de-duplicated list: items computed from presently-matched offers first,
// then the snapshot persisted at order-placement time. Both sources can
// describe the same physical reward with different completeness of
// metadata, so entries sharing a (product, variant) key collapse into one
// record carrying the union of available display fields. Entries that end
// up with no resolvable display name are dropped rather than rendered
// blank. Output preserves first-occurrence order.
func Resolve(fromOffers, fromSnapshot []types.BonusItem, lookup types.ProductLookup) []types.BonusItem {
	merged := make(map[types.ItemKey]*types.BonusItem)
	var order []types.ItemKey

	add := func(item types.BonusItem) {
		key := item.Key()
		existing, ok := merged[key]
		if !ok {
			copied := item
			merged[key] = &copied
			order = append(order, key)
			return
		}
		fillMissing(existing, item)
	}

	for _, item := range fromOffers {
		add(item)
	}
	for _, item := range fromSnapshot {
		add(item)
	}

	result := make([]types.BonusItem, 0, len(order))
	for _, key := range order {
		item := merged[key]
		if item.Name == "" {
			resolveFromCatalog(item, lookup)
		}
		if item.Name == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		result = append(result, *item)
	}
	return result
}

// fillMissing copies fields from incoming into dst only where dst has no
// value yet; a populated field is never overwritten by an empty one.
func fillMissing(dst *types.BonusItem, incoming types.BonusItem) {
	if dst.Name == "" {
		dst.Name = incoming.Name
	}
	if dst.UnitPrice == nil && incoming.UnitPrice != nil {
		price := *incoming.UnitPrice
		dst.UnitPrice = &price
	}
	if len(dst.VariantAttributes) == 0 && len(incoming.VariantAttributes) > 0 {
		dst.VariantAttributes = incoming.VariantAttributes
	}
	if dst.Quantity < 1 && incoming.Quantity >= 1 {
		dst.Quantity = incoming.Quantity
	}
}

// resolveFromCatalog backfills display fields for an entry whose own
// records carried none.
func resolveFromCatalog(item *types.BonusItem, lookup types.ProductLookup) {
	if lookup == nil {
		return
	}
	product, ok := lookup.Product(item.ProductID)
	if !ok {
		return
	}
	item.Name = product.DisplayName("")
	if item.UnitPrice == nil {
		price := product.Price
		item.UnitPrice = &price
	}
	if len(item.VariantAttributes) == 0 && len(product.VariantAttributes) > 0 {
		item.VariantAttributes = product.VariantAttributes
	}
}
