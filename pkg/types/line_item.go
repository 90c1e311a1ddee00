package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/enums"
)

// ItemKey identifies a logical line or bonus entry. VariantID is the empty
// string when the product has no variant.
type ItemKey struct {
	ProductID string
	VariantID string
}

// LineItem is one product line on an order. UnitPrice is the price actually
// charged, already tier-adjusted by the caller; a zero UnitPrice means the
// line carries no recorded price of its own.
type LineItem struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsFree    bool            `json:"is_free,omitempty"`
}

// Key returns the allocation key for the line.
func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, VariantID: li.VariantID}
}

// LineValue is the line's recorded value: unit price times quantity.
func (li LineItem) LineValue() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ProductSnapshot is the read-only catalog projection the engine consumes.
type ProductSnapshot struct {
	ID                string            `json:"id"`
	Names             map[string]string `json:"names,omitempty"`
	Descriptions      map[string]string `json:"descriptions,omitempty"`
	Price             decimal.Decimal   `json:"price"`
	OriginalPrice     *decimal.Decimal  `json:"original_price,omitempty"`
	WholesalePrice    *decimal.Decimal  `json:"wholesale_price,omitempty"`
	VariantAttributes map[string]string `json:"variant_attributes,omitempty"`
}

// DisplayName returns the name for the locale, falling back to English and
// then to any populated localization.
func (p ProductSnapshot) DisplayName(locale string) string {
	if name := p.Names[locale]; name != "" {
		return name
	}
	if name := p.Names["en"]; name != "" {
		return name
	}
	for _, name := range p.Names {
		if name != "" {
			return name
		}
	}
	return ""
}

// DisplayPrice selects the tier-appropriate catalog price.
func (p ProductSnapshot) DisplayPrice(tier enums.PriceTier) decimal.Decimal {
	if tier == enums.PriceTierWholesale && p.WholesalePrice != nil && p.WholesalePrice.IsPositive() {
		return *p.WholesalePrice
	}
	return p.Price
}

// ProductLookup resolves catalog snapshots. Absence of a product is a
// normal, non-fatal case; implementations never error and never block.
type ProductLookup interface {
	Product(productID string) (*ProductSnapshot, bool)
}

// ProductLookupFunc adapts a function to the ProductLookup interface.
type ProductLookupFunc func(productID string) (*ProductSnapshot, bool)

// Product implements ProductLookup.
func (fn ProductLookupFunc) Product(productID string) (*ProductSnapshot, bool) {
	return fn(productID)
}

// NoopProductLookup returns a lookup that never resolves any product.
func NoopProductLookup() ProductLookup {
	return ProductLookupFunc(func(string) (*ProductSnapshot, bool) {
		return nil, false
	})
}
