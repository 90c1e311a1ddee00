package types

import "github.com/shopspring/decimal"

// BonusItem is a reward item granted by an offer or recorded on an order.
// Two records describe the same logical reward iff their ProductID and
// VariantID match; quantity and the cached display fields are not identity.
type BonusItem struct {
	ProductID         string            `json:"product_id"`
	VariantID         string            `json:"variant_id,omitempty"`
	Quantity          int               `json:"quantity"`
	Name              string            `json:"name,omitempty"`
	UnitPrice         *decimal.Decimal  `json:"unit_price,omitempty"`
	VariantAttributes map[string]string `json:"variant_attributes,omitempty"`
}

// Key returns the de-duplication key for the bonus item.
func (b BonusItem) Key() ItemKey {
	return ItemKey{ProductID: b.ProductID, VariantID: b.VariantID}
}
