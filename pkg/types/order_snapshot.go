package types

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/offers-engine/pkg/errors"
)

// OrderSnapshot carries the promotional fields persisted on an order row.
// AppliedOffers and FreeItems arrive either as JSON arrays or as JSON
// strings wrapping an array, depending on how the row was written; both
// forms decode, and unreadable payloads degrade to empty collections at
// the caller.
type OrderSnapshot struct {
	AppliedOffers      json.RawMessage  `json:"applied_offers,omitempty"`
	FreeItems          json.RawMessage  `json:"free_items,omitempty"`
	DiscountType       string           `json:"discount_type,omitempty"`
	DiscountValue      decimal.Decimal  `json:"discount_value,omitempty"`
	TotalAfterDiscount *decimal.Decimal `json:"total_after_discount,omitempty"`
}

// PersistedAppliedOffer is the loose shape of one applied-offer record
// written at order-placement time. Field types are deliberately forgiving;
// these rows outlive the offers that produced them.
type PersistedAppliedOffer struct {
	OfferID            string          `json:"offer_id"`
	Kind               string          `json:"kind"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	AffectedProductIDs []string        `json:"affected_product_ids"`
	FreeItems          []BonusItem     `json:"free_items"`
}

// LegacyDiscountAmount resolves the order-level discount expressed through
// the legacy discount_type/discount_value pair against the given subtotal.
func (s OrderSnapshot) LegacyDiscountAmount(subtotal decimal.Decimal) decimal.Decimal {
	if !s.DiscountValue.IsPositive() {
		return decimal.Zero
	}
	switch enums.DiscountType(s.DiscountType) {
	case enums.DiscountTypePercentage:
		return subtotal.Mul(s.DiscountValue).Div(decimal.NewFromInt(100))
	case enums.DiscountTypeFixed:
		return s.DiscountValue
	}
	return decimal.Zero
}

// DecodeAppliedOffers decodes the persisted applied_offers payload. A
// snapshot-coded error signals the payload was unreadable; callers treat
// that as an empty collection.
func DecodeAppliedOffers(raw json.RawMessage) ([]PersistedAppliedOffer, error) {
	payload, empty, err := unwrapSnapshotPayload(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSnapshot, err, "decode applied offers")
	}
	if empty {
		return nil, nil
	}
	var records []PersistedAppliedOffer
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSnapshot, err, "decode applied offers")
	}
	return records, nil
}

// DecodeBonusItems decodes the persisted free_items payload with the same
// tolerance as DecodeAppliedOffers.
func DecodeBonusItems(raw json.RawMessage) ([]BonusItem, error) {
	payload, empty, err := unwrapSnapshotPayload(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSnapshot, err, "decode free items")
	}
	if empty {
		return nil, nil
	}
	var items []BonusItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSnapshot, err, "decode free items")
	}
	return items, nil
}

// unwrapSnapshotPayload normalizes the two persisted encodings: a JSON
// array, or a JSON string whose content is the JSON array.
func unwrapSnapshotPayload(raw json.RawMessage) (json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true, nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, false, err
		}
		return unwrapSnapshotPayload(json.RawMessage(inner))
	}
	return trimmed, false, nil
}
