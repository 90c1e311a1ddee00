package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/offers-engine/pkg/errors"
)

func TestDecodeBonusItemsForms(t *testing.T) {
	t.Parallel()

	payload := `[{"product_id":"p1","variant_id":"red","quantity":2,"name":"Thing","unit_price":"9.50"}]`

	direct, err := DecodeBonusItems(json.RawMessage(payload))
	require.NoError(t, err)
	require.Len(t, direct, 1)
	require.Equal(t, "p1", direct[0].ProductID)
	require.Equal(t, "red", direct[0].VariantID)
	require.True(t, direct[0].UnitPrice.Equal(decimal.RequireFromString("9.50")))

	wrapped, err := json.Marshal(payload)
	require.NoError(t, err)
	stringEncoded, err := DecodeBonusItems(wrapped)
	require.NoError(t, err)
	require.Equal(t, direct, stringEncoded)
}

func TestDecodeBonusItemsEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "null", `""`, "  "} {
		items, err := DecodeBonusItems(json.RawMessage(raw))
		require.NoError(t, err, "raw=%q", raw)
		require.Empty(t, items, "raw=%q", raw)
	}
}

func TestDecodeAppliedOffersMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`"{not json`, `{not json`, `{"a":1}`, `"\"{broken\""`} {
		records, err := DecodeAppliedOffers(json.RawMessage(raw))
		require.Error(t, err, "raw=%q", raw)
		require.Nil(t, records, "raw=%q", raw)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "raw=%q", raw)
		require.Equal(t, pkgerrors.CodeSnapshot, typed.Code(), "raw=%q", raw)
	}
}

func TestDecodeAppliedOffersRecords(t *testing.T) {
	t.Parallel()

	payload := `[{"offer_id":"of-1","kind":"discount","discount_amount":13,` +
		`"affected_product_ids":["x","y"],` +
		`"free_items":[{"product_id":"z","quantity":1}]}]`

	records, err := DecodeAppliedOffers(json.RawMessage(payload))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "of-1", records[0].OfferID)
	require.True(t, records[0].DiscountAmount.Equal(decimal.NewFromInt(13)))
	require.Equal(t, []string{"x", "y"}, records[0].AffectedProductIDs)
	require.Len(t, records[0].FreeItems, 1)
}

func TestLegacyDiscountAmount(t *testing.T) {
	t.Parallel()

	subtotal := decimal.NewFromInt(200)

	pct := OrderSnapshot{DiscountType: "percentage", DiscountValue: decimal.NewFromInt(10)}
	require.True(t, pct.LegacyDiscountAmount(subtotal).Equal(decimal.NewFromInt(20)))

	fixed := OrderSnapshot{DiscountType: "fixed", DiscountValue: decimal.NewFromInt(35)}
	require.True(t, fixed.LegacyDiscountAmount(subtotal).Equal(decimal.NewFromInt(35)))

	none := OrderSnapshot{}
	require.True(t, none.LegacyDiscountAmount(subtotal).IsZero())

	unknown := OrderSnapshot{DiscountType: "mystery", DiscountValue: decimal.NewFromInt(5)}
	require.True(t, unknown.LegacyDiscountAmount(subtotal).IsZero())
}
