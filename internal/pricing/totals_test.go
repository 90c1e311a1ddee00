package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/types"
)

func TestComputeTotalsBasic(t *testing.T) {
	t.Parallel()

	items := []types.LineItem{
		{ProductID: "x", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		{ProductID: "y", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		{ProductID: "z", Quantity: 1, UnitPrice: decimal.NewFromInt(99), IsFree: true},
	}
	perItem := map[types.ItemKey]decimal.Decimal{
		{ProductID: "x"}: decimal.NewFromInt(10),
		{ProductID: "y"}: decimal.NewFromInt(3),
	}

	totals := ComputeTotals(items, perItem, decimal.Zero, nil)
	if !totals.Subtotal.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("free lines stay out of the subtotal, got %s", totals.Subtotal)
	}
	if !totals.TotalDiscount.Equal(decimal.NewFromInt(13)) {
		t.Fatalf("expected discount 13, got %s", totals.TotalDiscount)
	}
	if !totals.FinalTotal.Equal(decimal.NewFromInt(117)) {
		t.Fatalf("expected final 117, got %s", totals.FinalTotal)
	}
	if !totals.Savings.Equal(totals.TotalDiscount) {
		t.Fatalf("savings mirrors the discount, got %s", totals.Savings)
	}
}

func TestComputeTotalsFloorsAtZero(t *testing.T) {
	t.Parallel()

	items := []types.LineItem{{ProductID: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}
	perItem := map[types.ItemKey]decimal.Decimal{{ProductID: "x"}: decimal.NewFromInt(25)}

	totals := ComputeTotals(items, perItem, decimal.Zero, nil)
	if !totals.FinalTotal.IsZero() {
		t.Fatalf("final total never goes negative, got %s", totals.FinalTotal)
	}
}

func TestComputeTotalsLegacyOrderLevelDiscount(t *testing.T) {
	t.Parallel()

	items := []types.LineItem{{ProductID: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(200)}}

	totals := ComputeTotals(items, nil, decimal.NewFromInt(20), nil)
	if !totals.TotalDiscount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected order-level discount 20, got %s", totals.TotalDiscount)
	}
	if !totals.FinalTotal.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected final 180, got %s", totals.FinalTotal)
	}
}

func TestComputeTotalsPersistedTotalWins(t *testing.T) {
	t.Parallel()

	items := []types.LineItem{
		{ProductID: "x", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		{ProductID: "y", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
	}
	// Recomputation would say 13, but the order was persisted with 90.
	perItem := map[types.ItemKey]decimal.Decimal{{ProductID: "x"}: decimal.NewFromInt(13)}
	persisted := decimal.NewFromInt(90)

	totals := ComputeTotals(items, perItem, decimal.Zero, &persisted)
	if !totals.FinalTotal.Equal(persisted) {
		t.Fatalf("persisted total is authoritative, got %s", totals.FinalTotal)
	}
	if !totals.TotalDiscount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("discount re-derived from persisted total, got %s", totals.TotalDiscount)
	}

	// A persisted total above the subtotal clamps savings at zero.
	high := decimal.NewFromInt(500)
	totals = ComputeTotals(items, perItem, decimal.Zero, &high)
	if !totals.TotalDiscount.IsZero() {
		t.Fatalf("expected zero discount, got %s", totals.TotalDiscount)
	}
	if !totals.FinalTotal.Equal(high) {
		t.Fatalf("persisted total still wins, got %s", totals.FinalTotal)
	}
}
