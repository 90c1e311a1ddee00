package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/pkg/types"
)

func TestNewIndexesByID(t *testing.T) {
	t.Parallel()

	cat := New([]types.ProductSnapshot{
		{ID: "p1", Names: map[string]string{"en": "First"}, Price: decimal.NewFromInt(10)},
		{ID: ""},
		{ID: "p1", Names: map[string]string{"en": "First, updated"}, Price: decimal.NewFromInt(12)},
	})

	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	product, ok := cat.Product("p1")
	if !ok {
		t.Fatal("expected p1 to resolve")
	}
	if got := product.DisplayName("en"); got != "First, updated" {
		t.Fatalf("DisplayName = %q, want last write to win", got)
	}
	if _, ok := cat.Product("missing"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestProductReturnsCopy(t *testing.T) {
	t.Parallel()

	cat := New([]types.ProductSnapshot{
		{ID: "p1", Names: map[string]string{"en": "First"}, Price: decimal.NewFromInt(10)},
	})

	first, _ := cat.Product("p1")
	first.Price = decimal.NewFromInt(999)

	second, _ := cat.Product("p1")
	if !second.Price.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("stored price mutated to %s", second.Price)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"p1","names":{"en":"Widget"},"price":"19.99"},
		{"id":"p2","names":{"de":"Teil"},"price":"5","wholesale_price":"3.5"}
	]`
	cat, err := Load(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	product, ok := cat.Product("p1")
	if !ok {
		t.Fatal("expected p1 to resolve")
	}
	if !product.Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("price = %s", product.Price)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	if _, err := Load(strings.NewReader(`{"not":"an array"`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile("testdata/does-not-exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
