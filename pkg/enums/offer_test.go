package enums

import "testing"

func TestParseOfferKind(t *testing.T) {
	t.Parallel()

	for _, kind := range validOfferKinds {
		parsed, err := ParseOfferKind(kind.String())
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", kind, err)
		}
		if parsed != kind {
			t.Fatalf("expected %q, got %q", kind, parsed)
		}
		if !parsed.IsValid() {
			t.Fatalf("%q should be valid", parsed)
		}
	}

	if _, err := ParseOfferKind("bogo"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if OfferKind("bogo").IsValid() {
		t.Fatal("unknown kind should not validate")
	}
}

func TestParseDiscountType(t *testing.T) {
	t.Parallel()

	if _, err := ParseDiscountType("percentage"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDiscountType("percent"); err == nil {
		t.Fatal("expected error for unknown discount type")
	}
}

func TestParseRewardType(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"free", "percentage", "fixed"} {
		if _, err := ParseRewardType(raw); err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
	}
	if _, err := ParseRewardType("gratis"); err == nil {
		t.Fatal("expected error for unknown reward type")
	}
}

func TestParsePriceTier(t *testing.T) {
	t.Parallel()

	if _, err := ParsePriceTier("wholesale"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParsePriceTier("vip"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}
