package enums

import "fmt"

// OfferKind represents the behavioral kinds of promotional offers.
type OfferKind string

const (
	OfferKindDiscount        OfferKind = "discount"
	OfferKindProductDiscount OfferKind = "product_discount"
	OfferKindBuyGet          OfferKind = "buy_get"
)

var validOfferKinds = []OfferKind{
	OfferKindDiscount,
	OfferKindProductDiscount,
	OfferKindBuyGet,
}

// String implements fmt.Stringer.
func (k OfferKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known OfferKind.
func (k OfferKind) IsValid() bool {
	for _, candidate := range validOfferKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseOfferKind converts raw input into an OfferKind.
func ParseOfferKind(value string) (OfferKind, error) {
	for _, candidate := range validOfferKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer kind %q", value)
}

// DiscountType defines how a discount magnitude is expressed.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

var validDiscountTypes = []DiscountType{
	DiscountTypePercentage,
	DiscountTypeFixed,
}

// String implements fmt.Stringer.
func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountType.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType converts raw input into a DiscountType.
func ParseDiscountType(value string) (DiscountType, error) {
	for _, candidate := range validDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}

// RewardType defines how a buy_get offer rewards the qualifying purchase.
type RewardType string

const (
	RewardTypeFree       RewardType = "free"
	RewardTypePercentage RewardType = "percentage"
	RewardTypeFixed      RewardType = "fixed"
)

var validRewardTypes = []RewardType{
	RewardTypeFree,
	RewardTypePercentage,
	RewardTypeFixed,
}

// String implements fmt.Stringer.
func (r RewardType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RewardType.
func (r RewardType) IsValid() bool {
	for _, candidate := range validRewardTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRewardType converts raw input into a RewardType.
func ParseRewardType(value string) (RewardType, error) {
	for _, candidate := range validRewardTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reward type %q", value)
}
