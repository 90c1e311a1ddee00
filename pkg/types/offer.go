package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/offers-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/offers-engine/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(offerStructLevel, Offer{})
	return v
}

// Offer is a promotional rule. Exactly one of the kind-specific configs is
// populated: Discount for the discount and product_discount kinds, BuyGet
// for the buy_get kind.
type Offer struct {
	ID       uuid.UUID       `json:"id"`
	Kind     enums.OfferKind `json:"kind" validate:"required"`
	Active   bool            `json:"active"`
	StartsAt time.Time       `json:"start_date"`
	EndsAt   time.Time       `json:"end_date"`

	Discount *DiscountConfig `json:"discount,omitempty"`
	BuyGet   *BuyGetConfig   `json:"buy_get,omitempty"`
}

// DiscountConfig carries the magnitude of a discount or product_discount offer.
type DiscountConfig struct {
	Type            enums.DiscountType `json:"discount_type"`
	Percentage      decimal.Decimal    `json:"discount_percentage"`
	Amount          decimal.Decimal    `json:"discount_amount"`
	LinkedProductID string             `json:"linked_product_id,omitempty"`
}

// BuyGetConfig describes a buy-X-get-Y reward rule.
type BuyGetConfig struct {
	LinkedProductID string           `json:"linked_product_id"`
	BuyQuantity     int              `json:"buy_quantity"`
	GetProductID    string           `json:"get_product_id"`
	RewardType      enums.RewardType `json:"get_discount_type"`
	RewardValue     decimal.Decimal  `json:"get_discount_value"`
}

// IsLive reports whether the offer is active and its validity window
// contains now. Both window edges are inclusive; a zero edge is unbounded.
func (o Offer) IsLive(now time.Time) bool {
	if !o.Active {
		return false
	}
	if !o.StartsAt.IsZero() && now.Before(o.StartsAt) {
		return false
	}
	if !o.EndsAt.IsZero() && now.After(o.EndsAt) {
		return false
	}
	return true
}

// Validate enforces the per-kind field-set invariants.
func (o Offer) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatOfferValidation(err)
	}
	return nil
}

// ValidateCatalog validates every offer, accumulating all failures.
func ValidateCatalog(offers []Offer) error {
	var errs error
	for _, offer := range offers {
		if err := offer.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("offer %s: %w", offer.ID, err))
		}
	}
	return errs
}

func offerStructLevel(sl validator.StructLevel) {
	offer := sl.Current().Interface().(Offer)

	if !offer.Kind.IsValid() {
		sl.ReportError(offer.Kind, "kind", "Kind", "offerkind", "")
		return
	}

	switch offer.Kind {
	case enums.OfferKindDiscount, enums.OfferKindProductDiscount:
		if offer.BuyGet != nil {
			sl.ReportError(offer.BuyGet, "buy_get", "BuyGet", "excluded", "")
		}
		if offer.Discount == nil {
			sl.ReportError(offer.Discount, "discount", "Discount", "required", "")
			return
		}
		validateDiscountConfig(sl, offer)
	case enums.OfferKindBuyGet:
		if offer.Discount != nil {
			sl.ReportError(offer.Discount, "discount", "Discount", "excluded", "")
		}
		if offer.BuyGet == nil {
			sl.ReportError(offer.BuyGet, "buy_get", "BuyGet", "required", "")
			return
		}
		validateBuyGetConfig(sl, *offer.BuyGet)
	}
}

func validateDiscountConfig(sl validator.StructLevel, offer Offer) {
	cfg := *offer.Discount
	if !cfg.Type.IsValid() {
		sl.ReportError(cfg.Type, "discount.discount_type", "Type", "discounttype", "")
	}
	switch cfg.Type {
	case enums.DiscountTypePercentage:
		if !cfg.Percentage.IsPositive() || cfg.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			sl.ReportError(cfg.Percentage, "discount.discount_percentage", "Percentage", "percentrange", "")
		}
	case enums.DiscountTypeFixed:
		if !cfg.Amount.IsPositive() {
			sl.ReportError(cfg.Amount, "discount.discount_amount", "Amount", "positive", "")
		}
	}
	if offer.Kind == enums.OfferKindProductDiscount && strings.TrimSpace(cfg.LinkedProductID) == "" {
		sl.ReportError(cfg.LinkedProductID, "discount.linked_product_id", "LinkedProductID", "required", "")
	}
	if offer.Kind == enums.OfferKindDiscount && strings.TrimSpace(cfg.LinkedProductID) != "" {
		sl.ReportError(cfg.LinkedProductID, "discount.linked_product_id", "LinkedProductID", "excluded", "")
	}
}

func validateBuyGetConfig(sl validator.StructLevel, cfg BuyGetConfig) {
	if strings.TrimSpace(cfg.LinkedProductID) == "" {
		sl.ReportError(cfg.LinkedProductID, "buy_get.linked_product_id", "LinkedProductID", "required", "")
	}
	if cfg.BuyQuantity < 1 {
		sl.ReportError(cfg.BuyQuantity, "buy_get.buy_quantity", "BuyQuantity", "min", "1")
	}
	if strings.TrimSpace(cfg.GetProductID) == "" {
		sl.ReportError(cfg.GetProductID, "buy_get.get_product_id", "GetProductID", "required", "")
	}
	if !cfg.RewardType.IsValid() {
		sl.ReportError(cfg.RewardType, "buy_get.get_discount_type", "RewardType", "rewardtype", "")
	}
	if cfg.RewardType != enums.RewardTypeFree && !cfg.RewardValue.IsPositive() {
		sl.ReportError(cfg.RewardValue, "buy_get.get_discount_value", "RewardValue", "positive", "")
	}
}

func formatOfferValidation(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "offer validation failed")
	}
	details := map[string]string{}
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "offer validation failed").WithDetails(details)
}
