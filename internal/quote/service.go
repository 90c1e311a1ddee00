package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/internal/offers"
	"github.com/angelmondragon/offers-engine/internal/pricing"
	"github.com/angelmondragon/offers-engine/internal/rewards"
	"github.com/angelmondragon/offers-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/offers-engine/pkg/errors"
	"github.com/angelmondragon/offers-engine/pkg/logger"
	"github.com/angelmondragon/offers-engine/pkg/metrics"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

// QuoteInput carries everything one quote needs: the order's lines, the
// live offer catalog, and the promotional fields persisted on the order.
type QuoteInput struct {
	Items    []types.LineItem
	Offers   []types.Offer
	Snapshot types.OrderSnapshot
	Tier     enums.PriceTier
	Now      time.Time
}

// Quote is the engine's full output for one order. The rendering layers
// read it as plain data; no formatting or localization happens here.
type Quote struct {
	AppliedOffers []types.AppliedOffer
	ItemDiscounts map[types.ItemKey]decimal.Decimal
	FreeItems     []types.BonusItem
	Totals        types.OrderTotals
}

// Engine unifies the offer matching, discount allocation, free-item
// resolution and total computation that the product page, PDF invoice and
// print view previously each carried a variant of.
type Engine struct {
	lookup  types.ProductLookup
	logg    *logger.Logger
	metrics *metrics.EngineMetrics
}

// NewEngine builds the engine. The metrics recorder may be nil.
func NewEngine(lookup types.ProductLookup, logg *logger.Logger, m *metrics.EngineMetrics) (*Engine, error) {
	if lookup == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{lookup: lookup, logg: logg, metrics: m}, nil
}

// QuoteOrder runs the full pipeline for an order. Malformed persisted
// snapshot fields degrade to empty collections; they never fail the quote.
func (e *Engine) QuoteOrder(ctx context.Context, input QuoteInput) (*Quote, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line item")
	}

	tier := input.Tier
	if !tier.IsValid() {
		tier = enums.PriceTierRetail
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	persistedOffers, err := types.DecodeAppliedOffers(input.Snapshot.AppliedOffers)
	if err != nil {
		e.logg.Warn(ctx, "applied_offers snapshot unreadable, treating as empty")
		e.metrics.IncSnapshotFailure("applied_offers")
	}
	snapshotFreeItems, err := types.DecodeBonusItems(input.Snapshot.FreeItems)
	if err != nil {
		e.logg.Warn(ctx, "free_items snapshot unreadable, treating as empty")
		e.metrics.IncSnapshotFailure("free_items")
	}

	applied := offers.Match(input.Offers, input.Items, offers.ScopeOrder(), e.lookup, tier, now)
	perItem := pricing.Allocate(applied, input.Items, e.lookup, tier)

	var liveFree []types.BonusItem
	for _, offer := range applied {
		liveFree = append(liveFree, offer.FreeItems...)
	}
	var persistedFree []types.BonusItem
	for _, record := range persistedOffers {
		persistedFree = append(persistedFree, record.FreeItems...)
	}
	persistedFree = append(persistedFree, snapshotFreeItems...)
	freeItems := rewards.Resolve(liveFree, persistedFree, e.lookup)

	subtotal := pricing.Subtotal(input.Items)
	legacy := input.Snapshot.LegacyDiscountAmount(subtotal)
	totals := pricing.ComputeTotals(input.Items, perItem, legacy, input.Snapshot.TotalAfterDiscount)

	e.metrics.IncQuotes()
	e.metrics.AddOffersMatched(len(applied))
	e.logg.Debug(e.logg.WithFields(ctx, map[string]any{
		"offers_matched": len(applied),
		"free_items":     len(freeItems),
		"final_total":    totals.FinalTotal.String(),
	}), "order quote computed")

	return &Quote{
		AppliedOffers: applied,
		ItemDiscounts: perItem,
		FreeItems:     freeItems,
		Totals:        totals,
	}, nil
}

// ProductOffers returns the offers relevant to a single product page,
// including buy_get "you may get X" previews.
func (e *Engine) ProductOffers(ctx context.Context, productID string, catalog []types.Offer, tier enums.PriceTier, now time.Time) ([]types.AppliedOffer, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !tier.IsValid() {
		tier = enums.PriceTierRetail
	}
	if now.IsZero() {
		now = time.Now()
	}
	applied := offers.Match(catalog, nil, offers.ScopeProduct(productID), e.lookup, tier, now)
	e.metrics.AddOffersMatched(len(applied))
	return applied, nil
}
