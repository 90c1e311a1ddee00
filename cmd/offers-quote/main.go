package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/offers-engine/internal/catalog"
	"github.com/angelmondragon/offers-engine/internal/quote"
	"github.com/angelmondragon/offers-engine/pkg/config"
	"github.com/angelmondragon/offers-engine/pkg/logger"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

type orderFile struct {
	Items    []types.LineItem    `json:"items"`
	Snapshot types.OrderSnapshot `json:"snapshot"`
}

type itemDiscountOut struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Discount  decimal.Decimal `json:"discount"`
}

type quoteOut struct {
	AppliedOffers []appliedOfferOut `json:"applied_offers"`
	ItemDiscounts []itemDiscountOut `json:"item_discounts"`
	FreeItems     []types.BonusItem `json:"free_items"`
	Totals        types.OrderTotals `json:"totals"`
}

type appliedOfferOut struct {
	OfferID          string            `json:"offer_id"`
	Kind             string            `json:"kind"`
	AffectedProducts []string          `json:"affected_products,omitempty"`
	DiscountAmount   decimal.Decimal   `json:"discount_amount"`
	FreeItems        []types.BonusItem `json:"free_items,omitempty"`
}

func main() {
	var (
		productsPath = flag.String("products", "products.json", "path to the product catalog JSON")
		offersPath   = flag.String("offers", "offers.json", "path to the offer catalog JSON")
		orderPath    = flag.String("order", "order.json", "path to the order JSON")
		productID    = flag.String("product", "", "check offer relevance for a single product instead of quoting the order")
	)
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "offers-quote"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "offers-quote",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	products, err := catalog.LoadFile(*productsPath)
	if err != nil {
		logg.Error(ctx, "failed to load product catalog", err)
		os.Exit(1)
	}

	offerCatalog, err := loadOffers(*offersPath)
	if err != nil {
		logg.Error(ctx, "failed to load offer catalog", err)
		os.Exit(1)
	}
	if err := types.ValidateCatalog(offerCatalog); err != nil {
		logg.Error(ctx, "offer catalog invalid", err)
		os.Exit(1)
	}

	engine, err := quote.NewEngine(products, logg, nil)
	if err != nil {
		logg.Error(ctx, "failed to build engine", err)
		os.Exit(1)
	}

	if *productID != "" {
		applied, err := engine.ProductOffers(ctx, *productID, offerCatalog, cfg.Engine.PriceTier(), time.Now())
		if err != nil {
			logg.Error(ctx, "product offer check failed", err)
			os.Exit(1)
		}
		printJSON(ctx, logg, appliedOut(applied))
		return
	}

	order, err := loadOrder(*orderPath)
	if err != nil {
		logg.Error(ctx, "failed to load order", err)
		os.Exit(1)
	}

	result, err := engine.QuoteOrder(ctx, quote.QuoteInput{
		Items:    order.Items,
		Offers:   offerCatalog,
		Snapshot: order.Snapshot,
		Tier:     cfg.Engine.PriceTier(),
		Now:      time.Now(),
	})
	if err != nil {
		logg.Error(ctx, "quote failed", err)
		os.Exit(1)
	}

	out := quoteOut{
		AppliedOffers: appliedOut(result.AppliedOffers),
		FreeItems:     result.FreeItems,
		Totals:        result.Totals,
	}
	for key, discount := range result.ItemDiscounts {
		out.ItemDiscounts = append(out.ItemDiscounts, itemDiscountOut{
			ProductID: key.ProductID,
			VariantID: key.VariantID,
			Discount:  discount,
		})
	}
	printJSON(ctx, logg, out)
}

func appliedOut(applied []types.AppliedOffer) []appliedOfferOut {
	out := make([]appliedOfferOut, 0, len(applied))
	for _, offer := range applied {
		out = append(out, appliedOfferOut{
			OfferID:          offer.Offer.ID.String(),
			Kind:             offer.Offer.Kind.String(),
			AffectedProducts: offer.AffectedProducts(),
			DiscountAmount:   offer.DiscountAmount,
			FreeItems:        offer.FreeItems,
		})
	}
	return out
}

func loadOffers(path string) ([]types.Offer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var offerCatalog []types.Offer
	if err := json.Unmarshal(raw, &offerCatalog); err != nil {
		return nil, err
	}
	return offerCatalog, nil
}

func loadOrder(path string) (*orderFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var order orderFile
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func printJSON(ctx context.Context, logg *logger.Logger, value any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		logg.Error(ctx, "failed to encode output", err)
		os.Exit(1)
	}
}
