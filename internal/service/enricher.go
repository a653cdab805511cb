package service

import (
	"context"
	"log"

	"github.com/securedtampa/intake-backend/internal/marketplace"
	"github.com/securedtampa/intake-backend/internal/model"
)

// Enricher fetches live market pricing for a product variant. A nil snapshot
// is a valid outcome and never blocks the pricing phase.
type Enricher interface {
	Snapshot(ctx context.Context, productID, variantID string) *model.MarketSnapshot
}

type marketEnricher struct {
	market marketplace.Client
}

func NewEnricher(market marketplace.Client) Enricher {
	return &marketEnricher{market: market}
}

func (e *marketEnricher) Snapshot(ctx context.Context, productID, variantID string) *model.MarketSnapshot {
	if productID == "" || variantID == "" {
		return nil
	}
	md, err := e.market.MarketData(ctx, productID, variantID)
	if err != nil {
		log.Printf("enricher: market data %s/%s: %v", productID, variantID, err)
		return nil
	}
	if md == nil {
		return nil
	}
	return &model.MarketSnapshot{
		LowestAsk:   md.LowestAsk,
		HighestBid:  md.HighestBid,
		LastSale:    md.LastSale,
		SellFaster:  md.SellFaster,
		EarnMore:    md.EarnMore,
		CurrencyISO: md.CurrencyISO,
	}
}
