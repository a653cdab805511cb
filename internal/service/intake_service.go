package service

import (
	"context"
	"errors"
	"strings"

	"github.com/securedtampa/intake-backend/internal/model"
)

// IntakeService is the front door of the scan workflow: resolve a code,
// enrich it, and hand it to the session store.
type IntakeService interface {
	Scan(ctx context.Context, registerKey, code string) (*model.ScanSession, error)
	ManualAdd(ctx context.Context, registerKey string, product ResolvedProduct, code string) (*model.ScanSession, error)
}

type intakeService struct {
	resolver ResolverService
	enricher Enricher
	sessions SessionService
}

func NewIntakeService(resolver ResolverService, enricher Enricher, sessions SessionService) IntakeService {
	return &intakeService{resolver: resolver, enricher: enricher, sessions: sessions}
}

func (s *intakeService) Scan(ctx context.Context, registerKey, code string) (*model.ScanSession, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("code is required")
	}
	product, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	item := itemFromResolved(*product, code)
	item.Market = s.enricher.Snapshot(ctx, item.ProductID, item.VariantID)
	return s.sessions.Append(ctx, registerKey, item)
}

// ManualAdd injects a product picked in the manual-search fallback UI.
func (s *intakeService) ManualAdd(ctx context.Context, registerKey string, product ResolvedProduct, code string) (*model.ScanSession, error) {
	if product.Provenance == "" {
		product.Provenance = model.ProvenanceManual
	}
	item := itemFromResolved(product, code)
	item.Market = s.enricher.Snapshot(ctx, item.ProductID, item.VariantID)
	return s.sessions.Append(ctx, registerKey, item)
}

func itemFromResolved(p ResolvedProduct, code string) model.ScannedItem {
	return model.ScannedItem{
		ScanCode:    code,
		Name:        p.Name,
		Brand:       p.Brand,
		Colorway:    p.Colorway,
		StyleID:     p.StyleID,
		Size:        p.Size,
		RetailPrice: p.RetailPrice,
		StockImages: p.Images,
		Provenance:  p.Provenance,
		ProductID:   p.ProductID,
		VariantID:   p.VariantID,
		Variants:    p.Variants,
	}
}
