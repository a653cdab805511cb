package service

import (
	"context"
	"errors"
	"log"

	"github.com/securedtampa/intake-backend/internal/marketplace"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/repository"
	"github.com/securedtampa/intake-backend/internal/upc"
)

// ErrCodeNotFound means every resolver tier missed. Not a failure: the UI
// falls back to manual search and may inject a product via ManualAdd.
var ErrCodeNotFound = errors.New("code not found")

// ResolvedProduct is the canonical description a resolver tier produces.
type ResolvedProduct struct {
	Name        string
	Brand       string
	Colorway    string
	StyleID     string
	Size        string
	RetailPrice int64
	Images      []string
	Provenance  model.Provenance
	ProductID   string
	VariantID   string
	Variants    []model.VariantOption
}

type ResolverService interface {
	Resolve(ctx context.Context, code string) (*ResolvedProduct, error)
}

type resolverService struct {
	catalog repository.CatalogRepository
	market  marketplace.Client
	upc     upc.Client
}

func NewResolverService(catalog repository.CatalogRepository, market marketplace.Client, upcClient upc.Client) ResolverService {
	return &resolverService{catalog: catalog, market: market, upc: upcClient}
}

type tier struct {
	name string
	fn   func(ctx context.Context, code string) (*ResolvedProduct, error)
}

// Resolve runs the tiers strictly in order and returns the first hit. A tier
// error is logged and treated as a miss; only exhausting every tier is a
// definite ErrCodeNotFound.
func (s *resolverService) Resolve(ctx context.Context, code string) (*ResolvedProduct, error) {
	tiers := []tier{
		{"catalog", s.fromCatalog},
		{"marketplace", s.fromMarketplace},
		{"fallback", s.fromUPC},
	}
	for _, t := range tiers {
		p, err := t.fn(ctx, code)
		if err != nil {
			log.Printf("resolver: %s tier failed for %q: %v", t.name, code, err)
			continue
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, ErrCodeNotFound
}

func (s *resolverService) fromCatalog(ctx context.Context, code string) (*ResolvedProduct, error) {
	entry, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	// The hit counts even if the refresh below fails.
	if err := s.catalog.IncrementUsage(ctx, code); err != nil {
		log.Printf("resolver: usage increment for %q: %v", code, err)
	}

	p := &ResolvedProduct{
		Name:        entry.Name,
		Brand:       entry.Brand,
		Colorway:    entry.Colorway,
		StyleID:     entry.StyleID,
		Size:        entry.Size,
		RetailPrice: entry.RetailPrice,
		Images:      entry.Images(),
		Provenance:  model.ProvenanceCatalog,
		ProductID:   entry.ProductID,
		VariantID:   entry.VariantID,
	}

	if entry.ProductID != "" {
		s.refreshFromMarketplace(ctx, entry, p)
	}
	return p, nil
}

// refreshFromMarketplace pulls current images and the variant list for a
// cached entry. Best effort: any failure leaves the cached data in place.
func (s *resolverService) refreshFromMarketplace(ctx context.Context, entry *model.CatalogEntry, p *ResolvedProduct) {
	detail, err := s.market.Detail(ctx, entry.ProductID)
	if err != nil {
		log.Printf("resolver: catalog refresh detail %q: %v", entry.ProductID, err)
		return
	}
	variants, err := s.market.Variants(ctx, entry.ProductID)
	if err != nil {
		log.Printf("resolver: catalog refresh variants %q: %v", entry.ProductID, err)
		return
	}

	if detail.ImageURL != "" {
		p.Images = []string{detail.ImageURL}
	}
	p.Variants = toVariantOptions(variants)

	entry.SetImages(p.Images)
	if err := s.catalog.Upsert(ctx, entry); err != nil {
		log.Printf("resolver: catalog refresh save %q: %v", entry.ScanCode, err)
	}
}

func (s *resolverService) fromMarketplace(ctx context.Context, code string) (*ResolvedProduct, error) {
	products, err := s.market.Search(ctx, code, 10)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		variants, err := s.market.Variants(ctx, product.ID)
		if err != nil {
			log.Printf("resolver: variants for %q: %v", product.ID, err)
			continue
		}
		for _, v := range variants {
			if !v.MatchesCode(code) {
				continue
			}
			p := &ResolvedProduct{
				Name:        product.Name,
				Brand:       product.Brand,
				Colorway:    product.Colorway,
				StyleID:     product.StyleID,
				RetailPrice: product.RetailPrice,
				Size:        v.DisplaySize(),
				Provenance:  model.ProvenanceMarketplace,
				ProductID:   product.ID,
				VariantID:   v.ID,
				Variants:    toVariantOptions(variants),
			}
			if product.ThumbnailURL != "" {
				p.Images = []string{product.ThumbnailURL}
			}
			// Detail carries the full-size image and colorway; the summary
			// fields above already make a usable item if this fails.
			if detail, err := s.market.Detail(ctx, product.ID); err != nil {
				log.Printf("resolver: detail for %q: %v", product.ID, err)
			} else {
				p.Name = detail.Name
				p.Brand = detail.Brand
				p.Colorway = detail.Colorway
				p.StyleID = detail.StyleID
				p.RetailPrice = detail.RetailPrice
				if detail.ImageURL != "" {
					p.Images = []string{detail.ImageURL}
				}
			}
			return p, nil
		}
	}
	return nil, nil
}

func (s *resolverService) fromUPC(ctx context.Context, code string) (*ResolvedProduct, error) {
	if !upc.ValidCode(code) {
		return nil, nil
	}
	product, err := s.upc.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return &ResolvedProduct{
		Name:       product.Title,
		Brand:      product.Brand,
		Images:     product.Images,
		Provenance: model.ProvenanceFallback,
	}, nil
}

func toVariantOptions(variants []marketplace.Variant) []model.VariantOption {
	opts := make([]model.VariantOption, 0, len(variants))
	for _, v := range variants {
		opts = append(opts, model.VariantOption{VariantID: v.ID, Size: v.DisplaySize()})
	}
	return opts
}
