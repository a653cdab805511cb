package service

import (
	"context"
	"errors"
	"testing"

	"github.com/securedtampa/intake-backend/internal/model"
)

func TestScanResolvesAndDedupes(t *testing.T) {
	entry := &model.CatalogEntry{
		ScanCode: "196608856211",
		Name:     "Jordan 1 Retro High OG",
		Brand:    "Jordan",
		Size:     "10",
	}
	catalog := &fakeCatalog{entries: map[string]*model.CatalogEntry{entry.ScanCode: entry}}
	resolver := NewResolverService(catalog, &fakeMarket{}, &fakeUPC{})
	repo := newFakeSessionRepo()
	sessions := NewSessionService(repo, nilEnricher{})
	svc := NewIntakeService(resolver, nilEnricher{}, sessions)
	ctx := context.Background()

	sess, err := svc.Scan(ctx, testRegister, entry.ScanCode)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sess.Items) != 1 || sess.Items[0].Quantity != 1 {
		t.Fatalf("unexpected session %+v", sess.Items)
	}
	if sess.Items[0].Provenance != model.ProvenanceCatalog {
		t.Fatalf("provenance=%s", sess.Items[0].Provenance)
	}

	sess, err = svc.Scan(ctx, testRegister, entry.ScanCode)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(sess.Items) != 1 || sess.Items[0].Quantity != 2 {
		t.Fatalf("rescan should increment quantity, got %+v", sess.Items)
	}
	if catalog.entries[entry.ScanCode].UsageCount != 2 {
		t.Fatalf("usage=%d want 2", catalog.entries[entry.ScanCode].UsageCount)
	}
}

func TestScanNotFoundPropagates(t *testing.T) {
	resolver := NewResolverService(&fakeCatalog{}, &fakeMarket{}, &fakeUPC{})
	sessions := NewSessionService(newFakeSessionRepo(), nilEnricher{})
	svc := NewIntakeService(resolver, nilEnricher{}, sessions)

	if _, err := svc.Scan(context.Background(), testRegister, "999999999999"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err=%v want ErrCodeNotFound", err)
	}
}

func TestManualAddDefaultsProvenance(t *testing.T) {
	sessions := NewSessionService(newFakeSessionRepo(), nilEnricher{})
	svc := NewIntakeService(nil, nilEnricher{}, sessions)

	sess, err := svc.ManualAdd(context.Background(), testRegister, ResolvedProduct{Name: "Custom Tee"}, "")
	if err != nil {
		t.Fatalf("manual add: %v", err)
	}
	if sess.Items[0].Provenance != model.ProvenanceManual {
		t.Fatalf("provenance=%s want manual", sess.Items[0].Provenance)
	}
}

func TestManualAddWithoutCodeNeverMerges(t *testing.T) {
	sessions := NewSessionService(newFakeSessionRepo(), nilEnricher{})
	svc := NewIntakeService(nil, nilEnricher{}, sessions)
	ctx := context.Background()

	if _, err := svc.ManualAdd(ctx, testRegister, ResolvedProduct{Name: "Custom Tee"}, ""); err != nil {
		t.Fatalf("first manual add: %v", err)
	}
	sess, err := svc.ManualAdd(ctx, testRegister, ResolvedProduct{Name: "Vintage Hat"}, "")
	if err != nil {
		t.Fatalf("second manual add: %v", err)
	}
	if len(sess.Items) != 2 {
		t.Fatalf("items=%d want 2 separate rows, got %+v", len(sess.Items), sess.Items)
	}
	if sess.Items[0].Name != "Custom Tee" || sess.Items[1].Name != "Vintage Hat" {
		t.Fatalf("names=%q,%q", sess.Items[0].Name, sess.Items[1].Name)
	}
	if sess.Items[0].Quantity != 1 || sess.Items[1].Quantity != 1 {
		t.Fatalf("quantities=%d,%d want 1,1", sess.Items[0].Quantity, sess.Items[1].Quantity)
	}
}

func TestScanAttachesMarketSnapshot(t *testing.T) {
	entry := &model.CatalogEntry{
		ScanCode:  "196608856211",
		Name:      "Jordan 1 Retro High OG",
		ProductID: "prod-1",
		VariantID: "var-1",
	}
	catalog := &fakeCatalog{entries: map[string]*model.CatalogEntry{entry.ScanCode: entry}}
	resolver := NewResolverService(catalog, &fakeMarket{}, &fakeUPC{})
	sessions := NewSessionService(newFakeSessionRepo(), nilEnricher{})
	ask := int64(18500)
	enr := stubEnricher{snapshot: &model.MarketSnapshot{LowestAsk: &ask, CurrencyISO: "USD"}}
	svc := NewIntakeService(resolver, enr, sessions)

	sess, err := svc.Scan(context.Background(), testRegister, entry.ScanCode)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	market := sess.Items[0].Market
	if market == nil || market.LowestAsk == nil || *market.LowestAsk != ask {
		t.Fatalf("market snapshot not attached: %+v", market)
	}
}
