package service

import (
	"context"
	"errors"

	"github.com/securedtampa/intake-backend/internal/inventory"
	"github.com/securedtampa/intake-backend/internal/marketplace"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/upc"
	"gorm.io/gorm"
)

type fakeCatalog struct {
	entries map[string]*model.CatalogEntry
	calls   *[]string
}

func (f *fakeCatalog) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeCatalog) FindByCode(_ context.Context, code string) (*model.CatalogEntry, error) {
	f.record("catalog.FindByCode")
	if e, ok := f.entries[code]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCatalog) IncrementUsage(_ context.Context, code string) error {
	f.record("catalog.IncrementUsage")
	if e, ok := f.entries[code]; ok {
		e.UsageCount++
	}
	return nil
}

func (f *fakeCatalog) Upsert(_ context.Context, entry *model.CatalogEntry) error {
	f.record("catalog.Upsert")
	if f.entries == nil {
		f.entries = map[string]*model.CatalogEntry{}
	}
	cp := *entry
	f.entries[entry.ScanCode] = &cp
	return nil
}

func (f *fakeCatalog) SetDB(*gorm.DB) {}

type fakeMarket struct {
	products   []marketplace.Product
	variants   map[string][]marketplace.Variant
	details    map[string]*marketplace.ProductDetail
	marketData map[string]*marketplace.MarketData
	searchErr  error
	detailErr  error
	calls      *[]string
}

func (f *fakeMarket) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeMarket) Search(_ context.Context, _ string, _ int) ([]marketplace.Product, error) {
	f.record("market.Search")
	return f.products, f.searchErr
}

func (f *fakeMarket) Detail(_ context.Context, productID string) (*marketplace.ProductDetail, error) {
	f.record("market.Detail")
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[productID]; ok {
		return d, nil
	}
	return nil, errors.New("no detail")
}

func (f *fakeMarket) Variants(_ context.Context, productID string) ([]marketplace.Variant, error) {
	f.record("market.Variants")
	return f.variants[productID], nil
}

func (f *fakeMarket) MarketData(_ context.Context, productID, variantID string) (*marketplace.MarketData, error) {
	f.record("market.MarketData")
	if md, ok := f.marketData[productID+"/"+variantID]; ok {
		return md, nil
	}
	return nil, errors.New("no market data")
}

type fakeUPC struct {
	product *upc.Product
	calls   int
}

func (f *fakeUPC) Lookup(_ context.Context, _ string) (*upc.Product, error) {
	f.calls++
	return f.product, nil
}

// fakeSessionRepo persists through the real JSON round trip so reloads see
// exactly what a restarted process would.
type fakeSessionRepo struct {
	rows   map[string]model.ScanSession
	nextID uint64
	saves  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: map[string]model.ScanSession{}}
}

func (f *fakeSessionRepo) Load(_ context.Context, registerKey string) (*model.ScanSession, error) {
	row, ok := f.rows[registerKey]
	if !ok {
		return nil, nil
	}
	sess := row
	sess.Items = nil
	if err := sess.DecodeItems(); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *model.ScanSession) error {
	if err := session.EncodeItems(); err != nil {
		return err
	}
	if session.ID == 0 {
		if existing, ok := f.rows[session.RegisterKey]; ok {
			session.ID = existing.ID
		} else {
			f.nextID++
			session.ID = f.nextID
		}
	}
	f.saves++
	f.rows[session.RegisterKey] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, registerKey string) error {
	delete(f.rows, registerKey)
	return nil
}

func (f *fakeSessionRepo) SetDB(*gorm.DB) {}

type fakeHistoryRepo struct {
	entries []model.HistoryEntry
}

func (f *fakeHistoryRepo) Create(_ context.Context, entry *model.HistoryEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByRegister(_ context.Context, _ string, _ int) ([]model.HistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeHistoryRepo) SetDB(*gorm.DB) {}

// fakeCommitter fails on the call numbers listed in failOn (1-based).
type fakeCommitter struct {
	calls  int
	failOn map[int]bool
	units  []inventory.Unit
}

func (f *fakeCommitter) Commit(_ context.Context, unit inventory.Unit) (string, error) {
	f.calls++
	f.units = append(f.units, unit)
	if f.failOn[f.calls] {
		return "", errors.New("inventory rejected unit")
	}
	return "inv-1", nil
}

type nilEnricher struct{}

func (nilEnricher) Snapshot(context.Context, string, string) *model.MarketSnapshot { return nil }
