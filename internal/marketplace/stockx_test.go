package marketplace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*StockXClient, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	client := NewStockXClient(srv.URL, "test-key", tokens, srv.Client())
	return client, srv.Close
}

func TestSearchSendsAuthHeaders(t *testing.T) {
	client, done := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key")
		}
		if r.URL.Query().Get("query") != "DZ5485-612" {
			t.Errorf("query=%q", r.URL.Query().Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"productId":"p1","productName":"Jordan 1","brand":"Jordan","styleId":"DZ5485-612","retailPrice":180,"thumbUrl":"https://img/p1.png"}]}`))
	})
	defer done()

	products, err := client.Search(context.Background(), "DZ5485-612", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" || products[0].RetailPrice != 180 {
		t.Fatalf("got %+v", products)
	}
}

func TestVariantsDecodeSizeChartAndGTINs(t *testing.T) {
	client, done := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variants":[
			{"variantId":"v1","sizeChart":{"us":{"size":"10"},"eu":{"size":"44"}},"gtins":[{"type":"UPC","identifier":"196608856211"}]},
			{"variantId":"v2","sizeChart":{"eu":{"size":"44.5"}},"gtins":[]}
		]}`))
	})
	defer done()

	variants, err := client.Variants(context.Background(), "p1")
	if err != nil {
		t.Fatalf("variants: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("variants=%d", len(variants))
	}
	if variants[0].DisplaySize() != "10" {
		t.Fatalf("display size=%q want US size", variants[0].DisplaySize())
	}
	if variants[1].DisplaySize() != "44.5" {
		t.Fatalf("display size=%q want EU fallback", variants[1].DisplaySize())
	}
	if !variants[0].MatchesCode("196608856211") {
		t.Fatalf("gtin match failed")
	}
	if variants[1].MatchesCode("196608856211") {
		t.Fatalf("unexpected gtin match")
	}
}

func TestVariantDisplaySizeUnknown(t *testing.T) {
	v := Variant{ID: "v3"}
	if got := v.DisplaySize(); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestUnauthorized(t *testing.T) {
	client, done := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer done()

	if _, err := client.Search(context.Background(), "x", 5); err != ErrNotAuthenticated {
		t.Fatalf("err=%v want ErrNotAuthenticated", err)
	}
}

func TestMarketData(t *testing.T) {
	client, done := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog/products/p1/variants/v1/market-data" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"productId":"p1","variantId":"v1","currencyCode":"USD","lowestAskAmount":215,"highestBidAmount":190}`))
	})
	defer done()

	md, err := client.MarketData(context.Background(), "p1", "v1")
	if err != nil {
		t.Fatalf("market data: %v", err)
	}
	if md.LowestAsk == nil || *md.LowestAsk != 215 {
		t.Fatalf("lowest ask=%v", md.LowestAsk)
	}
	if md.LastSale != nil {
		t.Fatalf("last sale should be nil when absent")
	}
}
