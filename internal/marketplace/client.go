// Package marketplace talks to the StockX v2 catalog API: free-text search,
// product detail, variants (sizes with GTIN identifiers) and per-variant
// market data.
package marketplace

import "context"

type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Product, error)
	Detail(ctx context.Context, productID string) (*ProductDetail, error)
	Variants(ctx context.Context, productID string) ([]Variant, error)
	MarketData(ctx context.Context, productID, variantID string) (*MarketData, error)
}

type Product struct {
	ID           string `json:"productId"`
	Name         string `json:"productName"`
	Brand        string `json:"brand"`
	Colorway     string `json:"colorway"`
	StyleID      string `json:"styleId"`
	RetailPrice  int64  `json:"retailPrice"`
	ThumbnailURL string `json:"thumbUrl"`
}

type ProductDetail struct {
	ID          string `json:"productId"`
	Name        string `json:"productName"`
	Brand       string `json:"brand"`
	Colorway    string `json:"colorway"`
	StyleID     string `json:"styleId"`
	RetailPrice int64  `json:"retailPrice"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
	Category    string `json:"category"`
}

type GTIN struct {
	Type       string `json:"type"` // "UPC" or "EAN-13"
	Identifier string `json:"identifier"`
}

type sizeValue struct {
	Size string `json:"size"`
}

type sizeChart struct {
	US sizeValue `json:"us"`
	EU sizeValue `json:"eu"`
	UK sizeValue `json:"uk"`
}

type Variant struct {
	ID        string    `json:"variantId"`
	SizeChart sizeChart `json:"sizeChart"`
	GTINs     []GTIN    `json:"gtins"`
}

// DisplaySize prefers the US size, then EU, then "Unknown".
func (v Variant) DisplaySize() string {
	if v.SizeChart.US.Size != "" {
		return v.SizeChart.US.Size
	}
	if v.SizeChart.EU.Size != "" {
		return v.SizeChart.EU.Size
	}
	return "Unknown"
}

// MatchesCode reports whether any GTIN identifier equals the scanned code.
func (v Variant) MatchesCode(code string) bool {
	for _, g := range v.GTINs {
		if g.Identifier == code {
			return true
		}
	}
	return false
}

type MarketData struct {
	ProductID   string `json:"productId"`
	VariantID   string `json:"variantId"`
	CurrencyISO string `json:"currencyCode"`
	LowestAsk   *int64 `json:"lowestAskAmount"`
	HighestBid  *int64 `json:"highestBidAmount"`
	LastSale    *int64 `json:"lastSaleAmount"`
	SellFaster  *int64 `json:"sellFasterAmount"`
	EarnMore    *int64 `json:"earnMoreAmount"`
}
