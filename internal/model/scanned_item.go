package model

// Provenance records which resolver tier produced an item's product data.
type Provenance string

const (
	ProvenanceCatalog     Provenance = "catalog"
	ProvenanceMarketplace Provenance = "marketplace"
	ProvenanceFallback    Provenance = "fallback"
	ProvenanceManual      Provenance = "manual"
)

// Condition classifies the physical state of a unit at intake.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionUsed    Condition = "used"
	ConditionDamaged Condition = "damaged"
)

// VariantOption is one known size/variant of a resolved product.
type VariantOption struct {
	VariantID string `json:"variantId"`
	Size      string `json:"size"`
}

// MarketSnapshot is the live market pricing for a product variant at the
// moment it was fetched. Nil on an item means "no market data available".
type MarketSnapshot struct {
	LowestAsk   *int64 `json:"lowestAsk"`
	HighestBid  *int64 `json:"highestBid"`
	LastSale    *int64 `json:"lastSale"`
	SellFaster  *int64 `json:"sellFaster"`
	EarnMore    *int64 `json:"earnMore"`
	CurrencyISO string `json:"currency"`
}

// ScannedItem is one distinct physical product awaiting intake. Items live
// inside a ScanSession and are serialized as JSON, not as their own table.
type ScannedItem struct {
	LocalID  string `json:"localId"`
	ScanCode string `json:"scanCode"`

	// Resolution payload.
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Colorway    string          `json:"colorway"`
	StyleID     string          `json:"styleId"`
	Size        string          `json:"size"`
	RetailPrice int64           `json:"retailPrice"`
	StockImages []string        `json:"stockImages"`
	Provenance  Provenance      `json:"provenance"`
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId"`
	Variants    []VariantOption `json:"variants"`

	// Mutable intake fields.
	Quantity  int             `json:"quantity"`
	Condition Condition       `json:"condition"`
	Complete  bool            `json:"complete"`
	UnitCost  int64           `json:"unitCost"`
	SalePrice int64           `json:"salePrice"`
	Images    []string        `json:"images"`
	Market    *MarketSnapshot `json:"market"`
	Expanded  bool            `json:"expanded"`
}
