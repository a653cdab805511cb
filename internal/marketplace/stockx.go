package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

var ErrNotAuthenticated = errors.New("stockx: not authenticated")

type StockXClient struct {
	baseURL    string
	apiKey     string
	tokens     oauth2.TokenSource
	httpClient *http.Client
}

func NewStockXClient(baseURL, apiKey string, tokens oauth2.TokenSource, httpClient *http.Client) *StockXClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &StockXClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// TokenSource builds a refresh-token source for the StockX OAuth endpoint.
// The access token is renewed lazily and cached between calls.
func TokenSource(ctx context.Context, tokenURL, clientID, clientSecret, refreshToken string) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}

func (c *StockXClient) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("pageSize", strconv.Itoa(limit))

	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.get(ctx, "/catalog/search?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *StockXClient) Detail(ctx context.Context, productID string) (*ProductDetail, error) {
	var out ProductDetail
	if err := c.get(ctx, "/catalog/products/"+url.PathEscape(productID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StockXClient) Variants(ctx context.Context, productID string) ([]Variant, error) {
	var out struct {
		Variants []Variant `json:"variants"`
	}
	path := fmt.Sprintf("/catalog/products/%s/variants?pageSize=50", url.PathEscape(productID))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Variants, nil
}

func (c *StockXClient) MarketData(ctx context.Context, productID, variantID string) (*MarketData, error) {
	var out MarketData
	path := fmt.Sprintf("/catalog/products/%s/variants/%s/market-data?currencyCode=USD",
		url.PathEscape(productID), url.PathEscape(variantID))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StockXClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
		}
		tok.SetAuthHeader(req)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("stockx status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
