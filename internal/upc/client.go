// Package upc is the generic product-identifier fallback for barcodes the
// marketplace doesn't know. Results carry name, brand and images only.
package upc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Product struct {
	Title  string
	Brand  string
	Images []string
}

type Client interface {
	Lookup(ctx context.Context, code string) (*Product, error)
}

// ValidCode reports whether code is a standard 12 or 13 digit numeric
// identifier (UPC-A or EAN-13). Anything else never reaches the lookup.
func ValidCode(code string) bool {
	if len(code) != 12 && len(code) != 13 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *HTTPClient) Lookup(ctx context.Context, code string) (*Product, error) {
	endpoint := fmt.Sprintf("%s/lookup?upc=%s", c.baseURL, url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upc lookup status %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		Code  string `json:"code"`
		Items []struct {
			Title  string   `json:"title"`
			Brand  string   `json:"brand"`
			Images []string `json:"images"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	item := out.Items[0]
	return &Product{Title: item.Title, Brand: item.Brand, Images: item.Images}, nil
}
