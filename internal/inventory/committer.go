// Package inventory submits finished intake units to the storefront's
// inventory service, one unit per call.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Unit is one physical inventory record to create. Units are derived at
// submission time and never mutated afterwards.
type Unit struct {
	ScanCode  string   `json:"scanCode"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Colorway  string   `json:"colorway"`
	StyleID   string   `json:"styleId"`
	Size      string   `json:"size"`
	Condition string   `json:"condition"`
	Complete  bool     `json:"complete"`
	Cost      int64    `json:"cost"`
	Price     int64    `json:"price"`
	Images    []string `json:"images"`
}

type Committer interface {
	Commit(ctx context.Context, unit Unit) (string, error)
}

type HTTPCommitter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPCommitter(baseURL, apiKey string, httpClient *http.Client) *HTTPCommitter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTTPCommitter{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

func (c *HTTPCommitter) Commit(ctx context.Context, unit Unit) (string, error) {
	payload, err := json.Marshal(unit)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("inventory commit status %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}
