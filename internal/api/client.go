package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultCatalogAPI = "https://catalog.frenos-andinos.co/api/v2/references"
	userAgent         = "padcli/1.0 (+https://github.com/rcardenasv/brakepad-catalog)"
)

// Client fetches catalog snapshots from the remote document store.
type Client struct {
	httpClient *http.Client
	catalogURL string
}

// NewClient creates a catalog client against the default endpoint.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		catalogURL: defaultCatalogAPI,
	}
}

// NewClientWithBaseURL creates a client with a custom endpoint (for testing
// and self-hosted catalogs).
func NewClientWithBaseURL(catalogURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		catalogURL: catalogURL,
	}
}

func (c *Client) getAndDecode(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, reqURL)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: trailing JSON content")
	}
	return nil
}

// FetchCatalog downloads the full current catalog snapshot.
func (c *Client) FetchCatalog(ctx context.Context) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := c.getAndDecode(ctx, c.catalogURL, &resp); err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	return &resp, nil
}

// LoadCatalogFile reads a catalog snapshot from a local JSON export.
func LoadCatalogFile(path string) (*CatalogResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var resp CatalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding catalog file: %w", err)
	}
	return &resp, nil
}
