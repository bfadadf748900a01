package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/logging"
)

// Client fetches quotes from the mock-market provider over HTTP. It
// satisfies the same contract as StaticSource, so the ledger cannot tell
// the two apart.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type priceResponse struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

func (c *Client) Price(ctx context.Context, symbol domain.Symbol) (decimal.Decimal, error) {
	url := c.baseURL + "/prices/" + string(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Price: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Price: send: %w", err)
	}
	defer resp.Body.Close()

	logging.FromContext(ctx).Debug("price fetched",
		"symbol", symbol,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return decimal.Zero, fmt.Errorf("Price %s: %w", symbol, domain.ErrUnknownSymbol)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("Price %s: unexpected status %d: %s", symbol, resp.StatusCode, string(body))
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return decimal.Zero, fmt.Errorf("Price %s: decode: %w", symbol, err)
	}
	return pr.Price, nil
}

func (c *Client) AllPrices(ctx context.Context) (map[domain.Symbol]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/prices", nil)
	if err != nil {
		return nil, fmt.Errorf("AllPrices: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AllPrices: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("AllPrices: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var prices map[domain.Symbol]decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("AllPrices: decode: %w", err)
	}
	return prices, nil
}

// Healthy reports whether the provider answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("Healthy: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Healthy: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Healthy: unexpected status %d", resp.StatusCode)
	}
	return nil
}
