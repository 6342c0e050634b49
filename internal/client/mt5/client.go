// Package mt5 is the HTTP client for the MT5 bridge, the service that fronts
// the trading platform and serves closed deals per account.
package mt5

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bridge error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey string) *Client {
	if host == "" {
		host = "http://localhost:8000"
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// FetchClosedTrades returns the account's deals closed in [start, end).
func (c *Client) FetchClosedTrades(ctx context.Context, account int64, start, end time.Time) ([]RawTrade, error) {
	if account <= 0 {
		return nil, fmt.Errorf("account is required")
	}
	query := url.Values{}
	query.Set("account", strconv.FormatInt(account, 10))
	query.Set("from", strconv.FormatInt(start.UTC().Unix(), 10))
	query.Set("to", strconv.FormatInt(end.UTC().Unix(), 10))
	body, err := c.doRequest(ctx, "/api/trades/closed", query)
	if err != nil {
		return nil, err
	}
	var parsed closedTradesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode closed trades: %w", err)
	}
	return parsed.Trades, nil
}
