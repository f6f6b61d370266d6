// Package ledgerapi talks to the external transactions service that owns
// the transaction history. Pages come back in the upstream's envelope
// format and are sorted newest first.
package ledgerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"akfinance/internal/core"
)

// Page is the paginated envelope returned by the transactions service.
type Page struct {
	Content       []core.Transaction `json:"content"`
	Number        int                `json:"number"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
	First         bool               `json:"first"`
	Last          bool               `json:"last"`
}

// Fetcher retrieves transaction pages.
type Fetcher interface {
	FetchPage(ctx context.Context, page, size int) (*Page, error)
}

// Client is an HTTP client for the transactions service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchPage retrieves one page of transactions, newest first.
func (c *Client) FetchPage(ctx context.Context, page, size int) (*Page, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", core.ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive", core.ErrInvalidInput)
	}

	u, err := url.Parse(c.baseURL + "/api/v1/transactions")
	if err != nil {
		return nil, fmt.Errorf("build transactions URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build transactions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("transactions service returned %d: %s", resp.StatusCode, string(body))
	}

	var p Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode transactions page: %w", err)
	}
	return &p, nil
}
