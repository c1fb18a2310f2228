package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PortfolioDeck/internal/model"

	"github.com/google/uuid"
)

// DefaultRetryDelay is the fixed pause before the single quote retry.
const DefaultRetryDelay = time.Second

// QuoteClient talks to the price-quote service, a separate origin from the
// bookkeeping backend. Quote lookups carry a single-retry policy: one retry
// after a fixed delay for transient and validation failures, then terminal.
type QuoteClient struct {
	BaseURL    string
	HTTP       *http.Client
	RetryDelay time.Duration
}

// NewQuoteClient creates a quote client with optional proxy support.
func NewQuoteClient(baseURL, proxyURL string) *QuoteClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &QuoteClient{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		RetryDelay: DefaultRetryDelay,
	}
}

// History fetches one company's price history. A first attempt that fails
// transiently (network error, non-2xx status) or on validation (empty body,
// missing low series) waits RetryDelay and is retried exactly once; the
// second attempt is terminal whatever happens. Never more than two attempts.
func (c *QuoteClient) History(ctx context.Context, company string) (*model.QuoteSeries, error) {
	series, err := c.fetch(ctx, company)
	if err == nil {
		return series, nil
	}
	if !retryable(err) {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.delay()):
	}
	return c.fetch(ctx, company)
}

func (c *QuoteClient) delay() time.Duration {
	if c.RetryDelay > 0 {
		return c.RetryDelay
	}
	return DefaultRetryDelay
}

func retryable(err error) bool {
	var transient *TransientError
	var invalid *ValidationError
	return errors.As(err, &transient) || errors.As(err, &invalid)
}

func (c *QuoteClient) fetch(ctx context.Context, company string) (*model.QuoteSeries, error) {
	op := "quote " + company
	addr := fmt.Sprintf("%s/stockPrice?company=%s", c.BaseURL, url.QueryEscape(company))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", op, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Op: op, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransientError{Op: op, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	var payload struct {
		PriceData model.QuoteSeries `json:"price_data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("decode: %v", err)}
	}
	// A usable quote must carry a non-empty low series.
	if len(payload.PriceData.Low) == 0 {
		return nil, &ValidationError{Op: op, Reason: "empty low-price series"}
	}

	series := payload.PriceData
	series.Company = company
	return &series, nil
}
