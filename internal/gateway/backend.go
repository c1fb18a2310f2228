package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PortfolioDeck/internal/model"

	"github.com/google/uuid"
)

// Client talks to the bookkeeping backend. It is stateless: every call is
// independent, nothing is cached or deduplicated, and no call mutates
// anything outside the backend itself.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a backend client with optional proxy support.
func NewClient(baseURL, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HoldingOrder is the payload for adding to or removing from a position.
type HoldingOrder struct {
	Company   string  `json:"company"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

// LiquidationOrder closes an entire position in one company.
type LiquidationOrder struct {
	Company   string  `json:"company"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

// CashOrder moves whole-unit amounts in or out of the settlement account.
type CashOrder struct {
	Amount    int64  `json:"transaction_amount"`
	Timestamp string `json:"timestamp"`
}

// Holdings returns the current positions.
func (c *Client) Holdings(ctx context.Context) ([]model.Holding, error) {
	var out []model.Holding
	if err := c.get(ctx, "/viewPortfolio", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Companies returns the distinct set of tickers currently held.
func (c *Client) Companies(ctx context.Context) ([]string, error) {
	var rows []struct {
		Company string `json:"company"`
	}
	if err := c.get(ctx, "/viewPortfolioCompanies", &rows); err != nil {
		return nil, err
	}
	companies := make([]string, 0, len(rows))
	for _, r := range rows {
		companies = append(companies, r.Company)
	}
	return companies, nil
}

// Transactions returns the equity ledger, newest first.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	if err := c.get(ctx, "/viewTransactionHistory", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance returns the settlement account balance.
func (c *Client) Balance(ctx context.Context) (int64, error) {
	var out int64
	if err := c.get(ctx, "/viewAcctBalance", &out); err != nil {
		return 0, err
	}
	return out, nil
}

// Statement returns the cash ledger, newest first.
func (c *Client) Statement(ctx context.Context) ([]model.StatementEntry, error) {
	var out []model.StatementEntry
	if err := c.get(ctx, "/viewAcctStatement", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddHolding(ctx context.Context, order HoldingOrder) error {
	return c.post(ctx, "/addHoldings", order)
}

func (c *Client) RemoveHolding(ctx context.Context, order HoldingOrder) error {
	return c.post(ctx, "/removeHoldings", order)
}

// Liquidate sells the entire position of one company. Liquidating the whole
// portfolio is one call per held company, driven by the caller.
func (c *Client) Liquidate(ctx context.Context, order LiquidationOrder) error {
	return c.post(ctx, "/removeAllHoldings", order)
}

func (c *Client) Deposit(ctx context.Context, order CashOrder) error {
	return c.post(ctx, "/addtoSettlementAcct", order)
}

func (c *Client) Withdraw(ctx context.Context, order CashOrder) error {
	return c.post(ctx, "/withdrawFromSettlementAcct", order)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, nil)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientError{Op: op, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &TransientError{Op: op, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &ValidationError{Op: op, Reason: fmt.Sprintf("decode envelope: %v", err)}
	}
	if !env.Success {
		return &RejectionError{Op: op, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return &ValidationError{Op: op, Reason: "missing data field"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ValidationError{Op: op, Reason: fmt.Sprintf("decode data: %v", err)}
	}
	return nil
}
