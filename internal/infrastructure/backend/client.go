// Package backend talks to the remote inventory and sales API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

// Client is a thin JSON client for the inventory API. It implements both
// the catalog and the sale repository.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

var (
	_ repository.CatalogRepository = (*Client)(nil)
	_ repository.SaleRepository    = (*Client)(nil)
)

// NewClient parses baseURL, for example http://localhost:3000/api.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q: scheme and host are required", baseURL)
	}
	return &Client{
		BaseURL: u,
		HTTP:    &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}, nil
}

// StatusError is a non-2xx reply from the API
type StatusError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// FetchCatalog returns every sellable item, phones and accessories mixed
func (c *Client) FetchCatalog(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "items", nil, nil)
}

// CreateSale posts the sale. The reply's id becomes the transaction id.
func (c *Client) CreateSale(ctx context.Context, payload *entity.SalePayload) (*entity.SaleResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal sale: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, "pos/sales", nil, body)
	if err != nil {
		return nil, err
	}
	return &entity.SaleResult{ID: saleIDOf(raw, c.now()), Raw: raw}, nil
}

// FetchTransactions lists recorded sales for a date filter
func (c *Client) FetchTransactions(ctx context.Context, filter repository.TransactionFilter) ([]byte, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", string(filter))
	}
	return c.do(ctx, http.MethodGet, "pos/sales", q, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	u := c.BaseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Detail: errorDetail(data)}
	}
	return data, nil
}

// errorDetail pulls a message out of an error reply, or the start of the
// raw body when it is not JSON.
func errorDetail(data []byte) string {
	if gjson.ValidBytes(data) {
		root := gjson.ParseBytes(data)
		for _, path := range []string{"message", "error", "error.message", "detail"} {
			if v := root.Get(path); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	return strings.TrimSpace(string(data))
}
