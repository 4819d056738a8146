package inventory

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the remote product API the dashboard consumes. *Client
// implements it; tests substitute in-memory fakes.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	FetchStats(ctx context.Context) (Stats, error)
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id ID, in ProductInput) (Product, error)
	DeleteProduct(ctx context.Context, id ID) error
}

var _ Service = (*Client)(nil)

// Client talks to the product HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	DefaultBaseURL        = "http://localhost:5001/api"
	DefaultRequestTimeout = 5 * time.Second

	defaultUserAgent = "tally/0.1"
	requestIDHeader  = "X-Request-ID"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. http://localhost:5001/api.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: DefaultRequestTimeout},
		userAgent: defaultUserAgent,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts retrieves every product. Order is whatever the service returns.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var payload []Product
	if err := c.do(ctx, http.MethodGet, []string{"products"}, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchStats retrieves the server-computed summary.
func (c *Client) FetchStats(ctx context.Context) (Stats, error) {
	var payload Stats
	if err := c.do(ctx, http.MethodGet, []string{"stats"}, nil, &payload); err != nil {
		return Stats{}, err
	}
	return payload, nil
}

// CreateProduct posts a new product and returns it with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	var payload Product
	if err := c.do(ctx, http.MethodPost, []string{"products"}, in, &payload); err != nil {
		return Product{}, err
	}
	return payload, nil
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id ID, in ProductInput) (Product, error) {
	if id.IsZero() {
		return Product{}, fmt.Errorf("product id required")
	}
	var payload Product
	if err := c.do(ctx, http.MethodPut, []string{"products", id.String()}, in.Product(id), &payload); err != nil {
		return Product{}, err
	}
	return payload, nil
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id ID) error {
	if id.IsZero() {
		return fmt.Errorf("product id required")
	}
	return c.do(ctx, http.MethodDelete, []string{"products", id.String()}, nil, nil)
}

// resolve appends path segments to the base URL, escaping each one so an
// opaque id cannot introduce extra segments.
func (c *Client) resolve(segments []string) url.URL {
	u := *c.baseURL
	raw := make([]string, len(segments))
	for i, seg := range segments {
		raw[i] = url.PathEscape(seg)
	}
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(raw, "/")
	return u
}

func (c *Client) do(ctx context.Context, method string, rel []string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.resolve(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", reqURL.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", reqURL.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api %s %s returned status %d", method, reqURL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
