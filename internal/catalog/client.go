package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/shopkeep/internal/logging"
)

// Catalog defines the remote operations the dashboard relies on.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	FetchAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, id int, patch ProductPatch) (Product, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the products REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

const (
	// DefaultBaseURL is the public products endpoint used when none is configured.
	DefaultBaseURL   = "https://api.escuelajs.co/api/v1/products"
	defaultUserAgent = "shopkeep/0.1"
	maxErrorBody     = 64 << 10
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the collection endpoint at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collection endpoint the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchAll retrieves the full product collection.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Product
	if err := c.do(ctx, "fetch products", http.MethodGet, c.baseURL, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Create submits a new product and returns the server's copy.
func (c *Client) Create(ctx context.Context, input NewProductInput) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	const op = "create product"
	input.Title = strings.TrimSpace(input.Title)
	if err := checkInput(op, input); err != nil {
		return Product{}, err
	}
	var created Product
	if err := c.do(ctx, op, http.MethodPost, c.baseURL, input, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

// Update applies a partial update to the product with the given id.
func (c *Client) Update(ctx context.Context, id int, patch ProductPatch) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	const op = "update product"
	if id <= 0 {
		return Product{}, &ValidationError{Op: op, Messages: []string{"product id required"}}
	}
	if patch.Empty() {
		return Product{}, &ValidationError{Op: op, Messages: []string{"nothing to update"}}
	}
	if err := checkInput(op, patch); err != nil {
		return Product{}, err
	}
	target := c.baseURL.JoinPath(strconv.Itoa(id))
	var updated Product
	if err := c.do(ctx, op, http.MethodPut, target, patch, &updated); err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (c *Client) do(ctx context.Context, op, method string, target *url.URL, body, dest any) error {
	reqURL := target.String()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"url":        reqURL,
	})
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return &NetworkError{Op: op, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	entry = entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		entry.Warn("request rejected")
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			return &ValidationError{Op: op, StatusCode: resp.StatusCode, Messages: parseErrorMessages(raw)}
		}
		return &NetworkError{Op: op, URL: reqURL, StatusCode: resp.StatusCode}
	}
	entry.Debug("request completed")

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &NetworkError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
