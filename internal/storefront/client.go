package storefront

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

	"quickview-proxy/internal/gateway"
	"quickview-proxy/internal/model"
	"quickview-proxy/internal/transport"
)

const (
	// API paths relative to the store base URL. These are the same
	// endpoints the page's own scripts call; there is no separate
	// server-to-server API for this flow.
	pathCartAdd = "/cart/add.js"

	productPathPrefix = "/products/"
	productPathSuffix = ".js"

	userAgent = "quickview-proxy/1.0"

	defaultTimeout = 30 * time.Second
)

// Config holds storefront client settings.
type Config struct {
	// StoreURL is the storefront base URL, e.g. "https://shop.example.com".
	StoreURL string

	// Timeout bounds each platform call. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the default client. Tests inject an httptest
	// client here; production uses the browser-fingerprint transport.
	HTTPClient *http.Client
}

// Client is the storefront platform HTTP client.
// Implements gateway.Gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a storefront client for the given store.
func New(cfg Config) (*Client, error) {
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	if _, err := url.Parse(cfg.StoreURL); err != nil {
		return nil, fmt.Errorf("invalid store URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport.NewBrowserTransport(timeout),
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.StoreURL, "/"),
	}, nil
}

// GetProduct fetches and transforms the per-product JSON resource.
func (c *Client) GetProduct(ctx context.Context, handle string) (*model.Product, error) {
	if handle == "" {
		return nil, model.NewValidationError("handle", "product handle required")
	}

	path := productPathPrefix + url.PathEscape(handle) + productPathSuffix
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating product request: %w", err)
	}

	var raw productJSON
	if err := c.do(req, "product fetch", &raw); err != nil {
		return nil, err
	}

	return transformProduct(&raw), nil
}

// AddToCart posts one line item to the cart. Exactly one attempt; the
// caller decides whether a failure is surfaced (primary add) or swallowed
// (upsell add).
func (c *Client) AddToCart(ctx context.Context, variantID int64, quantity int) (json.RawMessage, error) {
	if variantID <= 0 {
		return nil, model.NewValidationError("id", "variant ID required")
	}
	if quantity <= 0 {
		return nil, model.NewValidationError("quantity", "must be positive")
	}

	body := &cartAddRequest{ID: variantID, Quantity: quantity}
	req, err := c.newRequest(ctx, http.MethodPost, pathCartAdd, body)
	if err != nil {
		return nil, fmt.Errorf("creating cart add request: %w", err)
	}

	var raw json.RawMessage
	if err := c.do(req, "cart add", &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// === HTTP Helpers ===

// newRequest creates a platform request with standard headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

// do executes the request and decodes the response.
// operation names the call in errors ("product fetch", "cart add").
func (c *Client) do(req *http.Request, operation string, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.parseError(operation, resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}

	return nil
}

// parseError converts platform errors to model.APIError.
func (c *Client) parseError(operation string, statusCode int, body []byte) error {
	var platformErr errorResponse
	json.Unmarshal(body, &platformErr) // Best effort parse

	switch statusCode {
	case 404:
		return model.NewNotFoundError("product")
	case 429:
		return model.NewRateLimitError(operation)
	case 422, 400:
		// Cart add rejections (sold out, bad quantity) come back as 422
		msg := platformErr.text()
		if msg == "" {
			msg = "rejected by storefront"
		}
		return model.NewValidationError(operation, msg)
	default:
		return model.NewUpstreamError(operation,
			fmt.Errorf("status %d: %s", statusCode, platformErr.text()))
	}
}

// Verify Client implements the gateway contract at compile time.
var _ gateway.Gateway = (*Client)(nil)
