package transport

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

	"github.com/031wnstjd/appkit/pkg/observability/logger"
)

// Config holds configuration for the API client
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	// Headers are merged into every request; per-call headers win.
	Headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client is a thin JSON API client: one attempt per call, no retries. Non-2xx
// responses become a typed *Error; a 204 yields a nil payload without JSON
// decoding.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a Client for the provided base URL.
func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("transport base URL is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// Patch issues a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Do issues a request with explicit method and per-call headers.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	return c.do(ctx, method, path, body, headers)
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := c.logger.WithContext(ctx)

	fullURL, err := c.buildURL(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp)
	}

	// 204: nothing to decode
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("response from %s %s is not valid JSON", method, path)
	}
	return json.RawMessage(data), nil
}

func (c *Client) buildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %s: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// errorFromResponse builds the typed error for a non-2xx response. Statuses
// with fixed messages win; otherwise the server body's message/error field or
// the status text is used.
func (c *Client) errorFromResponse(resp *http.Response) error {
	if msg, ok := statusMessages[resp.StatusCode]; ok {
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				return &Error{Status: resp.StatusCode, Message: payload.Message}
			}
			if payload.Error != "" {
				return &Error{Status: resp.StatusCode, Message: payload.Error}
			}
		}
	}
	return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}
