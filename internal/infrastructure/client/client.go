// Package client is a typed REST client for the enrollment API. It backs the
// wizard and the admin dashboard when they run outside the server process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	maxResponseSize = 8 << 20
	defaultTimeout  = 15 * time.Second
)

// ErrUnavailable wraps transport failures reaching the API
var ErrUnavailable = errors.New("enrollment api unavailable")

// APIError is a failed call decoded from the response envelope.
// It unwraps to a shared.DomainError so callers can match sentinels such as
// shared.ErrNotFound with errors.Is.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	Fields    []string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Code, e.Message)
}

// Unwrap maps the wire code back to its domain code
func (e *APIError) Unwrap() error {
	code := strings.TrimPrefix(e.Code, "ERR_")
	if code == "" {
		return nil
	}
	return shared.NewDomainError(code, e.Message)
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Details   []struct {
		Field string `json:"field"`
	} `json:"details"`
}

type pageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
	Meta    *pageMeta       `json:"meta"`
}

// Client calls the versioned API rooted at BaseURL.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for cfg.BaseURL, e.g. http://localhost:8000/api/v1
func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("client: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// call performs a JSON request and decodes the envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) (*pageMeta, error) {
	resp, err := c.send(ctx, method, path, query, body, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("client: failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("client: failed to decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, decodeAPIError(resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("client: failed to decode data: %w", err)
		}
	}
	return env.Meta, nil
}

// download fetches a binary document
func (c *Client) download(ctx context.Context, path, accept string) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, nil, accept)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("client: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			return nil, "", decodeAPIError(resp.StatusCode, env.Error)
		}
		return nil, "", &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", resp.Header.Get("X-Request-ID")),
	)
	return resp, nil
}

func decodeAPIError(status int, body *errorBody) *APIError {
	if body == nil {
		return &APIError{Status: status, Message: http.StatusText(status)}
	}
	apiErr := &APIError{
		Status:    status,
		Code:      body.Code,
		Message:   body.Message,
		RequestID: body.RequestID,
	}
	for _, d := range body.Details {
		apiErr.Fields = append(apiErr.Fields, d.Field)
	}
	return apiErr
}
