// Package api provides the JSON client for the back-office REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/logging"
	"mt5-backoffice/internal/security"
)

// Client is a bearer-token JSON client for the backend. The token is held
// by the client value rather than a process-wide default header table, and
// is attached to every request once set.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger

	mu    sync.RWMutex
	token string
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewClient creates a new backend client. The original frontend relied on
// the HTTP stack's default timeout; the client sets an explicit one.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  cfg.Logger,
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token from subsequent requests.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently attached bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the
// response into out. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := logging.WithRequestID(c.logger, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.LogAPICall(logger, method, path, 0, time.Since(start), err)
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrapf(apperrors.ErrTimeout, "%s %s", method, path)
		}
		return apperrors.Wrap(apperrors.ErrConnectionFailed, security.Redact(err.Error()))
	}
	defer resp.Body.Close()

	logging.LogAPICall(logger, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) decodeError(resp *http.Response) error {
	var payload errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &payload)
	}
	return apperrors.NewAPIError(resp.StatusCode, payload.Detail, sentinelFor(resp.StatusCode))
}

// sentinelFor maps well-known statuses onto sentinel errors so callers
// can branch with errors.Is instead of inspecting status codes.
func sentinelFor(status int) error {
	switch status {
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	}
	return nil
}

// ErrorDetail extracts the backend's human-readable message from err,
// falling back to the given message when the backend sent no detail.
func ErrorDetail(err error, fallback string) string {
	var apiErr *apperrors.APIError
	if apperrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
