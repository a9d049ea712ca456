// Package rest talks to the remote document library API. Every response is
// wrapped in a {status, message, data} envelope which is removed here, and
// HTTP statuses are mapped onto the domain error taxonomy.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fitconsole/internal/config"
	"fitconsole/internal/domain"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"
	"fitconsole/internal/session"
)

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 15 * time.Second

const maxErrorBodyLength = 200

// Client implements docsystem.Backend over the remote REST API.
type Client struct {
	baseURL    string
	token      string // fallback when the context carries no session
	httpClient *http.Client
	logger     *slog.Logger
}

var _ docsysRepo.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithToken sets a bearer token used when the request context has no session.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient creates a REST backend client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("backend", "rest"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wrapper around every API response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Detail  json.RawMessage `json:"detail"` // validation errors from the API framework
}

// do sends a JSON request and decodes the envelope's data into out (if non-nil).
// op names the call in errors and logs, e.g. "PUT /folder/{id}".
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "op", op, "error", err)
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	raw, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxResponseBodyBytes))
	if err != nil {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("backend request",
		"op", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, errorMessage(env, raw, decodeErr))
	}
	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return &domain.NetworkError{Op: op, Err: errors.New("response has no data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("decode response data: %w", err)}
	}
	return nil
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token := session.TokenFromContext(ctx); token != "" {
		return token
	}
	return c.token
}

// statusError maps a non-2xx status to a domain error.
// 4xx statuses without a dedicated type are backend-rejected mutations.
func statusError(op string, status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: msg}
	case status == http.StatusUnauthorized:
		return &domain.UnauthorizedError{Message: msg}
	case status == http.StatusForbidden:
		return &domain.ForbiddenError{Message: msg}
	case status == http.StatusNotFound:
		return &domain.NotFoundError{Message: msg}
	case status >= 400 && status < 500:
		return &domain.ConflictError{Message: msg}
	default:
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("status %d: %s", status, msg)}
	}
}

// errorMessage extracts a human-readable message from an error response.
func errorMessage(env envelope, raw []byte, decodeErr error) string {
	if decodeErr != nil {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBodyLength {
			msg = msg[:maxErrorBodyLength] + "..."
		}
		return msg
	}
	if env.Message != "" {
		return env.Message
	}
	if len(env.Detail) > 0 {
		var s string
		if err := json.Unmarshal(env.Detail, &s); err == nil {
			return s
		}
		return string(env.Detail)
	}
	return ""
}
