// Package remote implements the travel platform contract over HTTP/JSON.
// The console authenticates with a bearer token taken from the request
// context, mirroring how the rest of the system passes identity around.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"flightdeck.io/console/internal/session"
	"flightdeck.io/console/internal/travel"
)

const defaultTimeout = 15 * time.Second

// Client talks to the booking platform's REST API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit throttles outbound calls. The platform enforces its own
// limits; staying under them avoids burning operator actions on 429s.
func WithRateLimit(perSecond, burst int) ClientOption {
	return func(c *Client) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewClient creates a client with sensible defaults.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login implements travel.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (travel.AuthPayload, error) {
	var payload travel.AuthPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload, "auth.login"); err != nil {
		return travel.AuthPayload{}, err
	}
	return payload, nil
}

// Register implements travel.Authenticator.
func (c *Client) Register(ctx context.Context, req travel.RegisterRequest) (travel.AuthPayload, error) {
	var payload travel.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &payload, "auth.register"); err != nil {
		return travel.AuthPayload{}, err
	}
	return payload, nil
}

// apiError is the platform's error envelope. Older endpoints answer with
// "error" instead of "message".
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, op string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &travel.OperationError{Op: op, Message: err.Error()}
		}
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := session.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &travel.OperationError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &travel.OperationError{Op: op, Status: resp.StatusCode, Message: "malformed response body"}
		}
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, travel.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, travel.ErrNotFound)
	}
	return &travel.OperationError{
		Op:      op,
		Status:  resp.StatusCode,
		Message: errorMessage(resp.Body, resp.StatusCode),
	}
}

func errorMessage(body io.Reader, status int) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err == nil && len(raw) > 0 {
		var envelope apiError
		if json.Unmarshal(raw, &envelope) == nil {
			if envelope.Message != "" {
				return envelope.Message
			}
			if envelope.Error != "" {
				return envelope.Error
			}
		}
	}
	return http.StatusText(status)
}
