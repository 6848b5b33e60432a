package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/infra/auth"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap lets errors.Is(err, domain.ErrUnauthorized) match 401 responses.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	return nil
}

// Client is a thin HTTP wrapper for the platform's REST API.
// It handles base URL construction, bearer token injection and client-side
// rate limiting.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	limiter       *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests at perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates an API client.
func NewClient(baseURL string, tp auth.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// PostJSON performs an authenticated POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body any) ([]byte, error) {
	r, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, r, "application/json")
}

// PutJSON performs an authenticated PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body any) ([]byte, error) {
	r, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, r, "application/json")
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

// PostRaw performs an authenticated POST with a caller-built body, e.g. multipart.
func (c *Client) PostRaw(ctx context.Context, path string, body io.Reader, contentType string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body, contentType)
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug().Str("method", method).Str("path", path).Msg("request canceled")
		}
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}
