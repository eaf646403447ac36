package api

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
	"golang.org/x/oauth2"

	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings for a folio server.
type Config struct {
	// BaseURL is the server root, e.g. https://app.folio.dev.
	BaseURL string

	// Token is the API token sent as a bearer credential.
	Token string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond caps the proactive request rate (default: 8).
	RequestsPerSecond float64
}

// Client is the HTTP implementation of the transport port.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewClient creates an authenticated API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: %w: base url required", domain.ErrNotConfigured)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("api: %w: token required", domain.ErrNotConfigured)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = cfg.Timeout

	return &Client{
		client:  tc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Post sends a JSON body to an RPC endpoint and decodes the envelope.
func (c *Client) Post(ctx context.Context, path string, body any) (*driven.Payload, error) {
	if body == nil {
		body = struct{}{}
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpointURL(path),
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

// Get sends a query-parameter request to an RPC endpoint and decodes
// the envelope.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*driven.Payload, error) {
	endpoint := c.endpointURL(path)
	if len(params) > 0 {
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.do(req, path)
}

// RateLimiter returns the rate limiter for external inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

func (c *Client) endpointURL(path string) string {
	return c.baseURL + "/api/" + path
}

func (c *Client) do(req *http.Request, path string) (*driven.Payload, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)
	logger.Debug("%s %s: %d (%s)", req.Method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.errorFromResponse(resp)
	}

	var payload driven.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status == 0 {
		payload.Status = resp.StatusCode
	}
	return &payload, nil
}

// errorFromResponse converts a non-2xx response into an APIError,
// preferring the server's message fields over the bare status text.
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	if body, err := io.ReadAll(resp.Body); err == nil {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil {
			switch {
			case errBody.Message != "":
				message = errBody.Message
			case errBody.Error != "":
				message = errBody.Error
			}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		URL:        resp.Request.URL.String(),
	}
}
