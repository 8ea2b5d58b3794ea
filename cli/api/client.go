package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"blogctl/pkg/config"
	"blogctl/pkg/logger"
)

// TokenSource supplies the current session token. An empty string means
// signed out; no Authorization header is attached then.
type TokenSource interface {
	Token() string
}

// Client is the single point of outbound HTTP traffic. Every request goes
// through do(): one attempt, no retry, structured errors. Callers own
// loading state and error display.
type Client struct {
	http    *resty.Client
	baseURL string
	tokens  TokenSource
}

// NewClient builds the gateway client against cfg.API.BaseURL.
func NewClient(cfg *config.Config, tokens TokenSource) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	parsed, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute with a host, got: %s", cfg.API.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}

	client := resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:    client,
		baseURL: cfg.API.BaseURL,
		tokens:  tokens,
	}
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.tokens != nil {
			if token := c.tokens.Token(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
		}
		return nil
	})
	return c, nil
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string { return c.baseURL }

// wireError is the error body shape the API uses on non-2xx responses.
type wireError struct {
	Error string `json:"error"`
}

// do performs one request. On 2xx the body is decoded into result; on
// anything else an *APIError carries the server status and message.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	wire := &wireError{}
	req.SetError(wire)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp.StatusCode(), wire.Error)
	}
	logger.FromContext(ctx).Debug("api request completed",
		"method", method, "path", path, "status", resp.StatusCode())
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
