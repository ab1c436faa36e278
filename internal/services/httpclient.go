package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"songsearch/internal/config"
)

// HTTPClient performs single-attempt JSON calls against one catalog.
// Calls are throttled by the platform rate limit when one is configured.
type HTTPClient struct {
	platform string
	client   *resty.Client
	limiter  *rate.Limiter
}

// Response is a completed HTTP exchange
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode parses the body as JSON. Numbers decode as json.Number.
func (r *Response) Decode(v any) error {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	return dec.Decode(v)
}

// NewHTTPClient creates a client for the given platform configuration
func NewHTTPClient(cfg *config.PlatformConfig) *HTTPClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout()).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), 1)
	}

	return &HTTPClient{
		platform: cfg.Name,
		client:   client,
		limiter:  limiter,
	}
}

// StandardClient exposes the underlying net/http client, for the OAuth2 token exchange
func (c *HTTPClient) StandardClient() *http.Client {
	return c.client.GetClient()
}

// Get performs one GET request. A non-2xx status is not an error here;
// only failures that produced no response are.
func (c *HTTPClient) Get(ctx context.Context, path string, params map[string]string, bearer string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: http.MethodGet, URL: path, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	req := c.client.R().
		SetContext(ctx).
		SetQueryParams(params)
	if bearer != "" {
		req.SetAuthToken(bearer)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: path, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// GetJSON performs one GET and decodes a 2xx body into v
func (c *HTTPClient) GetJSON(ctx context.Context, path string, params map[string]string, bearer string, v any) error {
	resp, err := c.Get(ctx, path, params, bearer)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := resp.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}
