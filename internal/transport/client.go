// Package transport performs the HTTP requests against the remote listings.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client fetches listing pages with a fixed set of request headers.
type Client struct {
	http    *http.Client
	headers http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHeaders sets or overrides request headers. Empty values remove the header.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			if v == "" {
				c.headers.Del(k)
				continue
			}
			c.headers.Set(k, v)
		}
	}
}

// New creates a transport client carrying the default browser-like headers.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		headers: DefaultHeaders(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultHeaders returns the headers sent with every listing request.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", constants.DefaultUserAgent)
	h.Set("Accept", constants.DefaultAccept)
	h.Set("Referer", constants.DefaultReferer)
	return h
}

// Headers returns a copy of the configured request headers.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// Get performs a GET request with the configured headers.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return c.http.Do(req)
}

// FetchPage implements collector.Fetcher. Network failures and non-2xx
// responses are returned as *errors.APIError.
func (c *Client) FetchPage(ctx context.Context, page collector.PageRequest) ([]byte, error) {
	url := page.URL()

	logging.FromContext(ctx).Trace().
		Str("url", url).
		Msg("GET listing page")

	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapAPI(page.Dataset, url, err)
	}
	return ReadResponse(resp, page.Dataset, url)
}

var _ collector.Fetcher = (*Client)(nil)
