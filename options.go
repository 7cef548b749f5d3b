package partnermap

import (
	"net/http"
	"time"

	"github.com/agentstation/partnermap/internal/store"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// options holds the configuration for a partnermap client.
type options struct {
	partners  collector.Endpoint
	solutions collector.Endpoint
	mode      reconcile.KeyMode

	fetcher     collector.Fetcher
	headers     map[string]string
	httpTimeout time.Duration
	httpClient  *http.Client

	objects store.ObjectStore
}

// defaults returns options for the public listings.
func defaults() *options {
	return &options{
		partners: collector.Endpoint{
			Name:     constants.DatasetPartners,
			BaseURL:  constants.DefaultPartnersURL,
			PageSize: constants.DefaultPageSize,
			Sorter:   constants.DefaultPartnersSort,
		},
		solutions: collector.Endpoint{
			Name:     constants.DatasetSolutions,
			BaseURL:  constants.DefaultSolutionsURL,
			PageSize: constants.DefaultPageSize,
			Sorter:   constants.DefaultSolutionsSort,
		},
		mode:        reconcile.DefaultMode,
		headers:     map[string]string{},
		httpTimeout: constants.DefaultHTTPTimeout,
	}
}

// apply applies the given options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option is a function that configures a Client.
type Option func(*options)

// WithPartnersEndpoint sets the partner directory URL and sort token.
// An empty sorter keeps the current one.
func WithPartnersEndpoint(url, sorter string) Option {
	return func(o *options) {
		o.partners.BaseURL = url
		if sorter != "" {
			o.partners.Sorter = sorter
		}
	}
}

// WithSolutionsEndpoint sets the solution catalog URL and sort token.
// An empty sorter keeps the current one.
func WithSolutionsEndpoint(url, sorter string) Option {
	return func(o *options) {
		o.solutions.BaseURL = url
		if sorter != "" {
			o.solutions.Sorter = sorter
		}
	}
}

// WithPageSize sets the page size for both listings.
func WithPageSize(size int) Option {
	return func(o *options) {
		o.partners.PageSize = size
		o.solutions.PageSize = size
	}
}

// WithKeyMode selects how solutions are joined to partners.
func WithKeyMode(mode reconcile.KeyMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithFetcher replaces the HTTP transport, typically in tests.
func WithFetcher(f collector.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithHeaders overrides request headers. An empty value removes a default header.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = d
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithObjectStore enables saving to object storage.
func WithObjectStore(s store.ObjectStore) Option {
	return func(o *options) {
		o.objects = s
	}
}
