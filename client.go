// Package partnermap joins a paginated partner directory with a paginated
// solution catalog.
//
// A run collects every partner, then every solution, attaches each
// solution to the partner that owns it and groups the rest by the owner
// value they carried. The result is a single document listing all
// partners, each with its solutions, plus the unmatched groups.
//
// Example usage:
//
//	pm, err := partnermap.New(partnermap.WithKeyMode(reconcile.ModeName))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := pm.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	location, err := pm.Save(ctx, report.Document)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("saved to", location)
package partnermap

import (
	"context"

	"github.com/agentstation/partnermap/internal/store"
	"github.com/agentstation/partnermap/internal/transport"
	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Collector fetches the individual datasets.
type Collector interface {
	// Partners walks the partner directory.
	Partners(ctx context.Context) (*collector.Result[assets.Partner], error)

	// Solutions walks the solution catalog.
	Solutions(ctx context.Context) (*collector.Result[assets.Solution], error)
}

// Client reconciles partners and solutions.
type Client interface {

	// Collector fetches each dataset on its own
	Collector

	// Runner performs a full reconciliation
	Runner

	// Persistence writes documents out
	Persistence

	// Hooks registers run callbacks
	Hooks

	// Mode returns the key mode runs use
	Mode() reconcile.KeyMode
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	fetcher collector.Fetcher
	hooks   *hooks
}

// New creates a Client. Without WithFetcher, pages are fetched over HTTP
// with the configured headers and timeout.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	if !o.mode.Valid() {
		return nil, &errors.ValidationError{Field: "mode", Value: string(o.mode), Message: "must be one of: id, name"}
	}
	for _, ep := range []collector.Endpoint{o.partners, o.solutions} {
		if err := ep.Validate(); err != nil {
			return nil, errors.WrapResource("configure", "endpoint", ep.Name, err)
		}
		if ep.PageSize > constants.MaxPageSize {
			return nil, &errors.ValidationError{Field: "page_size", Value: ep.PageSize, Message: "exceeds the maximum page size"}
		}
	}

	fetcher := o.fetcher
	if fetcher == nil {
		topts := []transport.Option{transport.WithHeaders(o.headers)}
		if o.httpClient != nil {
			topts = append(topts, transport.WithHTTPClient(o.httpClient))
		} else {
			topts = append(topts, transport.WithTimeout(o.httpTimeout))
		}
		fetcher = transport.New(topts...)
	}

	return &client{
		options: o,
		fetcher: fetcher,
		hooks:   newHooks(),
	}, nil
}

// Mode implements Client.
func (c *client) Mode() reconcile.KeyMode {
	return c.options.mode
}

// Partners implements Collector.
func (c *client) Partners(ctx context.Context) (*collector.Result[assets.Partner], error) {
	transform := assets.PartnerByID
	if c.options.mode == reconcile.ModeName {
		transform = assets.PartnerByName
	}
	result, err := collector.Collect(ctx, c.fetcher, c.options.partners, transform)
	if err != nil {
		return nil, err
	}
	c.hooks.triggerCollected(result.Stats(c.options.partners.Name))
	return result, nil
}

// Solutions implements Collector.
func (c *client) Solutions(ctx context.Context) (*collector.Result[assets.Solution], error) {
	transform := assets.SolutionByID
	if c.options.mode == reconcile.ModeName {
		transform = assets.SolutionByName
	}
	result, err := collector.Collect(ctx, c.fetcher, c.options.solutions, transform)
	if err != nil {
		return nil, err
	}
	c.hooks.triggerCollected(result.Stats(c.options.solutions.Name))
	return result, nil
}

// objectStore returns the configured object store, or nil.
func (c *client) objectStore() store.ObjectStore {
	return c.options.objects
}
