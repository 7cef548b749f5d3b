// Package collector walks an offset-paginated listing and accumulates the
// records a per-dataset transform extracts from each page.
//
// Collection is best effort. A failed request or an unexpected response
// ends the walk, and whatever was gathered up to that point is returned.
package collector

import (
	"context"
	"math"

	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/logging"
)

// Fetcher performs a single page request and returns the raw body.
// Network failures and non-2xx responses are reported as errors.
type Fetcher interface {
	FetchPage(ctx context.Context, req PageRequest) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req PageRequest) ([]byte, error)

// FetchPage implements Fetcher.
func (f FetcherFunc) FetchPage(ctx context.Context, req PageRequest) ([]byte, error) {
	return f(ctx, req)
}

// Transform extracts a record from an asset. Returning false drops the
// asset without error.
type Transform[T any] func(assets.Asset) (T, bool)

// Endpoint describes one paginated listing.
type Endpoint struct {
	Name     string // dataset name used in logs and errors
	BaseURL  string
	PageSize int
	Sorter   string
}

// Validate checks that the endpoint can be walked.
func (e Endpoint) Validate() error {
	if e.BaseURL == "" {
		return &errors.ValidationError{Field: "base_url", Value: e.BaseURL, Message: "listing URL is required"}
	}
	if e.PageSize <= 0 {
		return &errors.ValidationError{Field: "page_size", Value: e.PageSize, Message: "page size must be positive"}
	}
	return nil
}

// Result holds everything a walk gathered.
type Result[T any] struct {
	Items   []T
	Pages   int   // pages fetched and parsed
	Total   int   // total advertised by the last parsed page
	Dropped int   // assets the transform rejected
	Stopped error // why the walk ended early, nil when it completed
}

// Complete reports whether the walk reached the advertised end.
func (r *Result[T]) Complete() bool {
	return r.Stopped == nil
}

// Stats summarizes a walk without its items.
type Stats struct {
	Dataset string `json:"dataset" yaml:"dataset"`
	Items   int    `json:"items" yaml:"items"`
	Pages   int    `json:"pages" yaml:"pages"`
	Total   int    `json:"total" yaml:"total"`
	Dropped int    `json:"dropped" yaml:"dropped"`
	Stopped string `json:"stopped,omitempty" yaml:"stopped,omitempty"`
}

// Stats returns the walk summary for the named dataset.
func (r *Result[T]) Stats(dataset string) Stats {
	s := Stats{
		Dataset: dataset,
		Items:   len(r.Items),
		Pages:   r.Pages,
		Total:   r.Total,
		Dropped: r.Dropped,
	}
	if r.Stopped != nil {
		s.Stopped = r.Stopped.Error()
	}
	return s
}

// Collect walks endpoint page by page until the offset reaches the total
// advertised by the most recent page. The first page is always requested.
//
// Transport failures are logged at error level and malformed pages at
// warn level; both end the walk and are recorded in Result.Stopped. The
// only error Collect returns is an invalid endpoint or missing collaborator.
func Collect[T any](ctx context.Context, fetcher Fetcher, endpoint Endpoint, transform Transform[T]) (*Result[T], error) {
	if err := endpoint.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, &errors.ValidationError{Field: "fetcher", Message: "fetcher is required"}
	}
	if transform == nil {
		return nil, &errors.ValidationError{Field: "transform", Message: "transform is required"}
	}

	ctx = logging.WithDataset(ctx, endpoint.Name)
	logger := logging.FromContext(ctx)

	result := &Result[T]{Items: make([]T, 0)}
	total := math.MaxInt

	for offset := 0; offset < total; offset += endpoint.PageSize {
		req := PageRequest{
			Dataset: endpoint.Name,
			BaseURL: endpoint.BaseURL,
			Start:   offset,
			Max:     endpoint.PageSize,
			Sorter:  endpoint.Sorter,
		}

		if err := ctx.Err(); err != nil {
			result.Stopped = errors.WrapAPI(endpoint.Name, req.URL(), err)
			logger.Error().
				Err(err).
				Int("start", offset).
				Msg("Collection interrupted")
			break
		}

		body, err := fetcher.FetchPage(ctx, req)
		if err != nil {
			result.Stopped = err
			logger.Error().
				Err(err).
				Int("start", offset).
				Msg("Error fetching page")
			break
		}

		page, err := ParsePage(body, endpoint.Name)
		if err != nil {
			result.Stopped = err
			logger.Warn().
				Err(err).
				Int("start", offset).
				Msg("Unexpected response structure")
			break
		}

		total = page.Total
		result.Total = page.Total
		result.Pages++

		kept := 0
		for _, a := range page.Assets {
			item, ok := transform(a)
			if !ok {
				continue
			}
			result.Items = append(result.Items, item)
			kept++
		}
		result.Dropped += len(page.Assets) - kept

		logger.Debug().
			Int("start", offset).
			Int("assets", len(page.Assets)).
			Int("kept", kept).
			Int("total", total).
			Msg("Fetched page")
	}

	logger.Debug().
		Int("items", len(result.Items)).
		Int("pages", result.Pages).
		Bool("complete", result.Complete()).
		Msg("Collection finished")

	return result, nil
}
