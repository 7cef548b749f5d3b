package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
)

func TestFetchPageSendsQueryAndHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"total":0,"results":{"assets":[]}}`))
	}))
	defer srv.Close()

	c := New()
	body, err := c.FetchPage(context.Background(), collector.PageRequest{
		Dataset: "partners",
		BaseURL: srv.URL + "/list.ajax",
		Start:   30,
		Max:     15,
		Sorter:  "Default_Sort",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"results":{"assets":[]}}`, string(body))

	require.NotNil(t, got)
	assert.Equal(t, "/list.ajax", got.URL.Path)
	assert.Equal(t, "q=&start=30&max=15&sorter=Default_Sort", got.URL.RawQuery)
	assert.Equal(t, constants.DefaultUserAgent, got.Header.Get("User-Agent"))
	assert.Equal(t, constants.DefaultAccept, got.Header.Get("Accept"))
	assert.Equal(t, constants.DefaultReferer, got.Header.Get("Referer"))
}

func TestWithHeadersOverridesAndRemoves(t *testing.T) {
	c := New(WithHeaders(map[string]string{
		"User-Agent": "partnermap-test",
		"Referer":    "",
		"X-Trace":    "abc",
	}))

	h := c.Headers()
	assert.Equal(t, "partnermap-test", h.Get("User-Agent"))
	assert.Empty(t, h.Get("Referer"))
	assert.Equal(t, "abc", h.Get("X-Trace"))
	assert.Equal(t, constants.DefaultAccept, h.Get("Accept"))
}

func TestFetchPageNon2xx(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		rateLimited bool
		unavailable bool
	}{
		{"not found", http.StatusNotFound, "missing", false, false},
		{"rate limited", http.StatusTooManyRequests, "slow down", true, false},
		{"server error", http.StatusBadGateway, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New().FetchPage(context.Background(), collector.PageRequest{Dataset: "solutions", BaseURL: srv.URL, Max: 15})
			require.Error(t, err)

			var apiErr *errors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "solutions", apiErr.Dataset)
			assert.Contains(t, apiErr.Endpoint, "start=0")
			assert.True(t, errors.IsTransport(err))
			assert.Equal(t, tt.rateLimited, errors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, errors.ErrUnavailable))
			if tt.body == "" {
				assert.Equal(t, http.StatusText(tt.status), apiErr.Message)
			}
		})
	}
}

func TestFetchPageNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New().FetchPage(context.Background(), collector.PageRequest{Dataset: "partners", BaseURL: url, Max: 1})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Err)
}

func TestFetchPageTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := New(WithTimeout(20 * time.Millisecond))
	_, err := c.FetchPage(context.Background(), collector.PageRequest{Dataset: "partners", BaseURL: srv.URL, Max: 1})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestClientDrivesCollector(t *testing.T) {
	pages := map[string]string{
		"0": `{"total":3,"results":{"assets":[{"v":"a"},{"v":"b"}]}}`,
		"2": `{"total":3,"results":{"assets":[{"v":"c"}]}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("start")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	type item struct {
		V string `json:"v"`
	}
	ep := collector.Endpoint{Name: "partners", BaseURL: srv.URL, PageSize: 2, Sorter: "Name"}
	result, err := collector.Collect(context.Background(), New(), ep, func(a assets.Asset) (item, bool) {
		var it item
		return it, a.Decode(&it) == nil
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "c", result.Items[2].V)
	assert.True(t, result.Complete())
}
