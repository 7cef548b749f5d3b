package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap/pkg/errors"
)

func TestPageRequestURL(t *testing.T) {
	tests := []struct {
		name     string
		req      PageRequest
		expected string
	}{
		{
			name:     "first page",
			req:      PageRequest{BaseURL: "https://example.com/list.ajax", Start: 0, Max: 15, Sorter: "Default_Sort"},
			expected: "https://example.com/list.ajax?q=&start=0&max=15&sorter=Default_Sort",
		},
		{
			name:     "later page",
			req:      PageRequest{BaseURL: "https://example.com/list.ajax", Start: 45, Max: 15, Sorter: "Name"},
			expected: "https://example.com/list.ajax?q=&start=45&max=15&sorter=Name",
		},
		{
			name:     "sorter escaped",
			req:      PageRequest{BaseURL: "https://example.com/list", Start: 0, Max: 5, Sorter: "a b&c"},
			expected: "https://example.com/list?q=&start=0&max=5&sorter=a+b%26c",
		},
		{
			name:     "base with query",
			req:      PageRequest{BaseURL: "https://example.com/list?lang=en", Start: 0, Max: 5},
			expected: "https://example.com/list?lang=en&q=&start=0&max=5&sorter=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.URL())
		})
	}
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage([]byte(`{"total":30,"results":{"assets":[{"a":1},{"b":2}]}}`), "partners")
	require.NoError(t, err)
	assert.Equal(t, 30, page.Total)
	require.Len(t, page.Assets, 2)
	assert.JSONEq(t, `{"a":1}`, string(page.Assets[0].Raw))
}

func TestParsePageMalformed(t *testing.T) {
	bodies := map[string]string{
		"not json":          `<html>maintenance</html>`,
		"null":              `null`,
		"array":             `[1,2,3]`,
		"no results":        `{"total":3}`,
		"null results":      `{"total":3,"results":null}`,
		"no assets":         `{"total":3,"results":{}}`,
		"assets not array":  `{"total":3,"results":{"assets":{"x":1}}}`,
		"assets null":       `{"total":3,"results":{"assets":null}}`,
		"assets is string":  `{"total":3,"results":{"assets":"[]"}}`,
		"truncated payload": `{"total":3,"results":{"assets":[`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePage([]byte(body), "solutions")
			require.Error(t, err)
			assert.True(t, errors.IsMalformed(err), "got %v", err)
		})
	}
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{``, 0},
		{`null`, 0},
		{`0`, 0},
		{`-4`, 0},
		{`42`, 42},
		{`30.5`, 31},
		{`"45"`, 45},
		{`" 7 "`, 7},
		{`""`, 0},
		{`"many"`, 0},
		{`true`, 0},
		{`{}`, 0},
		{`[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTotal([]byte(tt.raw)))
		})
	}
}

func TestParsePageEmptyAssets(t *testing.T) {
	page, err := ParsePage([]byte(`{"results":{"assets":[]}}`), "partners")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Assets)
}
