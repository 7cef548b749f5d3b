package collector

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/errors"
)

// PageRequest identifies one page of a listing.
type PageRequest struct {
	Dataset string
	BaseURL string
	Start   int
	Max     int
	Sorter  string
}

// URL renders the request as base?q=&start=N&max=M&sorter=S. The listing
// expects the parameters in this order, so the query is not built with
// url.Values (which sorts keys).
func (r PageRequest) URL() string {
	sep := "?"
	if strings.Contains(r.BaseURL, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(r.BaseURL)
	b.WriteString(sep)
	b.WriteString("q=&start=")
	b.WriteString(strconv.Itoa(r.Start))
	b.WriteString("&max=")
	b.WriteString(strconv.Itoa(r.Max))
	b.WriteString("&sorter=")
	b.WriteString(url.QueryEscape(r.Sorter))
	return b.String()
}

// Page is a decoded listing envelope.
type Page struct {
	// Total is the dataset size advertised by the page. Missing, zero
	// or non-numeric totals are reported as 0.
	Total  int
	Assets []assets.Asset
}

type envelope struct {
	Total   json.RawMessage `json:"total"`
	Results *struct {
		Assets json.RawMessage `json:"assets"`
	} `json:"results"`
}

// ParsePage decodes a listing response body. It fails with an error
// satisfying errors.IsMalformed when the body is not JSON or when
// results.assets is missing or not an array.
func ParsePage(body []byte, source string) (*Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Malformed(source, "response is not a JSON object: "+err.Error())
	}
	if env.Results == nil {
		return nil, errors.Malformed(source, "response has no results")
	}
	raw := bytes.TrimSpace(env.Results.Assets)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errors.Malformed(source, "results.assets is not an array")
	}

	var list []assets.Asset
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Malformed(source, "results.assets: "+err.Error())
	}

	return &Page{Total: parseTotal(env.Total), Assets: list}, nil
}

// parseTotal reads the advertised total. Numbers and numeric strings
// count; anything else means there is nothing more to fetch. Fractional
// totals round up so that "offset < total" holds for the same offsets.
func parseTotal(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var f float64
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = v
	default:
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0
		}
	}

	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(f))
}
