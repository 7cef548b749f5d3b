// Package assets decodes the records carried by the partner directory and
// solution catalog listings.
//
// Every listing page holds an array of opaque assets. The decoders in this
// package pull the fields needed for reconciliation out of an asset's
// contentJson block and report whether the asset yielded a usable record.
package assets

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/keys"
)

// Asset is one undecoded element of a listing page's results.assets array.
type Asset struct {
	Raw json.RawMessage
}

// UnmarshalJSON keeps the element verbatim.
func (a *Asset) UnmarshalJSON(data []byte) error {
	a.Raw = append(a.Raw[:0], data...)
	return nil
}

// MarshalJSON writes the element back unchanged.
func (a Asset) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return []byte("null"), nil
	}
	return a.Raw, nil
}

// Decode unmarshals the asset into v.
func (a Asset) Decode(v any) error {
	if len(a.Raw) == 0 {
		return errors.Malformed("asset", "empty asset")
	}
	if err := json.Unmarshal(a.Raw, v); err != nil {
		return errors.WrapParse("json", "asset", err)
	}
	return nil
}

// Partner is a partner extracted from the directory listing.
// ID is absent for partners decoded by name.
type Partner struct {
	ID   keys.ID `json:"id" yaml:"id"`
	Name string  `json:"partnerName" yaml:"partnerName"`
}

// Solution is a solution extracted from the catalog listing together with
// the owner fields used to attach it to a partner.
type Solution struct {
	ID        keys.ID `json:"solutionId" yaml:"solutionId"`
	Name      string  `json:"solutionName" yaml:"solutionName"`
	OwnerID   keys.ID `json:"partnerId" yaml:"partnerId"`
	OwnerName string  `json:"partnerName" yaml:"partnerName"`
}

// text is a display string that tolerates numbers and booleans in the
// listing and treats null as absent.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}

	// Scalars keep their literal form, as String(x) would render them.
	var id keys.ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = text(id.Key())
	return nil
}
