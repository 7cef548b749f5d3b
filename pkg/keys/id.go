package keys

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/partnermap/pkg/errors"
)

// ID is a partner or solution identifier as it appears in the listing: a
// JSON string, a JSON number, or absent. The original literal is kept so
// it can be written back unchanged.
type ID struct {
	value any // string, json.Number or bool; nil when absent
}

// StringID returns an identifier holding a string value.
func StringID(s string) ID {
	return ID{value: s}
}

// NumberID returns an identifier holding a numeric literal such as "42".
func NumberID(n string) ID {
	return ID{value: json.Number(n)}
}

// Absent reports whether the identifier was missing or null.
func (id ID) Absent() bool {
	return id.value == nil
}

// Key returns the identifier stringified the way a JavaScript String()
// call would: strings as-is, numbers in their shortest decimal form.
// Absent identifiers return the empty string; check Absent first when the
// distinction matters.
func (id ID) Key() string {
	switch v := id.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (id ID) String() string {
	if id.Absent() {
		return "<none>"
	}
	return id.Key()
}

// Equal reports whether two identifiers are both present and share a key.
func (id ID) Equal(other ID) bool {
	if id.Absent() || other.Absent() {
		return false
	}
	return id.Key() == other.Key()
}

func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return n.String()
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// Exponent form as in JavaScript: "1e+21", "1.5e-7".
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnmarshalJSON accepts a string, number or boolean. null leaves the
// identifier absent.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		id.value = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.WrapParse("json", "identifier", err)
	}

	switch v := raw.(type) {
	case string, json.Number, bool:
		id.value = v
		return nil
	default:
		return &errors.ValidationError{
			Field:   "id",
			Value:   string(data),
			Message: "identifier must be a string or a number",
		}
	}
}

// MarshalJSON writes the original literal, or null when absent.
func (id ID) MarshalJSON() ([]byte, error) {
	switch v := id.value.(type) {
	case nil:
		return []byte("null"), nil
	case json.Number:
		return []byte(v.String()), nil
	default:
		return json.Marshal(v)
	}
}

// MarshalYAML writes numbers as numbers and strings as strings.
func (id ID) MarshalYAML() (any, error) {
	switch v := id.value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return v.String(), nil
	default:
		return v, nil
	}
}

var _ yaml.InterfaceMarshaler = ID{}
