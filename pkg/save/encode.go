package save

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/partnermap/pkg/errors"
)

// Encode serializes v in the given format. JSON is indented by two spaces
// and leaves HTML characters unescaped.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, errors.WrapParse("json", "document", err)
		}
		// Encoder appends a newline; keep the file ending without one.
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return nil, errors.WrapParse("yaml", "document", err)
		}
		return data, nil
	default:
		return nil, &errors.ValidationError{
			Field:   "format",
			Value:   format.String(),
			Message: "unsupported format",
		}
	}
}
