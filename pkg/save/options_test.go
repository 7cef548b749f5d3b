package save

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap/pkg/errors"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()
	assert.Empty(t, opts.Path())
	assert.Nil(t, opts.Writer())
	assert.Equal(t, FormatJSON, opts.Format())
	bucket, key := opts.Object()
	assert.Empty(t, bucket)
	assert.Empty(t, key)
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	opts := Defaults().Apply(
		WithPath("out/partners.yaml"),
		WithWriter(&buf),
		WithObject("exports", "2026/partners.json"),
	)

	assert.Equal(t, "out/partners.yaml", opts.Path())
	assert.Equal(t, &buf, opts.Writer())
	assert.Equal(t, FormatYAML, opts.Format(), "inferred from path")

	bucket, key := opts.Object()
	assert.Equal(t, "exports", bucket)
	assert.Equal(t, "2026/partners.json", key)
}

func TestExplicitFormatWins(t *testing.T) {
	opts := Defaults().Apply(WithPath("out.yaml"), WithFormat(FormatJSON))
	assert.Equal(t, FormatJSON, opts.Format())
}

func TestFormatInferredFromObjectKey(t *testing.T) {
	opts := Defaults().Apply(WithObject("b", "doc.yml"))
	assert.Equal(t, FormatYAML, opts.Format())
}

func TestParseFormat(t *testing.T) {
	for input, expected := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		f, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, f)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatStrings(t *testing.T) {
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "unknown", Format(9).String())
	assert.False(t, Format(9).IsValid())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
}
