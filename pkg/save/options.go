// Package save describes where and how a reconciled document is written.
//
// A save is configured with functional options and carried out by the
// storage sinks, which use Encode to serialize the document.
package save

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
)

// Format is a document serialization format.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ContentType returns the MIME type used when uploading the format.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return constants.DefaultObjectContentType
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, &errors.ValidationError{
			Field:   "format",
			Value:   s,
			Message: "must be json or yaml",
		}
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	format Format
	bucket string
	object string

	formatSet bool
}

// Path returns the path for the save options.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the format for the save options. Without an explicit
// format, it is inferred from the path or object key.
func (s *Options) Format() Format {
	if s.formatSet {
		return s.format
	}
	switch {
	case s.path != "":
		return FormatFromPath(s.path)
	case s.object != "":
		return FormatFromPath(s.object)
	}
	return s.format
}

// Object returns the bucket and key for object storage saves.
func (s *Options) Object() (bucket, key string) {
	return s.bucket, s.object
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		path:   "",
		writer: nil,
		format: FormatJSON,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
		s.formatSet = true
	}
}

// WithPath for filesystem saves.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithObject for object storage saves.
func WithObject(bucket, key string) Option {
	return func(s *Options) {
		s.bucket = bucket
		s.object = key
	}
}
