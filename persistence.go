package partnermap

import (
	"context"

	"github.com/agentstation/partnermap/internal/store"
	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/logging"
	"github.com/agentstation/partnermap/pkg/reconcile"
	"github.com/agentstation/partnermap/pkg/save"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles document persistence operations.
type Persistence interface {
	// Save writes doc and returns where it went.
	Save(ctx context.Context, doc *reconcile.Document, opts ...save.Option) (string, error)
}

// DefaultOutput returns the file a mode saves to when no destination is given.
func DefaultOutput(mode reconcile.KeyMode) string {
	if mode == reconcile.ModeName {
		return constants.DefaultNameModeOutput
	}
	return constants.DefaultIDModeOutput
}

// Save encodes doc and writes it to a writer, an object or a file, in
// that order of preference. Without any destination the document goes to
// DefaultOutput for the client's mode.
func (c *client) Save(ctx context.Context, doc *reconcile.Document, opts ...save.Option) (string, error) {
	if doc == nil {
		return "", &errors.ValidationError{Field: "document", Message: "document is required"}
	}

	options := save.Defaults()
	options.Apply(opts...)
	if bucket, key := options.Object(); options.Writer() == nil && options.Path() == "" && bucket == "" && key == "" {
		options.Apply(save.WithPath(DefaultOutput(c.options.mode)))
	}

	data, err := save.Encode(doc, options.Format())
	if err != nil {
		return "", errors.WrapResource("encode", "document", options.Format().String(), err)
	}

	sink, err := store.FromOptions(options, c.objectStore())
	if err != nil {
		return "", err
	}
	if err := sink.Put(ctx, data, options.Format()); err != nil {
		return "", errors.WrapResource("save", "document", sink.Location(), err)
	}

	logging.FromContext(ctx).Info().
		Str("location", sink.Location()).
		Str("format", options.Format().String()).
		Int("bytes", len(data)).
		Msg("Document saved")

	return sink.Location(), nil
}
