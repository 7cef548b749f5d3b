// Package store writes encoded documents to their destination: a local
// file, an io.Writer such as stdout, or an object storage bucket.
package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/save"
)

// Sink receives one encoded document.
type Sink interface {
	Put(ctx context.Context, data []byte, format save.Format) error
	// Location describes where Put writes, for logs and summaries.
	Location() string
}

// FromOptions picks a sink for the save options. A writer takes
// precedence over an object destination, which takes precedence over a
// path. objects may be nil unless the options name a bucket.
func FromOptions(opts *save.Options, objects ObjectStore) (Sink, error) {
	if w := opts.Writer(); w != nil {
		return &WriterSink{W: w}, nil
	}
	if bucket, key := opts.Object(); bucket != "" || key != "" {
		if objects == nil {
			return nil, &errors.ConfigError{
				Component: "store",
				Message:   "object storage is not configured",
			}
		}
		return NewObjectSink(objects, bucket, key)
	}
	if path := opts.Path(); path != "" {
		return &FileSink{Path: path}, nil
	}
	return nil, &errors.ValidationError{
		Field:   "output",
		Message: "no output path, writer or object destination",
	}
}

// FileSink writes the document to a file, replacing it atomically.
type FileSink struct {
	Path string
}

// Location implements Sink.
func (s *FileSink) Location() string {
	return s.Path
}

// Put writes data to a temporary file beside Path and renames it into place.
func (s *FileSink) Put(ctx context.Context, data []byte, _ save.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", s.Path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", s.Path, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", s.Path, err)
	}
	if err := os.Rename(tempPath, s.Path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", s.Path, err)
	}
	return nil
}

// WriterSink writes the document to W followed by a newline.
type WriterSink struct {
	W io.Writer
}

// Location implements Sink.
func (s *WriterSink) Location() string {
	switch s.W {
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return fmt.Sprintf("%T", s.W)
}

// Put implements Sink.
func (s *WriterSink) Put(_ context.Context, data []byte, _ save.Format) error {
	if _, err := s.W.Write(data); err != nil {
		return errors.WrapIO("write", s.Location(), err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := io.WriteString(s.W, "\n"); err != nil {
			return errors.WrapIO("write", s.Location(), err)
		}
	}
	return nil
}
