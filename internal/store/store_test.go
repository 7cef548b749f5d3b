package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/save"
)

func TestFileSinkWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "partners_solutions.json")

	sink := &FileSink{Path: path}
	require.NoError(t, sink.Put(context.Background(), []byte(`{"partners":[]}`), save.FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"partners":[]}`, string(data))

	// Overwrite replaces the content and leaves no temp files behind.
	require.NoError(t, sink.Put(context.Background(), []byte(`{"partners":[1]}`), save.FormatJSON))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"partners":[1]}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, path, sink.Location())
}

func TestFileSinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.json")
	err := (&FileSink{Path: path}).Put(ctx, []byte("{}"), save.FormatJSON)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestFileSinkUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := (&FileSink{Path: filepath.Join(blocker, "out.json")}).Put(context.Background(), []byte("{}"), save.FormatJSON)
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestWriterSinkAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	sink := &WriterSink{W: &buf}

	require.NoError(t, sink.Put(context.Background(), []byte("{}"), save.FormatJSON))
	require.NoError(t, sink.Put(context.Background(), []byte("a: 1\n"), save.FormatYAML))
	assert.Equal(t, "{}\na: 1\n", buf.String())
	assert.Equal(t, "*bytes.Buffer", sink.Location())
	assert.Equal(t, "stdout", (&WriterSink{W: os.Stdout}).Location())
}

type fakeObjects struct {
	ensured     []string
	bucket, key string
	data        []byte
	contentType string
	err         error
}

func (f *fakeObjects) EnsureBucket(_ context.Context, bucket string) error {
	f.ensured = append(f.ensured, bucket)
	return f.err
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, key string, data []byte, contentType string) error {
	f.bucket, f.key, f.data, f.contentType = bucket, key, data, contentType
	return nil
}

func TestObjectSink(t *testing.T) {
	objects := &fakeObjects{}
	sink, err := NewObjectSink(objects, "exports", "partners.yaml")
	require.NoError(t, err)

	require.NoError(t, sink.Put(context.Background(), []byte("partners: []\n"), save.FormatYAML))
	assert.Equal(t, []string{"exports"}, objects.ensured)
	assert.Equal(t, "exports", objects.bucket)
	assert.Equal(t, "partners.yaml", objects.key)
	assert.Equal(t, "application/yaml", objects.contentType)
	assert.Equal(t, "s3://exports/partners.yaml", sink.Location())
}

func TestObjectSinkBucketFailure(t *testing.T) {
	objects := &fakeObjects{err: errors.New("denied")}
	sink, err := NewObjectSink(objects, "exports", "doc.json")
	require.NoError(t, err)

	require.Error(t, sink.Put(context.Background(), []byte("{}"), save.FormatJSON))
	assert.Nil(t, objects.data)
}

func TestNewObjectSinkValidation(t *testing.T) {
	_, err := NewObjectSink(&fakeObjects{}, "", "k")
	assert.True(t, errors.IsValidationError(err))
	_, err = NewObjectSink(&fakeObjects{}, "b", "")
	assert.True(t, errors.IsValidationError(err))
}

func options(opts ...save.Option) *save.Options {
	o := save.Defaults()
	o.Apply(opts...)
	return o
}

func TestFromOptions(t *testing.T) {
	var buf bytes.Buffer

	sink, err := FromOptions(options(save.WithWriter(&buf), save.WithPath("x.json")), nil)
	require.NoError(t, err)
	assert.IsType(t, &WriterSink{}, sink)

	sink, err = FromOptions(options(save.WithObject("b", "k.json"), save.WithPath("x.json")), &fakeObjects{})
	require.NoError(t, err)
	assert.IsType(t, &ObjectSink{}, sink)

	sink, err = FromOptions(options(save.WithPath("x.json")), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSink{}, sink)

	_, err = FromOptions(options(save.WithObject("b", "k.json")), nil)
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = FromOptions(save.Defaults(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestNewMinioStoreValidation(t *testing.T) {
	_, err := NewMinioStore(ObjectConfig{})
	require.Error(t, err)

	_, err = NewMinioStore(ObjectConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)

	store, err := NewMinioStore(ObjectConfig{Endpoint: "https://minio.example.com", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", store.region)
	assert.True(t, ObjectConfig{Endpoint: "x"}.Configured())
}
