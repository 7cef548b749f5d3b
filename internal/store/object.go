package store

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/agentstation/partnermap/pkg/constants"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/save"
)

// ObjectStore is the subset of an S3-compatible client the object sink needs.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// ObjectConfig holds the connection settings for an S3-compatible store.
type ObjectConfig struct {
	Endpoint  string // host[:port] or URL
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// Configured reports whether enough settings are present to connect.
func (c ObjectConfig) Configured() bool {
	return c.Endpoint != ""
}

// MinioStore is an ObjectStore backed by minio-go.
type MinioStore struct {
	client *minio.Client
	region string
}

// NewMinioStore connects to an S3-compatible endpoint.
func NewMinioStore(cfg ObjectConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, &errors.ConfigError{Component: "s3", Message: "endpoint is required"}
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, &errors.ConfigError{Component: "s3", Message: "access key and secret key are required"}
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, &errors.ConfigError{Component: "s3", Message: "invalid endpoint URL", Err: err}
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	region := cfg.Region
	if region == "" {
		region = constants.DefaultObjectRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, &errors.ConfigError{Component: "s3", Message: "failed to create client", Err: err}
	}

	return &MinioStore{client: client, region: region}, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.WrapResource("check", "bucket", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errors.WrapResource("create", "bucket", bucket, err)
	}
	return nil
}

// PutObject uploads data under key.
func (s *MinioStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.WrapResource("upload", "object", bucket+"/"+key, err)
	}
	return nil
}

// ObjectSink uploads the document to a bucket.
type ObjectSink struct {
	store  ObjectStore
	bucket string
	key    string
}

// NewObjectSink validates the destination and returns a sink for it.
func NewObjectSink(objects ObjectStore, bucket, key string) (*ObjectSink, error) {
	if bucket == "" {
		return nil, &errors.ValidationError{Field: "s3_bucket", Message: "bucket is required"}
	}
	if key == "" {
		return nil, &errors.ValidationError{Field: "object key", Message: "object key is required"}
	}
	return &ObjectSink{store: objects, bucket: bucket, key: key}, nil
}

// Location implements Sink.
func (s *ObjectSink) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Put implements Sink.
func (s *ObjectSink) Put(ctx context.Context, data []byte, format save.Format) error {
	if err := s.store.EnsureBucket(ctx, s.bucket); err != nil {
		return err
	}
	return s.store.PutObject(ctx, s.bucket, s.key, data, format.ContentType())
}
