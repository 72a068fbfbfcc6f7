package tabio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source provides raw input tables by file name. The pipeline reads
// through this interface so the transform stages can be driven from a
// local directory, an object store, or literal in-memory tables in
// tests.
type Source interface {
	// Open returns a reader for the named raw table. The caller closes it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource reads raw tables from a local directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a source rooted at the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Open opens the named file under the source directory.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", name, err)
	}
	return f, nil
}

// S3Source reads raw tables from an S3 bucket, keeping the acquisition
// side pluggable when the raw exports land in object storage instead of
// on local disk.
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Source creates a source for the given bucket and key prefix using
// the ambient AWS configuration (environment, shared config, IAM role).
// An empty region defers to the ambient configuration.
func NewS3Source(ctx context.Context, bucket, prefix, region string) (*S3Source, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// NewS3SourceWithClient creates a source with an explicit client, for
// tests and non-default endpoints.
func NewS3SourceWithClient(client *s3.Client, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Open fetches the named object from the bucket.
func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	return out.Body, nil
}
