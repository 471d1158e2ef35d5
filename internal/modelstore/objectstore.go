// internal/modelstore/objectstore.go
package modelstore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type objectStoreSource struct {
	bucket string
	key    string
	client *minio.Client
}

// NewObjectStoreSource reads bucket/key from an S3 compatible store. WithEndpoint is
// required.
func NewObjectStoreSource(bucket, key string, opts ...Opts) (Source, error) {
	cfg := newConfig(opts...)
	if cfg.endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required for s3://%s/%s", bucket, key)
	}

	client, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &objectStoreSource{bucket: bucket, key: key, client: client}, nil
}

func (s *objectStoreSource) Fetch(ctx context.Context) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	objInfo, err := object.Stat()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != objInfo.Size {
		return nil, fmt.Errorf("short read of %s: expected %d bytes, received %d", s.URI(), objInfo.Size, len(data))
	}
	return data, nil
}

func (s *objectStoreSource) Type() string {
	return "s3"
}

func (s *objectStoreSource) URI() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}
