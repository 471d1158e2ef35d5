// internal/modelstore/source.go
package modelstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	commonhttp "housing-workers/internal/common/http"
)

// Source fetches the raw bytes of a model artifact.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Type() string
	URI() string
}

type Opts func(c *sourceConfig)

type sourceConfig struct {
	endpoint  string
	accessKey string
	secretKey string
	useSSL    bool
	timeout   time.Duration
	retries   int
}

func newConfig(opts ...Opts) *sourceConfig {
	cfg := &sourceConfig{
		timeout: 30 * time.Second,
		retries: 3,
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

func WithEndpoint(endpoint string) Opts {
	return func(c *sourceConfig) {
		c.endpoint = endpoint
	}
}

func WithAccessKey(accessKey string) Opts {
	return func(c *sourceConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) Opts {
	return func(c *sourceConfig) {
		c.secretKey = secretKey
	}
}

func WithSSL(useSSL bool) Opts {
	return func(c *sourceConfig) {
		c.useSSL = useSSL
	}
}

// WithTimeout bounds each HTTP attempt.
func WithTimeout(timeout time.Duration) Opts {
	return func(c *sourceConfig) {
		c.timeout = timeout
	}
}

func WithRetries(retries int) Opts {
	return func(c *sourceConfig) {
		c.retries = retries
	}
}

// NewSource picks a source from the URI scheme: s3://bucket/key reads from the object
// store, http(s):// downloads, and anything else is a local path.
func NewSource(uri string, opts ...Opts) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("artifact uri is empty")
	}
	cfg := newConfig(opts...)

	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := parseObjectURI(uri)
		if err != nil {
			return nil, err
		}
		return NewObjectStoreSource(bucket, key, opts...)
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		client := commonhttp.NewClient(cfg.timeout, commonhttp.WithRetries(cfg.retries, 500*time.Millisecond))
		return NewHTTPSource(uri, client), nil
	default:
		return NewFileSource(strings.TrimPrefix(uri, "file://")), nil
	}
}

func parseObjectURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid object uri %q: %w", uri, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("object uri %q must look like s3://bucket/key", uri)
	}
	return u.Host, key, nil
}

type fileSource struct {
	path string
}

func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

func (s *fileSource) Type() string {
	return "file"
}

func (s *fileSource) URI() string {
	return s.path
}

type httpSource struct {
	url    string
	client *commonhttp.Client
}

func NewHTTPSource(url string, client *commonhttp.Client) Source {
	return &httpSource{url: url, client: client}
}

func (s *httpSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.client.Get(ctx, s.url)
}

func (s *httpSource) Type() string {
	return "http"
}

func (s *httpSource) URI() string {
	return s.url
}
