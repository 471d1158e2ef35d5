// internal/modelstore/provider_test.go
package modelstore

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/estimator"
)

const testArtifact = `{
  "version": "test-1",
  "featureNames": ["MedInc", "Latitude"],
  "scaler": {"mean": [4, 35], "scale": [2, 2]},
  "model": {"type": "linear", "coefficients": [0.5, -0.25], "intercept": 2}
}`

// ==========================
// Test Helper Functions
// ==========================

type countingSource struct {
	calls int32
	data  []byte
	err   error
}

func (s *countingSource) Fetch(context.Context) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	time.Sleep(5 * time.Millisecond)
	return s.data, s.err
}

func (s *countingSource) Type() string { return "counting" }
func (s *countingSource) URI() string  { return "memory://artifact" }

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// Source Selection Tests
// ==========================

func TestNewSource(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		opts     []Opts
		wantType string
		wantURI  string
		wantErr  bool
	}{
		{name: "plain path", uri: "configs/model-artifact.json", wantType: "file", wantURI: "configs/model-artifact.json"},
		{name: "file scheme", uri: "file:///models/a.json", wantType: "file", wantURI: "/models/a.json"},
		{name: "http", uri: "http://models.local/a.json", wantType: "http", wantURI: "http://models.local/a.json"},
		{name: "https", uri: "https://models.local/a.json", wantType: "http", wantURI: "https://models.local/a.json"},
		{
			name:     "object store",
			uri:      "s3://models/housing/v1.json",
			opts:     []Opts{WithEndpoint("localhost:9000"), WithAccessKey("minio"), WithSecretKey("minio123")},
			wantType: "s3",
			wantURI:  "s3://models/housing/v1.json",
		},
		{name: "object store without endpoint", uri: "s3://models/v1.json", wantErr: true},
		{name: "object store without key", uri: "s3://models", opts: []Opts{WithEndpoint("localhost:9000")}, wantErr: true},
		{name: "empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.uri, tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, src.Type())
			assert.Equal(t, tt.wantURI, src.URI())
		})
	}
}

func TestFileSource_Fetch(t *testing.T) {
	path := writeArtifact(t, testArtifact)

	data, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, testArtifact, string(data))

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource_Fetch(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testArtifact))
	}))
	defer srv.Close()

	src, err := NewSource(srv.URL+"/artifact.json", WithTimeout(time.Second), WithRetries(2))
	require.NoError(t, err)

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, testArtifact, string(data))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

// ==========================
// Provider Tests
// ==========================

func TestProvider_LoadFromFile(t *testing.T) {
	before := testutil.ToFloat64(metrics.ArtifactLoads.WithLabelValues("file", "loaded"))

	p := NewProvider(NewFileSource(writeArtifact(t, testArtifact)), logger.NewTestLogger(t))
	model, err := p.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-1", model.Version)
	assert.Equal(t, []string{"MedInc", "Latitude"}, model.FeatureNames)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ArtifactLoads.WithLabelValues("file", "loaded")))

	s, err := p.Strategy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, estimator.Regression, s.Info().Name)

	// scaled (2, -0.5) gives 2 + 1 + 0.125 = 3.125 hundred thousand dollars
	f := estimator.DefaultFeatures()
	assert.Equal(t, 312500, s.Estimate(f).Price)
}

func TestProvider_RepoArtifact(t *testing.T) {
	p := NewProvider(NewFileSource("../../configs/model-artifact.json"), logger.NewNoOpLogger())
	s, err := p.Strategy(context.Background())
	require.NoError(t, err)

	pred := s.Estimate(estimator.DefaultFeatures())
	assert.InDelta(t, 384322, pred.Price, 1)
}

func TestProvider_LoadsOnce(t *testing.T) {
	src := &countingSource{data: []byte(testArtifact)}
	p := NewProvider(src, logger.NewNoOpLogger())

	var wg sync.WaitGroup
	models := make([]*estimator.ModelPackage, 16)
	for i := range models {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := p.Load(context.Background())
			assert.NoError(t, err)
			models[i] = m
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	for _, m := range models {
		assert.Same(t, models[0], m)
	}
}

func TestProvider_Errors(t *testing.T) {
	tests := []struct {
		name     string
		source   *countingSource
		wantCode errors.ErrorCode
	}{
		{
			name:     "fetch failure",
			source:   &countingSource{err: stderrors.New("connection refused")},
			wantCode: errors.ErrCodeArtifactLoadFailed,
		},
		{
			name:     "malformed document",
			source:   &countingSource{data: []byte(`{"version": 1}`)},
			wantCode: errors.ErrCodeArtifactInvalid,
		},
		{
			name: "zero scale",
			source: &countingSource{data: []byte(`{"version": "1", "featureNames": ["MedInc"],
				"scaler": {"mean": [1], "scale": [0]}, "model": {"type": "linear", "coefficients": [1], "intercept": 0}}`)},
			wantCode: errors.ErrCodeArtifactInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.source, logger.NewNoOpLogger())

			_, err := p.Load(context.Background())
			require.Error(t, err)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Contains(t, stdErr.Details, "memory://artifact")

			// the failure is cached
			_, err = p.Load(context.Background())
			assert.Error(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&tt.source.calls))
		})
	}
}
