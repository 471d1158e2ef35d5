// internal/common/http/client_test.go
package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name          string
		failures      int32
		failStatus    int
		retries       int
		expectErr     bool
		expectStatus  int
		expectedCalls int32
	}{
		{name: "first attempt succeeds", retries: 2, expectedCalls: 1},
		{name: "recovers after server errors", failures: 2, failStatus: http.StatusBadGateway, retries: 2, expectedCalls: 3},
		{name: "gives up after retries", failures: 5, failStatus: http.StatusServiceUnavailable, retries: 1, expectErr: true, expectStatus: http.StatusServiceUnavailable, expectedCalls: 2},
		{name: "client error is not retried", failures: 5, failStatus: http.StatusNotFound, retries: 3, expectErr: true, expectStatus: http.StatusNotFound, expectedCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				if n <= tt.failures {
					w.WriteHeader(tt.failStatus)
					return
				}
				_, _ = w.Write([]byte(`{"ok":true}`))
			}))
			defer srv.Close()

			c := NewClient(5*time.Second, WithRetries(tt.retries, time.Millisecond))
			body, err := c.Get(context.Background(), srv.URL)

			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
			if tt.expectErr {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, tt.expectStatus, statusErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, string(body))
		})
	}
}

func TestClient_Get_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(time.Second, WithRetries(3, time.Hour))
	_, err := c.Get(ctx, srv.URL)
	assert.Error(t, err)
}
