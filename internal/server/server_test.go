// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/estimator"
	"housing-workers/internal/valuation"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	registry, err := estimator.NewRegistry(estimator.Heuristic,
		estimator.NewHeuristicStrategy(),
		estimator.NewStandardizedStrategy(),
	)
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	s := New(config.ServerConfig{Address: "127.0.0.1:0"}, valuation.NewService(registry, nil, log), log, opts...)

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// ==========================
// Estimate Form Tests
// ==========================

func TestEstimateForm(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/estimate")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, body, "Predicted House Price: $671,885")
	assert.Contains(t, body, "Location: Los Angeles Metro")
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestEstimateForm_QueryParameters(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/estimate?strategy=standardized&medianIncome=3&latitude=36&longitude=-120&ignored=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Predicted House Price: $193,631")
	assert.Contains(t, body, "Strategy: standardized")
}

func TestEstimateForm_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{name: "not a number", query: "medianIncome=lots", contains: "medianIncome"},
		{name: "out of range", query: "houseAge=99", contains: "houseAge"},
		{name: "unknown strategy", query: "strategy=neural", contains: "neural"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+"/estimate?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
		})
	}
}

// ==========================
// JSON API Tests
// ==========================

func TestEstimateJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, data := postJSON(t, srv.URL+"/api/v1/estimate", `{"strategy": "heuristic", "features": {"latitude": 37.5, "longitude": -122.2}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var reply EstimateReply
	require.NoError(t, json.Unmarshal(data, &reply))
	assert.Equal(t, resp.Header.Get(requestIDHeader), reply.RequestID)
	assert.Equal(t, estimator.Heuristic, reply.Prediction.Strategy)
	assert.Equal(t, 835232, reply.Prediction.Price)
	assert.Equal(t, 125284, reply.Prediction.Confidence.Margin)
	assert.Equal(t, "Luxury Market", reply.Prediction.MarketTier)
	assert.Contains(t, reply.Report, "$835,232")
}

func TestEstimateJSON_KeepsCallerRequestID(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/estimate", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var reply EstimateReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, "req-123", reply.RequestID)
}

func TestEstimateJSON_Errors(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedCode  string
		expectedField string
	}{
		{name: "malformed body", body: `{"strategy":`, expectedCode: "PARSE_ERROR"},
		{name: "invalid features", body: `{"features": {"averageRooms": 0}}`, expectedCode: "INVALID_FEATURES", expectedField: "averageRooms"},
		{name: "disabled strategy", body: `{"strategy": "regression"}`, expectedCode: "UNKNOWN_STRATEGY"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := postJSON(t, srv.URL+"/api/v1/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var reply ErrorReply
			require.NoError(t, json.Unmarshal(data, &reply))
			assert.Equal(t, tt.expectedCode, reply.Code)
			assert.NotEmpty(t, reply.RequestID)
			if tt.expectedField != "" {
				require.NotEmpty(t, reply.Errors)
				assert.Equal(t, tt.expectedField, reply.Errors[0].Field)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/v1/classify?strategy=standardized&latitude=33&longitude=-117.2")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var reply ClassifyReply
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, estimator.Standardized, reply.Strategy)
	assert.Equal(t, "San Diego Coast", reply.Location.Name)

	resp, _ = get(t, srv.URL+"/api/v1/classify?latitude=north")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/api/v1/classify?latitude=34")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStrategies(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/v1/strategies")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply StrategiesReply
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, estimator.Heuristic, reply.Default)
	require.Len(t, reply.Strategies, 2)
	assert.Equal(t, estimator.Standardized, reply.Strategies[1].Name)
	assert.Equal(t, 800000, reply.Strategies[1].MaxPrice)
}

// ==========================
// Operational Endpoint Tests
// ==========================

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t,
		WithServiceName("housing-test"),
		WithReadinessCheck("model", func(context.Context) error { return nil }),
	)

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "healthy", "service": "housing-test"}`, body)

	resp, body = get(t, srv.URL+"/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ready", "service": "housing-test", "checks": {"model": "ok"}}`, body)
}

func TestReady_FailingCheck(t *testing.T) {
	srv := newTestServer(t,
		WithReadinessCheck("zeebe", func(context.Context) error { return stderrors.New("gateway unreachable") }),
	)

	resp, body := get(t, srv.URL+"/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "gateway unreachable")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv.URL+"/estimate")
	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "housing_estimates_total")
}

func TestRun_StopsOnCancel(t *testing.T) {
	registry, err := estimator.NewRegistry(estimator.Heuristic, estimator.NewHeuristicStrategy())
	require.NoError(t, err)
	log := logger.NewNoOpLogger()
	s := New(config.ServerConfig{Address: "127.0.0.1:0", ShutdownTimeout: 1000}, valuation.NewService(registry, nil, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
