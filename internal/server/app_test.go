package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/metrics"
	"github.com/RobertWLight/BSC/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Name: "bsc-test", Env: "test", Port: "0"},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "server.db"),
		},
		Log: config.LogConfig{Level: "error"},
		HTTP: config.HTTPConfig{
			MaxBodySize:     1 << 20,
			ShutdownTimeout: 5 * time.Second,
		},
		Admin: config.AdminConfig{
			PIN:         "5150",
			TokenSecret: "server-test-secret-0123456789abcdef",
			TokenTTL:    time.Hour,
			Issuer:      "bsc-test",
		},
		Fica:      config.FicaConfig{Rate: 0.0765, SavingsRate: 0.30},
		Leads:     config.LeadsConfig{StatsTimezone: "America/New_York"},
		Storage:   config.StorageConfig{Driver: "memory"},
		Telemetry: config.TelemetryConfig{ServiceName: "bsc-test", MetricsEnabled: true},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	return app
}

func serve(app *App, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	return w
}

func TestApp_HealthAndSecurityHeaders(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	w := serve(app, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestApp_SeedsPlanCatalog(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	w := serve(app, http.MethodGet, "/api/v1/benefit-plans", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 4)
}

func TestApp_Metrics(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	w := serve(app, http.MethodPost, "/api/v1/leads", map[string]string{
		"first_name":          "Rita",
		"last_name":           "Okafor",
		"email":               "rita@okafor.example",
		"business_name":       "Okafor Dental",
		"number_of_employees": "6-10",
		"industry":            "Healthcare",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(app, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, metrics.MetricHTTPRequestsTotal)
	assert.Contains(t, body, `route="/api/v1/leads"`)
	assert.Contains(t, body, metrics.MetricLeadsCapturedTotal+`{bucket="6-10"} 1`)
}

func TestApp_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.MetricsEnabled = false
	app := newTestApp(t, cfg)

	w := serve(app, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_AdminSession(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	w := serve(app, http.MethodGet, "/api/v1/admin/lead-stats", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(app, http.MethodPost, "/api/v1/admin/session", map[string]string{"pin": "5150"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Data.Token)

	w = serve(app, http.MethodGet, "/api/v1/admin/lead-stats", nil, map[string]string{
		"Authorization": "Bearer " + session.Data.Token,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"reference_zone":"America/New_York"`)
}

func TestApp_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.RateLimitEnabled = true
	cfg.HTTP.RateLimitRequests = 2
	cfg.HTTP.RateLimitWindow = time.Minute
	app := newTestApp(t, cfg)

	for i := 0; i < 2; i++ {
		w := serve(app, http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(app, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
}

func TestApp_BodyLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.MaxBodySize = 64
	app := newTestApp(t, cfg)

	w := serve(app, http.MethodPost, "/api/v1/leads", map[string]string{
		"business_name": string(bytes.Repeat([]byte("x"), 256)),
	}, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.Port = "0"
	app := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_InvalidStorageDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "ftp"

	_, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
