package fiber

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/vibetrack/internal/app"
	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/middleware"
	"github.com/aebalz/vibetrack/internal/model"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) { return "ok:" + prompt, nil }

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3PublicBaseURL = "", "", ""
	cfg.RateLimitPerSecond, cfg.RateLimitBurst = 1000, 1000

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "fiber.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.JournalEntry{}, &model.Preference{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	a, err := app.New(context.Background(), cfg, db, zerolog.Nop(), app.WithGenerator(echoGenerator{}))
	require.NoError(t, err)
	return a
}

func TestFiberServer_Routes(t *testing.T) {
	a := newTestApp(t)
	srv := NewFiberServer(a.Config, a.Handler, a.Limiter, zerolog.Nop())

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"save", http.MethodPost, "/api/v1/entries", `{"date":"2024-05-10","energy":3,"content":"ổn"}`, http.StatusCreated},
		{"list", http.MethodGet, "/api/v1/entries", "", http.StatusOK},
		{"export before date param", http.MethodGet, "/api/v1/entries/export?format=json", "", http.StatusOK},
		{"get by date", http.MethodGet, "/api/v1/entries/2024-05-10", "", http.StatusOK},
		{"missing day", http.MethodGet, "/api/v1/entries/2020-01-01", "", http.StatusNotFound},
		{"stats", http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{"heatmap", http.MethodGet, "/api/v1/heatmap?year=2024", "", http.StatusOK},
		{"trends", http.MethodGet, "/api/v1/trends?timeframe=year&ref=2024-05-10", "", http.StatusOK},
		{"preferences", http.MethodGet, "/api/v1/preferences", "", http.StatusOK},
		{"relay", http.MethodPost, "/api/gemini", `{"prompt":"hi"}`, http.StatusOK},
		{"relay wrong method", http.MethodGet, "/api/gemini", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, bytes.NewBufferString(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err := srv.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.target != "/metrics" {
				assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
			}
		})
	}
}

func TestFiberServer_MetricsExposesRequests(t *testing.T) {
	a := newTestApp(t)
	srv := NewFiberServer(a.Config, a.Handler, a.Limiter, zerolog.Nop())

	_, err := srv.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	resp, err := srv.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestFiberServer_RateLimit(t *testing.T) {
	a := newTestApp(t)
	limiter := middleware.NewIPRateLimiter(0.001, 1)
	srv := NewFiberServer(a.Config, a.Handler, limiter, zerolog.Nop())

	resp, err := srv.Test(httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Test(httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	resp, err = srv.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
