package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/insight"
	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/service"
)

type stubGenerator struct{ text string }

func (g stubGenerator) Generate(context.Context, string) (string, error) { return g.text, nil }

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3PublicBaseURL = "", "", ""
	cfg.GeminiAPIKey, cfg.InsightRelayURL = "", ""
	return cfg
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.JournalEntry{}, &model.Preference{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestStorageConfigured(t *testing.T) {
	cfg := &config.AppConfig{S3Bucket: "vibes"}
	assert.False(t, StorageConfigured(cfg))

	cfg.S3Endpoint = "http://localhost:9000"
	assert.True(t, StorageConfigured(cfg))

	cfg.S3Bucket = ""
	assert.False(t, StorageConfigured(cfg))
}

func TestStorageConfig(t *testing.T) {
	cfg := &config.AppConfig{
		S3Endpoint:     "http://minio:9000",
		S3Region:       "eu-west-1",
		S3Bucket:       "photos",
		S3UsePathStyle: true,
	}
	sc := StorageConfig(cfg)
	assert.Equal(t, "http://minio:9000", sc.Endpoint)
	assert.Equal(t, "photos", sc.Bucket)
	assert.True(t, sc.UsePathStyle)
}

func TestGenerators(t *testing.T) {
	cfg := &config.AppConfig{InsightTimeout: time.Second}
	gen, direct := generators(cfg)
	assert.Nil(t, gen)
	assert.Nil(t, direct)

	cfg.InsightRelayURL = "https://relay.example"
	gen, direct = generators(cfg)
	assert.IsType(t, &insight.RelayClient{}, gen)
	assert.Nil(t, direct)

	cfg.GeminiAPIKey = "key"
	gen, direct = generators(cfg)
	assert.IsType(t, &insight.GeminiClient{}, gen)
	require.NotNil(t, direct)
	assert.True(t, direct.Configured())
}

func TestNew_WiresServices(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }

	a, err := New(ctx, testConfig(t), testDB(t), zerolog.Nop(),
		WithGenerator(stubGenerator{text: "Tuyệt vời!"}),
		WithClock(now),
	)
	require.NoError(t, err)
	require.NotNil(t, a.Handler)
	require.NotNil(t, a.Handler.Relay.Generator)
	require.NotNil(t, a.Limiter)

	saved, err := a.Entries.Save(ctx, service.SaveInput{Energy: model.EnergyHigh, Content: "chạy bộ"})
	require.NoError(t, err)
	assert.Equal(t, model.Day("2024-05-10"), saved.Date)
	assert.Equal(t, "Tuyệt vời!", saved.Insight())

	stats, err := a.Analytics.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.True(t, stats.CheckedInToday)
}

func TestNew_WithoutGenerator(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), testDB(t), zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, a.Handler.Relay.Generator)

	saved, err := a.Entries.Save(ctx, service.SaveInput{Energy: model.EnergyLow, Content: "mệt"})
	require.NoError(t, err)
	assert.Equal(t, insight.ErrorMessage, saved.Insight())
}
