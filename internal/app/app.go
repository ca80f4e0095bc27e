// Package app assembles repositories, services and handlers from the
// configuration so the HTTP servers and the CLI share one dependency graph.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/handler"
	"github.com/aebalz/vibetrack/internal/imaging"
	"github.com/aebalz/vibetrack/internal/insight"
	"github.com/aebalz/vibetrack/internal/middleware"
	"github.com/aebalz/vibetrack/internal/repository"
	"github.com/aebalz/vibetrack/internal/service"
	"github.com/aebalz/vibetrack/internal/storage"
)

// App is the wired application.
type App struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Log    zerolog.Logger

	Entries     *service.EntryService
	Analytics   *service.AnalyticsService
	Preferences *service.PreferenceService

	Handler *handler.Handler
	Limiter *middleware.IPRateLimiter
}

type options struct {
	uploader    storage.Uploader
	uploaderSet bool
	generator   insight.Generator
	relayGen    *insight.GeminiClient
	genSet      bool
	now         func() time.Time
}

// Option overrides a dependency that would otherwise come from the config.
type Option func(*options)

// WithUploader replaces the S3 store. A nil uploader disables photos.
func WithUploader(u storage.Uploader) Option {
	return func(o *options) {
		o.uploader = u
		o.uploaderSet = true
	}
}

// WithGenerator replaces the model client used for comments.
func WithGenerator(g insight.Generator) Option {
	return func(o *options) {
		o.generator = g
		o.genSet = true
	}
}

// WithClock overrides time.Now for every service.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New wires the application on top of an open database.
func New(ctx context.Context, cfg *config.AppConfig, db *gorm.DB, log zerolog.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.uploaderSet && StorageConfigured(cfg) {
		store, err := storage.NewS3Store(ctx, StorageConfig(cfg))
		if err != nil {
			return nil, err
		}
		o.uploader = store
		log.Info().Str("bucket", cfg.S3Bucket).Str("endpoint", cfg.S3Endpoint).Msg("photo storage enabled")
	}
	if !o.genSet {
		o.generator, o.relayGen = generators(cfg)
	}
	if o.generator == nil {
		log.Warn().Msg("no GEMINI_API_KEY or INSIGHT_RELAY_URL configured, comments fall back to a fixed message")
	}

	entryRepo := repository.NewEntryRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	commenter := insight.New(o.generator, cfg.InsightTimeout, log)
	entries := service.NewEntryService(entryRepo, o.uploader, commenter,
		service.WithImageOptions(imaging.Options{
			MaxDimension: cfg.ImageMaxDimension,
			Quality:      cfg.ImageQuality,
			MaxPixels:    cfg.ImageMaxPixels,
		}),
		service.WithClock(o.now),
		service.WithLogger(log),
	)
	analyticsSvc := service.NewAnalyticsService(entryRepo, o.now)
	prefs := service.NewPreferenceService(prefRepo)

	// The relay only ever talks to Gemini directly; relaying to another
	// relay would loop.
	var relayGen insight.Generator
	if o.relayGen != nil {
		relayGen = o.relayGen
	} else if o.genSet {
		relayGen = o.generator
	}

	a := &App{
		Config:      cfg,
		DB:          db,
		Log:         log,
		Entries:     entries,
		Analytics:   analyticsSvc,
		Preferences: prefs,
		Limiter:     middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}
	a.Handler = &handler.Handler{
		Health:      handler.NewHealthHandler(db),
		Entries:     handler.NewEntryHandler(entries, log, int64(cfg.UploadMaxBytes)),
		Analytics:   handler.NewAnalyticsHandler(analyticsSvc, log),
		Preferences: handler.NewPreferenceHandler(prefs),
		Relay:       handler.NewRelayHandler(relayGen, log),
	}
	return a, nil
}

// StorageConfigured reports whether photo uploads have somewhere to go.
func StorageConfigured(cfg *config.AppConfig) bool {
	return cfg.S3Bucket != "" && (cfg.S3Endpoint != "" || cfg.S3AccessKey != "" || cfg.S3PublicBaseURL != "")
}

// StorageConfig maps the app config onto the storage package.
func StorageConfig(cfg *config.AppConfig) storage.Config {
	return storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
		UsePathStyle:  cfg.S3UsePathStyle,
	}
}

// generators picks the comment generator: Gemini when a key is set, else the
// remote relay. The second value is the direct client, nil without a key.
func generators(cfg *config.AppConfig) (insight.Generator, *insight.GeminiClient) {
	httpClient := &http.Client{Timeout: cfg.InsightTimeout + 5*time.Second}
	if cfg.GeminiAPIKey != "" {
		gc := insight.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, httpClient)
		return gc, gc
	}
	if cfg.InsightRelayURL != "" {
		return insight.NewRelayClient(cfg.InsightRelayURL, httpClient), nil
	}
	return nil, nil
}
