package fiber

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiber "github.com/swaggo/fiber-swagger"

	_ "github.com/aebalz/vibetrack/docs"
	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/handler"
	"github.com/aebalz/vibetrack/internal/middleware"
)

// NewFiberServer creates and configures a new Fiber application.
func NewFiberServer(cfg *config.AppConfig, h *handler.Handler, limiter *middleware.IPRateLimiter, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ServerReadTimeout,
		WriteTimeout:          cfg.ServerWriteTimeout,
		IdleTimeout:           cfg.ServerIdleTimeout,
		BodyLimit:             cfg.UploadMaxBytes + 1<<20,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          customErrorHandler(log),
	})

	app.Use(middleware.FiberRecover(log))
	app.Use(middleware.FiberRequestID())
	app.Use(middleware.FiberLogger(log))
	app.Use(middleware.FiberCORS(cfg.CorsAllowedOrigins))
	app.Use(middleware.MetricsMiddlewareFiber())

	app.Get("/swagger/*", swaggoFiber.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registerRoutes(app, h, limiter)
	return app
}

func registerRoutes(app *fiber.App, h *handler.Handler, limiter *middleware.IPRateLimiter) {
	app.Get("/health", h.Health.CheckHealthFiber)

	api := app.Group("/api")
	if limiter != nil {
		api.Use(limiter.Fiber())
	}
	api.All("/gemini", h.Relay.RelayFiber)

	v1 := api.Group("/v1")
	v1.Get("/entries", h.Entries.ListFiber)
	v1.Post("/entries", h.Entries.SaveFiber)
	v1.Get("/entries/export", h.Entries.ExportFiber)
	v1.Get("/entries/:date", h.Entries.GetFiber)
	v1.Delete("/entries/:id", h.Entries.DeleteFiber)

	v1.Get("/stats", h.Analytics.StatsFiber)
	v1.Get("/heatmap", h.Analytics.HeatmapFiber)
	v1.Get("/trends", h.Analytics.TrendsFiber)
	v1.Get("/energy-levels", h.Analytics.EnergyLevelsFiber)
	v1.Get("/themes", h.Analytics.ThemesFiber)

	v1.Get("/preferences", h.Preferences.GetFiber)
	v1.Put("/preferences", h.Preferences.UpdateFiber)
}

// customErrorHandler renders errors that escape the handlers, such as
// unknown routes and oversized bodies, in the API's error shape.
func customErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", ctx.Path()).Msg("fiber error")
		}

		return ctx.Status(code).JSON(handler.ErrorResponse{Error: message})
	}
}

// Run serves app on cfg.Addr until ctx is cancelled, then shuts down within
// the configured timeout.
func Run(ctx context.Context, app *fiber.App, cfg *config.AppConfig, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting Fiber server")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down Fiber server")
	if err := app.ShutdownWithTimeout(cfg.ServerShutdownTimeout); err != nil {
		return err
	}
	return <-errCh
}
