package gin

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aebalz/vibetrack/docs"
	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/handler"
	"github.com/aebalz/vibetrack/internal/middleware"
)

// NewGinServer creates and configures a new Gin application.
func NewGinServer(cfg *config.AppConfig, h *handler.Handler, limiter *middleware.IPRateLimiter, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.UploadMaxBytes)

	router.Use(middleware.GinRecover(log))
	router.Use(middleware.GinRequestID())
	router.Use(middleware.GinLogger(log))
	router.Use(middleware.GinCORS(cfg.CorsAllowedOrigins))
	router.Use(middleware.MetricsMiddlewareGin())

	url := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler, url))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "Cannot " + c.Request.Method + " " + c.Request.URL.Path})
	})

	registerRoutes(router, h, limiter)
	return router
}

func registerRoutes(router *gin.Engine, h *handler.Handler, limiter *middleware.IPRateLimiter) {
	router.GET("/health", h.Health.CheckHealthGin)

	api := router.Group("/api")
	if limiter != nil {
		api.Use(limiter.Gin())
	}
	api.Any("/gemini", h.Relay.RelayGin)

	v1 := api.Group("/v1")
	{
		v1.GET("/entries", h.Entries.ListGin)
		v1.POST("/entries", h.Entries.SaveGin)
		v1.GET("/entries/export", h.Entries.ExportGin)
		v1.GET("/entries/:date", h.Entries.GetGin)
		v1.DELETE("/entries/:id", h.Entries.DeleteGin)

		v1.GET("/stats", h.Analytics.StatsGin)
		v1.GET("/heatmap", h.Analytics.HeatmapGin)
		v1.GET("/trends", h.Analytics.TrendsGin)
		v1.GET("/energy-levels", h.Analytics.EnergyLevelsGin)
		v1.GET("/themes", h.Analytics.ThemesGin)

		v1.GET("/preferences", h.Preferences.GetGin)
		v1.PUT("/preferences", h.Preferences.UpdateGin)
	}
}

// Run serves router on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func Run(ctx context.Context, router *gin.Engine, cfg *config.AppConfig, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting Gin server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down Gin server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
