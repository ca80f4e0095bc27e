package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
)

// FiberLogger writes one access log line per request through log.
func FiberLogger(log zerolog.Logger) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${status} ${method} ${path} ${latency} ip=${ip} request_id=${locals:" + RequestIDKey + "}\n",
		TimeFormat: time.RFC3339,
		Output:     log.With().Str("component", "http").Logger(),
	})
}

// GinLogger logs requests with zerolog.
func GinLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			event = event.Str("errors", errs)
		}
		event.
			Str("component", "http").
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", path).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("request")
	}
}
