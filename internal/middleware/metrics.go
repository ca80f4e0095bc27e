package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method", "path"},
	)
)

// unmatchedPath labels requests that hit no route.
const unmatchedPath = "unmatched"

// normalizePath keeps label cardinality bounded when no route template is
// known: uuid segments become :id and YYYY-MM-DD segments become :date.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if _, err := uuid.Parse(p); err == nil {
			parts[i] = ":id"
		} else if isDaySegment(p) {
			parts[i] = ":date"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isDaySegment(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func observe(code int, method, path string, start time.Time) {
	status := strconv.Itoa(code)
	httpRequestsTotal.WithLabelValues(status, method, path).Inc()
	httpRequestDuration.WithLabelValues(status, method, path).Observe(time.Since(start).Seconds())
}

// MetricsMiddlewareFiber creates a Fiber middleware for collecting Prometheus metrics.
func MetricsMiddlewareFiber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if err != nil {
			var fiberError *fiber.Error
			if errors.As(err, &fiberError) {
				statusCode = fiberError.Code
			} else if statusCode == http.StatusOK {
				statusCode = http.StatusInternalServerError
			}
		}

		// Route().Path is the template once a route matched; "/" is the
		// catch-all of app.Use and says nothing about the request.
		path := c.Route().Path
		if path == "" || path == "/" {
			path = normalizePath(c.Path())
		}

		observe(statusCode, c.Method(), path, start)
		return err
	}
}

// MetricsMiddlewareGin creates a Gin middleware for collecting Prometheus metrics.
func MetricsMiddlewareGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		observe(c.Writer.Status(), c.Request.Method, path, start)
	}
}
