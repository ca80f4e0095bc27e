package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the context key under which the request id is stored,
	// for both Gin and Fiber (locals).
	RequestIDKey    = "requestid"
	RequestIDHeader = "X-Request-ID"
)

// FiberRequestID tags every request with an id, reusing an incoming one.
func FiberRequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		ContextKey: RequestIDKey,
		Generator:  uuid.NewString,
	})
}

// GinRequestID tags every request with an id, reusing an incoming one.
func GinRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}
