package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aebalz/vibetrack/pkg/database"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	ping func(ctx context.Context) error
	now  func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{
		ping: func(ctx context.Context) error { return database.PingDB(ctx, db) },
		now:  time.Now,
	}
}

// HealthCheckResponse defines the structure for the health check response.
type HealthCheckResponse struct {
	ServerStatus   string `json:"server_status"`
	DatabaseStatus string `json:"database_status"`
	Timestamp      string `json:"timestamp"`
}

func (h *HealthHandler) check(ctx context.Context) (int, HealthCheckResponse) {
	response := HealthCheckResponse{
		ServerStatus: "OK",
		Timestamp:    h.now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		response.DatabaseStatus = "Error: " + err.Error()
		return http.StatusServiceUnavailable, response
	}
	response.DatabaseStatus = "OK"
	return http.StatusOK, response
}

// @Summary API Health Check
// @Description Check the health of the API and database connection.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthCheckResponse "Successfully checked health"
// @Failure 503 {object} HealthCheckResponse "Service unavailable if database ping fails"
// @Router /health [get]
// CheckHealthFiber is the health check endpoint handler for Fiber.
func (h *HealthHandler) CheckHealthFiber(c *fiber.Ctx) error {
	status, response := h.check(c.UserContext())
	return c.Status(status).JSON(response)
}

// CheckHealthGin is the health check endpoint handler for Gin.
func (h *HealthHandler) CheckHealthGin(c *gin.Context) {
	status, response := h.check(c.Request.Context())
	c.JSON(status, response)
}
