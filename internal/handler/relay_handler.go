package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aebalz/vibetrack/internal/insight"
)

const maxPromptBytes = 64 << 10

// RelayHandler forwards {prompt} to the model and answers {text}. Responses
// are not wrapped in the data envelope.
type RelayHandler struct {
	Generator insight.Generator
	Log       zerolog.Logger
}

// NewRelayHandler creates a RelayHandler. A nil generator means no API key is
// configured.
func NewRelayHandler(gen insight.Generator, log zerolog.Logger) *RelayHandler {
	return &RelayHandler{Generator: gen, Log: log}
}

func (h *RelayHandler) handle(ctx context.Context, method string, body []byte) (int, any) {
	if method != http.MethodPost {
		return failStatus(http.StatusMethodNotAllowed, "Method not allowed")
	}
	if len(body) > maxPromptBytes {
		return failStatus(http.StatusRequestEntityTooLarge, "Prompt too large")
	}

	var req insight.RelayRequest
	if err := json.Unmarshal(body, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return failStatus(http.StatusBadRequest, "Missing prompt")
	}

	if h.Generator == nil {
		return failStatus(http.StatusInternalServerError, "Missing GEMINI_API_KEY")
	}

	text, err := h.Generator.Generate(ctx, req.Prompt)
	if err != nil {
		h.Log.Error().Err(err).Msg("gemini relay request failed")
		return failStatus(http.StatusInternalServerError, "Gemini request failed")
	}
	return http.StatusOK, insight.RelayResponse{Text: strings.TrimSpace(text)}
}

// @Summary Gemini relay
// @Description Sends a prompt to the hosted model with the server's API key.
// @Tags Insight
// @Accept json
// @Produce json
// @Param request body insight.RelayRequest true "Prompt"
// @Success 200 {object} insight.RelayResponse
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/gemini [post]
func (h *RelayHandler) RelayFiber(c *fiber.Ctx) error {
	status, body := h.handle(c.UserContext(), c.Method(), c.Body())
	return c.Status(status).JSON(body)
}

func (h *RelayHandler) RelayGin(c *gin.Context) {
	// One byte past the cap is enough to tell an oversized body apart.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPromptBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing prompt"})
		return
	}
	c.JSON(h.handle(c.Request.Context(), c.Request.Method, body))
}
