package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/service"
)

// AnalyticsHandler serves stats, heatmap, trends and the static tables.
type AnalyticsHandler struct {
	Service service.AnalyticsServiceInterface
	Log     zerolog.Logger
}

func NewAnalyticsHandler(svc service.AnalyticsServiceInterface, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Service: svc, Log: log}
}

func (h *AnalyticsHandler) stats(ctx context.Context) (int, any) {
	stats, err := h.Service.Stats(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to load stats")
		return fail(err)
	}
	return ok(stats)
}

func (h *AnalyticsHandler) heatmap(ctx context.Context, rawYear string) (int, any) {
	year := 0
	if rawYear = strings.TrimSpace(rawYear); rawYear != "" {
		n, err := strconv.Atoi(rawYear)
		if err != nil {
			return failStatus(http.StatusBadRequest, "year must be a number")
		}
		year = n
	}
	hm, err := h.Service.Heatmap(ctx, year)
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			h.Log.Error().Err(err).Msg("failed to load heatmap")
		}
		return fail(err)
	}
	return ok(hm)
}

func (h *AnalyticsHandler) trends(ctx context.Context, timeframe, ref, rawStep string) (int, any) {
	step := 0
	if rawStep = strings.TrimSpace(rawStep); rawStep != "" {
		n, err := strconv.Atoi(rawStep)
		if err != nil {
			return failStatus(http.StatusBadRequest, "step must be a number")
		}
		step = n
	}
	tr, err := h.Service.Trend(ctx, timeframe, ref, step)
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			h.Log.Error().Err(err).Msg("failed to load trends")
		}
		return fail(err)
	}
	return ok(tr)
}

// @Summary Streaks and averages
// @Tags Analytics
// @Produce json
// @Success 200 {object} Envelope{data=analytics.Stats}
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/stats [get]
func (h *AnalyticsHandler) StatsFiber(c *fiber.Ctx) error {
	status, body := h.stats(c.UserContext())
	return c.Status(status).JSON(body)
}

func (h *AnalyticsHandler) StatsGin(c *gin.Context) {
	c.JSON(h.stats(c.Request.Context()))
}

// @Summary Yearly calendar heatmap
// @Tags Analytics
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} Envelope{data=analytics.Heatmap}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/heatmap [get]
func (h *AnalyticsHandler) HeatmapFiber(c *fiber.Ctx) error {
	status, body := h.heatmap(c.UserContext(), c.Query("year"))
	return c.Status(status).JSON(body)
}

func (h *AnalyticsHandler) HeatmapGin(c *gin.Context) {
	c.JSON(h.heatmap(c.Request.Context(), c.Query("year")))
}

// @Summary Energy trend chart
// @Tags Analytics
// @Produce json
// @Param timeframe query string false "week (default), month or year"
// @Param ref query string false "Reference day, defaults to today"
// @Param step query int false "Windows to move from ref, negative is back"
// @Success 200 {object} Envelope{data=analytics.Trend}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/trends [get]
func (h *AnalyticsHandler) TrendsFiber(c *fiber.Ctx) error {
	status, body := h.trends(c.UserContext(), c.Query("timeframe"), c.Query("ref"), c.Query("step"))
	return c.Status(status).JSON(body)
}

func (h *AnalyticsHandler) TrendsGin(c *gin.Context) {
	c.JSON(h.trends(c.Request.Context(), c.Query("timeframe"), c.Query("ref"), c.Query("step")))
}

// @Summary Energy levels
// @Tags Reference
// @Produce json
// @Success 200 {object} Envelope{data=[]model.EnergyMeta}
// @Router /api/v1/energy-levels [get]
func (h *AnalyticsHandler) EnergyLevelsFiber(c *fiber.Ctx) error {
	status, body := list(service.EnergyLevels())
	return c.Status(status).JSON(body)
}

func (h *AnalyticsHandler) EnergyLevelsGin(c *gin.Context) {
	c.JSON(list(service.EnergyLevels()))
}

// @Summary Color themes
// @Tags Reference
// @Produce json
// @Success 200 {object} Envelope{data=[]model.Theme}
// @Router /api/v1/themes [get]
func (h *AnalyticsHandler) ThemesFiber(c *fiber.Ctx) error {
	status, body := list(model.Themes())
	return c.Status(status).JSON(body)
}

func (h *AnalyticsHandler) ThemesGin(c *gin.Context) {
	c.JSON(list(model.Themes()))
}
